// Command ninja runs Ninja, downloading a prebuilt binary first when none is available.
// Every argument is forwarded unchanged.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/conn-castle/buildtools/internal/app"
	"github.com/conn-castle/buildtools/internal/tools"
)

func main() {
	runMain(os.Args, os.Stdin, os.Stdout, os.Stderr, os.Exit)
}

// runMain dispatches to ninja and exits with its exit code.
func runMain(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer, exit func(int)) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var forward []string
	if len(args) > 1 {
		forward = args[1:]
	}
	exit(app.RunTool(ctx, tools.Ninja, forward, app.Options{Stdin: stdin, Stdout: stdout, Stderr: stderr}))
}
