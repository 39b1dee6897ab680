package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/buildtools/internal/app"
	"github.com/conn-castle/buildtools/internal/config"
	"github.com/conn-castle/buildtools/internal/dispatch"
	"github.com/conn-castle/buildtools/internal/install"
	"github.com/conn-castle/buildtools/internal/messages"
	"github.com/conn-castle/buildtools/internal/tools"
)

var newApp = app.New

type rootFlags struct {
	versions   bool
	urls       bool
	onlyIfMust bool
	quiet      bool
	remove     bool
	removeAll  bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          fmt.Sprintf(messages.RootLongFmt, config.DefaultGNURL, config.DefaultNinjaURL),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(app.Options{
				ConfigPath: flags.configPath,
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			if code := runInstaller(cmd.Context(), a, flags); code != 0 {
				return &SilentExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.versions, "versions", "v", false, messages.FlagVersions)
	cmd.Flags().BoolVarP(&flags.urls, "urls", "u", false, messages.FlagURLs)
	cmd.Flags().BoolVarP(&flags.onlyIfMust, "only-download-if-must", "i", false, messages.FlagOnlyIfMust)
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, messages.FlagQuiet)
	cmd.Flags().BoolVarP(&flags.remove, "remove", "r", false, messages.FlagRemove)
	cmd.Flags().BoolVarP(&flags.removeAll, "remove-all", "R", false, messages.FlagRemoveAll)
	cmd.Flags().StringVar(&flags.configPath, "config", "", messages.FlagConfig)
	cmd.MarkFlagsMutuallyExclusive("versions", "urls", "remove", "remove-all")

	cmd.AddCommand(
		newToolCmd(tools.GN, messages.GNUse, messages.GNShort),
		newToolCmd(tools.Ninja, messages.NinjaUse, messages.NinjaShort),
	)
	return cmd
}

// runInstaller performs the action selected by flags; no action flag means a full install.
func runInstaller(ctx context.Context, a *app.App, flags *rootFlags) int {
	switch {
	case flags.versions:
		return a.Installer.PrintVersions(ctx)
	case flags.urls:
		return a.Installer.PrintURLs()
	case flags.remove:
		return a.Installer.RemovePlatform()
	case flags.removeAll:
		return a.Installer.RemoveAll()
	}

	code := a.Installer.InstallAll(ctx, install.Options{SkipIfPresent: flags.onlyIfMust, Verbose: !flags.quiet})
	if ctx.Err() != nil {
		_, _ = color.New(color.FgYellow).Fprintf(a.Stderr, messages.InterruptedFmt, messages.RootUse)
		return dispatch.ExitInterrupted
	}
	return code
}

// newToolCmd forwards every argument, flags included, to the named tool.
// Config comes from BUILDTOOLS_CONFIG or the default location only.
func newToolCmd(name string, use string, short string) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(app.Options{
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			d, err := a.Dispatcher(name)
			if err != nil {
				return err
			}
			if code := d.Run(cmd.Context(), args); code != 0 {
				return &SilentExitError{Code: code}
			}
			return nil
		},
	}
}
