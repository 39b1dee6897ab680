//go:build tools
// +build tools

// Package devtools pins the versions of the test runner and linter used by CI.
package devtools

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "gotest.tools/gotestsum"
)
