// Package main is the entry point for the taskpro CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/runoshun/taskpro/internal/app"
	"github.com/runoshun/taskpro/internal/cli"
	"github.com/runoshun/taskpro/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// Exit codes.
const (
	exitSuccess      = 0
	exitUserError    = 1 // bad arguments, unknown task, validation
	exitConfigError  = 2 // unusable configuration
	exitBackendError = 3 // the task store call failed
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := cli.Execute(ctx, app.New, version, args, stdout, stderr)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
	}
	return exitCode(err)
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, domain.ErrOperationFailed):
		return exitBackendError
	case errors.Is(err, domain.ErrNoBaseURL),
		errors.Is(err, domain.ErrInvalidBaseURL),
		errors.Is(err, domain.ErrConfigExists),
		errors.Is(err, os.ErrNotExist):
		return exitConfigError
	default:
		return exitUserError
	}
}
