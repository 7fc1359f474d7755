package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/runoshun/taskpro/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want int
	}{
		{name: "success", err: nil, want: exitSuccess},
		{name: "store failure", err: &domain.OperationError{Op: domain.OpList, Err: errors.New("timeout")}, want: exitBackendError},
		{name: "wrapped store failure", err: fmt.Errorf("Impossible: %w", &domain.OperationError{Op: domain.OpDelete}), want: exitBackendError},
		{name: "no base URL", err: domain.ErrNoBaseURL, want: exitConfigError},
		{name: "invalid base URL", err: fmt.Errorf("resolve: %w", domain.ErrInvalidBaseURL), want: exitConfigError},
		{name: "missing config file", err: fmt.Errorf("load config: %w", os.ErrNotExist), want: exitConfigError},
		{name: "config exists", err: domain.ErrConfigExists, want: exitConfigError},
		{name: "validation", err: domain.ErrEmptyTitle, want: exitUserError},
		{name: "not found", err: domain.ErrTaskNotFound, want: exitUserError},
		{name: "unknown", err: errors.New("unknown flag"), want: exitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--version"}, &stdout, &stderr)

	if code != exitSuccess {
		t.Fatalf("run --version = %d, want %d (stderr: %s)", code, exitSuccess, stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte(version)) {
		t.Fatalf("version output %q does not contain %q", stdout.String(), version)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"frobnicate"}, &stdout, &stderr)

	if code != exitUserError {
		t.Fatalf("run frobnicate = %d, want %d", code, exitUserError)
	}
	if stderr.Len() == 0 {
		t.Fatal("expected an error message on stderr")
	}
}
