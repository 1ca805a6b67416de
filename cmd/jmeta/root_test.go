package main

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestExitErrorNilIsZero(t *testing.T) {
	if got := exitError(nil); got != 0 {
		t.Errorf("exitError(nil) = %d, want 0", got)
	}
}

func TestExitErrorBrokenPipeIsZero(t *testing.T) {
	wrapped := fmt.Errorf("write stdout: %w", syscall.EPIPE)
	if got := exitError(wrapped); got != 0 {
		t.Errorf("exitError(brokenPipe) = %d, want 0", got)
	}
}

func TestExitErrorOtherIsOne(t *testing.T) {
	if got := exitError(errors.New("boom")); got != 1 {
		t.Errorf("exitError(err) = %d, want 1", got)
	}
}

func TestNewRootCmdRegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	want := map[string]bool{"fetch": true, "export": true, "version": true}
	for _, c := range cmd.Commands() {
		delete(want, c.Name())
	}
	if len(want) != 0 {
		t.Errorf("missing subcommands: %v", want)
	}
}
