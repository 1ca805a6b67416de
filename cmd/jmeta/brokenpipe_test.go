package main

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestIsBrokenPipeDetectsEPIPE(t *testing.T) {
	wrapped := fmt.Errorf("write stdout: %w", syscall.EPIPE)
	if !isBrokenPipe(wrapped) {
		t.Error("expected wrapped EPIPE to be detected")
	}
}

func TestIsBrokenPipeOtherErrorsAreNot(t *testing.T) {
	if isBrokenPipe(errors.New("some other failure")) {
		t.Error("expected an unrelated error to not be treated as broken pipe")
	}
}
