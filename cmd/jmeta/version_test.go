package main

import (
	"bytes"
	"testing"
)

func TestVersionCmdPrintsVersion(t *testing.T) {
	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE() error = %v", err)
	}
	if got := buf.String(); got != version+"\n" {
		t.Errorf("output = %q, want %q", got, version+"\n")
	}
}
