package main

import "testing"

func TestNewExportCmdRegistersAxisSubcommands(t *testing.T) {
	cmd := newExportCmd()
	want := map[string]bool{"release-type": true, "vendor": true}
	for _, c := range cmd.Commands() {
		delete(want, c.Name())
	}
	if len(want) != 0 {
		t.Errorf("missing export subcommands: %v", want)
	}
}
