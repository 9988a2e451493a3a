// CLASSIFICATION: COMMUNITY
// Filename: cli_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package tooling

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestVersionCommand(t *testing.T) {
	root := NewRoot("isoserve", "test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, want := out.String(), "isoserve "+Version+"\n"; got != want {
		t.Fatalf("version output %q, want %q", got, want)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	root := NewRoot("isoserve", "test")
	root.RunE = nil
	root.Run = func(cmd *cobra.Command, args []string) {}
	root.SetArgs([]string{"stray"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}
