package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewRootCmd verifies the command tree shape.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "vidwalk" {
		t.Errorf("expected Use 'vidwalk', got '%s'", cmd.Use)
	}

	want := map[string]bool{"crawl": false, "init": false, "history": false, "version": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand '%s' to be registered", name)
		}
	}

	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("expected a persistent verbose flag")
	}
}

// TestRootCmdHelp verifies help output renders without error.
func TestRootCmdHelp(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "related-video") {
		t.Errorf("expected help to describe the crawl, got:\n%s", out.String())
	}
}

// TestRootCmdUnknownCommand verifies unknown subcommands fail.
func TestRootCmdUnknownCommand(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"does-not-exist"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unknown subcommand")
	}
}
