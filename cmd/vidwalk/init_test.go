package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vidwalk/vidwalk/internal/config"
)

// runInit executes the init command with the given args and returns its
// combined output.
func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestInitCmd covers file creation, the overwrite guard, and forcing.
func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates a loadable configuration file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if _, err := runInit(t, "-o", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected the file to exist: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("expected mode 0600 (the file holds an API key), got %o", perm)
		}

		// The generated template must parse and carry the documented defaults.
		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("generated template does not load: %v", err)
		}
		if cfg.MaxDepth != config.DefaultMaxDepth {
			t.Errorf("expected template MaxDepth %d, got %d", config.DefaultMaxDepth, cfg.MaxDepth)
		}
		if cfg.MaxRetries != config.DefaultMaxRetries {
			t.Errorf("expected template MaxRetries %d, got %d", config.DefaultMaxRetries, cfg.MaxRetries)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if err := os.WriteFile(path, []byte("api_key: existing"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := runInit(t, "-o", path); err == nil {
			t.Error("expected an error for an existing file")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "api_key: existing" {
			t.Error("existing file must not be touched without -f")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if err := os.WriteFile(path, []byte("api_key: existing"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := runInit(t, "-o", path, "-f"); err != nil {
			t.Fatalf("expected no error with -f, got %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) == "api_key: existing" {
			t.Error("expected the file to be replaced with the template")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", config.DefaultConfigFile)
		if _, err := runInit(t, "-o", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected the file under nested directories: %v", err)
		}
	})
}
