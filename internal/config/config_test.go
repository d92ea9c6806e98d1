package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFilename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad tests reading a full config file.
func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "src: types\nout: dist\ntarget: 4.1.0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Config{Src: "types", Out: "dist", Target: "4.1.0"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadPartial tests that omitted fields keep their defaults.
func TestLoadPartial(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "src: types\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Src != "types" {
		t.Errorf("Src = %q, want types", cfg.Src)
	}
	if cfg.Out != Default().Out || cfg.Target != Default().Target {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

// TestLoadInvalid tests validation failures.
func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "src: [unclosed\n"},
		{"bad target", "target: not-a-version\n"},
		{"empty src", "src: ''\n"},
		{"empty out", "out: ''\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%q) unexpectedly succeeded", tt.content)
			}
		})
	}
}

// TestLoadDir tests the directory lookup with and without a config file.
func TestLoadDir(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadDir(t.TempDir())
		if err != nil {
			t.Fatalf("LoadDir failed: %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file present", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "out: build\n")

		cfg, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir failed: %v", err)
		}
		if cfg.Out != "build" {
			t.Errorf("Out = %q, want build", cfg.Out)
		}
	})
}
