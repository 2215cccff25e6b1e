package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ExplicitPath(t *testing.T) {
	d, err := New("/tmp/custom-vclens")
	if err != nil {
		t.Fatal(err)
	}
	if d.Path() != "/tmp/custom-vclens" {
		t.Errorf("Path() = %q", d.Path())
	}
	if d.UploadsPath() != "/tmp/custom-vclens/uploads" {
		t.Errorf("UploadsPath() = %q", d.UploadsPath())
	}
	if d.ConfigPath() != "/tmp/custom-vclens/config.yaml" {
		t.Errorf("ConfigPath() = %q", d.ConfigPath())
	}
}

func TestNew_DefaultPath(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if d.Path() != filepath.Join(home, DefaultDirName) {
		t.Errorf("Path() = %q", d.Path())
	}
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "home")
	d, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	if d.Exists() {
		t.Error("Exists() = true before creation")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists: %v", err)
	}
	if !d.Exists() {
		t.Error("Exists() = false after creation")
	}
	if fi, err := os.Stat(d.UploadsPath()); err != nil || !fi.IsDir() {
		t.Errorf("uploads dir not created: %v", err)
	}

	// Idempotent.
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("second EnsureExists: %v", err)
	}
}

func TestConfigExists(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if d.ConfigExists() {
		t.Error("ConfigExists() = true with no config file")
	}
	if err := os.WriteFile(d.ConfigPath(), []byte("server:\n  port: 8000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !d.ConfigExists() {
		t.Error("ConfigExists() = false after writing config")
	}
}
