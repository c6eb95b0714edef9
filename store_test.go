package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStorePaths(t *testing.T) {
	s := &Store{Base: "packages"}
	if got := s.InstallDir("demo"); got != filepath.Join("packages", "demo") {
		t.Errorf("InstallDir: got %q", got)
	}
	if got := s.ArchivePath("demo.zip"); got != filepath.Join("packages", "demo.zip") {
		t.Errorf("ArchivePath: got %q", got)
	}
}

func TestArchiveName(t *testing.T) {
	if got := ArchiveName("demo", ""); got != "demo.zip" {
		t.Errorf("default archive name: got %q", got)
	}
	if got := ArchiveName("demo", "demo-full.zip"); got != "demo-full.zip" {
		t.Errorf("override archive name: got %q", got)
	}
}

func TestValidPackageName(t *testing.T) {
	for _, name := range []string{"demo", "my-pkg", "pkg_1", "包"} {
		if !ValidPackageName(name) {
			t.Errorf("%q should be valid", name)
		}
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../demo"} {
		if ValidPackageName(name) {
			t.Errorf("%q should be rejected", name)
		}
	}
}

func TestEnsureBase(t *testing.T) {
	s := &Store{Base: filepath.Join(t.TempDir(), "packages", "nested")}
	if err := s.EnsureBase(); err != nil {
		t.Fatal(err)
	}
	if !IsDirectory(s.Base) {
		t.Fatal("base directory was not created")
	}
	// idempotent
	if err := s.EnsureBase(); err != nil {
		t.Fatal(err)
	}
}

func TestRemoveNotFound(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	found, err := s.Remove("demo")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("remove of an absent package reported found")
	}
	ents, err := os.ReadDir(s.Base)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 0 {
		t.Fatal("remove of an absent package mutated the base directory")
	}
}

func TestRemove(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	dir := s.InstallDir("demo")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := s.Remove("demo")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("remove of an installed package reported not found")
	}
	if IsLocalFile(dir) {
		t.Fatal("install directory still exists after remove")
	}

	found, err = s.Remove("demo")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("second remove reported found")
	}
}

func TestRemoveInvalidName(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	if _, err := s.Remove("../demo"); err == nil {
		t.Fatal("expected an error for a package name with a dot-segment")
	}
}

func TestInstalled(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	if s.Installed("demo") {
		t.Fatal("absent package reported installed")
	}
	if err := os.MkdirAll(s.InstallDir("demo"), 0755); err != nil {
		t.Fatal(err)
	}
	if !s.Installed("demo") {
		t.Fatal("present package reported not installed")
	}
}
