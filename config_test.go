package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aokege.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitializeConfigDefaults(t *testing.T) {
	t.Setenv("AOKEGE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	config, err := InitializeConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Global.BaseDir != DefaultBase {
		t.Errorf("base_dir: got %q", config.Global.BaseDir)
	}
	if config.Global.Host != DefaultHost {
		t.Errorf("host: got %q", config.Global.Host)
	}
}

func TestInitializeConfig(t *testing.T) {
	path := writeConfig(t, `
[global]
base_dir = "/srv/aokege"
quiet = true

[packages.demo]
file = "demo-full.zip"

[packages.other]
host = "https://mirror.example.com"
`)
	t.Setenv("AOKEGE_CONFIG", path)

	config, err := InitializeConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Global.BaseDir != "/srv/aokege" {
		t.Errorf("base_dir: got %q", config.Global.BaseDir)
	}
	if !config.Global.Quiet {
		t.Error("quiet should be set")
	}
	// host not set in the file falls back to the default
	if config.Global.Host != DefaultHost {
		t.Errorf("host: got %q", config.Global.Host)
	}
	if config.Packages["demo"].File != "demo-full.zip" {
		t.Errorf("demo file: got %q", config.Packages["demo"].File)
	}
	// per-package host inherits the global one unless overridden
	if config.Packages["demo"].Host != DefaultHost {
		t.Errorf("demo host: got %q", config.Packages["demo"].Host)
	}
	if config.Packages["other"].Host != "https://mirror.example.com" {
		t.Errorf("other host: got %q", config.Packages["other"].Host)
	}
	// per-package quiet inherits the global one
	if !config.Packages["demo"].Quiet {
		t.Error("demo quiet should inherit the global setting")
	}
}

func TestSetOptionsFromConfig(t *testing.T) {
	path := writeConfig(t, `
[global]
base_dir = "/srv/aokege"
host = "https://registry.example.com"

[packages.demo]
file = "demo-full.zip"
host = "https://mirror.example.com"
`)
	t.Setenv("AOKEGE_CONFIG", path)

	config, err := InitializeConfig()
	if err != nil {
		t.Fatal(err)
	}

	var o Flags
	if err := SetOptionsFromConfig(config, &o, CliFlags{}, "demo"); err != nil {
		t.Fatal(err)
	}
	if o.Base != "/srv/aokege" {
		t.Errorf("base: got %q", o.Base)
	}
	if o.Host != "https://mirror.example.com" {
		t.Errorf("host: got %q", o.Host)
	}
	if o.File != "demo-full.zip" {
		t.Errorf("file: got %q", o.File)
	}

	// a package without a section only sees the global values
	o = Flags{}
	if err := SetOptionsFromConfig(config, &o, CliFlags{}, "unrelated"); err != nil {
		t.Fatal(err)
	}
	if o.Host != "https://registry.example.com" {
		t.Errorf("host: got %q", o.Host)
	}
	if o.File != "" {
		t.Errorf("file: got %q", o.File)
	}

	// explicit command-line flags win over everything
	o = Flags{}
	base := "/tmp/elsewhere"
	file := "cli.zip"
	cli := CliFlags{Base: &base, File: &file}
	if err := SetOptionsFromConfig(config, &o, cli, "demo"); err != nil {
		t.Fatal(err)
	}
	if o.Base != "/tmp/elsewhere" {
		t.Errorf("base: got %q", o.Base)
	}
	if o.File != "cli.zip" {
		t.Errorf("file: got %q", o.File)
	}
}
