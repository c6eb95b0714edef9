package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBase is the directory under which all package archives and install
// directories live, unless overridden by configuration or --base.
const DefaultBase = "./packages"

// DefaultHost is the registry host packages are downloaded from.
const DefaultHost = "https://aokege.github.io/zhucechu"

// A Store maps package names to their on-disk locations beneath a base
// directory. A package is considered installed exactly when its install
// directory exists; no manifest is kept.
type Store struct {
	Base string
}

// ValidPackageName reports whether name is usable as a package name. Names
// are single path elements; anything containing a separator or dot-segment
// could escape the base directory and is rejected.
func ValidPackageName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	return true
}

// InstallDir returns the directory a package is extracted into.
func (s *Store) InstallDir(pkg string) string {
	return filepath.Join(s.Base, pkg)
}

// ArchivePath returns the location of a downloaded archive file.
func (s *Store) ArchivePath(file string) string {
	return filepath.Join(s.Base, file)
}

// ArchiveName returns the archive file name for a package: the explicit
// override if one was given, and <package>.zip otherwise.
func ArchiveName(pkg, override string) string {
	if override != "" {
		return override
	}
	return pkg + ".zip"
}

// EnsureBase creates the base directory if it is missing.
func (s *Store) EnsureBase() error {
	return os.MkdirAll(s.Base, 0755)
}

// Installed reports whether the package's install directory exists.
func (s *Store) Installed(pkg string) bool {
	return IsDirectory(s.InstallDir(pkg))
}

// Remove deletes a package's install directory. The returned bool reports
// whether the package was installed at all; removing an absent package is a
// normal outcome, not an error, and mutates nothing.
func (s *Store) Remove(pkg string) (bool, error) {
	if !ValidPackageName(pkg) {
		return false, fmt.Errorf("invalid package name: %s", pkg)
	}
	dir := s.InstallDir(pkg)
	if !IsDirectory(dir) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return true, fmt.Errorf("remove %s: %w", pkg, err)
	}
	return true, nil
}
