package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// A PathTraversalError is returned when an archive entry would be written
// outside the extraction root. The whole extraction is aborted; entries are
// never skipped individually.
type PathTraversalError struct {
	Name string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("illegal path in archive: %s", e.Name)
}

// A Chooser decides whether an archive entry should be materialized.
type Chooser interface {
	Choose(name string) bool
}

// AllChooser admits every entry.
type AllChooser struct{}

func (AllChooser) Choose(name string) bool {
	return true
}

// A GlobChooser admits entries whose slash path matches the glob pattern.
type GlobChooser struct {
	g    glob.Glob
	expr string
}

func NewGlobChooser(gl string) (*GlobChooser, error) {
	g, err := glob.Compile(gl, '/')
	if err != nil {
		return nil, err
	}
	return &GlobChooser{
		g:    g,
		expr: gl,
	}, nil
}

func (gc *GlobChooser) Choose(name string) bool {
	return gc.g.Match(strings.Trim(name, "/"))
}

func (gc *GlobChooser) String() string {
	return gc.expr
}

// safeJoin joins an untrusted archive entry name onto root and verifies that
// the cleaned result is still inside root. Absolute entry names and names
// that escape via '..' are rejected.
func safeJoin(root, name string) (string, error) {
	if filepath.IsAbs(name) || filepath.IsAbs(filepath.FromSlash(name)) {
		return "", &PathTraversalError{Name: name}
	}
	out := filepath.Join(root, filepath.FromSlash(name))
	if out != filepath.Clean(root) && !strings.HasPrefix(out, filepath.Clean(root)+string(filepath.Separator)) {
		return "", &PathTraversalError{Name: name}
	}
	return out, nil
}

// materialize writes every entry chosen from 'ar' beneath 'root'. Parent
// directories are created unconditionally for file entries; malformed
// archives may list a file before the directory that contains it.
func materialize(root string, ar Archive, choose Chooser) error {
	for {
		f, err := ar.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		outpath, err := safeJoin(root, f.Name)
		if err != nil {
			return err
		}

		if f.Dir {
			if err := os.MkdirAll(outpath, dirMode(f.Mode)); err != nil {
				return fmt.Errorf("extract %s: %w", f.Name, err)
			}
			continue
		}

		if !choose.Choose(f.Name) {
			continue
		}

		data, err := ar.ReadAll()
		if err != nil {
			return err
		}
		if err := writeFile(data, outpath, fileMode(f.Mode)); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
}

// ExtractArchive materializes the archive in 'data' into the directory
// 'dst'. The extraction is staged in a temporary sibling directory and
// renamed over 'dst' only once every entry has been written, so a failure
// part-way through never leaves a half-extracted tree under the final name.
func ExtractArchive(data []byte, filename, dst string, choose Chooser) error {
	ar, err := NewArchive(filename, data)
	if err != nil {
		return err
	}

	parent := filepath.Dir(dst)
	tmp, err := os.MkdirTemp(parent, "."+filepath.Base(dst)+"-")
	if err != nil {
		return err
	}

	if err := materialize(tmp, ar, choose); err != nil {
		os.RemoveAll(tmp)
		return err
	}

	if err := os.RemoveAll(dst); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	return nil
}

// Write an extracted file to disk, creating parent directories as needed.
func writeFile(data []byte, path string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}

// Some archives store entries with no permission bits at all; fall back to
// sane defaults so the extracted tree remains usable.
func fileMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return 0644
	}
	return mode.Perm()
}

func dirMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return 0755
	}
	return mode.Perm() | 0700
}

// IsTraversal reports whether err is a path traversal rejection.
func IsTraversal(err error) bool {
	var pe *PathTraversalError
	return errors.As(err, &pe)
}
