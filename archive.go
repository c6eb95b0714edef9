package main

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// A File is a single entry read from an archive. Name is the slash-separated
// path stored in the archive and is untrusted input.
type File struct {
	Name string
	Mode fs.FileMode
	Dir  bool
}

// An Archive iterates over the entries of an archive container. Next advances
// to the next entry and returns io.EOF when the archive is exhausted; ReadAll
// returns the decompressed content of the current entry.
type Archive interface {
	Next() (File, error)
	ReadAll() ([]byte, error)
}

// A DecompFn wraps a reader with a decompressor.
type DecompFn func(r io.Reader) (io.Reader, error)

// NewArchive opens the archive contained in 'data', choosing the container
// and decompressor from the suffix of 'filename'. Zip archives carry their
// own compression; tar archives may be additionally compressed with gzip,
// bzip2, xz, or zstd.
func NewArchive(filename string, data []byte) (Archive, error) {
	gunzipper := func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	}
	b2unzipper := func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r), nil
	}
	xunzipper := func(r io.Reader) (io.Reader, error) {
		return xz.NewReader(r)
	}
	zstdunzipper := func(r io.Reader) (io.Reader, error) {
		return zstd.NewReader(r)
	}
	nounzipper := func(r io.Reader) (io.Reader, error) {
		return r, nil
	}

	switch {
	case strings.HasSuffix(filename, ".zip"):
		return NewZipArchive(data)
	case strings.HasSuffix(filename, ".tar.gz"), strings.HasSuffix(filename, ".tgz"):
		return NewTarArchive(data, gunzipper)
	case strings.HasSuffix(filename, ".tar.bz2"), strings.HasSuffix(filename, ".tbz"):
		return NewTarArchive(data, b2unzipper)
	case strings.HasSuffix(filename, ".tar.xz"), strings.HasSuffix(filename, ".txz"):
		return NewTarArchive(data, xunzipper)
	case strings.HasSuffix(filename, ".tar.zst"):
		return NewTarArchive(data, zstdunzipper)
	case strings.HasSuffix(filename, ".tar"):
		return NewTarArchive(data, nounzipper)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filename)
	}
}

type TarArchive struct {
	r *tar.Reader
}

func NewTarArchive(data []byte, decompress DecompFn) (Archive, error) {
	r := bytes.NewReader(data)
	dr, err := decompress(r)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &TarArchive{
		r: tar.NewReader(dr),
	}, nil
}

func (t *TarArchive) Next() (File, error) {
	for {
		hdr, err := t.r.Next()
		if err == io.EOF {
			return File{}, io.EOF
		}
		if err != nil {
			return File{}, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg || hdr.Typeflag == tar.TypeDir {
			return File{
				Name: hdr.Name,
				Mode: fs.FileMode(hdr.Mode),
				Dir:  hdr.Typeflag == tar.TypeDir,
			}, nil
		}
	}
}

func (t *TarArchive) ReadAll() ([]byte, error) {
	b, err := io.ReadAll(t.r)
	if err != nil {
		return nil, fmt.Errorf("read archive entry: %w", err)
	}
	return b, nil
}

type ZipArchive struct {
	r   *zip.Reader
	idx int
}

// No decompressor is involved for a zip archive because the container has
// built-in per-entry compression.
func NewZipArchive(data []byte) (Archive, error) {
	r := bytes.NewReader(data)
	zr, err := zip.NewReader(r, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &ZipArchive{
		r:   zr,
		idx: -1,
	}, nil
}

func (z *ZipArchive) Next() (File, error) {
	z.idx++

	if z.idx < 0 || z.idx >= len(z.r.File) {
		return File{}, io.EOF
	}

	f := z.r.File[z.idx]

	return File{
		Name: f.Name,
		Mode: f.Mode(),
		Dir:  f.Mode().IsDir() || strings.HasSuffix(f.Name, "/"),
	}, nil
}

func (z *ZipArchive) ReadAll() ([]byte, error) {
	if z.idx < 0 || z.idx >= len(z.r.File) {
		return nil, io.EOF
	}
	f := z.r.File[z.idx]
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("read archive entry: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read archive entry: %w", err)
	}
	return data, nil
}
