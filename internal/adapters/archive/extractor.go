// Package archive unpacks verified artifacts into their install location.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	zipMagic  = []byte("PK\x03\x04")
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Extractor implements ports.Extractor for zip, tar.gz and tar.xz archives.
// The format is detected from the leading bytes, since fetched files carry no extension.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into dest. Entries that would land outside dest are rejected.
func (e *Extractor) Extract(ctx context.Context, archivePath, dest string) error {
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrExtractFailed, err.Error()), "dest", dest)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrExtractFailed, err.Error()), "archive", archivePath)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	head, _ := br.Peek(len(xzMagic))

	switch {
	case bytes.HasPrefix(head, zipMagic):
		err = e.extractZip(ctx, archivePath, dest)
	case bytes.HasPrefix(head, gzipMagic):
		var gz *gzip.Reader
		gz, err = gzip.NewReader(br)
		if err == nil {
			err = e.extractTar(ctx, gz, dest)
		}
	case bytes.HasPrefix(head, xzMagic):
		var xr *xz.Reader
		xr, err = xz.NewReader(br)
		if err == nil {
			err = e.extractTar(ctx, xr, dest)
		}
	default:
		return zerr.With(zerr.Wrap(domain.ErrExtractFailed, "unknown archive format"), "archive", archivePath)
	}

	if err != nil {
		if errors.Is(err, domain.ErrUnsafeArchivePath) || ctx.Err() != nil {
			return err
		}
		return zerr.With(zerr.Wrap(domain.ErrExtractFailed, err.Error()), "archive", archivePath)
	}
	return nil
}

func (e *Extractor) extractZip(ctx context.Context, archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = zr.Close() }()

	for _, zf := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := entryPath(dest, zf.Name)
		if err != nil {
			return err
		}

		mode := zf.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			rc, err := zf.Open()
			if err != nil {
				return err
			}
			link, err := io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return err
			}
			if err := writeSymlink(dest, target, string(link)); err != nil {
				return err
			}
		default:
			rc, err := zf.Open()
			if err != nil {
				return err
			}
			err = writeFile(target, rc, mode.Perm())
			_ = rc.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Extractor) extractTar(ctx context.Context, r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		// Insecure names are still returned with their header; entryPath rejects them below.
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return err
		}

		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil { //nolint:gosec // mode is masked to permission bits
				return err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return err
			}
		default:
			// Hard links, devices and fifos never appear in toolchain archives.
		}
	}
}

func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !fs.IsWithin(dest, target) {
		return "", zerr.With(zerr.Wrap(domain.ErrUnsafeArchivePath, "refusing to extract"), "entry", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}
	if perm == 0 {
		perm = domain.FilePerm
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil { //nolint:gosec // archives come from digest-verified downloads
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeSymlink(dest, target, link string) error {
	resolved := link
	if !filepath.IsAbs(link) {
		resolved = filepath.Join(filepath.Dir(target), link)
	}
	if !fs.IsWithin(dest, resolved) {
		return zerr.With(zerr.Wrap(domain.ErrUnsafeArchivePath, "symlink escapes destination"), "link", link)
	}
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}
	_ = os.Remove(target)
	return os.Symlink(link, target)
}
