package snapshot

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
	"pault.ag/go/debian/control"
)

// ParsePackages reads a Packages index and keeps the highest version of each package.
func ParsePackages(r io.Reader) (map[string]domain.PackageMetadata, error) {
	reader, err := control.NewParagraphReader(bufio.NewReader(r), nil)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrIndexParseFailed, err.Error())
	}

	packages := make(map[string]domain.PackageMetadata)
	for {
		para, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, zerr.Wrap(domain.ErrIndexParseFailed, err.Error())
		}

		name := para.Values["Package"]
		if name == "" {
			return nil, zerr.Wrap(domain.ErrIndexParseFailed, "stanza without Package field")
		}
		meta := domain.PackageMetadata{
			Name:         name,
			Version:      para.Values["Version"],
			Architecture: para.Values["Architecture"],
			Filename:     para.Values["Filename"],
			SHA256:       para.Values["SHA256"],
		}
		if size := para.Values["Size"]; size != "" {
			n, err := strconv.ParseInt(size, 10, 64)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrIndexParseFailed, "invalid Size"), "package", name)
			}
			meta.Size = n
		}
		if prev, ok := packages[name]; ok && CompareVersions(prev.Version, meta.Version) >= 0 {
			continue
		}
		packages[name] = meta
	}
	return packages, nil
}
