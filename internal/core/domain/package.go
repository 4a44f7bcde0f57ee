package domain

import "time"

// PackageMetadata is a package as seen in a pinned package universe.
type PackageMetadata struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Architecture string    `json:"architecture,omitzero"`
	Filename     string    `json:"filename,omitzero"`
	SHA256       string    `json:"sha256,omitzero"`
	Size         int64     `json:"size,omitzero"`
	Suite        string    `json:"suite,omitzero"`
	Component    string    `json:"component,omitzero"`
	Published    time.Time `json:"published,omitzero"`
}

// PackageIndexEntry is the cached result of one index query.
type PackageIndexEntry struct {
	AsOf     string          `json:"as_of"`
	Package  PackageMetadata `json:"package"`
	CachedAt time.Time       `json:"cached_at"`
}
