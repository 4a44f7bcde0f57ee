// Package snapshot implements the PackageIndex port against a time-travel
// package mirror with a local cache.
package snapshot

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	iofs "io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ulikunitz/xz"
	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/build"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

// Settings select the package universe an Index reads.
// Every suite is searched and the highest version wins.
type Settings struct {
	Mirror     string
	Suites     []string
	Arch       string
	Components []string
}

// Pockets returns the release, updates and security suites of a codename.
func Pockets(codename string) []string {
	return []string{codename, codename + "-updates", codename + "-security"}
}

// DefaultSettings returns settings for the host distribution.
// The mirror can be overridden with RIG_SNAPSHOT_MIRROR.
func DefaultSettings() Settings {
	mirror := os.Getenv(domain.EnvSnapshotMirror)
	if mirror == "" {
		mirror = domain.SnapshotMirror
	}
	return Settings{
		Mirror:     mirror,
		Suites:     Pockets(hostSuite("/etc/os-release")),
		Arch:       runtime.GOARCH,
		Components: []string{"main", "universe"},
	}
}

// Index implements ports.PackageIndex.
// Results for a fixed asOf are cached on disk and never refreshed.
type Index struct {
	settings   Settings
	cacheDir   string
	httpClient *http.Client

	mu     sync.Mutex
	// nil entries mark indexes the mirror does not carry.
	loaded map[string]map[string]domain.PackageMetadata
}

// NewIndex creates an Index caching into the default package cache directory.
func NewIndex(settings Settings) (*Index, error) {
	return newIndexWithClient(settings, domain.DefaultPackageCachePath(), &http.Client{})
}

// newIndexWithClient creates an Index with a custom http client and cache path (used for testing).
func newIndexWithClient(settings Settings, cacheDir string, client *http.Client) (*Index, error) {
	cleanPath := filepath.Clean(cacheDir)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrIndexCacheWriteFailed, err.Error()), "path", cleanPath)
	}
	return &Index{
		settings:   settings,
		cacheDir:   cleanPath,
		httpClient: client,
		loaded:     make(map[string]map[string]domain.PackageMetadata),
	}, nil
}

// QueryPackage returns the newest version of name in the package universe as of asOf.
func (i *Index) QueryPackage(ctx context.Context, name string, asOf domain.SnapshotPin) (domain.PackageMetadata, error) {
	cachePath := i.getCachePath(name, asOf)
	if meta, err := i.loadFromCache(cachePath); err == nil {
		return meta, nil
	}

	var (
		best   domain.PackageMetadata
		found  bool
		served int
	)
	for _, suite := range i.settings.Suites {
		for _, component := range i.settings.Components {
			packages, err := i.loadComponent(ctx, suite, component, asOf)
			if err != nil {
				return domain.PackageMetadata{}, err
			}
			if packages == nil {
				continue
			}
			served++
			meta, ok := packages[name]
			if !ok {
				continue
			}
			if !found || CompareVersions(meta.Version, best.Version) > 0 {
				best, found = meta, true
			}
		}
	}

	if served == 0 {
		missingErr := zerr.With(zerr.Wrap(domain.ErrIndexRequestFailed, "no package index on mirror"), "mirror", i.settings.Mirror)
		return domain.PackageMetadata{}, zerr.With(missingErr, "snapshot", asOf.String())
	}
	if !found {
		notFound := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, name), "snapshot", asOf.String())
		return domain.PackageMetadata{}, zerr.With(notFound, "suites", strings.Join(i.settings.Suites, ","))
	}

	if err := i.saveToCache(cachePath, asOf, best); err != nil {
		return domain.PackageMetadata{}, err
	}
	return best, nil
}

func (i *Index) getCachePath(name string, asOf domain.SnapshotPin) string {
	key := fs.Key(i.settings.Mirror, strings.Join(i.settings.Suites, ","), i.settings.Arch, name, asOf.String())
	return filepath.Join(i.cacheDir, key+".json")
}

func (i *Index) loadFromCache(path string) (domain.PackageMetadata, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.PackageMetadata{}, domain.ErrIndexRequestFailed
		}
		return domain.PackageMetadata{}, zerr.Wrap(err, "failed to read index cache")
	}

	var entry domain.PackageIndexEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.PackageMetadata{}, zerr.Wrap(domain.ErrIndexParseFailed, err.Error())
	}
	return entry.Package, nil
}

func (i *Index) saveToCache(path string, asOf domain.SnapshotPin, meta domain.PackageMetadata) error {
	entry := domain.PackageIndexEntry{
		AsOf:     asOf.String(),
		Package:  meta,
		CachedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrIndexCacheWriteFailed, err.Error())
	}
	if err := fs.WriteFileAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIndexCacheWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// loadComponent downloads and parses one component index, once per run.
// It returns nil when the mirror has no such index.
func (i *Index) loadComponent(ctx context.Context, suite, component string, asOf domain.SnapshotPin) (map[string]domain.PackageMetadata, error) {
	key := asOf.String() + "/" + suite + "/" + component

	i.mu.Lock()
	defer i.mu.Unlock()

	if packages, ok := i.loaded[key]; ok {
		return packages, nil
	}

	base := strings.TrimSuffix(i.settings.Mirror, "/") + "/" + asOf.String() +
		"/dists/" + suite + "/" + component + "/binary-" + i.settings.Arch + "/Packages"

	for _, ext := range []string{".xz", ".gz"} {
		packages, missing, err := i.fetchIndex(ctx, base+ext)
		if missing {
			continue
		}
		if err != nil {
			return nil, err
		}
		for name, meta := range packages {
			meta.Suite = suite
			meta.Component = component
			packages[name] = meta
		}
		i.loaded[key] = packages
		return packages, nil
	}

	i.loaded[key] = nil
	return nil, nil
}

// fetchIndex reports missing when the mirror has no index in that compression.
func (i *Index) fetchIndex(ctx context.Context, url string) (packages map[string]domain.PackageMetadata, missing bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(domain.ErrIndexRequestFailed, err.Error()), "url", url)
	}
	req.Header.Set("User-Agent", "rig/"+build.Version)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(domain.ErrIndexRequestFailed, err.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.Wrap(domain.ErrIndexRequestFailed, "unexpected status"), "url", url)
		return nil, false, zerr.With(statusErr, "status_code", resp.StatusCode)
	}

	var body io.Reader
	if strings.HasSuffix(url, ".xz") {
		body, err = xz.NewReader(resp.Body)
	} else {
		body, err = gzip.NewReader(resp.Body)
	}
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(domain.ErrIndexParseFailed, err.Error()), "url", url)
	}

	// The mirror serves the index as it was at the snapshot; its modification
	// time bounds when any listed package was published.
	var published time.Time
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			published = t.UTC()
		}
	}

	packages, err = ParsePackages(body)
	if err != nil {
		return nil, false, zerr.With(err, "url", url)
	}
	for name, meta := range packages {
		meta.Published = published
		packages[name] = meta
	}
	return packages, false, nil
}

// hostSuite reads VERSION_CODENAME from an os-release file.
func hostSuite(path string) string {
	//nolint:gosec // fixed system path
	data, err := os.ReadFile(path)
	if err != nil {
		return "noble"
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "VERSION_CODENAME="); ok {
			if v = strings.Trim(strings.TrimSpace(v), `"`); v != "" {
				return v
			}
		}
	}
	return "noble"
}
