package snapshot_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"go.trai.ch/rig/internal/adapters/snapshot"
	"go.trai.ch/rig/internal/core/domain"
)

const mainIndex = `Package: clang
Architecture: amd64
Version: 1:18.0-59~exp2
Filename: pool/main/l/llvm-defaults/clang_18.0-59~exp2_amd64.deb
Size: 6158
SHA256: 1b3a
Description: C, C++ and Objective-C compiler (LLVM based)
 Clang project is a C, C++, Objective C and Objective C++ front-end
 .
 for the LLVM compiler.

Package: gcc-aarch64-linux-gnu
Architecture: amd64
Version: 4:13.2.0-7ubuntu1
Filename: pool/main/g/gcc-defaults/gcc-aarch64-linux-gnu_13.2.0-7ubuntu1_amd64.deb
Size: 1234

Package: gcc-aarch64-linux-gnu
Architecture: amd64
Version: 4:13.2.0-7
Size: 1200
`

const universeIndex = `Package: clang
Architecture: amd64
Version: 1:18.0-59~exp1
`

func xzBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func gzBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

type mirror struct {
	srv      *httptest.Server
	requests atomic.Int32
	modified time.Time
	files    map[string][]byte
}

func newMirror(t *testing.T, pin domain.SnapshotPin) *mirror {
	t.Helper()
	m := &mirror{modified: pin.Time.Add(-time.Hour)}
	m.files = map[string][]byte{
		"/" + pin.String() + "/dists/noble/main/binary-amd64/Packages.xz":     xzBytes(t, mainIndex),
		"/" + pin.String() + "/dists/noble/universe/binary-amd64/Packages.gz": gzBytes(t, universeIndex),
	}
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requests.Add(1)
		data, ok := m.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Last-Modified", m.modified.UTC().Format(http.TimeFormat))
		_, _ = w.Write(data)
	}))
	t.Cleanup(m.srv.Close)
	return m
}

func (m *mirror) settings() snapshot.Settings {
	return snapshot.Settings{
		Mirror:     m.srv.URL,
		Suites:     snapshot.Pockets("noble"),
		Arch:       "amd64",
		Components: []string{"main", "universe"},
	}
}

func mustPin(t *testing.T, id string) domain.SnapshotPin {
	t.Helper()
	pin, err := domain.ParseSnapshot(id)
	require.NoError(t, err)
	return pin
}

func TestIndex_QueryPackage(t *testing.T) {
	pin := mustPin(t, "20250314T093005Z")
	m := newMirror(t, pin)

	index, err := snapshot.NewIndexWithClient(m.settings(), t.TempDir(), m.srv.Client())
	require.NoError(t, err)

	meta, err := index.QueryPackage(context.Background(), "clang", pin)
	require.NoError(t, err)
	assert.Equal(t, "1:18.0-59~exp2", meta.Version)
	assert.Equal(t, "main", meta.Component)
	assert.Equal(t, int64(6158), meta.Size)
	assert.True(t, pin.Allows(meta.Published))

	meta, err = index.QueryPackage(context.Background(), "gcc-aarch64-linux-gnu", pin)
	require.NoError(t, err)
	assert.Equal(t, "4:13.2.0-7ubuntu1", meta.Version)
}

func TestIndex_QueryPackage_UpdatesPocketWins(t *testing.T) {
	pin := mustPin(t, "20250314T093005Z")
	m := newMirror(t, pin)
	m.files["/"+pin.String()+"/dists/noble-updates/main/binary-amd64/Packages.gz"] = gzBytes(t, `Package: clang
Architecture: amd64
Version: 1:18.0-59~exp2ubuntu0.1
Filename: pool/main/l/llvm-defaults/clang_18.0-59~exp2ubuntu0.1_amd64.deb
Size: 6160
`)
	m.files["/"+pin.String()+"/dists/noble-security/main/binary-amd64/Packages.xz"] = xzBytes(t, `Package: clang
Architecture: amd64
Version: 1:18.0-59~exp1ubuntu0.2
`)

	index, err := snapshot.NewIndexWithClient(m.settings(), t.TempDir(), m.srv.Client())
	require.NoError(t, err)

	meta, err := index.QueryPackage(context.Background(), "clang", pin)
	require.NoError(t, err)
	assert.Equal(t, "1:18.0-59~exp2ubuntu0.1", meta.Version)
	assert.Equal(t, "noble-updates", meta.Suite)
	assert.Equal(t, "main", meta.Component)
	assert.Equal(t, int64(6160), meta.Size)

	// Packages only in the release pocket are still found.
	meta, err = index.QueryPackage(context.Background(), "gcc-aarch64-linux-gnu", pin)
	require.NoError(t, err)
	assert.Equal(t, "noble", meta.Suite)
}

func TestIndex_QueryPackage_CachedWithoutNetwork(t *testing.T) {
	pin := mustPin(t, "20250314T093005Z")
	m := newMirror(t, pin)
	cacheDir := t.TempDir()

	index, err := snapshot.NewIndexWithClient(m.settings(), cacheDir, m.srv.Client())
	require.NoError(t, err)
	first, err := index.QueryPackage(context.Background(), "clang", pin)
	require.NoError(t, err)

	settings := m.settings()
	m.srv.Close()

	// A fresh index over the same cache must answer without touching the network.
	offline, err := snapshot.NewIndexWithClient(settings, cacheDir, http.DefaultClient)
	require.NoError(t, err)
	second, err := offline.QueryPackage(context.Background(), "clang", pin)
	require.NoError(t, err)

	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.SHA256, second.SHA256)
	assert.True(t, first.Published.Equal(second.Published))
}

func TestIndex_QueryPackage_ComponentIndexFetchedOnce(t *testing.T) {
	pin := mustPin(t, "20250314T093005Z")
	m := newMirror(t, pin)

	index, err := snapshot.NewIndexWithClient(m.settings(), t.TempDir(), m.srv.Client())
	require.NoError(t, err)

	_, err = index.QueryPackage(context.Background(), "clang", pin)
	require.NoError(t, err)
	after := m.requests.Load()

	_, err = index.QueryPackage(context.Background(), "gcc-aarch64-linux-gnu", pin)
	require.NoError(t, err)
	assert.Equal(t, after, m.requests.Load())
}

func TestIndex_QueryPackage_NotFound(t *testing.T) {
	pin := mustPin(t, "20250314T093005Z")
	m := newMirror(t, pin)

	index, err := snapshot.NewIndexWithClient(m.settings(), t.TempDir(), m.srv.Client())
	require.NoError(t, err)

	_, err = index.QueryPackage(context.Background(), "does-not-exist", pin)
	assert.True(t, errors.Is(err, domain.ErrPackageNotFound))
}

func TestIndex_QueryPackage_UnknownSnapshot(t *testing.T) {
	pin := mustPin(t, "20250314T093005Z")
	m := newMirror(t, pin)

	index, err := snapshot.NewIndexWithClient(m.settings(), t.TempDir(), m.srv.Client())
	require.NoError(t, err)

	_, err = index.QueryPackage(context.Background(), "clang", mustPin(t, "20200101T000000Z"))
	assert.True(t, errors.Is(err, domain.ErrIndexRequestFailed))
}

func TestIndex_CacheKeyedBySnapshot(t *testing.T) {
	pin := mustPin(t, "20250314T093005Z")
	m := newMirror(t, pin)
	cacheDir := t.TempDir()

	index, err := snapshot.NewIndexWithClient(m.settings(), cacheDir, m.srv.Client())
	require.NoError(t, err)
	_, err = index.QueryPackage(context.Background(), "clang", pin)
	require.NoError(t, err)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))

	data, err := os.ReadFile(filepath.Join(cacheDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"as_of": "20250314T093005Z"`)
}

func TestHostSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte("NAME=\"Ubuntu\"\nVERSION_CODENAME=\"jammy\"\n"), 0o600))
	assert.Equal(t, "jammy", snapshot.HostSuite(path))
	assert.Equal(t, "noble", snapshot.HostSuite(filepath.Join(t.TempDir(), "missing")))
}
