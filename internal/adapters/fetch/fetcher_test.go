package fetch_test

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/fetch"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const payload = "android command line tools"

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sdk.zip":
			_, _ = w.Write([]byte(payload))
		case "/sdk.zip.asc":
			_, _ = w.Write([]byte("signature"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	f := fetch.NewFetcherWithClient(srv.Client(), nil, dir)

	path, err := f.Fetch(context.Background(), domain.Artifact{
		Name:   "android-sdk",
		URL:    srv.URL + "/sdk.zip",
		Digest: strings.ToUpper(sha256Hex(payload)),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestFetcher_Fetch_SHA512(t *testing.T) {
	srv := newServer(t)
	f := fetch.NewFetcherWithClient(srv.Client(), nil, t.TempDir())

	sum := sha512.Sum512([]byte(payload))
	_, err := f.Fetch(context.Background(), domain.Artifact{
		Name:      "android-sdk",
		URL:       srv.URL + "/sdk.zip",
		Digest:    hex.EncodeToString(sum[:]),
		Algorithm: domain.SHA512,
	})
	require.NoError(t, err)
}

func TestFetcher_Fetch_DigestMismatch(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	f := fetch.NewFetcherWithClient(srv.Client(), nil, dir)

	wrong := strings.Repeat("0", 64)
	path, err := f.Fetch(context.Background(), domain.Artifact{
		Name:   "android-sdk",
		URL:    srv.URL + "/sdk.zip",
		Digest: wrong,
	})
	require.Error(t, err)
	assert.Empty(t, path)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, wrong, zErr.Metadata()["expected"])
	assert.Equal(t, sha256Hex(payload), zErr.Metadata()["actual"])

	assert.Zero(t, dirEntries(t, dir), "mismatched download must not be left behind")
}

func TestFetcher_Fetch_EmptyDigestFailsClosed(t *testing.T) {
	srv := newServer(t)
	f := fetch.NewFetcherWithClient(srv.Client(), nil, t.TempDir())

	_, err := f.Fetch(context.Background(), domain.Artifact{Name: "android-sdk", URL: srv.URL + "/sdk.zip"})
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
}

func TestFetcher_Fetch_NotFound(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	f := fetch.NewFetcherWithClient(srv.Client(), nil, dir)

	_, err := f.Fetch(context.Background(), domain.Artifact{
		Name:   "android-sdk",
		URL:    srv.URL + "/missing.zip",
		Digest: sha256Hex(payload),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDownload))
	assert.Zero(t, dirEntries(t, dir))
}

func TestFetcher_Fetch_UnreachableHost(t *testing.T) {
	srv := newServer(t)
	url := srv.URL + "/sdk.zip"
	srv.Close()

	f := fetch.NewFetcherWithClient(http.DefaultClient, nil, t.TempDir())
	_, err := f.Fetch(context.Background(), domain.Artifact{Name: "android-sdk", URL: url, Digest: sha256Hex(payload)})
	assert.True(t, errors.Is(err, domain.ErrDownload))
}

func TestFetcher_Fetch_Signature(t *testing.T) {
	srv := newServer(t)
	artifact := domain.Artifact{
		Name:         "android-sdk",
		URL:          srv.URL + "/sdk.zip",
		Digest:       sha256Hex(payload),
		SignatureURL: srv.URL + "/sdk.zip.asc",
		KeyringPath:  "/etc/rig/android.asc",
	}

	t.Run("valid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier := mocks.NewMockSignatureVerifier(ctrl)
		verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any(), "/etc/rig/android.asc").Return(nil)

		f := fetch.NewFetcherWithClient(srv.Client(), verifier, t.TempDir())
		path, err := f.Fetch(context.Background(), artifact)
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		verifier := mocks.NewMockSignatureVerifier(ctrl)
		verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(zerr.Wrap(domain.ErrIntegrity, "signature verification failed"))

		dir := t.TempDir()
		f := fetch.NewFetcherWithClient(srv.Client(), verifier, dir)
		_, err := f.Fetch(context.Background(), artifact)
		assert.True(t, errors.Is(err, domain.ErrIntegrity))
		assert.Zero(t, dirEntries(t, dir))
	})
}
