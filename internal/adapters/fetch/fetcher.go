// Package fetch downloads artifacts and gates them on their expected digest.
package fetch

import (
	"context"
	"encoding/hex"
	"hash"
	"io"
	"net/http"
	"os"

	"go.trai.ch/rig/internal/build"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.ArtifactFetcher over HTTP.
// No retries are performed and no timeout is imposed beyond the context.
type Fetcher struct {
	client   *http.Client
	verifier ports.SignatureVerifier
	tempDir  string
}

// NewFetcher creates a Fetcher writing to the system temp directory.
func NewFetcher(verifier ports.SignatureVerifier) *Fetcher {
	return &Fetcher{
		client:   &http.Client{},
		verifier: verifier,
	}
}

// newFetcherWithClient is used by tests.
func newFetcherWithClient(client *http.Client, verifier ports.SignatureVerifier, tempDir string) *Fetcher {
	return &Fetcher{client: client, verifier: verifier, tempDir: tempDir}
}

// Fetch downloads the artifact and returns the path of the verified file.
func (f *Fetcher) Fetch(ctx context.Context, artifact domain.Artifact) (string, error) {
	if artifact.Digest == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrIntegrity, "no expected digest"), "artifact", artifact.Name)
	}

	h, err := artifact.Algorithm.NewHash()
	if err != nil {
		return "", err
	}

	path, err := f.download(ctx, artifact.URL, h)
	if err != nil {
		return "", zerr.With(err, "artifact", artifact.Name)
	}

	sum := h.Sum(nil)
	if !artifact.Matches(sum) {
		_ = os.Remove(path)
		mismatch := zerr.With(zerr.Wrap(domain.ErrIntegrity, "digest mismatch"), "artifact", artifact.Name)
		mismatch = zerr.With(mismatch, "expected", artifact.Digest)
		return "", zerr.With(mismatch, "actual", hex.EncodeToString(sum))
	}

	if artifact.SignatureURL != "" {
		if err := f.checkSignature(ctx, artifact, path); err != nil {
			_ = os.Remove(path)
			return "", err
		}
	}

	return path, nil
}

func (f *Fetcher) checkSignature(ctx context.Context, artifact domain.Artifact, path string) error {
	if f.verifier == nil {
		return zerr.With(zerr.Wrap(domain.ErrIntegrity, "signature required but no verifier available"), "artifact", artifact.Name)
	}

	sigPath, err := f.download(ctx, artifact.SignatureURL, nil)
	if err != nil {
		return zerr.With(err, "artifact", artifact.Name)
	}
	defer func() { _ = os.Remove(sigPath) }()

	return f.verifier.Verify(ctx, path, sigPath, artifact.KeyringPath)
}

// download streams url into a new temp file, feeding h when it is non-nil.
// The file is removed on any failure.
func (f *Fetcher) download(ctx context.Context, url string, h hash.Hash) (path string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDownload, err.Error()), "url", url)
	}
	req.Header.Set("User-Agent", "rig/"+build.Version)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDownload, err.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.Wrap(domain.ErrDownload, "unexpected status"), "url", url)
		return "", zerr.With(statusErr, "status_code", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.tempDir, "rig-fetch-*")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create temp file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := io.Writer(tmp)
	if h != nil {
		w = io.MultiWriter(tmp, h)
	}

	if _, err = io.Copy(w, resp.Body); err != nil {
		_ = tmp.Close()
		return "", zerr.With(zerr.Wrap(domain.ErrDownload, err.Error()), "url", url)
	}
	if err = tmp.Close(); err != nil {
		return "", zerr.Wrap(err, "failed to close temp file")
	}

	return tmp.Name(), nil
}
