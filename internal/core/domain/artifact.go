package domain

import (
	"crypto/sha1" //nolint:gosec // sha1 is only accepted when an upstream publishes nothing stronger
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"go.trai.ch/zerr"
)

// Algorithm names a digest algorithm used to verify an artifact.
type Algorithm string

const (
	// SHA256 is the default digest algorithm.
	SHA256 Algorithm = "sha256"
	// SHA512 is the SHA-512 digest algorithm.
	SHA512 Algorithm = "sha512"
	// SHA1 is accepted for legacy mirrors only.
	SHA1 Algorithm = "sha1"
)

// NewHash returns a fresh hash for the algorithm.
// An empty algorithm means SHA256.
func (a Algorithm) NewHash() (hash.Hash, error) {
	switch a {
	case SHA256, "":
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA1:
		return sha1.New(), nil //nolint:gosec // see import
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnsupportedAlgorithm, "cannot verify artifact"), "algorithm", string(a))
	}
}

// Artifact is an externally fetched file with a digest known ahead of time.
type Artifact struct {
	Name      string
	URL       string
	Digest    string
	Algorithm Algorithm

	// SignatureURL optionally points at a detached OpenPGP signature of the artifact.
	SignatureURL string
	// KeyringPath is the armored public keyring used to check SignatureURL.
	KeyringPath string
}

// Matches reports whether the hex digest equals the artifact's expected digest.
// The comparison ignores case and surrounding whitespace.
func (a Artifact) Matches(digest []byte) bool {
	expected := strings.TrimSpace(a.Digest)
	if expected == "" {
		return false
	}
	return strings.EqualFold(expected, hex.EncodeToString(digest))
}
