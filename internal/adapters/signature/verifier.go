// Package signature verifies detached OpenPGP signatures with ProtonMail's go-crypto.
package signature

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

var armorPrefix = []byte("-----BEGIN ")

// Verifier implements ports.SignatureVerifier.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify checks sigPath against filePath using the keys in keyringPath.
// Keyrings and signatures may be armored or binary.
func (v *Verifier) Verify(_ context.Context, filePath, sigPath, keyringPath string) error {
	if keyringPath == "" {
		return zerr.With(zerr.Wrap(domain.ErrIntegrity, "no keyring configured for signature"), "file", filePath)
	}

	keyring, err := readKeyring(keyringPath)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIntegrity, "failed to read keyring: "+err.Error()), "keyring", keyringPath)
	}

	signed, err := os.Open(filePath) //nolint:gosec // path produced by the fetcher
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open signed file"), "file", filePath)
	}
	defer signed.Close() //nolint:errcheck // read-only

	sigFile, err := os.Open(sigPath) //nolint:gosec // path produced by the fetcher
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open signature"), "signature", sigPath)
	}
	defer sigFile.Close() //nolint:errcheck // read-only

	sig, armored, err := sniff(sigFile)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read signature"), "signature", sigPath)
	}

	if armored {
		_, err = openpgp.CheckArmoredDetachedSignature(keyring, signed, sig, nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(keyring, signed, sig, nil)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIntegrity, "signature verification failed: "+err.Error()), "file", filePath)
	}

	return nil
}

func readKeyring(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path) //nolint:gosec // keyring path comes from the plan
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	r, armored, err := sniff(f)
	if err != nil {
		return nil, err
	}
	if armored {
		return openpgp.ReadArmoredKeyRing(r)
	}
	return openpgp.ReadKeyRing(r)
}

// sniff reports whether r starts with an ASCII armor header, without consuming input.
func sniff(r io.Reader) (io.Reader, bool, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(armorPrefix))
	if err != nil && err != io.EOF {
		return nil, false, err
	}
	return br, bytes.HasPrefix(head, armorPrefix), nil
}
