package dupfind

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/idelchi/dupfind/internal/logging"
)

// Digest is a fixed-width content fingerprint.
type Digest [sha256.Size]byte

// String returns the digest in hex form, for diagnostics.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Fingerprinter computes a collision-resistant content fingerprint for a
// file. It is the only seam the grouping logic has into the hash
// algorithm, so the algorithm can be swapped without touching traversal
// or grouping.
type Fingerprinter interface {
	Fingerprint(path string) (Digest, error)
}

// SHA256Fingerprinter streams file contents through SHA-256.
type SHA256Fingerprinter struct{}

// Fingerprint hashes the file at path.
func (SHA256Fingerprinter) Fingerprint(path string) (digest Digest, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("fingerprinting %q: %w", path, err)
		}
	}()

	logging.Get().Debug().Str("path", path).Msg("hashing file")

	file, err := os.Open(path)
	if err != nil {
		return digest, err
	}
	defer func() { err = errors.Join(err, file.Close()) }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return digest, err
	}

	copy(digest[:], hash.Sum(nil))

	return digest, nil
}
