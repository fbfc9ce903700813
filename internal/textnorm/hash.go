package textnorm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// ContentHash computes the SHA-256 digest of canonical text. A digest failure
// is an environment-level problem and aborts the whole comparison request.
func ContentHash(canonical string) (string, error) {
	h := sha256.New()
	if _, err := io.WriteString(h, canonical); err != nil {
		return "", fmt.Errorf("failed to compute content hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
