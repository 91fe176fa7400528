package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint is a collision-resistant digest of exact document bytes.
// It is compared for equality only and never reversed.
type Fingerprint string

// FingerprintBytes computes the fingerprint of raw document content.
func FingerprintBytes(content []byte) Fingerprint {
	sum := sha256.Sum256(content)
	return Fingerprint(hex.EncodeToString(sum[:]))
}
