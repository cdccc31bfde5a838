// Package hash owns password hashing for the marketplace. New hashes are
// bcrypt; the package also recognizes the unsalted sha256 hex digests produced
// by the pre-migration scheme so existing accounts keep working and can be
// upgraded on login.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Password returns a bcrypt hash of the given password.
func Password(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check reports whether password matches the stored hash, accepting both
// bcrypt hashes and legacy sha256 digests.
func Check(stored, password string) bool {
	if IsLegacy(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(LegacyDigest(password))) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// LegacyDigest is the deterministic, unsalted sha256 hex digest used by the
// original scheme. Kept only to verify and migrate pre-existing hashes; never
// used for new passwords.
func LegacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// IsLegacy reports whether stored looks like a legacy sha256 hex digest
// rather than a bcrypt hash.
func IsLegacy(stored string) bool {
	if len(stored) != 64 {
		return false
	}
	_, err := hex.DecodeString(stored)
	return err == nil
}
