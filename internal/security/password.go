package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Password derivation parameters. Digests stored with these parameters must
// stay verifiable, so changing any of them is a breaking schema change.
const (
	saltBytes  = 16
	keyBytes   = 32
	iterations = 100_000
)

// SaltLength is the length of a generated salt in hex characters.
const SaltLength = saltBytes * 2

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrBadSaltLength = errors.New("salt has wrong length")
)

// DerivePassword derives a hex-encoded PBKDF2-HMAC-SHA256 digest of the
// password. When salt is empty a fresh random one is generated; a supplied
// salt must be exactly SaltLength characters.
func DerivePassword(password, salt string) (digest string, usedSalt string, err error) {
	if password == "" {
		return "", "", ErrEmptyPassword
	}

	if salt == "" {
		raw := make([]byte, saltBytes)
		if _, err := rand.Read(raw); err != nil {
			return "", "", fmt.Errorf("failed to generate salt: %w", err)
		}
		salt = hex.EncodeToString(raw)
	} else if len(salt) != SaltLength {
		return "", "", ErrBadSaltLength
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyBytes, sha256.New)

	return hex.EncodeToString(key), salt, nil
}

// VerifyPassword re-derives the digest with the stored salt and compares in
// constant time.
func VerifyPassword(password, digest, salt string) bool {
	computed, _, err := DerivePassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
