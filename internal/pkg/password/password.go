// Package password implements the deterministic keyed password hash: PBKDF2
// over (plaintext, secret salt) with a fixed iteration count and output
// length. Determinism keeps stored hashes comparable without per-user salts;
// the salt is a deployment secret.
package password

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 150
	keyLength  = 128
)

// Hash derives the hex-encoded hash of plain under the secret salt.
func Hash(plain, salt string) string {
	key := pbkdf2.Key([]byte(plain), []byte(salt), iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}

// Compare reports whether plain hashes to storedHash under salt. The
// comparison is constant-time.
func Compare(plain, salt, storedHash string) bool {
	computed := Hash(plain, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
