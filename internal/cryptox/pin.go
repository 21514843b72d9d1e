// Package cryptox implements hashing for the note lock PIN. The resulting
// hash is stored only in the local record store and is never part of any
// gateway payload.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/Anandrajbgp/Noteflow/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

func derive(pin string, salt []byte) []byte {
	return argon2.IDKey([]byte(pin), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPIN derives an argon2id hash of the given PIN using a fresh random
// salt. The result encodes salt and hash as "hex(salt)$hex(hash)".
func HashPIN(pin string) string {
	salt := common.GenerateRandByteArray(saltSize)
	sum := derive(pin, salt)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(sum)
}

// VerifyPIN reports whether pin matches an encoded hash produced by HashPIN.
// Malformed hashes never match.
func VerifyPIN(pin, encoded string) bool {
	saltHex, sumHex, ok := strings.Cut(encoded, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	sum, err := hex.DecodeString(sumHex)
	if err != nil {
		return false
	}
	candidate := derive(pin, salt)
	return subtle.ConstantTimeCompare(sum, candidate) == 1
}
