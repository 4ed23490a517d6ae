package common

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash identifies a document version by its text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
