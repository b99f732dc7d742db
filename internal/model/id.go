package model

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLength is the length of generated record identifiers. Route handlers
// reject identifiers of any other length before touching storage.
const IDLength = 24

// NewID generates a 24-character lowercase hex identifier.
func NewID() string {
	buf := make([]byte, IDLength/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process has bigger problems
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// ValidID reports whether s has the shape of a generated identifier.
func ValidID(s string) bool {
	return len(s) == IDLength
}
