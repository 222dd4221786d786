package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a 64-character hex token from 32 random bytes,
// suitable for single-use password recovery links.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
