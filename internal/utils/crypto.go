// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateMFACode returns a random uppercase alphanumeric code of the given
// length, suitable for one-time login codes.
func GenerateMFACode(length int) (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}
