// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	return randomFromCharset(length, charset)
}

// GenerateRandomDigits returns a numeric string, used to disambiguate
// time-derived order numbers generated within the same second.
func GenerateRandomDigits(length int) (string, error) {
	return randomFromCharset(length, "0123456789")
}

func randomFromCharset(length int, charset string) (string, error) {
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
