package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// MinPassphraseLength is the shortest passphrase accepted by SetPassphrase callers.
const MinPassphraseLength = 8

// HashPassphrase returns the bcrypt hash of a passphrase.
func HashPassphrase(passphrase string) (string, error) {
	if len(passphrase) < MinPassphraseLength {
		return "", fmt.Errorf("passphrase must be at least %d characters", MinPassphraseLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing passphrase: %w", err)
	}
	return string(hash), nil
}

// CheckPassphrase reports whether passphrase matches hash.
func CheckPassphrase(hash, passphrase string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) == nil
}

// GeneratePassphrase creates a random passphrase of the given length.
func GeneratePassphrase(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
