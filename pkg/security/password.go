package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
)

// ErrInvalidHash signals a stored hash in an unknown or malformed format.
var ErrInvalidHash = errors.New("invalid password hash")

const generatedPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// HashPassword returns an encoded Argon2id hash of password.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return hashArgon2id(password, argonParamsFrom(cfg))
}

// VerifyPassword checks password against an Argon2id hash, or a bcrypt hash
// carried over from accounts created before the Argon2id migration.
func VerifyPassword(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, argonPrefix):
		return verifyArgon2id(password, encoded)
	case isBcryptHash(encoded):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
		return true, nil
	default:
		return false, ErrInvalidHash
	}
}

// NeedsRehash reports whether encoded predates the current Argon2id format.
func NeedsRehash(encoded string) bool {
	return !strings.HasPrefix(encoded, argonPrefix)
}

func isBcryptHash(encoded string) bool {
	for _, prefix := range []string{"$2y$", "$2a$", "$2b$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}

// GenerateTempPassword returns a random password drawn from an unambiguous alphabet.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	limit := big.NewInt(int64(len(generatedPasswordAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b.WriteByte(generatedPasswordAlphabet[n.Int64()])
	}
	return b.String(), nil
}
