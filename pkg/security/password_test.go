package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/security"
)

var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    8 * 1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("secret-pass", testPasswordConfig)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"))
	assert.False(t, security.NeedsRehash(hash))

	ok, err := security.VerifyPassword("secret-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = security.VerifyPassword("wrong-pass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := security.HashPassword("", testPasswordConfig)
	assert.Error(t, err)
}

func TestVerifyLegacyBcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	legacy := "$2y$" + strings.TrimPrefix(string(raw), "$2a$")

	ok, err := security.VerifyPassword("secret-pass", legacy)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, security.NeedsRehash(legacy))

	ok, err = security.VerifyPassword("other-pass", legacy)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordBadHash(t *testing.T) {
	for _, encoded := range []string{"not-a-hash", "$argon2id$v=19$m=x$a$b", "$argon2id$v=18$m=1,t=1,p=1$c2FsdA$a2V5"} {
		_, err := security.VerifyPassword("irrelevant", encoded)
		assert.ErrorIs(t, err, security.ErrInvalidHash, encoded)
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := security.GenerateTempPassword(20)
	require.NoError(t, err)
	assert.Len(t, pw, 20)
	assert.NotContains(t, pw, "0")
	assert.NotContains(t, pw, "O")

	_, err = security.GenerateTempPassword(0)
	assert.Error(t, err)
}
