package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "orderdesk", ExpirationMinutes: 30}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:   7,
		Username: "alice",
		Role:     enums.RoleAdmin,
		JTI:      "session-1",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, enums.RoleAdmin, claims.Role)
	assert.Equal(t, "session-1", claims.ID)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
	assert.WithinDuration(t, now.Add(30*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestMintGeneratesSessionID(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Role: enums.RoleUser})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, enums.RoleUser, claims.Role)
}

func TestMintAccessTokenRejectsBadInput(t *testing.T) {
	now := time.Now()
	_, err := MintAccessToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 1}, now, AccessTokenPayload{UserID: 1, Role: enums.RoleUser})
	assert.Error(t, err)

	_, err = MintAccessToken(testJWTConfig(), now, AccessTokenPayload{Role: enums.RoleUser})
	assert.Error(t, err)

	_, err = MintAccessToken(testJWTConfig(), now, AccessTokenPayload{UserID: 1, Role: "owner"})
	assert.Error(t, err)
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Role: enums.RoleUser})
	require.NoError(t, err)

	other := cfg
	other.Secret = "another-secret"
	_, err = ParseAccessToken(other, token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: 1, Role: enums.RoleUser})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAccessTokenWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Role: enums.RoleUser})
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = ParseAccessToken(other, token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestParseAccessTokenRequiresJTI(t *testing.T) {
	cfg := testJWTConfig()
	claims := AccessTokenClaims{
		UserID: 1,
		Role:   enums.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrMissingSessionID)
}
