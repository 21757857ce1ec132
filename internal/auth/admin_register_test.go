package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk-backend/internal/users"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/security"
)

func TestAdminRegisterCreatesAdmin(t *testing.T) {
	client := dbtest.New(t)
	svc, err := NewAdminRegisterService(AdminRegisterServiceParams{DB: client, PasswordConfig: testPasswordConfig})
	require.NoError(t, err)
	ctx := context.Background()

	dto, err := svc.Register(ctx, AdminRegisterRequest{Name: "Root", Username: "root", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, dto.IsAdmin)

	stored, err := users.NewRepository(client.DB()).FindByUsername(ctx, "root")
	require.NoError(t, err)
	ok, err := security.VerifyPassword("secret1", stored.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Register(ctx, AdminRegisterRequest{Name: "Again", Username: "root", Password: "secret1"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, typed.Details().(map[string][]string), "username")
}
