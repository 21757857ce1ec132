package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
)

type ctxKey struct{}

func TestBaseDBBindsContext(t *testing.T) {
	conn := dbtest.New(t).DB()
	base := NewBase(conn)

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	withCtx := base.DB(ctx)
	require.NotNil(t, withCtx.Statement)
	assert.Equal(t, ctx, withCtx.Statement.Context)

	//nolint:staticcheck
	assert.Same(t, conn, base.DB(nil))
}

func TestExistsHonoursExcludedID(t *testing.T) {
	conn := dbtest.New(t).DB()
	ctx := context.Background()
	user := &models.User{Name: "Root", Username: "root", Password: "x"}
	require.NoError(t, conn.WithContext(ctx).Create(user).Error)

	query := func() *gorm.DB {
		return conn.WithContext(ctx).Model(&models.User{}).Where("username = ?", "root")
	}

	found, err := Exists(query(), 0)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = Exists(query(), user.ID)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = Exists(conn.WithContext(ctx).Model(&models.User{}).Where("username = ?", "nobody"), 0)
	require.NoError(t, err)
	assert.False(t, found)
}
