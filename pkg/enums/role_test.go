package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleUser.IsValid())
	assert.False(t, Role("owner").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRoleFor(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFor(true))
	assert.Equal(t, RoleUser, RoleFor(false))
}
