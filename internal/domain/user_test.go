package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	admin := User{Role: RoleAdmin}
	clerk := User{Role: RoleOfficeUser}

	assert.True(t, admin.HasRole(RoleAdmin))
	assert.True(t, admin.HasRole(RoleOfficeUser))

	assert.True(t, clerk.HasRole(RoleOfficeUser))
	assert.False(t, clerk.HasRole(RoleAdmin))
}
