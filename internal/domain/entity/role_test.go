package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	r, err := entity.ParseRole("cashier")
	assert.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, r)

	_, err = entity.ParseRole("vendedor")
	assert.Error(t, err)
}

func TestAssignableRoles(t *testing.T) {
	assert.Equal(t, []entity.Role{entity.RoleAdmin, entity.RoleCashier}, entity.AssignableRoles(entity.RoleSuperadmin))
	assert.Equal(t, []entity.Role{entity.RoleCashier}, entity.AssignableRoles(entity.RoleAdmin))
	assert.Empty(t, entity.AssignableRoles(entity.RoleCashier))

	assert.True(t, entity.CanAssign(entity.RoleAdmin, entity.RoleCashier))
	assert.False(t, entity.CanAssign(entity.RoleAdmin, entity.RoleSuperadmin))
}

func TestSessionScope_EstableYSinToken(t *testing.T) {
	s := entity.Session{Token: "abc"}
	assert.Equal(t, s.Scope(), entity.Session{Token: "abc"}.Scope())
	assert.NotEqual(t, s.Scope(), entity.Session{Token: "abd"}.Scope())
	assert.NotContains(t, s.Scope(), "abc")
	assert.Empty(t, entity.Session{}.Scope())
}
