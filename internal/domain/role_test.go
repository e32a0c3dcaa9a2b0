package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	t.Run("known roles", func(t *testing.T) {
		t.Parallel()

		role, err := ParseRole("ADMIN")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, role)

		role, err = ParseRole("VISITOR")
		require.NoError(t, err)
		assert.Equal(t, RoleVisitor, role)
	})

	t.Run("case sensitive", func(t *testing.T) {
		t.Parallel()

		_, err := ParseRole("admin")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()

		_, err := ParseRole("EDITOR")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleVisitor.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("EDITOR").Valid())
}
