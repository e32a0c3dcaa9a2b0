package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("s3cret?pw")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret?pw", hash)

	t.Run("matching password verifies", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, hasher.Compare(hash, "s3cret?pw"))
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, hasher.Compare(hash, "wrong-password"))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		other, err := hasher.Hash("s3cret?pw")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}
