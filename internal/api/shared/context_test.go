package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calloway/quill-api/internal/domain"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		ctx := SetTraceID(context.Background())
		traceID := GetTraceID(ctx)

		assert.Len(t, traceID, TraceIDLength*2) // hex-encoded
	})

	t.Run("absent returns empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, GetTraceID(context.Background()))
	})

	t.Run("ids are unique", func(t *testing.T) {
		t.Parallel()

		first := GetTraceID(SetTraceID(context.Background()))
		second := GetTraceID(SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		want := domain.Principal{ID: 7, Role: domain.RoleAdmin}
		ctx := SetPrincipal(context.Background(), want)

		got, ok := GetPrincipal(ctx)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("absent principal", func(t *testing.T) {
		t.Parallel()

		_, ok := GetPrincipal(context.Background())
		assert.False(t, ok)
	})
}
