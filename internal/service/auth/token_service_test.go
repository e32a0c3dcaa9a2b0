package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calloway/quill-api/internal/config"
)

func TestIssueToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"

	svc := NewTestTokenService(secret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("issues a valid credential", func(t *testing.T) {
		t.Parallel()

		cred, err := svc.IssueToken(context.Background(), 7)
		require.NoError(t, err)
		require.NotEmpty(t, cred.Token)
		assert.Equal(t, tokenLifetime, cred.ExpiresIn)

		claims, err := svc.ValidateToken(context.Background(), cred.Token)
		require.NoError(t, err)

		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "7", claims.Subject)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("successive tokens carry distinct ids", func(t *testing.T) {
		t.Parallel()

		first, err := svc.IssueToken(context.Background(), 7)
		require.NoError(t, err)
		second, err := svc.IssueToken(context.Background(), 7)
		require.NoError(t, err)

		firstClaims, err := svc.ValidateToken(context.Background(), first.Token)
		require.NoError(t, err)
		secondClaims, err := svc.ValidateToken(context.Background(), second.Token)
		require.NoError(t, err)

		assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"
	wrongSecret := "wrong-secret-that-is-long-enough-for-test"

	tests := []struct {
		name      string
		setupFunc func() (TokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (TokenService, string) {
				svc := NewTestTokenService(secret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				cred, _ := svc.IssueToken(context.Background(), 7)
				return svc, cred.Token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func() (TokenService, string) {
				genSvc := NewTestTokenService(secret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				cred, _ := genSvc.IssueToken(context.Background(), 7)

				// Validate from a clock past the expiry.
				valSvc := NewTestTokenService(secret, tokenLifetime, func() time.Time {
					return fixedTime.Add(tokenLifetime + time.Minute)
				})
				return valSvc, cred.Token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "wrong signing secret",
			setupFunc: func() (TokenService, string) {
				genSvc := NewTestTokenService(wrongSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				cred, _ := genSvc.IssueToken(context.Background(), 7)

				valSvc := NewTestTokenService(secret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return valSvc, cred.Token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (TokenService, string) {
				svc := NewTestTokenService(secret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, "not.a.token"
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, token := tc.setupFunc()
			claims, err := svc.ValidateToken(context.Background(), token)

			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, int64(7), claims.UserID)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
			}
		})
	}
}

func TestNewTokenServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}
