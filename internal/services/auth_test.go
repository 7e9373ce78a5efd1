package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclegal/crm-api/internal/auth"
	"github.com/asclegal/crm-api/internal/logger"
	"github.com/asclegal/crm-api/internal/models"
	"github.com/asclegal/crm-api/internal/store"
)

func newTestAuth(t *testing.T) (*Auth, *store.MemoryUserStore, *auth.TokenIssuer) {
	t.Helper()
	users := store.NewMemoryUserStore()
	issuer := auth.NewTokenIssuer([]byte("test-secret"), 15*time.Minute, 24*time.Hour)
	svc := NewAuth(users, issuer, logger.New(0), 4)
	return svc, users, issuer
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "A",
		Email:    "a@x.com",
		Phone:    "+1234567890",
		Password: "secret123",
		Timezone: "Europe/Riga",
	}
}

func TestRegister(t *testing.T) {
	svc, users, issuer := newTestAuth(t)
	ctx := context.Background()

	token, profile, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	require.NotNil(t, token)
	require.NotNil(t, profile)

	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, models.RoleUser, profile.Role)

	claims, err := issuer.VerifyAccess(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)

	// The stored record holds a digest, not the plaintext.
	stored, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NotEmpty(t, stored.Password)

	// Signup leaves the first history event.
	require.Len(t, stored.History, 1)
	assert.Equal(t, "Account Created", stored.History[0].Action)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	second := registerInput()
	second.Password = "different456"
	_, _, err = svc.Register(ctx, second)
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	// First registration is unaffected.
	_, profile, err := svc.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "A", profile.Name)
}

func TestLogin(t *testing.T) {
	svc, _, issuer := newTestAuth(t)
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	token, profile, err := svc.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, profile.ID)

	claims, err := issuer.VerifyAccess(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLogin_EnumerationResistance(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "a@x.com", "wrong-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret123")

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLogin_CorruptDigest(t *testing.T) {
	svc, users, _ := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, users.Insert(ctx, &models.User{
		Name:     "B",
		Email:    "b@x.com",
		Password: "not-a-bcrypt-digest",
		Role:     models.RoleUser,
	}))

	_, _, err := svc.Login(ctx, "b@x.com", "whatever123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _, issuer := newTestAuth(t)
	ctx := context.Background()

	token, profile, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, token.RefreshToken)
	require.NoError(t, err)

	claims, err := issuer.VerifyAccess(fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	token, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, token.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestProfile(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered, profile)

	_, err = svc.Profile(ctx, "ffffffffffffffffffffffff")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
