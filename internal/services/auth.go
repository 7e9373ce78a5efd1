package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asclegal/crm-api/internal/auth"
	"github.com/asclegal/crm-api/internal/logger"
	"github.com/asclegal/crm-api/internal/models"
	"github.com/asclegal/crm-api/internal/store"
)

// dummyDigest is a valid bcrypt digest of an unguessable throwaway value.
// Login runs a comparison against it when the email is unknown so the
// response time does not reveal whether the account exists.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Auth orchestrates credential verification, token issuance, and profile
// lookups over the credential store.
type Auth struct {
	users    store.UserStore
	issuer   *auth.TokenIssuer
	log      *logger.Logger
	hashCost int
}

func NewAuth(users store.UserStore, issuer *auth.TokenIssuer, log *logger.Logger, hashCost int) *Auth {
	return &Auth{users: users, issuer: issuer, log: log, hashCost: hashCost}
}

// RegisterInput is the validated signup payload.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Picture  string
	Timezone string
	Role     string
}

// Register creates the account and logs it in: the caller gets a token
// pair alongside the public profile. The plaintext password is hashed
// before the record is built; it never reaches the store.
func (s *Auth) Register(ctx context.Context, in RegisterInput) (*models.SessionToken, *models.PublicProfile, error) {
	digest, err := auth.HashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: digest,
		Picture:  in.Picture,
		Timezone: in.Timezone,
		Role:     role,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, nil, err
	}

	if err := s.users.AppendHistory(ctx, user.ID.Hex(), models.HistoryEvent{
		Date:        time.Now().UTC(),
		Action:      "Account Created",
		Description: "Customer account was registered",
		Type:        "success",
	}); err != nil {
		// The account exists; a missing first history entry is not worth
		// failing the signup over.
		s.log.Warn("recording signup history failed", "userId", user.ID.Hex(), "error", err)
	}

	token, err := s.issuer.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("issuing token: %w", err)
	}
	return token, user.Public(), nil
}

// Login verifies the credentials and mints a fresh token pair. Unknown
// email and wrong password are deliberately indistinguishable: both
// return auth.ErrInvalidCredentials, and the unknown-email path still
// pays for one bcrypt comparison.
func (s *Auth) Login(ctx context.Context, email, password string) (*models.SessionToken, *models.PublicProfile, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, _ = auth.CheckPassword(password, dummyDigest)
			return nil, nil, auth.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.Password)
	if err != nil {
		// Corrupted digest in the store. Log the integrity problem but
		// answer the caller exactly like a failed verification.
		s.log.Error("stored password digest is unreadable", "userId", user.ID.Hex(), "error", err)
		return nil, nil, auth.ErrInvalidCredentials
	}
	if !ok {
		return nil, nil, auth.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("issuing token: %w", err)
	}
	return token, user.Public(), nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Auth) Refresh(ctx context.Context, refreshToken string) (*models.SessionToken, error) {
	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	return s.issuer.Issue(user.ID.Hex(), user.Role)
}

// Profile resolves an authenticated user identifier to its public profile.
func (s *Auth) Profile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
