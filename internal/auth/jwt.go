package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/asclegal/crm-api/internal/models"
)

const tokenUseRefresh = "refresh"

type Claims struct {
	UserID   string `json:"userId"`
	Role     string `json:"role,omitempty"`
	TokenUse string `json:"tokenUse,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the HS256 token pair. Expiry is checked
// at verification time; issuing never consults the store.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue creates a fresh token pair bound to the given user. The refresh
// token is a separately signed JWT with a longer validity window; its jti
// keeps two pairs for the same user distinct.
func (i *TokenIssuer) Issue(userID, role string) (*models.SessionToken, error) {
	if len(i.secret) == 0 {
		return nil, errors.New("jwt secret is not configured")
	}

	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	})
	accessStr, err := access.SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   userID,
		TokenUse: tokenUseRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		},
	})
	refreshStr, err := refresh.SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	return &models.SessionToken{
		TokenType:    "Bearer",
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
		ExpiresIn:    int64(i.accessTTL.Seconds()),
	}, nil
}

// VerifyAccess validates an access token and returns its claims.
// Expired tokens yield ErrTokenExpired; anything else that fails the
// cryptographic or structural checks yields ErrInvalidToken.
func (i *TokenIssuer) VerifyAccess(tokenStr string) (*Claims, error) {
	claims, err := i.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != "" {
		// A refresh token is not a session credential.
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and returns its claims.
func (i *TokenIssuer) VerifyRefresh(tokenStr string) (*Claims, error) {
	claims, err := i.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != tokenUseRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *TokenIssuer) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
