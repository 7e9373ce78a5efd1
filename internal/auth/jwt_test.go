package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func testIssuer() *TokenIssuer {
	return NewTokenIssuer(testSecret, 15*time.Minute, 24*time.Hour)
}

func TestIssue_AccessTokenRoundTrip(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.Issue("user-1", "lawyer")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(900), token.ExpiresIn)

	claims, err := issuer.VerifyAccess(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "lawyer", claims.Role)
}

func TestIssue_PairsAreDistinct(t *testing.T) {
	issuer := testIssuer()

	first, err := issuer.Issue("user-1", "user")
	require.NoError(t, err)
	second, err := issuer.Issue("user-1", "user")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute, 24*time.Hour)

	token, err := issuer.Issue("user-1", "user")
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(token.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAccess_TamperedPayload(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.Issue("user-1", "user")
	require.NoError(t, err)

	parts := strings.Split(token.AccessToken, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))
	body["userId"] = "user-2"
	forged, err := json.Marshal(body)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	_, err = issuer.VerifyAccess(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	token, err := testIssuer().Issue("user-1", "user")
	require.NoError(t, err)

	other := NewTokenIssuer([]byte("other-secret"), 15*time.Minute, 24*time.Hour)
	_, err = other.VerifyAccess(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := testIssuer().VerifyAccess(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.Issue("user-1", "user")
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(token.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRefresh(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.Issue("user-1", "user")
	require.NoError(t, err)

	claims, err := issuer.VerifyRefresh(token.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = issuer.VerifyRefresh(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRefresh_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, -time.Minute)

	token, err := issuer.Issue("user-1", "user")
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(token.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssue_EmptySecret(t *testing.T) {
	issuer := NewTokenIssuer(nil, 15*time.Minute, 24*time.Hour)

	_, err := issuer.Issue("user-1", "user")
	assert.Error(t, err)
}
