package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, issuer, subject string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runAuth(t *testing.T, cfg AuthConfig, authHeader string) (*httptest.ResponseRecorder, string, string) {
	t.Helper()
	var userID, accessToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ = UserIDFromContext(r.Context())
		accessToken = AccessTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	Authenticate(cfg, zap.NewNop())(next).ServeHTTP(rec, req)
	return rec, userID, accessToken
}

func TestAuthenticate_ValidToken(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, Issuer: "dashboard"}
	token := signToken(t, testSecret, "dashboard", "user-42", time.Hour)

	rec, userID, accessToken := runAuth(t, cfg, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, token, accessToken)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, Issuer: "dashboard"}

	rec, _, _ := runAuth(t, cfg, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, Issuer: "dashboard"}
	token := signToken(t, "other-secret", "dashboard", "user-42", time.Hour)

	rec, _, _ := runAuth(t, cfg, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_WrongIssuer(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, Issuer: "dashboard"}
	token := signToken(t, testSecret, "someone-else", "user-42", time.Hour)

	rec, _, _ := runAuth(t, cfg, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, Issuer: "dashboard"}
	token := signToken(t, testSecret, "dashboard", "user-42", -time.Hour)

	rec, _, _ := runAuth(t, cfg, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, Issuer: "dashboard"}

	rec, _, _ := runAuth(t, cfg, "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_NoSecretPassesTokenThrough(t *testing.T) {
	cfg := AuthConfig{Secret: "", Issuer: "dashboard"}

	rec, userID, accessToken := runAuth(t, cfg, "Bearer raw-opaque-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, userID)
	assert.Equal(t, "raw-opaque-token", accessToken)
}

func TestAuthenticate_NoSecretNoToken(t *testing.T) {
	cfg := AuthConfig{Secret: ""}

	rec, _, accessToken := runAuth(t, cfg, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, accessToken)
}
