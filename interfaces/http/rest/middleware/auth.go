package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"netviz/pkg/common"
	pkgerrors "netviz/pkg/errors"
)

type contextKey string

const (
	userIDKey      contextKey = "userID"
	accessTokenKey contextKey = "accessToken"
)

// AuthConfig configures the bearer-token middleware
type AuthConfig struct {
	// Secret verifies dashboard-issued HS256 tokens. Empty disables
	// verification (development only); the raw token still passes
	// through to the upstream fetch.
	Secret string
	Issuer string
}

// Authenticate validates the dashboard's bearer token and threads the
// user identity plus the raw token through the request context. The
// engine never stores credentials; the token only passes through to
// the upstream collaborator.
func Authenticate(cfg AuthConfig, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			if cfg.Secret == "" {
				// Verification disabled: pass the token through as-is
				ctx := context.WithValue(r.Context(), accessTokenKey, token)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if token == "" {
				common.RespondError(w, http.StatusUnauthorized,
					string(pkgerrors.ErrorTypeUnauthorized), "missing bearer token")
				return
			}

			claims := jwt.RegisteredClaims{}
			parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, pkgerrors.NewUnauthorizedError("unexpected signing method")
				}
				return []byte(cfg.Secret), nil
			}, jwt.WithIssuer(cfg.Issuer))

			if err != nil || !parsed.Valid {
				logger.Debug("token rejected", zap.Error(err))
				common.RespondError(w, http.StatusUnauthorized,
					string(pkgerrors.ErrorTypeUnauthorized), "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			ctx = context.WithValue(ctx, accessTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// AccessTokenFromContext returns the raw bearer token, if any
func AccessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey).(string)
	return token
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
