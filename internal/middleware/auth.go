package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/Himanshu-Rajkumar/notes-app/pkg/api/response"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/auth"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/logger/sl"
)

// Identity is the authenticated caller, as established by the token. It is
// the only source handlers may use for the acting user; owner ids arriving
// in request bodies are never trusted.
type Identity struct {
	UserID   uuid.UUID
	UserName string
}

type key string

const identityKey key = "identity"

// Auth guards protected routes. A missing or malformed Authorization header
// is Unauthorized; a header that is present but carries an invalid or
// expired token is Forbidden. On success the caller's Identity is attached
// to the request context.
func Auth(log *slog.Logger, tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing authorization header"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid authorization header"))
				return
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				log.Warn("token rejected", sl.Err(err))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				log.Warn("token carries malformed user id", sl.Err(err))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, Identity{
				UserID:   userID,
				UserName: claims.UserName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
