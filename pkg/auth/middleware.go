package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/cakeshop/pkg/httpx"
	"github.com/ghuser/cakeshop/pkg/logger"
)

const sessionName = "cakeshop_session"
const sessionUserIDKey = "user_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the user ID, and injects it into the
// request context. Returns 401 Unauthorized if the session is missing, invalid,
// or lacks a user ID.
//
// The user ID is an opaque string minted by the authentication provider; this
// middleware verifies presence only, never format.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userID == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
