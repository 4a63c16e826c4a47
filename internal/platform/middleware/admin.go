package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// SessionValidator authenticates the signed admin session token carried by
// the session cookie.
type SessionValidator interface {
	ValidateSessionToken(ctx context.Context, tokenString string) (*models.AdminSession, error)
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAdmin returns middleware that gates admin endpoints on a valid
// session cookie and populates the context with the admin identity.
// Every rejection answers with the same 401 body so callers cannot probe
// why a session was refused.
func RequireAdmin(sessions SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(models.SessionCookieName)
			if err != nil || cookie.Value == "" {
				requestID := requestcontext.RequestID(ctx)
				logger.WarnContext(ctx, "unauthorized admin access - missing session cookie",
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Admin session required")
				return
			}

			session, err := sessions.ValidateSessionToken(ctx, cookie.Value)
			if err != nil {
				requestID := requestcontext.RequestID(ctx)
				logger.WarnContext(ctx, "unauthorized admin access - session rejected",
					"error", err,
					"request_id", requestID,
					"path", r.URL.Path,
				)
				if dErrors.HasCode(err, dErrors.CodeInternal) {
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to validate session")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session")
				return
			}

			ctx = requestcontext.WithAdmin(ctx, requestcontext.AdminIdentity{
				SessionID: session.ID,
				Username:  session.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
