package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	authservice "github.com/lucky-arya/CSIxMKITOS/internal/auth/service"
	"github.com/lucky-arya/CSIxMKITOS/pkg/platform/httputil"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// Service defines the admin session operations used by the handler.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.AdminSession, string, error)
	Logout(ctx context.Context, tokenString string) error
	ValidateSessionToken(ctx context.Context, tokenString string) (*models.AdminSession, error)
}

// Handler wires the admin session endpoints to the auth service.
type Handler struct {
	auth         Service
	logger       *slog.Logger
	cookieSecure bool
}

// New constructs an auth handler. cookieSecure should be true whenever the
// portal is served over HTTPS.
func New(auth Service, logger *slog.Logger, cookieSecure bool) *Handler {
	return &Handler{auth: auth, logger: logger, cookieSecure: cookieSecure}
}

// Register mounts the session endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/login", h.HandleLogin)
	r.Post("/admin/logout", h.HandleLogout)
	r.Get("/admin/me", h.HandleMe)
}

// HandleLogin handles POST /admin/login requests. On success the signed
// session token is set as an HttpOnly cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, signed, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login rejected",
			"request_id", requestID,
			"username", req.Username,
		)
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, signed, session.ExpiresAt)
	h.logger.InfoContext(ctx, "admin login successful",
		"request_id", requestID,
		"session_id", session.ID,
	)

	httputil.WriteJSON(w, http.StatusOK, models.LoginResponse{
		Authenticated: true,
		Username:      session.Username,
		ExpiresAt:     session.ExpiresAt.UTC(),
	})
}

// HandleLogout handles POST /admin/logout requests. Logout is idempotent:
// the response is the same whether or not a live session existed.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := h.auth.Logout(ctx, h.sessionToken(r)); err != nil {
		h.logger.ErrorContext(ctx, "admin logout failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.clearSessionCookie(w)
	httputil.WriteJSON(w, http.StatusOK, models.MeResponse{Authenticated: false})
}

// HandleMe handles GET /admin/me requests. It always answers 200 so the
// frontend can probe session state without triggering error handling.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString := h.sessionToken(r)
	if tokenString == "" {
		httputil.WriteJSON(w, http.StatusOK, models.MeResponse{Authenticated: false})
		return
	}

	session, err := h.auth.ValidateSessionToken(ctx, tokenString)
	if err != nil {
		httputil.WriteJSON(w, http.StatusOK, models.MeResponse{Authenticated: false})
		return
	}

	expiresAt := session.ExpiresAt.UTC()
	httputil.WriteJSON(w, http.StatusOK, models.MeResponse{
		Authenticated: true,
		Username:      session.Username,
		ExpiresAt:     &expiresAt,
	})
}

// sessionToken extracts the signed session token from the request cookie.
func (h *Handler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(models.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

var _ Service = (*authservice.Service)(nil)
