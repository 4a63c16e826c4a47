package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucky-arya/CSIxMKITOS/pkg/platform/httputil"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// Handler serves the admin dashboard and system reset endpoints. The router
// must wrap these routes with the admin session middleware.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the admin endpoints on the (admin-gated) router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/dashboard", h.HandleGetDashboard)
	r.Post("/admin/reset_system", h.HandleResetSystem)
}

// HandleGetDashboard handles GET /admin/dashboard requests.
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dashboard, err := h.service.GetDashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assemble dashboard",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dashboard)
}

// HandleResetSystem handles POST /admin/reset_system requests.
func (h *Handler) HandleResetSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.ResetSystem(ctx); err != nil {
		h.logger.ErrorContext(ctx, "system reset failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"reset": true})
}
