// Package httptransport assembles the portal's HTTP surface: middleware
// stack, route mounting and the admin session gate. Handlers live with their
// domains; this package only wires them together.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminpkg "github.com/lucky-arya/CSIxMKITOS/internal/admin"
	authhandler "github.com/lucky-arya/CSIxMKITOS/internal/auth/handler"
	certhandler "github.com/lucky-arya/CSIxMKITOS/internal/certificate/handler"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/health"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/metrics"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/middleware"
	rosterhandler "github.com/lucky-arya/CSIxMKITOS/internal/roster/handler"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	"github.com/lucky-arya/CSIxMKITOS/pkg/platform/httputil"
	"github.com/lucky-arya/CSIxMKITOS/pkg/validation"
)

// Deps carries everything the router mounts. All fields are required except
// Metrics, which disables the latency middleware when nil.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Sessions       middleware.SessionValidator
	Auth           *authhandler.Handler
	Certificates   *certhandler.Handler
	Roster         *rosterhandler.Handler
	Admin          *adminpkg.Handler
	Health         *health.Handler
	RequestTimeout time.Duration
}

// NewRouter wires all endpoints under /api with the shared middleware stack.
// /metrics stays outside the stack so scrapes skip body and timeout limits.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Recovery(deps.Logger))
		api.Use(middleware.RequestID)
		api.Use(middleware.Logger(deps.Logger))
		if deps.Metrics != nil {
			api.Use(middleware.Latency(deps.Metrics))
		}
		api.Use(middleware.BodyLimit(validation.MaxBodySize))
		api.Use(middleware.Timeout(deps.RequestTimeout))
		api.Use(middleware.ContentTypeJSON)

		deps.Health.Register(api)
		deps.Auth.Register(api)
		deps.Certificates.Register(api)

		api.Group(func(adminAPI chi.Router) {
			adminAPI.Use(middleware.RequireAdmin(deps.Sessions, deps.Logger))
			deps.Roster.Register(adminAPI)
			deps.Certificates.RegisterAdmin(adminAPI)
			deps.Admin.Register(adminAPI)
		})
	})

	return r
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "resource not found"))
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error":             "method_not_allowed",
		"error_description": "method not allowed for this resource",
	})
}
