package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	certservice "github.com/lucky-arya/CSIxMKITOS/internal/certificate/service"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	"github.com/lucky-arya/CSIxMKITOS/pkg/platform/httputil"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// Service defines the certificate operations used by the handler.
type Service interface {
	VerifyAndIssue(ctx context.Context, name, email string) (*certservice.IssueResult, error)
	Get(ctx context.Context, id string) (*models.Reference, error)
	MarkDownloaded(ctx context.Context, id string) (*models.Reference, error)
	GetStats(ctx context.Context) (*certservice.Stats, error)
	ReconcileDuplicates(ctx context.Context) (*certservice.ReconcileResult, error)
	Clear(ctx context.Context) error
	ExportJSON(ctx context.Context) ([]byte, error)
}

// Handler serves the certificate endpoints.
type Handler struct {
	certificates Service
	logger       *slog.Logger
}

func New(certificates Service, logger *slog.Logger) *Handler {
	return &Handler{certificates: certificates, logger: logger}
}

// Register mounts the student-facing endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify_credentials", h.HandleVerifyCredentials)
	r.Get("/get_certificate", h.HandleGetCertificate)
	r.Post("/mark_downloaded", h.HandleMarkDownloaded)
	r.Get("/get_stats", h.HandleGetStats)
}

// RegisterAdmin mounts the maintenance endpoints. The router must wrap this
// group with the admin session middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/cleanup_duplicates", h.HandleCleanupDuplicates)
	r.Post("/admin/clear_references", h.HandleClearReferences)
	r.Get("/admin/references.json", h.HandleExportJSON)
}

// HandleVerifyCredentials handles POST /verify_credentials requests. An
// eligible student gets their reference, existing or freshly minted; an
// ineligible one gets a forbidden response carrying the roster's literal
// eligibility value.
func (h *Handler) HandleVerifyCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyCredentialsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.certificates.VerifyAndIssue(ctx, req.Name, req.Email)
	if err != nil {
		var ineligible *models.IneligibleError
		if errors.As(err, &ineligible) {
			httputil.WriteJSON(w, http.StatusForbidden, map[string]string{
				"error":              "forbidden",
				"error_description":  "student is not eligible for a certificate",
				"eligibility_status": ineligible.Status,
			})
			return
		}
		h.logger.WarnContext(ctx, "credential verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := VerifyResponse{
		ReferenceID: result.Reference.ID,
		User:        result.Reference.User,
		Existing:    result.Existing,
	}
	if !result.Existing {
		resp.CreatedDate = result.Reference.Timestamp.Format(time.RFC3339)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetCertificate handles GET /get_certificate requests. The reference
// is returned exactly as stored.
func (h *Handler) HandleGetCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.URL.Query().Get("reference_id")
	if id == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "reference_id query parameter is required"))
		return
	}

	ref, err := h.certificates.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ref)
}

// HandleMarkDownloaded handles POST /mark_downloaded requests.
func (h *Handler) HandleMarkDownloaded(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[MarkDownloadedRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ref, err := h.certificates.MarkDownloaded(ctx, req.ReferenceID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to record download",
			"request_id", requestID,
			"reference_id", req.ReferenceID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, MarkDownloadedResponse{
		Success:       true,
		DownloadCount: ref.DownloadCount,
	})
}

// HandleGetStats handles GET /get_stats requests.
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.certificates.GetStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute stats",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// HandleCleanupDuplicates handles POST /cleanup_duplicates requests.
func (h *Handler) HandleCleanupDuplicates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.certificates.ReconcileDuplicates(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "duplicate cleanup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	removedIDs := result.RemovedIDs
	if removedIDs == nil {
		removedIDs = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, CleanupResponse{
		Removed:    result.Removed,
		Remaining:  result.Remaining,
		RemovedIDs: removedIDs,
	})
}

// HandleClearReferences handles POST /admin/clear_references requests.
func (h *Handler) HandleClearReferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.certificates.Clear(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to clear references",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ClearResponse{Cleared: true})
}

// HandleExportJSON handles GET /admin/references.json requests by streaming
// the reference file as a download.
func (h *Handler) HandleExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.certificates.ExportJSON(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export references",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="references.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

var _ Service = (*certservice.Service)(nil)
