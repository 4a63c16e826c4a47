package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	rosterservice "github.com/lucky-arya/CSIxMKITOS/internal/roster/service"
	"github.com/lucky-arya/CSIxMKITOS/pkg/platform/httputil"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// Service defines the roster operations used by the handler.
type Service interface {
	List(ctx context.Context) ([]models.Student, error)
	Add(ctx context.Context, student models.Student) error
	ExportCSV(ctx context.Context) ([]byte, error)
}

// Handler serves the roster endpoints. Every route here is admin-gated, so
// the router must wrap this group with the admin session middleware.
type Handler struct {
	roster Service
	logger *slog.Logger
}

func New(roster Service, logger *slog.Logger) *Handler {
	return &Handler{roster: roster, logger: logger}
}

// Register mounts the roster endpoints on the (admin-gated) router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/students", h.HandleListStudents)
	r.Post("/students", h.HandleAddStudent)
	r.Get("/admin/students.csv", h.HandleExportCSV)
}

// HandleListStudents handles GET /students requests.
func (h *Handler) HandleListStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	students, err := h.roster.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list students",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if students == nil {
		students = []models.Student{}
	}
	httputil.WriteJSON(w, http.StatusOK, StudentListResponse{
		Students: students,
		Total:    len(students),
	})
}

// HandleAddStudent handles POST /students requests.
func (h *Handler) HandleAddStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AddStudentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	student := req.ToStudent()
	if err := h.roster.Add(ctx, student); err != nil {
		h.logger.WarnContext(ctx, "failed to add student",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, AddStudentResponse{Student: student})
}

// HandleExportCSV handles GET /admin/students.csv requests by streaming the
// roster file as a download.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.roster.ExportCSV(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export roster",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

var _ Service = (*rosterservice.Service)(nil)
