package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"intake/internal/audit/changelog"
	"intake/internal/triage/models"
	"intake/internal/triage/service"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the triage operations used by the handler.
type Service interface {
	ListCases(ctx context.Context, status *models.CaseStatus, limit int) (*service.CaseList, error)
	GetCase(ctx context.Context, caseID id.CaseID) (*service.CaseView, error)
	CreateCase(ctx context.Context, patientID id.PatientID, changes []models.Change) (*service.CaseView, error)
	UpdateCase(ctx context.Context, caseID id.CaseID, changes []models.Change) (*service.CaseView, error)
	DeleteCase(ctx context.Context, caseID id.CaseID) error
	ReviewCase(ctx context.Context, caseID id.CaseID, in service.ReviewInput) (*service.CaseView, error)
	CaseChangelog(ctx context.Context, caseID id.CaseID) ([]changelog.EntryView, error)
	GetPatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patientID id.PatientID, changes []models.Change) (*models.Patient, error)
	PatientChangelog(ctx context.Context, patientID id.PatientID) ([]changelog.EntryView, error)
}

const maxListLimit = 1000

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the triage endpoints. The router must already carry the
// auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Route("/triage-cases", func(r chi.Router) {
		r.Get("/", h.HandleListCases)
		r.Post("/", h.HandleCreateCase)
		r.Get("/status/{status}", h.HandleListCasesByStatus)
		r.Get("/{id}", h.HandleGetCase)
		r.Patch("/{id}", h.HandleUpdateCase)
		r.Delete("/{id}", h.HandleDeleteCase)
		r.Patch("/{id}/review", h.HandleReviewCase)
		r.Get("/{id}/changelog", h.HandleCaseChangelog)
	})
	r.Route("/patients", func(r chi.Router) {
		r.Get("/{id}", h.HandleGetPatient)
		r.Patch("/{id}", h.HandleUpdatePatient)
		r.Get("/{id}/changelog", h.HandlePatientChangelog)
	})
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return service.DefaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer")
	}
	return min(n, maxListLimit), nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	log := h.logger.WarnContext
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		log = h.logger.ErrorContext
	}
	log(ctx, msg,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

// HandleListCases handles GET /triage-cases.
func (h *Handler) HandleListCases(w http.ResponseWriter, r *http.Request) {
	h.listCases(w, r, nil)
}

// HandleListCasesByStatus handles GET /triage-cases/status/{status}.
func (h *Handler) HandleListCasesByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := models.ParseCaseStatus(chi.URLParam(r, "status"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.listCases(w, r, &status)
}

func (h *Handler) listCases(w http.ResponseWriter, r *http.Request, status *models.CaseStatus) {
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.ListCases(r.Context(), status, limit)
	if err != nil {
		h.fail(w, r, "list triage cases failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newCasesResponse(list))
}

// HandleGetCase handles GET /triage-cases/{id}.
func (h *Handler) HandleGetCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view, err := h.service.GetCase(r.Context(), caseID)
	if err != nil {
		h.fail(w, r, "get triage case failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newCaseResponse(view))
}

// HandleCreateCase handles POST /triage-cases.
func (h *Handler) HandleCreateCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := httputil.DecodeAndPrepare[CreateCaseRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	changes, err := models.DecodeChanges(body.Fields, models.CreateCaseFields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view, err := h.service.CreateCase(ctx, body.PatientID, changes)
	if err != nil {
		h.fail(w, r, "create triage case failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newCaseResponse(view))
}

// HandleUpdateCase handles PATCH /triage-cases/{id}. The body may carry
// patient and case fields together.
func (h *Handler) HandleUpdateCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, ok := httputil.DecodeAndPrepare[PatchRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	changes, err := models.DecodeChanges(*body, caseUpdateFields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view, err := h.service.UpdateCase(ctx, caseID, changes)
	if err != nil {
		h.fail(w, r, "update triage case failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newCaseResponse(view))
}

// HandleDeleteCase handles DELETE /triage-cases/{id}.
func (h *Handler) HandleDeleteCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteCase(r.Context(), caseID); err != nil {
		h.fail(w, r, "delete triage case failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: service.MessageCaseDeleted})
}

// HandleReviewCase handles PATCH /triage-cases/{id}/review.
func (h *Handler) HandleReviewCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReviewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	view, err := h.service.ReviewCase(ctx, caseID, service.ReviewInput{
		Reason:        req.ReviewReason,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		h.fail(w, r, "review triage case failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newCaseResponse(view))
}

// HandleCaseChangelog handles GET /triage-cases/{id}/changelog.
func (h *Handler) HandleCaseChangelog(w http.ResponseWriter, r *http.Request) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	entries, err := h.service.CaseChangelog(r.Context(), caseID)
	if err != nil {
		h.fail(w, r, "case changelog failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newChangelogResponse(entries))
}

// HandleGetPatient handles GET /patients/{id}.
func (h *Handler) HandleGetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.service.GetPatient(r.Context(), patientID)
	if err != nil {
		h.fail(w, r, "get patient failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newPatientResponse(p))
}

// HandleUpdatePatient handles PATCH /patients/{id}.
func (h *Handler) HandleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, ok := httputil.DecodeAndPrepare[PatchRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	changes, err := models.DecodeChanges(*body, models.PatientFields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.service.UpdatePatient(ctx, patientID, changes)
	if err != nil {
		h.fail(w, r, "update patient failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newPatientResponse(p))
}

// HandlePatientChangelog handles GET /patients/{id}/changelog.
func (h *Handler) HandlePatientChangelog(w http.ResponseWriter, r *http.Request) {
	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	entries, err := h.service.PatientChangelog(r.Context(), patientID)
	if err != nil {
		h.fail(w, r, "patient changelog failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newChangelogResponse(entries))
}
