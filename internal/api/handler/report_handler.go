package handler

import (
	"log/slog"
	"net/http"
	"time"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/report"
	"loan-ledger/internal/pkg/apperrors"
	"loan-ledger/internal/pkg/validation"
)

type ReportHandler struct {
	service report.ReportService
	logger  *slog.Logger
}

func NewReportHandler(s report.ReportService, l *slog.Logger) *ReportHandler {
	if s == nil {
		panic("report service cannot be nil")
	}
	return &ReportHandler{service: s, logger: l.With("component", "ReportHandler")}
}

// Summary handles GET /reports/summary
// @Summary Portfolio totals for the caller
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.SummaryResponse} "Summary fetched successfully"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/summary [get]
// @Security BearerAuth
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	s, err := h.service.Summary(r.Context(), owner)
	if err != nil {
		logServiceError(r, h.logger, "Service failed to build summary", err)
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Summary fetched successfully", dto.NewSummaryResponse(s))
}

// Overdue handles GET /reports/overdue
// @Summary Loans past their due date with a balance still owed
// @Tags Reports
// @Produce json
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.Envelope{data=[]dto.OverdueEntryResponse} "Overdue loans fetched successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid asOf date"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/overdue [get]
// @Security BearerAuth
func (h *ReportHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var asOf time.Time
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		parsed, err := validation.ParseDate(raw)
		if err != nil {
			h.logger.WarnContext(r.Context(), "Invalid asOf query parameter", slog.String("asOf", raw))
			respondError(w, apperrors.NewValidationError("asOf", "Invalid Date"))
			return
		}
		asOf = parsed
	}

	entries, err := h.service.OverdueCustomers(r.Context(), owner, asOf)
	if err != nil {
		logServiceError(r, h.logger, "Service failed to list overdue loans", err)
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Overdue loans fetched successfully", dto.NewOverdueListResponse(entries))
}
