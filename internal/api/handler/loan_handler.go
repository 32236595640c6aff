package handler

import (
	"log/slog"
	"net/http"
	"time"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/repayment"
)

type LoanHandler struct {
	service    loan.LoanService
	repayments repayment.RepaymentService
	now        func() time.Time
	logger     *slog.Logger
}

func NewLoanHandler(s loan.LoanService, repayments repayment.RepaymentService, l *slog.Logger) *LoanHandler {
	if s == nil || repayments == nil {
		panic("loan handler services cannot be nil")
	}
	return &LoanHandler{
		service:    s,
		repayments: repayments,
		now:        time.Now,
		logger:     l.With("component", "LoanHandler"),
	}
}

// IssueLoan handles POST /loans
// @Summary Issue a credit sale to a customer
// @Description Status may be omitted or "pending"; paid and overdue are derived by the ledger.
// @Tags Loans
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param request body dto.IssueLoanRequest true "Loan details"
// @Success 201 {object} dto.Envelope{data=dto.LoanResponse} "Loan created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Unauthorized customer access"
// @Failure 409 {object} dto.ErrorResponse "Idempotency key reused with a different body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
// @Security BearerAuth
func (h *LoanHandler) IssueLoan(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.IssueLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	issued, err := h.service.Issue(r.Context(), owner, req.ToFields())
	if err != nil {
		logServiceError(r, h.logger, "Service failed to issue loan", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Loan created successfully", slog.Int64("loanID", issued.ID))
	respondSuccess(w, http.StatusCreated, "Loan created successfully", dto.NewLoanResponse(issued, h.now()))
}

// ListLoans handles GET /loans
// @Summary List the caller's loans
// @Tags Loans
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, paid, overdue)
// @Success 200 {object} dto.Envelope{data=[]dto.LoanResponse} "Loans fetched successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown status filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [get]
// @Security BearerAuth
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	filter, err := loan.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid status filter", slog.Any("error", err))
		respondError(w, err)
		return
	}

	now := h.now()
	loans, err := h.service.List(r.Context(), owner, filter, now)
	if err != nil {
		logServiceError(r, h.logger, "Service failed to list loans", err)
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Loans fetched successfully", dto.NewLoanListResponse(loans, now))
}

// GetLoan handles GET /loans/{loanID}
// @Summary Retrieve one loan
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.Envelope{data=dto.LoanResponse} "Loan fetched successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 403 {object} dto.ErrorResponse "Loan belongs to another owner"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get loan ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	l, err := h.service.Get(r.Context(), owner, loanID)
	if err != nil {
		logServiceError(r, h.logger, "Service failed to get loan", err)
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Loan fetched successfully", dto.NewLoanResponse(l, h.now()))
}

// ListRepayments handles GET /loans/{loanID}/repayments
// @Summary List a loan's repayment journal
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.Envelope{data=[]dto.RepaymentResponse} "Repayments fetched successfully"
// @Failure 403 {object} dto.ErrorResponse "Loan belongs to another owner"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{loanID}/repayments [get]
// @Security BearerAuth
func (h *LoanHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get loan ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	entries, err := h.repayments.ListForLoan(r.Context(), owner, loanID)
	if err != nil {
		logServiceError(r, h.logger, "Service failed to list repayments", err)
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Repayments fetched successfully", dto.NewRepaymentListResponse(entries))
}
