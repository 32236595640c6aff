package handler

import (
	"log/slog"
	"net/http"
	"time"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/repayment"
)

type RepaymentHandler struct {
	service repayment.RepaymentService
	logger  *slog.Logger
}

func NewRepaymentHandler(s repayment.RepaymentService, l *slog.Logger) *RepaymentHandler {
	if s == nil {
		panic("repayment service cannot be nil")
	}
	return &RepaymentHandler{service: s, logger: l.With("component", "RepaymentHandler")}
}

// RecordRepayment handles POST /repayments
// @Summary Record a payment against a loan
// @Description Reduces the loan balance atomically and marks the loan paid once the balance reaches zero.
// @Tags Repayments
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param request body dto.RecordRepaymentRequest true "Payment details"
// @Success 201 {object} dto.Envelope{data=dto.ReceiptResponse} "Payment recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Loan belongs to another owner"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan already paid"
// @Failure 422 {object} dto.ErrorResponse "Overpayment not allowed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /repayments [post]
// @Security BearerAuth
func (h *RepaymentHandler) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.RecordRepaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	receipt, err := h.service.Record(r.Context(), owner, req.ToFields())
	if err != nil {
		logServiceError(r, h.logger, "Service failed to record repayment", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Payment recorded successfully",
		slog.Int64("loanID", receipt.Loan.ID), slog.Int64("repaymentID", receipt.Repayment.ID))
	respondSuccess(w, http.StatusCreated, "Payment recorded successfully", dto.NewReceiptResponse(receipt, time.Now()))
}
