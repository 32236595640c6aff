package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/identity"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("%w: no request body", apperrors.ErrInvalidArgument)
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", apperrors.ErrInvalidArgument, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"success":false,"error":{"message":"Internal Server Error","details":[]}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	respondJSON(w, status, dto.NewEnvelope(message, data))
}

// respondError maps domain errors onto HTTP statuses and the error envelope.
func respondError(w http.ResponseWriter, err error) {
	status, code, message := http.StatusInternalServerError, "internal", "Internal Server Error"
	details := []dto.FieldError{}

	var validationErrs apperrors.ValidationErrors
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &validationErrs):
		status, code, message = http.StatusBadRequest, "validation_failed", "Validation failed"
		for _, v := range validationErrs {
			details = append(details, dto.FieldError{Field: v.Field, Message: v.Message})
		}
	case errors.As(err, &validationErr):
		status, code, message = http.StatusBadRequest, "validation_failed", "Validation failed"
		details = append(details, dto.FieldError{Field: validationErr.Field, Message: validationErr.Message})
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, code, message = http.StatusBadRequest, "invalid_argument", err.Error()
	case errors.Is(err, apperrors.ErrUnauthenticated):
		status, code, message = http.StatusUnauthorized, "unauthenticated", err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status, code, message = http.StatusForbidden, "forbidden", err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, apperrors.ErrAlreadySettled):
		status, code, message = http.StatusConflict, "already_settled", "Loan already paid"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, code, message = http.StatusConflict, "already_exists", err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		status, code, message = http.StatusConflict, "conflict", err.Error()
	case errors.Is(err, apperrors.ErrOverpayment):
		status, code, message = http.StatusUnprocessableEntity, "overpayment", "Overpayment not allowed"
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorDetail{Message: message, Code: code, Details: details},
	})
}

func getIDFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, param, idStr)
	}
	return id, nil
}

// ownerID reads the authenticated owner placed in the context by the auth middleware.
func ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := identity.OwnerIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return 0, false
	}
	return id, true
}

// logServiceError logs expected domain outcomes at Warn and everything else at Error.
func logServiceError(r *http.Request, logger *slog.Logger, msg string, err error) {
	level := slog.LevelError
	if isClientError(err) {
		level = slog.LevelWarn
	}
	logger.Log(r.Context(), level, msg, slog.Any("error", err))
}

func isClientError(err error) bool {
	for _, target := range []error{
		apperrors.ErrValidation, apperrors.ErrInvalidArgument, apperrors.ErrUnauthenticated,
		apperrors.ErrForbidden, apperrors.ErrNotFound, apperrors.ErrAlreadyExists,
		apperrors.ErrAlreadySettled, apperrors.ErrOverpayment, apperrors.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
