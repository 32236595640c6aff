package dto

import (
	"strconv"
	"time"

	"loan-ledger/internal/domain/loan"
)

// Envelope wraps every successful response body.
type Envelope struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Loans fetched successfully"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Details []FieldError `json:"details"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewEnvelope(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func formatMoney(m loan.Money) string {
	return loan.FormatMoney(m)
}
