package middleware

import (
	"encoding/json"
	"net/http"

	"loan-ledger/internal/api/handler/dto"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error: dto.ErrorDetail{Message: message, Code: code, Details: []dto.FieldError{}},
	})
}
