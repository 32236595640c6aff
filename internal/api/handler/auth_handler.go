package handler

import (
	"log/slog"
	"net/http"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/identity"
)

type AuthHandler struct {
	accounts identity.AccountService
	logger   *slog.Logger
}

func NewAuthHandler(accounts identity.AccountService, l *slog.Logger) *AuthHandler {
	if accounts == nil {
		panic("account service cannot be nil")
	}
	return &AuthHandler{
		accounts: accounts,
		logger:   l.With("component", "AuthHandler"),
	}
}

// Register handles POST /auth/register
// @Summary Register a shopkeeper account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Email and password"
// @Success 201 {object} dto.Envelope{data=dto.OwnerResponse} "User Created Successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	owner, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		logServiceError(r, h.logger, "Registration failed", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Owner registered", slog.Int64("ownerID", owner.ID))
	respondSuccess(w, http.StatusCreated, "User Created Successfully", dto.NewOwnerResponse(owner))
}

// Login handles POST /auth/login
// @Summary Exchange credentials for a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Email and password"
// @Success 200 {object} dto.Envelope{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, err)
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logServiceError(r, h.logger, "Login failed", err)
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful", dto.NewTokenResponse(session))
}
