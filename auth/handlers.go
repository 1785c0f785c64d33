package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/httpx"
)

// Handlers exposes the token endpoint.
type Handlers struct {
	service Service
}

// NewHandlers creates the auth handlers.
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// HandleCreateToken godoc
// @Summary Exchange credentials for a session token
// @Description Issues (or re-issues) the caller's opaque token. Invalid
// @Description credentials, unknown users, and missing fields all yield 400
// @Description with no token.
// @Tags user
// @Accept json
// @Produce json
// @Param body body auth.CreateTokenRequest true "Credentials"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/user/token [post]
func (h *Handlers) HandleCreateToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		key, err := h.service.IssueToken(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: key})
	}
}
