package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/httpx"
	"github.com/user/recipebox-go/i18n"
)

// Handlers exposes the user HTTP endpoints over a directory Service.
type Handlers struct {
	service  Service
	catalog  *i18n.Catalog
	validate *validator.Validate
}

// NewHandlers creates the user handlers.
func NewHandlers(service Service, catalog *i18n.Catalog) *Handlers {
	return &Handlers{
		service:  service,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// validationMessage maps a validator failure to a catalog message.
func (h *Handlers) validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Email":
			return h.catalog.Text("user_no_email")
		case "Password":
			return h.catalog.Text("user_password_too_short")
		}
	}
	return err.Error()
}

// HandleCreateUser godoc
// @Summary Create a user account
// @Description Registers a new user. Signup is public.
// @Tags user
// @Accept json
// @Produce json
// @Param body body users.CreateUserRequest true "Signup details"
// @Success 201 {object} users.UserResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing email, short password, or duplicate email"
// @Router /api/user/create [post]
func (h *Handlers) HandleCreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			httpx.WriteError(w, apperror.NewValidationError(h.validationMessage(err), nil))
			return
		}

		user, err := h.service.Create(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

// HandleGetProfile godoc
// @Summary Get the caller's profile
// @Tags user
// @Produce json
// @Security TokenAuth
// @Success 200 {object} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/user/profile [get]
func (h *Handlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := FromContext(r.Context())
		if !ok {
			httpx.WriteError(w, apperror.NewAuthError(h.catalog.Text("auth_invalid_token"), nil))
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(user))
	}
}

// HandleUpdateProfile godoc
// @Summary Update the caller's profile
// @Description Partial update of name and/or password.
// @Tags user
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body users.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} users.ProfileResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/user/profile [patch]
func (h *Handlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := FromContext(r.Context())
		if !ok {
			httpx.WriteError(w, apperror.NewAuthError(h.catalog.Text("auth_invalid_token"), nil))
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			httpx.WriteError(w, apperror.NewValidationError(h.validationMessage(err), nil))
			return
		}

		updated, err := h.service.UpdateProfile(r.Context(), user.ID, &req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(updated))
	}
}
