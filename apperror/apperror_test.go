package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidationError("missing email", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("invalid body", nil), http.StatusBadRequest},
		{"auth", NewAuthError("invalid token", nil), http.StatusUnauthorized},
		{"not found", NewNotFoundError("recipe not found", nil), http.StatusNotFound},
		{"database", NewDatabaseError("query failed", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Fatalf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorStringIncludesWrapped(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := NewDatabaseError("failed to list tags", inner)

	if got, want := err.Error(), "failed to list tags: connection refused"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, inner) {
		t.Fatal("errors.Is should find the wrapped error")
	}
}

func TestToResponseHidesUnderlyingError(t *testing.T) {
	t.Parallel()

	err := NewInternalError("something went wrong", errors.New("secret detail"))
	if got := err.ToResponse().Error; got != "something went wrong" {
		t.Fatalf("ToResponse().Error = %q, leaked underlying detail", got)
	}
}

func TestFromErrorUnwrapsChain(t *testing.T) {
	t.Parallel()

	appErr := NewNotFoundError("tag not found", nil)
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := FromError(wrapped)
	if !ok {
		t.Fatal("FromError should find the AppError in the chain")
	}
	if got.Type != NotFoundError {
		t.Fatalf("Type = %v, want NotFoundError", got.Type)
	}

	if _, ok := FromError(errors.New("plain")); ok {
		t.Fatal("FromError should reject plain errors")
	}
	if _, ok := FromError(nil); ok {
		t.Fatal("FromError should reject nil")
	}
}

func TestTypePredicates(t *testing.T) {
	t.Parallel()

	if !IsValidationError(NewValidationError("x", nil)) {
		t.Fatal("IsValidationError")
	}
	if !IsAuthError(NewAuthError("x", nil)) {
		t.Fatal("IsAuthError")
	}
	if !IsNotFound(NewNotFoundError("x", nil)) {
		t.Fatal("IsNotFound")
	}
	if IsValidationError(NewAuthError("x", nil)) {
		t.Fatal("IsValidationError should not match AuthError")
	}
}
