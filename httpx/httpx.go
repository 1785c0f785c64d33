// Package httpx holds the response helpers shared by every handler package.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/user/recipebox-go/apperror"
)

// WriteJSON serializes data with the given status. A nil data writes no body.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError renders err as a standardized error response. Errors that are
// not AppErrors are wrapped as internal errors so no raw detail leaks out.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
