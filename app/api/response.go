package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mytheresa/go-configurable-catalog/models"
)

func OKResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusOK, data)
}

func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// the status line is already written, an encode failure cannot be reported
	_ = json.NewEncoder(w).Encode(data)
}

func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{"error": message})
}

// StatusFor maps a storage or domain error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrAttributeNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCategoryExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotConfigurable), errors.Is(err, models.ErrInvalidChild):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
