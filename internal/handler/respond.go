package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/porygon/mealplanner/internal/validation"
)

// maxBodyBytes bounds request bodies. Meal plans are the largest payload.
const maxBodyBytes = 1 << 20

var errBadJSON = errors.New("request body must be valid JSON")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return errBadJSON
	}
	return nil
}

// writeInputError answers 400 for validation failures and reports whether it did.
func writeInputError(w http.ResponseWriter, err error) bool {
	if validation.IsInputError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
