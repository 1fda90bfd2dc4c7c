package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"adboard/internal/domain"
)

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ Failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps domain errors to HTTP statuses
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &ve):
		writeErrorMessage(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &tooLarge):
		writeErrorMessage(w, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
	case errors.Is(err, domain.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	default:
		log.Printf("❌ %s %s: %v", r.Method, r.URL.Path, err)
		writeErrorMessage(w, http.StatusInternalServerError, err.Error())
	}
}
