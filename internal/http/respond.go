package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/oskarlind/sideline/internal/game"
	"github.com/oskarlind/sideline/internal/store"
)

// envelope is the response shape shared by every API handler.
type envelope map[string]any

func respondJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func respondMessage(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, envelope{"success": true, "message": message})
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, envelope{"success": false, "error": err.Error()})
}

// respondDomainError maps domain errors onto status codes: unknown entities
// are 404, duplicates 409, validation rejections 400.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound), errors.Is(err, store.ErrSaveNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, game.ErrDuplicatePlayer):
		respondError(w, http.StatusConflict, err)
	default:
		respondError(w, http.StatusBadRequest, err)
	}
}

// decodeBody parses a JSON request body. An empty body decodes into the
// zero value, so action endpoints may be called without a payload.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
