package http

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/oskarlind/sideline/internal/game"
)

type saveRequest struct {
	Name string `json:"name,omitempty"`
}

func (s *Server) SaveGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		record, err := s.Store.Save(req.Name, s.Session.Snapshot())
		if err != nil {
			log.Error("Failed to save game", "error", err)
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		s.Metrics.IncSaves()
		log.Info("Game saved", "id", record.ID, "name", record.Name)
		respondJSON(w, http.StatusOK, envelope{"success": true, "save": record})
	}
}

// loadRequest loads either a stored slot (by id, or the latest slot when id
// is empty) or an inline snapshot document pasted by the coach.
type loadRequest struct {
	ID    string          `json:"id,omitempty"`
	State json.RawMessage `json:"state,omitempty"`
}

func (s *Server) LoadGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loadRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}

		var (
			state *game.GameState
			err   error
		)
		switch {
		case len(req.State) > 0:
			state = game.NewGameState()
			err = json.Unmarshal(req.State, state)
		case req.ID != "":
			state, err = s.Store.Load(req.ID)
		default:
			state, err = s.Store.LoadLatest()
		}
		if err != nil {
			log.Error("Failed to load game", "id", req.ID, "error", err)
			respondDomainError(w, err)
			return
		}

		s.Session.Restore(state)
		log.Info("Game loaded", "id", req.ID, "inline", len(req.State) > 0)
		respondMessage(w, "Game loaded")
	}
}

func (s *Server) ListSavesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.Store.List()
		if err != nil {
			log.Error("Failed to list saves", "error", err)
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		respondJSON(w, http.StatusOK, envelope{"success": true, "saves": records})
	}
}

func (s *Server) DeleteSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.Store.Delete(id); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Save deleted", "id", id)
		respondMessage(w, "Save deleted")
	}
}

func (s *Server) ClearSavesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.Clear(); err != nil {
			log.Error("Failed to clear saves", "error", err)
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		log.Info("All saves cleared")
		respondMessage(w, "All saves cleared")
	}
}
