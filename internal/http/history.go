package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
)

func (s *Server) UndoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Session.Undo() {
			respondError(w, http.StatusConflict, errors.New("nothing to undo"))
			return
		}
		log.Info("Action undone")
		respondMessage(w, "Undone")
	}
}

func (s *Server) RedoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Session.Redo() {
			respondError(w, http.StatusConflict, errors.New("nothing to redo"))
			return
		}
		log.Info("Action redone")
		respondMessage(w, "Redone")
	}
}

func (s *Server) CommandHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, envelope{"success": true, "history": s.Session.History()})
	}
}
