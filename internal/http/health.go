package http

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		if err := s.Store.Ping(r.Context()); err != nil {
			log.Error("Health check failed", "error", err)
			http.Error(w, "save store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.Session.View()
		respondJSON(w, http.StatusOK, envelope{"success": true, "state": view})
	}
}
