package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/oskarlind/sideline/internal/analytics"
)

func (s *Server) AnalyticsReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := s.Session.Report()
		respondJSON(w, http.StatusOK, envelope{"success": true, "report": report})
	}
}

func (s *Server) AnalyticsExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := s.Session.Report()
		doc, err := analytics.WriteCSV(report)
		if err != nil {
			if errors.Is(err, analytics.ErrEmptyRoster) {
				respondError(w, http.StatusBadRequest, err)
				return
			}
			log.Error("Failed to export analytics", "error", err)
			respondError(w, http.StatusInternalServerError, err)
			return
		}

		filename := fmt.Sprintf("playing-time-%s.csv", report.GeneratedAt.Format("20060102-150405"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(doc)); err != nil {
			log.Error("Failed to write CSV response", "error", err)
		}
	}
}
