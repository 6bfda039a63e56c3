package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

func (s *Server) StartTimerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Session.RosterSize() == 0 {
			respondError(w, http.StatusBadRequest, errors.New("cannot start game with an empty roster"))
			return
		}
		if err := s.Session.Start(); err != nil {
			log.Error("Failed to start game", "error", err)
			respondDomainError(w, err)
			return
		}
		log.Info("Game started")
		respondMessage(w, "Game started")
	}
}

func (s *Server) PauseTimerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Session.Pause(); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Game paused")
		respondMessage(w, "Game paused")
	}
}

func (s *Server) ResumeTimerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Session.Resume(); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Game resumed")
		respondMessage(w, "Game resumed")
	}
}

func (s *Server) StartHalftimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Session.StartHalftime(); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Halftime started")
		respondMessage(w, "Halftime started")
	}
}

func (s *Server) EndHalftimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Session.EndHalftime(); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Halftime ended")
		respondMessage(w, "Halftime ended")
	}
}

type configureRequest struct {
	GameLengthMinutes int `json:"game_length_minutes"`
	PeriodCount       int `json:"period_count"`
}

func (s *Server) ConfigureTimerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req configureRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.Session.Configure(req.GameLengthMinutes, req.PeriodCount); err != nil {
			log.Warn("Configuration rejected", "length_min", req.GameLengthMinutes, "periods", req.PeriodCount, "error", err)
			respondDomainError(w, err)
			return
		}
		log.Info("Game configured", "length_min", req.GameLengthMinutes, "periods", req.PeriodCount)
		respondMessage(w, "Game configured")
	}
}

type stoppageRequest struct {
	Seconds     int  `json:"seconds"`
	PeriodIndex *int `json:"period_index,omitempty"`
}

func (s *Server) StoppageTimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req stoppageRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.Session.AddStoppage(req.Seconds, req.PeriodIndex); err != nil {
			respondDomainError(w, err)
			return
		}
		log.Info("Stoppage time added", "seconds", req.Seconds)
		respondMessage(w, "Stoppage time added")
	}
}

type adjustmentRequest struct {
	Seconds     int  `json:"seconds"`
	PeriodIndex *int `json:"period_index,omitempty"`
	ApplyToAll  bool `json:"apply_to_all"`
}

func (s *Server) TimeAdjustmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustmentRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		s.Session.Adjust(req.Seconds, req.PeriodIndex, req.ApplyToAll)
		log.Info("Time adjustment applied", "seconds", req.Seconds, "all_periods", req.ApplyToAll)
		respondMessage(w, "Time adjustment applied")
	}
}

type scheduleRequest struct {
	StartTS time.Time `json:"start_ts"`
}

func (s *Server) ScheduleStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if req.StartTS.IsZero() {
			respondError(w, http.StatusBadRequest, errors.New("start_ts is required"))
			return
		}
		s.Session.SetScheduledStart(req.StartTS)
		log.Info("Kickoff scheduled", "start_ts", req.StartTS)
		respondMessage(w, "Kickoff scheduled")
	}
}

func (s *Server) ResetTimerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Session.Reset()
		log.Info("Game reset")
		respondMessage(w, "Game reset")
	}
}
