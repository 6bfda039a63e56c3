package http

import (
	"net/http"

	"github.com/oskarlind/sideline/internal/config"
	"github.com/oskarlind/sideline/internal/metrics"
	"github.com/oskarlind/sideline/internal/session"
	"github.com/oskarlind/sideline/internal/store"
)

func NewServer(sess *session.Session, saveStore store.SaveStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Session:        sess,
		Store:          saveStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/state", Chain(s.StateHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/timer/start", Chain(s.StartTimerHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/pause", Chain(s.PauseTimerHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/resume", Chain(s.ResumeTimerHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/halftime", Chain(s.StartHalftimeHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/halftime/end", Chain(s.EndHalftimeHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/configure", Chain(s.ConfigureTimerHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/stoppage", Chain(s.StoppageTimeHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/adjustment", Chain(s.TimeAdjustmentHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/reset", Chain(s.ResetTimerHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/timer/schedule", Chain(s.ScheduleStartHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/roster", Chain(s.ReplaceRosterHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/players", Chain(s.CreatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/players/{name}", Chain(s.DeletePlayerHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/substitution", Chain(s.SubstitutionHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/position/assign", Chain(s.AssignPositionHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/position/swap", Chain(s.SwapPositionsHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/position/recommendations", Chain(s.PositionRecommendationsHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/undo", Chain(s.UndoHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/redo", Chain(s.RedoHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/command-history", Chain(s.CommandHistoryHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/save", Chain(s.SaveGameHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/load", Chain(s.LoadGameHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/saves", Chain(s.ListSavesHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/saves/{id}", Chain(s.DeleteSaveHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/saves/clear", Chain(s.ClearSavesHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/analytics/report", Chain(s.AnalyticsReportHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/analytics/export", Chain(s.AnalyticsExportHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
