package http

import (
	"net/http"

	"github.com/oskarlind/sideline/internal/config"
	"github.com/oskarlind/sideline/internal/metrics"
	"github.com/oskarlind/sideline/internal/session"
	"github.com/oskarlind/sideline/internal/store"
)

type Server struct {
	Session        *session.Session
	Store          store.SaveStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
