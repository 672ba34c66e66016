package worker

import (
	"net/http"
	"time"

	"famwealth/src/api"
	apihandlers "famwealth/src/api/handlers"
	"famwealth/src/config"
	handlers "famwealth/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Logger  *logrus.Logger
}

func NewServer(handler *handlers.Handler, logger *logrus.Logger) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		Logger:  logger,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// InitRoutes exposes the jobs for manual runs. The worker listens on an
// internal port only, so the routes carry no JWT check.
func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(api.RequestLogger(s.Logger))

	s.Router.Get("/alive", apihandlers.Healthcheck)
	s.Router.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", s.Handler.ListJobs)
		r.Post("/sync-all", s.Handler.RunSyncAll)
		r.Post("/reminders", s.Handler.RunReminders)
	})
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 6 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
