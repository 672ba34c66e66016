package api

import (
	"net/http"
	"time"

	handlers "famwealth/src/api/handlers"
	"famwealth/src/config"
	"famwealth/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
	Logger    *logrus.Logger
	origins   []string
}

func NewServer(cfg *config.Config, handler *handlers.Handler, logger *logrus.Logger) *Server {
	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handler,
		TokenAuth: jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil),
		Logger:    logger,
		origins:   cfg.Service.AllowedOrigins,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(RequestLogger(s.Logger))
	s.Router.Use(corsHandler(s.origins).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.TokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/api/members", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllMembers)
			r.Post("/", s.Handler.CreateMember)
			r.Get("/{id}", s.Handler.GetMemberByID)
			r.Put("/{id}", s.Handler.UpdateMember)
			r.Delete("/{id}", s.Handler.DeleteMember)
		})

		r.Route("/api/investments", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllInvestments)
			r.Post("/", s.Handler.CreateInvestment)
			r.Put("/{id}", s.Handler.UpdateInvestment)
			r.Delete("/{id}", s.Handler.DeleteInvestment)
		})

		r.Route("/api/liabilities", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllLiabilities)
			r.Post("/", s.Handler.CreateLiability)
			r.Put("/{id}", s.Handler.UpdateLiability)
			r.Delete("/{id}", s.Handler.DeleteLiability)
		})

		r.Route("/api/accounts", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllAccounts)
			r.Post("/", s.Handler.CreateAccount)
			r.Put("/{id}", s.Handler.UpdateAccount)
			r.Delete("/{id}", s.Handler.DeleteAccount)
		})

		r.Route("/api/reminders", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllReminders)
			r.Post("/", s.Handler.CreateReminder)
			r.Post("/regenerate", s.Handler.RegenerateReminders)
			r.Delete("/{id}", s.Handler.DeleteReminder)
		})

		r.Get("/api/holdings", s.Handler.GetHoldings)
		r.Post("/api/sync", s.Handler.SyncHoldings)
		r.Get("/api/sync-logs", s.Handler.GetSyncLogs)

		r.Route("/api/brokers/{broker}", func(r chi.Router) {
			r.Get("/login-url", s.Handler.GetLoginURL)
			r.Post("/session", s.Handler.PostBrokerSession)
			r.Post("/sync", s.Handler.SyncBroker)
		})

		r.Get("/api/dashboard", s.Handler.GetDashboard)
		r.Get("/api/dashboard/export", s.Handler.GetDashboardXLSX)
		r.Get("/api/reports/{category}", s.Handler.GetCategoryReport)
		r.Get("/api/events", s.Handler.StreamEvents)
	})
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
}

// RequestLogger puts a request scoped logrus entry into the context and logs
// one line per request.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := logger.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(utils.WithLogger(r.Context(), entry)))
			entry.WithFields(logrus.Fields{
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
			}).Info("request handled")
		})
	}
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		Handler:      server,
	}
	return httpServer
}
