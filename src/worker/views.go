package worker

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"walter/src/clients"
	"walter/src/config"
	"walter/src/scheduler"
	"walter/src/utils"
	handlers "walter/src/worker/handlers"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
	Task    *scheduler.ScheduledTask
	port    string
}

// NewServer builds the worker: an HTTP surface to trigger newsletter runs
// plus an optional cron schedule for unattended runs.
func NewServer(cfg *config.Config, c *clients.Clients, logger *logrus.Logger) (*Server, error) {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handlers.NewHandler(c, logger),
		port:    cfg.Service.Port,
	}
	server.InitRoutes()

	if cfg.Newsletter.CronSpec != "" {
		task, err := scheduler.NewScheduledTask(cfg.Newsletter.CronSpec, logger, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			ctx = utils.WithLogger(ctx, logger)
			if _, err := c.NewsletterService.Run(ctx); err != nil {
				logger.Errorf("Scheduled newsletter run failed: %v", err)
			}
		})
		if err != nil {
			return nil, err
		}
		server.Task = task
	}
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/newsletters", func(r chi.Router) {
		r.Post("/", s.Handler.SendNewsletters)
	})
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:        ":" + server.port,
		ReadTimeout: 30 * time.Second,
		// Runs stream no intermediate output; the write timeout must cover a
		// full synchronous pipeline run.
		WriteTimeout: 15 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
