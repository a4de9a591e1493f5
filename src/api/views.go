package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"

	handlers "walter/src/api/handlers"
	"walter/src/clients"
	"walter/src/config"
)

type Server struct {
	Router    *chi.Mux
	Handler   handlers.Handler
	tokenAuth *jwtauth.JWTAuth
	port      string
}

func NewServer(cfg *config.Config, c *clients.Clients, logger *logrus.Logger) (*Server, error) {
	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   *handlers.NewHandler(c, logger),
		tokenAuth: c.TokenAuth,
		port:      cfg.Service.Port,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Post("/api/users", s.Handler.CreateUser)
	s.Router.Post("/api/auth", s.Handler.AuthUser)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Post("/api/stocks", s.Handler.AddStock)
		r.Get("/api/stocks", s.Handler.GetStocksForUser)
	})
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
