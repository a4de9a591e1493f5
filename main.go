package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"walter/src/api"
	"walter/src/clients"
	"walter/src/config"
	"walter/src/utils"
	"walter/src/worker"
)

func main() {
	// Optional local overrides; deployed environments carry real env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	// The whole dependency graph is built once, here, and passed down.
	clientSet, err := clients.NewClients(cfg)
	if err != nil {
		return nil, err
	}

	var httpServer *http.Server
	if cfg.Service.Type == config.API {
		server, err := api.NewServer(cfg, clientSet, logger)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server)
	} else {
		server, err := worker.NewServer(cfg, clientSet, logger)
		if err != nil {
			return nil, err
		}
		httpServer = worker.NewHTTPServer(server)
	}

	go func() {
		logger.Infof("Starting %s server on port %s", cfg.Service.Type, cfg.Service.Port)

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorln("An error raised while setting up server", err)
			errC <- err
		}
	}()
	return errC, nil
}
