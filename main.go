package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"famwealth/src/api"
	apicontrollers "famwealth/src/api/controllers"
	apihandlers "famwealth/src/api/handlers"
	"famwealth/src/app"
	"famwealth/src/config"
	"famwealth/src/events"
	"famwealth/src/utils"
	"famwealth/src/worker"
	workercontrollers "famwealth/src/worker/controllers"
	workerhandlers "famwealth/src/worker/handlers"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	logger := utils.NewLoggerFromConfig(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errC, err := run(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Error("Error while running")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	var httpServer *http.Server
	var application *app.App
	var cleanup func()

	switch cfg.Service.Type {
	case config.WORKER:
		a, err := app.New(ctx, cfg, logger, nil)
		if err != nil {
			return nil, err
		}
		application = a

		controller := workercontrollers.NewController(a.Brokers, a.Reminders, cfg.Scheduler.UserIDs, logger)
		if err := controller.LoadSchedules(cfg.Scheduler); err != nil {
			a.Close()
			return nil, err
		}
		cleanup = controller.Stop
		server := worker.NewServer(workerhandlers.NewHandler(controller), logger)
		httpServer = worker.NewHTTPServer(cfg, server)
	default:
		hub := events.NewHub(logger, cfg.Service.AllowedOrigins)
		a, err := app.New(ctx, cfg, logger, hub)
		if err != nil {
			return nil, err
		}
		application = a

		if a.Redis != nil {
			if err := events.Relay(ctx, a.Redis, hub); err != nil {
				a.Close()
				return nil, err
			}
		}
		controller := apicontrollers.NewController(a.Family, a.Reminders, a.Engine, a.Brokers, a.Dashboard, a.Export, a.Repositories.SyncLogs)
		server := api.NewServer(cfg, apihandlers.NewHandler(controller, hub), logger)
		httpServer = api.NewHTTPServer(cfg, server)
		cleanup = hub.Close
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer func() {
			cleanup()
			application.Close()
			cancel()
			close(errC)
		}()

		httpServer.SetKeepAlivesEnabled(false)
		if err := httpServer.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}
	}()

	go func() {
		logger.WithFields(logrus.Fields{
			"type": cfg.Service.Type,
			"port": cfg.Service.Port,
		}).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
