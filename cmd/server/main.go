package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glassdoor-search/internal/config"
	"glassdoor-search/internal/handler"
	"glassdoor-search/internal/service"
	"glassdoor-search/pkg/logger"
)

type Application struct {
	configPath string
	envFile    string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "config/dev.yaml", "Configuration file path (empty: environment only)")
	flag.StringVar(&app.envFile, "env", ".env", "Environment file loaded before the configuration")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug mode")
	flag.Parse()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func (app *Application) Run() error {
	if err := config.LoadDotEnv(app.envFile); err != nil {
		return err
	}

	manager := config.NewManager()
	cfg, err := manager.Load(app.configPath)
	if err != nil {
		return err
	}

	log := app.setupLogger(cfg)

	search, err := service.NewReloadable(cfg)
	if err != nil {
		return err
	}
	defer search.Close()

	manager.Watch(func(updated *config.Config) {
		app.setupLogger(updated)
		if err := search.Apply(updated); err != nil {
			log.WithError(err).Warn("Keeping previous search configuration")
		}
	})

	controller := handler.NewController(search, search)
	server := handler.NewApp(controller, time.Duration(cfg.Provider.TimeoutMs)*time.Millisecond)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Server.Address()).Info("Server started")
		errCh <- server.Listen(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

func (app *Application) setupLogger(cfg *config.Config) *logger.Logger {
	settings := cfg.LoggerSettings()
	if app.debug {
		settings.Level = "debug"
	}

	log := logger.New(settings)
	logger.SetLogger(log)
	return log.WithComponent("server")
}
