package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/bootstrap"
	"github.com/brenosouzaaa/sistema-pizzaria/config"
	"github.com/brenosouzaaa/sistema-pizzaria/router"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	utils.InitLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(utils.LogConfig{Level: cfg.App.LogLevel, File: cfg.App.LogFile})

	if cfg.App.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	app, cleanup, err := bootstrap.InitWithConfig(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to start: %v", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router.SetupRouter(app),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.Printf("Listening on %s", cfg.App.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Errorf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Shutdown: %v", err)
	}
	utils.InfoLogger.Info("Server stopped")
}
