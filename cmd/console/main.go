package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/brenosouzaaa/sistema-pizzaria/bootstrap"
	"github.com/brenosouzaaa/sistema-pizzaria/config"
	"github.com/brenosouzaaa/sistema-pizzaria/console"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	sqlitePath := flag.String("sqlite", "", "use a local SQLite file instead of the configured database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *sqlitePath != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.DSN = *sqlitePath
	}
	// the menu owns the terminal
	utils.InitLogger(utils.LogConfig{Level: cfg.App.LogLevel, File: cfg.App.LogFile, Quiet: true})

	app, cleanup, err := bootstrap.InitWithConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := console.New(app, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "console stopped: %v\n", err)
	}
}
