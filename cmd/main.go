package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/petstore/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	shared.SetLogLevel(logger, config.Log.ParseLevel())

	runner := NewRunner(RunnerOpts{Config: config, Logger: logger})

	app := &cli.Command{
		Name:     "petstore",
		Usage:    "Manage pet stores, their employees and their customers",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, os.Args)
	stop()
	runner.Close()

	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
