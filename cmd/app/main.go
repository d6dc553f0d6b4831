package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"AvoDash/internal/di"
	"AvoDash/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "avodash: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	// Wire DI: loads the dataset, so a bad source fails here
	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("app initialization failed: %w", err)
	}
	defer cleanup()

	// Run application (blocks until signal)
	return app.Run(context.Background())
}
