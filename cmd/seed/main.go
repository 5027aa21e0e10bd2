// Package main seeds the image collection with placeholder gallery
// images. Existing images are replaced.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/pictor/pictor/internal/metrics"
	"github.com/pictor/pictor/internal/repository"
	"github.com/pictor/pictor/internal/service"
)

// seedConfig is the subset of server configuration the seeder needs.
type seedConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
}

func main() {
	count := flag.Int("count", service.DefaultSeedCount, "number of images to seed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var cfg seedConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	svc := service.NewImageService(repo, metrics.NewNoop())

	seeded, err := svc.Seed(ctx, *count)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding complete", "images", seeded)
}
