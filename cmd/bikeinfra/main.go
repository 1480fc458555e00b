package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LdDl/bikeinfra"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	logger, err := bikeinfra.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Processing failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *Config, logger *zap.Logger) error {
	profile, ok := bikeinfra.ProfileByName(cfg.Profile, bikeinfra.WithLogger(logger))
	if !ok {
		return fmt.Errorf("Unknown profile '%s'", cfg.Profile)
	}
	logger.Info("Profile",
		zap.String("name", profile.Name()),
		zap.String("description", profile.Description()),
		zap.Bool("overlay", profile.IsOverlay()),
		zap.String("attribution", profile.Attribution()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := bikeinfra.NewGeoJSONCollector()
	options := []func(*bikeinfra.Runner){bikeinfra.WithRunnerLogger(logger)}
	if cfg.Workers > 0 {
		options = append(options, bikeinfra.WithWorkers(cfg.Workers))
	}
	runner := bikeinfra.NewRunner(profile, collector, options...)
	stats, err := runner.RunFile(ctx, cfg.OSMPath)
	if err != nil {
		return err
	}

	counts := collector.LayerCounts()
	for _, layer := range collector.Layers() {
		logger.Info("Layer", zap.String("name", layer), zap.Int("features", counts[layer]))
	}
	if stats.HasBound {
		logger.Info("Data bounds",
			zap.Float64s("bounds", []float64{stats.Bound.Min.Lon(), stats.Bound.Min.Lat(), stats.Bound.Max.Lon(), stats.Bound.Max.Lat()}),
		)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return errors.Wrap(err, "Can't create output directory")
	}
	file, err := os.Create(cfg.Output)
	if err != nil {
		return errors.Wrap(err, "Can't create output file")
	}
	defer file.Close()
	if _, err := collector.WriteTo(file); err != nil {
		return errors.Wrapf(err, "Can't write '%s'", cfg.Output)
	}
	logger.Info("Output written", zap.String("filename", cfg.Output))
	return nil
}
