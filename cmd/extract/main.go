package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/clipshelf/clipshelf/internal/aggregator"
	"github.com/clipshelf/clipshelf/internal/config"
	"github.com/clipshelf/clipshelf/internal/linkstore"
	"github.com/clipshelf/clipshelf/internal/messagestore"
	"github.com/clipshelf/clipshelf/internal/scanner"
	"github.com/clipshelf/clipshelf/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	days := flag.Int("days", -1, "Only scan messages from the last N days (0 = whole archive)")
	sender := flag.String("sender", "", "Only scan messages from this handle")
	out := flag.String("out", "", "Links file path (overrides config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := service.ExtractOptions{
		DaysBack: cfg.Extract.DaysBack,
		Sender:   cfg.Extract.Sender,
	}
	if *days >= 0 {
		opts.DaysBack = *days
	}
	if *sender != "" {
		opts.Sender = *sender
	}
	linksPath := cfg.Links.Path
	if *out != "" {
		linksPath = *out
	}

	msgStore, err := messagestore.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("failed to open message archive", "error", err, "path", cfg.Store.Path)
		os.Exit(1)
	}
	defer msgStore.Close()

	agg := aggregator.New(scanner.New(logger))
	svc := service.NewLinkService(msgStore, linkstore.New(linksPath), agg, logger)

	result, err := svc.Extract(context.Background(), opts)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		logger.Error("if the archive could not be opened, make sure your terminal has Full Disk Access")
		os.Exit(1)
	}

	logger.Info("extraction finished",
		"records", result.RecordCount,
		"links", result.LinkCount,
		"out", linksPath,
	)
}
