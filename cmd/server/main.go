package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipshelf/clipshelf/internal/aggregator"
	"github.com/clipshelf/clipshelf/internal/api"
	"github.com/clipshelf/clipshelf/internal/api/handler"
	"github.com/clipshelf/clipshelf/internal/config"
	"github.com/clipshelf/clipshelf/internal/linkstore"
	"github.com/clipshelf/clipshelf/internal/messagestore"
	"github.com/clipshelf/clipshelf/internal/resolver"
	"github.com/clipshelf/clipshelf/internal/scanner"
	"github.com/clipshelf/clipshelf/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("clipshelf %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting clipshelf",
		"version", Version,
		"build_time", BuildTime,
	)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	links := linkstore.New(cfg.Links.Path)
	msgStore, err := messagestore.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("failed to open message archive", "error", err)
		os.Exit(1)
	}
	defer msgStore.Close()

	agg := aggregator.New(scanner.New(logger))
	linkSvc := service.NewLinkService(msgStore, links, agg, logger)
	emb := resolver.New(cfg.Resolver, logger)

	extractDefaults := service.ExtractOptions{
		DaysBack: cfg.Extract.DaysBack,
		Sender:   cfg.Extract.Sender,
	}
	linksHandler := handler.NewLinksHandler(linkSvc, extractDefaults, logger)
	resolveHandler := handler.NewResolveHandler(emb, logger)
	healthHandler := handler.NewHealthHandler(nil)
	uiHandler := handler.NewUIHandler()

	router := api.NewRouter(linksHandler, resolveHandler, healthHandler, uiHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
