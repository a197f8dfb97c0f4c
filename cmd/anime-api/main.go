package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/autumnleaf-ra/Anime-API/internal/adapters/httpapi"
	"github.com/autumnleaf-ra/Anime-API/internal/adapters/jsonfile"
	"github.com/autumnleaf-ra/Anime-API/internal/app"
	"github.com/autumnleaf-ra/Anime-API/internal/buildinfo"
	"github.com/autumnleaf-ra/Anime-API/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	addr := flag.String("addr", cfg.Server.Addr, "Listen address (e.g. 127.0.0.1:8080)")
	dataset := flag.String("dataset", cfg.Dataset.Path, "Path to the anime JSON dataset")
	flag.Parse()

	logger := newLogger(cfg.Log)
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("dataset", *dataset).Msg("starting")

	if _, err := os.Stat(*dataset); err != nil {
		// Pas fatal: chaque requête relit le fichier et renverra 500 tant qu'il manque.
		logger.Warn().Err(err).Str("dataset", *dataset).Msg("dataset not readable yet")
	}

	source := jsonfile.New(*dataset, cfg.Dataset.Selector)
	animeSvc := app.NewAnimeService(source)
	animeSvc.SetMaxConcurrentLoads(cfg.Dataset.MaxConcurrentLoads)

	srv := httpapi.NewServer(logger, animeSvc, httpapi.Options{
		RequestTimeout:    cfg.Server.RequestTimeout,
		CORSOrigins:       cfg.CORS.AllowedOrigins,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
	})
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", *addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Str("app", "anime-api").Logger()
}
