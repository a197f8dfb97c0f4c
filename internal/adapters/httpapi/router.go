package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/autumnleaf-ra/Anime-API/internal/app"
)

type Options struct {
	RequestTimeout time.Duration
	CORSOrigins    []string
	// RateLimitRequests == 0 désactive la limitation par IP.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type Server struct {
	logger zerolog.Logger
	anime  *app.AnimeService
	opts   Options
}

func NewServer(logger zerolog.Logger, anime *app.AnimeService, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &Server{logger: logger, anime: anime, opts: opts}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(correlationID)
	r.Use(recoverer)
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))
	r.Use(requestMetrics)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", headerRequestID, headerTransactionID},
			ExposedHeaders: []string{headerRequestID},
			MaxAge:         86400,
		}))
	}
	if s.opts.RateLimitRequests > 0 {
		r.Use(httprate.LimitByIP(s.opts.RateLimitRequests, s.opts.RateLimitWindow))
	}
	r.Use(requestTimeout(s.opts.RequestTimeout))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
		r.Get("/openapi.json", s.handleOpenAPI)

		if s.anime != nil {
			NewAnimeHandler(s.anime).Routes(r)
		}
	})

	return r
}
