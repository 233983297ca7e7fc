//	@title			Media Endpoint API
//	@version		1.0
//	@description	Micropub media ingestion and delivery gateway: authenticated uploads into object storage, served back with on-demand photo resizing.
//
//	@host		localhost:8180
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				OAuth 2.0 Bearer token, verified by token introspection. Format: **Bearer {token}**

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/mediapub/service/internal/auth"
	"github.com/mediapub/service/internal/config"
	"github.com/mediapub/service/internal/imgproc"
	"github.com/mediapub/service/internal/media"
	appMiddleware "github.com/mediapub/service/internal/middleware"
	"github.com/mediapub/service/internal/storage"

	_ "github.com/mediapub/service/docs/swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}

	// Pretty console output for development; plain JSON in production.
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}

	verifier := auth.NewVerifier(cfg.IntrospectEndpoint, cfg.OAuthClientID, cfg.OAuthClientSecret)
	pool := imgproc.NewPool(runtime.GOMAXPROCS(0))
	mediaHandler := media.NewHandler(store, pool, cfg)
	uploadLimiter := appMiddleware.NewRateLimiter(cfg.UploadRPS, cfg.UploadBurst)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/media", func(r chi.Router) {
		r.With(
			appMiddleware.IPRateLimit(uploadLimiter),
			appMiddleware.RequireScope(verifier, cfg.RequiredScope, cfg.AllowedUsername),
		).Post("/", mediaHandler.Upload)

		r.Get("/photo/{size}/{filename}", mediaHandler.ServePhoto)
		r.Get("/{category}/*", mediaHandler.ServeFile)
		r.Head("/{category}/*", mediaHandler.ServeFile)
	})

	srv := &http.Server{
		Addr:         cfg.Bind,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("bind", cfg.Bind).Str("env", cfg.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
