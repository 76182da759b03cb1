// Command server runs the WhatsApp sales-assistant backoffice: a JSON API
// over the product catalog, user registry, conversation history, and prompt
// assembly, plus the static admin panel.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	_ "github.com/tbourn/go-whatsapp-backoffice/docs"
	"github.com/tbourn/go-whatsapp-backoffice/internal/config"
	httpapi "github.com/tbourn/go-whatsapp-backoffice/internal/http"
	"github.com/tbourn/go-whatsapp-backoffice/internal/observability"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
	"github.com/tbourn/go-whatsapp-backoffice/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title           WhatsApp Backoffice API
// @version         1.0
// @description     Backoffice for a WhatsApp sales assistant: product catalog, user registry, conversation history, and AI prompt assembly.
// @license.name    MIT
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	if cfg.UsingFallbackPassword() {
		log.Warn().Msg("ADMIN_PASSWORD not set; using the built-in fallback. Set it before exposing this service.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.Setup(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown incomplete")
		}
	}()

	st := store.New(cfg.DataDir)
	if err := st.Seed(); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to prepare data directory")
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, st, cfg)

	if cfg.SwaggerEnabled {
		engine.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("version", appVersion).
			Str("port", cfg.Port).
			Str("data_dir", cfg.DataDir).
			Bool("swagger", cfg.SwaggerEnabled).
			Msg("backoffice listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}
	log.Info().Msg("backoffice stopped")
}
