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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/payqr/internal/config"
	"github.com/cristianadrielbraun/payqr/internal/handlers"
	"github.com/cristianadrielbraun/payqr/internal/middleware"
	"github.com/cristianadrielbraun/payqr/internal/session"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(gin.Recovery())

	// Static assets
	r.Static("/web/static", "web/static")
	r.Static("/web/assets", "web/assets")

	sessions := session.NewStore(cfg.SessionTTL, session.Options{
		Debounce:          cfg.Debounce,
		DisposableTimeout: cfg.DisposableTimeout,
	})
	defer sessions.Close()

	h := handlers.New(sessions, cfg.MaxLogoBytes)
	h.Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("payqr listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Int("sessions", sessions.Len()).Msg("server exited")
}
