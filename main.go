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
	"github.com/rs/zerolog/log"

	"github.com/basit/pdf-proxy/audit"
	"github.com/basit/pdf-proxy/handlers"
	"github.com/basit/pdf-proxy/initializers"
	"github.com/basit/pdf-proxy/links"
	"github.com/basit/pdf-proxy/routes"
	"github.com/basit/pdf-proxy/storage"
)

func main() {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := initializers.InitLogger(cfg.LogLevel, cfg.Dev); err != nil {
		log.Fatal().Err(err).Msg("error initializing logger")
	}
	for _, warning := range cfg.Warnings() {
		log.Warn().Msg(warning)
	}

	db, err := initializers.ConnectToDatabase(cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}
	store, err := initializers.InitStorage(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewRouter(cfg.CORSAllowOrigins)
	routes.RegisterLinkRoutes(router, handlers.NewLinkHandler(handlers.LinkHandlerOptions{
		Resolver:      links.NewResolver(db, nil),
		Fetcher:       storage.NewFetcher(store, cfg.FetchMode, cfg.SignedURLTTL, nil),
		Events:        audit.NewLogger(db),
		PublicBaseURL: cfg.PublicBaseURL,
	}), db)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("fetch_mode", string(cfg.FetchMode)).Msg("pdf proxy listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error running server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
