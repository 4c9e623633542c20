package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cortexhq/embedding-service/internal/api"
	"github.com/cortexhq/embedding-service/internal/config"
	"github.com/cortexhq/embedding-service/internal/embeddings/ollama"
	"github.com/cortexhq/embedding-service/internal/logger"
	"github.com/cortexhq/embedding-service/internal/model"
)

func main() {
	// Optional port flag override
	portFlag := flag.Int("port", 0, "Override EMBEDDING_HTTP_PORT")
	flag.Parse()

	log := logger.New(config.ServiceName)

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *portFlag != 0 {
		cfg.HTTPPort = *portFlag
	}

	log.Info().
		Str("version", config.ServiceVersion).
		Str("embed_model", cfg.EmbedModel).
		Str("addr", cfg.GetHTTPAddr()).
		Msg("Embedding service starting…")

	// -------- Model handle -----------------
	// Initialize must complete before the listener binds: a failed startup
	// probe is fatal and the service never accepts traffic without a
	// working model.
	provider := ollama.New(cfg.OllamaURL, cfg.EmbedModel, cfg.RequestTimeout())
	handle := model.NewHandle(provider, log)

	initCtx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout())
	if err := handle.Initialize(initCtx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to load embedding model")
	}
	cancel()

	// -------- Router & Server --------------
	router := api.NewRouter(handle, cfg.EmbedModel)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.GetHTTPAddr()).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown: stop accepting, drain, then release the model.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	handle.Teardown()
	log.Info().Msg("Server exited")
}
