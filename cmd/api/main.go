package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tezgah/internal/http/handlers"
	"tezgah/internal/http/httpapi"
	"tezgah/internal/infra"
	"tezgah/internal/listing"
	"tezgah/internal/providers/openrouter"
	"tezgah/internal/providers/replicate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger("api", cfg.AppEnv)

	replicateClient := replicate.NewClient(replicate.Options{
		Token:           cfg.ReplicateAPIToken,
		CaptionVersion:  cfg.ReplicateCaptionVersion,
		UpscaleVersion:  cfg.ReplicateUpscaleVersion,
		BgRemoveVersion: cfg.ReplicateBgRemoveVer,
		RequestTimeout:  cfg.ReplicateTimeout,
		PollInterval:    cfg.ReplicatePollInterval,
		MaxPollAttempts: cfg.ReplicateMaxPollAttempt,
		Logger:          &logger,
	})

	openRouterClient := openrouter.NewClient(openrouter.Options{
		APIKey:      cfg.OpenRouterAPIKey,
		URL:         cfg.OpenRouterURL,
		Model:       cfg.OpenRouterModel,
		Temperature: cfg.OpenRouterTemperature,
		MaxTokens:   cfg.OpenRouterMaxTokens,
		Timeout:     cfg.OpenRouterTimeout,
		Logger:      &logger,
	})

	builder := listing.NewBuilder(listing.Options{
		Images:    replicateClient,
		Generator: openRouterClient,
		MockMode:  cfg.MockMode,
		Logger:    &logger,
	})

	app := handlers.NewApp(builder, &logger)
	router := httpapi.NewRouter(cfg, app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
