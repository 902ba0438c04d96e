package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"tezgah/internal/bot"
	"tezgah/internal/bot/api"
	"tezgah/internal/bot/session"
	"tezgah/internal/infra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadBotConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger("bot", cfg.AppEnv)

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to telegram")
	}

	b := bot.New(bot.Options{
		API:      botAPI,
		Store:    session.NewStore(cfg.SessionTTL),
		Client:   api.NewClient(cfg.APIBaseURL, cfg.APIKey, cfg.APITimeout),
		MockMode: cfg.MockMode,
		Logger:   &logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	b.Run(ctx)
	logger.Info().Msg("bot stopped")
}
