package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the API service configuration loaded from environment
// variables. Provider version identifiers are optional capabilities: an
// absent version disables the corresponding image operation.
type Config struct {
	AppEnv           string
	Port             string
	APIKey           string
	MockMode         bool
	RateLimitPerMin  int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	OpenRouterAPIKey      string
	OpenRouterModel       string
	OpenRouterURL         string
	OpenRouterTimeout     time.Duration
	OpenRouterMaxTokens   int
	OpenRouterTemperature float64

	ReplicateAPIToken       string
	ReplicateTimeout        time.Duration
	ReplicateMaxPollAttempt int
	ReplicatePollInterval   time.Duration
	ReplicateCaptionVersion string
	ReplicateUpscaleVersion string
	ReplicateBgRemoveVer    string
}

// BotConfig is the Telegram bot configuration.
type BotConfig struct {
	AppEnv     string
	BotToken   string
	APIBaseURL string
	APIKey     string
	APITimeout time.Duration
	MockMode   bool
	SessionTTL time.Duration
}

// LoadConfig loads the API configuration and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		APIKey:           os.Getenv("API_KEY"),
		MockMode:         getEnvBool("MOCK_MODE", false),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),

		OpenRouterAPIKey:      os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:       getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		OpenRouterURL:         getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterTimeout:     getEnvMillis("OPENROUTER_TIMEOUT_MS", 20000),
		OpenRouterMaxTokens:   getEnvInt("OPENROUTER_MAX_TOKENS", 500),
		OpenRouterTemperature: getEnvFloat("OPENROUTER_TEMPERATURE", 0.2),

		ReplicateAPIToken:       os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateTimeout:        getEnvMillis("REPLICATE_TIMEOUT_MS", 20000),
		ReplicateMaxPollAttempt: getEnvInt("REPLICATE_MAX_POLL_ATTEMPTS", 20),
		ReplicatePollInterval:   getEnvMillis("REPLICATE_POLL_INTERVAL_MS", 1500),
		ReplicateCaptionVersion: os.Getenv("REPLICATE_CAPTION_VERSION"),
		ReplicateUpscaleVersion: os.Getenv("REPLICATE_UPSCALE_VERSION"),
		ReplicateBgRemoveVer:    os.Getenv("REPLICATE_BGREMOVE_VERSION"),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}

	return cfg, nil
}

// LoadBotConfig loads the bot configuration and applies defaults where needed.
func LoadBotConfig() (*BotConfig, error) {
	cfg := &BotConfig{
		AppEnv:     getEnv("APP_ENV", "development"),
		BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		APIBaseURL: getEnv("API_BASE_URL", "http://api:8080"),
		APIKey:     os.Getenv("API_KEY"),
		APITimeout: getEnvMillis("API_TIMEOUT_MS", 15000),
		MockMode:   getEnvBool("MOCK_MODE", false),
		SessionTTL: time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 15)),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Millisecond * time.Duration(getEnvInt(key, fallback))
}
