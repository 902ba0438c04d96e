package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_KEY", "k")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.RateLimitPerMin != 60 {
		t.Fatalf("rate limit = %d", cfg.RateLimitPerMin)
	}
	if cfg.OpenRouterModel != "openai/gpt-4o-mini" {
		t.Fatalf("model = %q", cfg.OpenRouterModel)
	}
	if cfg.OpenRouterTimeout != 20*time.Second {
		t.Fatalf("openrouter timeout = %v", cfg.OpenRouterTimeout)
	}
	if cfg.OpenRouterMaxTokens != 500 || cfg.OpenRouterTemperature != 0.2 {
		t.Fatalf("sampling defaults = %d / %v", cfg.OpenRouterMaxTokens, cfg.OpenRouterTemperature)
	}
	if cfg.ReplicateMaxPollAttempt != 20 || cfg.ReplicatePollInterval != 1500*time.Millisecond {
		t.Fatalf("poll defaults = %d / %v", cfg.ReplicateMaxPollAttempt, cfg.ReplicatePollInterval)
	}
	if cfg.MockMode {
		t.Fatal("mock mode defaults on")
	}
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("missing API_KEY accepted")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("MOCK_MODE", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("OPENROUTER_TIMEOUT_MS", "2500")
	t.Setenv("REPLICATE_POLL_INTERVAL_MS", "100")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" || !cfg.MockMode || cfg.RateLimitPerMin != 5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.OpenRouterTimeout != 2500*time.Millisecond {
		t.Fatalf("openrouter timeout = %v", cfg.OpenRouterTimeout)
	}
	if cfg.ReplicatePollInterval != 100*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.ReplicatePollInterval)
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "plenty")
	t.Setenv("OPENROUTER_TEMPERATURE", "warm")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RateLimitPerMin != 60 {
		t.Fatalf("rate limit = %d, want default 60", cfg.RateLimitPerMin)
	}
	if cfg.OpenRouterTemperature != 0.2 {
		t.Fatalf("temperature = %v, want default 0.2", cfg.OpenRouterTemperature)
	}
}

func TestLoadBotConfig(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("API_KEY", "k")

	cfg, err := LoadBotConfig()
	if err != nil {
		t.Fatalf("LoadBotConfig: %v", err)
	}
	if cfg.APIBaseURL != "http://api:8080" {
		t.Fatalf("base url = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("api timeout = %v", cfg.APITimeout)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Fatalf("session ttl = %v", cfg.SessionTTL)
	}
}

func TestLoadBotConfigRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := LoadBotConfig(); err == nil {
		t.Fatal("missing TELEGRAM_BOT_TOKEN accepted")
	}
}
