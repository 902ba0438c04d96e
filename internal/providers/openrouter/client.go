// Package openrouter turns collected captions, transform outputs and seller
// notes into a structured marketplace listing through a single chat
// completion call.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tezgah/internal/domain"
	"tezgah/internal/infra"
	"tezgah/pkg/retry"
	"tezgah/pkg/strictjson"
)

const (
	defaultURL            = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel          = "openai/gpt-4o-mini"
	defaultTemperature    = 0.2
	defaultMaxTokens      = 500
	defaultRequestTimeout = 20 * time.Second
)

var systemPrompt = strings.Join([]string{
	"You are an expert e-commerce SEO copywriter and listing optimization specialist.",
	"You deeply understand marketplace search algorithms (Trendyol, Hepsiburada, Etsy).",
	"Your listings rank high in search because you:",
	"- Place the most important keyword in the first 40 chars of the title",
	"- Use natural keyword density (2-3%) in descriptions without stuffing",
	"- Generate long-tail keywords that match real buyer search intent",
	"- Include synonyms and related terms buyers actually type",
	"- Adapt tone and structure to each marketplace's ranking algorithm",
	"- Write compelling copy that converts browsers into buyers",
	"Output STRICT JSON only. Follow the provided schema exactly.",
}, " ")

// Options configures the text-generation provider client.
type Options struct {
	APIKey      string
	URL         string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
	Timeout     time.Duration
	Logger      *infra.Logger
}

// Client calls the OpenRouter chat completions endpoint.
type Client struct {
	apiKey      string
	url         string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      *infra.Logger
}

type chatRequest struct {
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat chatFormat    `json:"response_format"`
	Messages       []chatMessage `json:"messages"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// userPayload is the structured user message handed to the model alongside
// the system prompt.
type userPayload struct {
	Instructions    string            `json:"instructions"`
	Notes           string            `json:"notes"`
	Captions        []string          `json:"captions"`
	ProcessedImages []string          `json:"processed_images"`
	RequiredSchema  map[string]string `json:"required_schema"`
	OutputRootKey   string            `json:"output_root_key"`
	SchemaExample   map[string]any    `json:"schema_example"`
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = defaultURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:      strings.TrimSpace(opts.APIKey),
		url:         url,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Generate performs one completion call and extracts the listing from the
// model's response text.
func (c *Client) Generate(ctx context.Context, input domain.GenerationInput) (*domain.Listing, error) {
	if c.apiKey == "" {
		return nil, domain.NewAppError("missing openrouter api key", http.StatusInternalServerError)
	}

	captions := input.Captions
	if captions == nil {
		captions = []string{}
	}
	processed := input.ProcessedImages
	if processed == nil {
		processed = []string{}
	}

	user, err := json.Marshal(userPayload{
		Instructions:    BuildPlatformRules(input.Platform, input.Lang),
		Notes:           input.Notes,
		Captions:        captions,
		ProcessedImages: processed,
		RequiredSchema: map[string]string{
			"title":            "string",
			"bullets":          "string[]",
			"description":      "string",
			"seo_keywords":     "string[]",
			"hashtags_or_tags": "string[]",
			"claims_to_avoid":  "string[]",
			"assumptions":      "string[]",
		},
		OutputRootKey: "listing",
		SchemaExample: buildSchemaExample(input.Platform, input.Lang),
	})
	if err != nil {
		return nil, domain.NewAppError("openrouter request failed", http.StatusBadGateway)
	}

	body, err := json.Marshal(chatRequest{
		Model:          c.model,
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: chatFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(user)},
		},
	})
	if err != nil {
		return nil, domain.NewAppError("openrouter request failed", http.StatusBadGateway)
	}

	resp, err := retry.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return nil, domain.NewAppError("openrouter request failed", http.StatusBadGateway)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, domain.NewAppError("openrouter request failed", http.StatusBadGateway)
		}
		return res, nil
	}, retry.Options{})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, domain.NewAppError("openrouter returned an error", http.StatusBadGateway)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewAppError("openrouter returned an error", http.StatusBadGateway)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, domain.NewAppError("openrouter response missing content", http.StatusBadGateway)
	}

	var parsed struct {
		Listing *domain.Listing `json:"listing"`
	}
	if err := strictjson.Parse(out.Choices[0].Message.Content, &parsed); err != nil {
		return nil, err
	}
	if parsed.Listing == nil {
		return nil, domain.NewAppError("openrouter JSON missing listing field", http.StatusBadGateway)
	}
	return parsed.Listing, nil
}

// buildSchemaExample gives the model a concrete target shape. Bullet and tag
// counts follow the platform conventions (6 bullets on Hepsiburada, 13 tags
// on Etsy).
func buildSchemaExample(platform domain.Platform, lang domain.Language) map[string]any {
	title := "Sample Title"
	description := "Description"
	if lang == domain.LanguageTurkish {
		title = "Ornek Baslik"
		description = "Aciklama"
	}

	bullets := []string{"b1", "b2", "b3", "b4", "b5"}
	if platform == domain.PlatformHepsiburada {
		bullets = []string{"b1", "b2", "b3", "b4", "b5", "b6"}
	}

	tags := []string{"#tag1", "#tag2"}
	if platform == domain.PlatformEtsy {
		tags = make([]string, 13)
		for i := range tags {
			tags[i] = "tag" + strconv.Itoa(i+1)
		}
	}

	return map[string]any{
		"listing": map[string]any{
			"title":            title,
			"bullets":          bullets,
			"description":      description,
			"seo_keywords":     []string{"keyword1", "keyword2"},
			"hashtags_or_tags": tags,
			"claims_to_avoid":  []string{"No medical claims"},
			"assumptions":      []string{"Assumption 1"},
		},
	}
}
