package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"codeberg.org/snonux/slangify/internal/prompt"
	"codeberg.org/snonux/slangify/internal/reply"
)

// Provider names accepted by NewClient.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

// Request is one model invocation.
type Request struct {
	// Name labels the structured output, typically the capability name.
	Name   string
	System string
	Prompt string
	// Schema requests structured JSON output; nil means plain text.
	Schema      *prompt.Schema
	Safety      []prompt.SafetySetting
	Temperature *float32
	// Model overrides the client's default model when non-empty.
	Model string
}

// Response is the raw completion. Text is empty when the model produced
// nothing usable, e.g. because the prompt was blocked.
type Response struct {
	Text  string
	Model string
	// BlockReason is set when the provider refused the prompt.
	BlockReason string
}

// Client invokes a model endpoint.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() string
}

// Config holds the settings of every adapter; only the fields of the
// selected provider are used.
type Config struct {
	Provider    string
	Model       string
	Temperature float32

	GeminiKey     string
	OpenAIKey     string
	OpenRouterKey string

	// BaseURL overrides the provider endpoint (tests, proxies).
	BaseURL string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Temperature: 0.4,
	}
}

// DefaultModel returns the model used by a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderOpenRouter:
		return "google/gemini-2.5-flash"
	default:
		return "gemini-2.5-flash"
	}
}

// NewClient creates the adapter named by config.Provider.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiClient(ctx, config)

	case ProviderOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIClient(config)

	case ProviderOpenRouter:
		if config.OpenRouterKey == "" {
			return nil, fmt.Errorf("OpenRouter API key is required")
		}
		return NewOpenRouterClient(config)

	default:
		return nil, fmt.Errorf("unknown model provider: %s", config.Provider)
	}
}

func modelOrDefault(req Request, configured, provider string) string {
	if req.Model != "" {
		return req.Model
	}
	if configured != "" {
		return configured
	}
	return DefaultModel(provider)
}

func temperatureOrDefault(req Request, configured float32) float32 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return configured
}

// wrappedItemsKey holds array-rooted replies for providers whose structured
// output must be an object.
const wrappedItemsKey = "items"

// wrapArray encloses an array-rooted schema in a single-property object.
func wrapArray(s *prompt.Schema) *prompt.Schema {
	if !s.IsArray() {
		return s
	}
	return prompt.ObjectOf(s.Description, prompt.Prop(wrappedItemsKey, s))
}

// unwrapArray reverses wrapArray on the reply. Content that is not a wrapped
// object is returned unchanged so the validator can report it.
func unwrapArray(content string) string {
	doc, err := reply.ExtractJSON(content)
	if err != nil || !strings.HasPrefix(doc, "{") {
		return content
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &wrapped); err != nil {
		return content
	}
	items, ok := wrapped[wrappedItemsKey]
	if !ok || len(items) == 0 {
		return content
	}
	return string(items)
}

func schemaName(req Request) string {
	if req.Name != "" {
		return req.Name
	}
	return "result"
}
