package audio

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize speaks text. The instruction describes voice and accent and
	// is ignored by providers that cannot take one.
	Synthesize(ctx context.Context, text, instruction string) (*dialect.SpeechResult, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider string // Provider name: "gemini" or "openai"

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
	GeminiVoice string // prebuilt voice, e.g. "Algenib", "Kore", "Puck"

	// OpenAI-specific settings
	OpenAIKey    string
	OpenAIModel  string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice  string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed  float64 // 0.25 to 4.0
	OpenAIFormat string  // "mp3", "wav", "opus", "aac" or "flac"

	// BaseURL overrides the provider endpoint (tests, proxies).
	BaseURL string
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:     "gemini",
		GeminiModel:  "gemini-2.5-flash-preview-tts",
		GeminiVoice:  "Algenib",
		OpenAIModel:  "gpt-4o-mini-tts",
		OpenAIVoice:  "nova",
		OpenAISpeed:  1.0,
		OpenAIFormat: "mp3",
	}
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "gemini", "":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Synthesize tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, text, instruction string) (*dialect.SpeechResult, error) {
	res, err := p.primary.Synthesize(ctx, text, instruction)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, dialect.ErrInvalidInput) {
		return nil, err
	}

	p.logger.Warn("primary speech provider failed, falling back",
		zap.String("primary", p.primary.Name()),
		zap.String("fallback", p.fallback.Name()),
		zap.Error(err))

	return p.fallback.Synthesize(ctx, text, instruction)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
