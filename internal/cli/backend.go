package cli

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal/audio"
	"codeberg.org/snonux/slangify/internal/boundary"
	"codeberg.org/snonux/slangify/internal/llm"
	"codeberg.org/snonux/slangify/internal/translation"
)

// NewBackend builds the model client and the request boundary over it from
// the loaded configuration.
func NewBackend(ctx context.Context, logger *zap.Logger) (*boundary.Boundary, llm.Client, error) {
	client, err := llm.NewClient(ctx, ModelConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return NewBoundary(client, NewSpeechProvider(ctx, logger), logger), client, nil
}

// NewBoundary wires the capability functions over client and speech
func NewBoundary(client llm.Client, speech audio.Provider, logger *zap.Logger) *boundary.Boundary {
	if logger == nil {
		logger = zap.NewNop()
	}
	tr := translation.NewTranslator(client, speech, translation.WithLogger(logger))
	return boundary.New(tr,
		boundary.WithLogger(logger),
		boundary.WithTranslateTimeout(TranslateTimeout()),
	)
}

// NewSpeechProvider returns the configured speech provider, wrapped with the
// fallback provider when one is configured. Speech is optional: without a
// usable provider it returns nil and the other capabilities still work.
func NewSpeechProvider(ctx context.Context, logger *zap.Logger) audio.Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	primary, err := audio.NewProvider(ctx, SpeechConfig(""))
	if err != nil {
		logger.Warn("speech disabled", zap.Error(err))
		return nil
	}

	name := viper.GetString("speech.fallback")
	if name == "" || name == viper.GetString("speech.provider") {
		return primary
	}
	fallback, err := audio.NewProvider(ctx, SpeechConfig(name))
	if err != nil {
		logger.Warn("speech fallback disabled", zap.String("fallback", name), zap.Error(err))
		return primary
	}
	return audio.NewProviderWithFallback(primary, fallback, logger)
}
