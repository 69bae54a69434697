package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// manglishHint is appended to the voice instruction when the text is
// Malayalam written in Latin letters.
const manglishHint = "The text is Malayalam written in Latin letters (Manglish); pronounce it as Malayalam, not English."

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cc := openai.DefaultConfig(config.OpenAIKey)
	if config.BaseURL != "" {
		cc.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cc),
		config: config,
	}, nil
}

// Synthesize generates audio using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, instruction string) (*dialect.SpeechResult, error) {
	if err := ValidateSpeechText(text); err != nil {
		return nil, err
	}

	defaults := DefaultProviderConfig()
	model := p.config.OpenAIModel
	if model == "" {
		model = defaults.OpenAIModel
	}
	voice := p.config.OpenAIVoice
	if voice == "" {
		voice = defaults.OpenAIVoice
	}
	speed := p.config.OpenAISpeed
	if speed == 0 {
		speed = defaults.OpenAISpeed
	}

	format, mime := responseFormat(p.config.OpenAIFormat)
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          strings.TrimSpace(text),
		Voice:          openai.SpeechVoice(voice),
		Speed:          speed,
		ResponseFormat: format,
	}

	// Only the gpt-4o family accepts voice instructions
	if supportsInstructions(model) {
		instruction = strings.TrimSpace(instruction)
		if !HasMalayalam(text) {
			instruction = strings.TrimSpace(instruction + " " + manglishHint)
		}
		req.Instructions = instruction
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		// Check if it's a model access error
		if strings.Contains(err.Error(), "does not have access to model") && supportsInstructions(model) {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try speech.openai_model tts-1-hd instead", err, model)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no audio data received from OpenAI", dialect.ErrEmptyResponse)
	}

	return &dialect.SpeechResult{Audio: data, MIMEType: mime}, nil
}

func supportsInstructions(model string) bool {
	return model == "gpt-4o-mini-tts" || model == "gpt-4o-mini-audio-preview"
}

// responseFormat maps a configured format name to the API value and the
// MIME type of the returned clip.
func responseFormat(name string) (openai.SpeechResponseFormat, string) {
	switch strings.ToLower(name) {
	case "wav":
		return openai.SpeechResponseFormatWav, "audio/wav"
	case "opus":
		return openai.SpeechResponseFormatOpus, "audio/ogg"
	case "aac":
		return openai.SpeechResponseFormatAac, "audio/aac"
	case "flac":
		return openai.SpeechResponseFormatFlac, "audio/flac"
	default:
		return openai.SpeechResponseFormatMp3, "audio/mpeg"
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test call would use credits, so only the key is checked
	return nil
}
