package audio

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// GeminiProvider implements Provider interface for Gemini TTS
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(ctx context.Context, config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, config: config}, nil
}

// Synthesize generates speech with a Gemini TTS model and wraps the PCM
// samples into a WAV clip.
func (p *GeminiProvider) Synthesize(ctx context.Context, text, instruction string) (*dialect.SpeechResult, error) {
	if err := ValidateSpeechText(text); err != nil {
		return nil, err
	}

	model := p.config.GeminiModel
	if model == "" {
		model = DefaultProviderConfig().GeminiModel
	}
	voice := p.config.GeminiVoice
	if voice == "" {
		voice = DefaultProviderConfig().GeminiVoice
	}

	input := strings.TrimSpace(text)
	if instruction = strings.TrimSpace(instruction); instruction != "" {
		input = instruction + "\n\n" + input
	}

	resp, err := p.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: input}}}},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"audio"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
						VoiceName: voice,
					},
				},
			},
		})
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	data, mime := inlineAudio(resp)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no audio data received from Gemini", dialect.ErrEmptyResponse)
	}

	if !isWAV(data) {
		data = PCMToWAV(data, sampleRateFromMIME(mime))
	}
	return &dialect.SpeechResult{Audio: data, MIMEType: "audio/wav"}, nil
}

// inlineAudio returns the first inline audio part of a reply.
func inlineAudio(resp *genai.GenerateContentResponse) ([]byte, string) {
	if resp == nil {
		return nil, ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType
			}
		}
	}
	return nil, ""
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the Gemini API is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
