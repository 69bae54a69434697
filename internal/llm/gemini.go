package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/slangify/internal/prompt"
)

// GeminiClient talks to the Gemini API through google.golang.org/genai.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a Gemini adapter.
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
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

	return &GeminiClient{client: client, config: config}, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return ProviderGemini
}

// Generate sends one prompt. A blocked prompt or a reply without candidates
// is not an error; the returned text is simply empty.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	model := modelOrDefault(req, c.config.Model, ProviderGemini)

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), geminiConfig(req, c.config.Temperature))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	out := &Response{Model: model}
	if resp == nil {
		return out, nil
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		out.BlockReason = string(resp.PromptFeedback.BlockReason)
		return out, nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		out.BlockReason = string(genai.FinishReasonSafety)
		return out, nil
	}

	out.Text = strings.TrimSpace(resp.Text())
	return out, nil
}

func geminiConfig(req Request, temperature float32) *genai.GenerateContentConfig {
	t := temperatureOrDefault(req, temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature: &t,
	}

	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiSchema(req.Schema)
	}

	for _, s := range req.Safety {
		cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}

	return cfg
}

// geminiSchema converts a provider-neutral schema to the genai form.
func geminiSchema(s *prompt.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        geminiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = geminiSchema(p)
		}
		out.PropertyOrdering = s.Order
		out.Required = s.Required
	}

	if s.Items != nil {
		out.Items = geminiSchema(s.Items)
	}
	if s.MinItems != nil {
		n := int64(*s.MinItems)
		out.MinItems = &n
	}
	if s.MaxItems != nil {
		n := int64(*s.MaxItems)
		out.MaxItems = &n
	}

	return out
}

func geminiType(t prompt.Type) genai.Type {
	switch t {
	case prompt.TypeObject:
		return genai.TypeObject
	case prompt.TypeArray:
		return genai.TypeArray
	case prompt.TypeInteger:
		return genai.TypeInteger
	case prompt.TypeNumber:
		return genai.TypeNumber
	case prompt.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
