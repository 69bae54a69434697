package llm

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient uses the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates an OpenAI adapter.
func NewOpenAIClient(config *Config) (*OpenAIClient, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cc := openai.DefaultConfig(config.OpenAIKey)
	if config.BaseURL != "" {
		cc.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cc),
		config: config,
	}, nil
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return ProviderOpenAI
}

// Generate sends one chat completion. Array-rooted schemas are requested
// wrapped in an object and unwrapped again before returning.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (*Response, error) {
	model := modelOrDefault(req, c.config.Model, ProviderOpenAI)

	creq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    chatMessages(req),
		Temperature: openAITemperature(temperatureOrDefault(req, c.config.Temperature)),
	}

	if req.Schema != nil {
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName(req),
				Schema: wrapArray(req.Schema),
			},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	out := &Response{Model: model}
	if len(resp.Choices) == 0 {
		return out, nil
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		out.BlockReason = string(choice.FinishReason)
		return out, nil
	}

	out.Text = strings.TrimSpace(choice.Message.Content)
	if req.Schema.IsArray() {
		out.Text = unwrapArray(out.Text)
	}
	return out, nil
}

func chatMessages(req Request) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	return append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
}

// openAITemperature keeps a zero temperature on the wire. go-openai omits a
// zero value, which would leave the model at its default of 1.
func openAITemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
