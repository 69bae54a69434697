package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultOpenRouterBase = "https://openrouter.ai"

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model          string              `json:"model"`
	Messages       []openRouterMessage `json:"messages"`
	Temperature    float32             `json:"temperature"`
	ResponseFormat map[string]any      `json:"response_format,omitempty"`
}

type openRouterResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenRouterClient calls the OpenAI compatible OpenRouter API.
type OpenRouterClient struct {
	http   *resty.Client
	config *Config
}

// NewOpenRouterClient creates an OpenRouter adapter.
func NewOpenRouterClient(config *Config) (*OpenRouterClient, error) {
	if config.OpenRouterKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}

	c := resty.New().
		SetTimeout(2*time.Minute).
		SetHeader("Authorization", "Bearer "+config.OpenRouterKey).
		SetHeader("HTTP-Referer", "https://codeberg.org/snonux/slangify").
		SetHeader("X-Title", "slangify")

	return &OpenRouterClient{http: c, config: config}, nil
}

// Name returns the provider name
func (c *OpenRouterClient) Name() string {
	return ProviderOpenRouter
}

// Generate posts one chat completion request.
func (c *OpenRouterClient) Generate(ctx context.Context, req Request) (*Response, error) {
	model := modelOrDefault(req, c.config.Model, ProviderOpenRouter)

	body := openRouterRequest{
		Model:       model,
		Temperature: temperatureOrDefault(req, c.config.Temperature),
	}
	for _, m := range chatMessages(req) {
		body.Messages = append(body.Messages, openRouterMessage{Role: m.Role, Content: m.Content})
	}
	if req.Schema != nil {
		body.ResponseFormat = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   schemaName(req),
				"strict": true,
				"schema": wrapArray(req.Schema),
			},
		}
	}

	var resp openRouterResponse
	rr, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		Post(openRouterURL(c.baseURL(), "/chat/completions"))
	if err != nil {
		return nil, fmt.Errorf("OpenRouter request failed: %w", err)
	}
	if rr.IsError() {
		return nil, fmt.Errorf("OpenRouter API error: %s; body: %s", rr.Status(), abbreviate(rr.String(), 500))
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("OpenRouter API error: %s", resp.Error.Message)
	}

	out := &Response{Model: model}
	if resp.Model != "" {
		out.Model = resp.Model
	}
	if len(resp.Choices) == 0 {
		return out, nil
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		out.BlockReason = choice.FinishReason
		return out, nil
	}

	out.Text = strings.TrimSpace(choice.Message.Content)
	if req.Schema.IsArray() {
		out.Text = unwrapArray(out.Text)
	}
	return out, nil
}

func (c *OpenRouterClient) baseURL() string {
	if c.config.BaseURL != "" {
		return c.config.BaseURL
	}
	return defaultOpenRouterBase
}

// openRouterURL builds a URL whether base already contains /api/v1 or not.
func openRouterURL(base, tail string) string {
	b := strings.TrimRight(base, "/")
	if idx := strings.Index(b, "/api/v1"); idx >= 0 {
		return b[:idx+len("/api/v1")] + tail
	}
	return b + "/api/v1" + tail
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
