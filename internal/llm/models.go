package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ModelLister is implemented by adapters that can enumerate the models
// available to the configured key.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ListModels returns the Gemini models, without the "models/" prefix.
func (c *GeminiClient) ListModels(ctx context.Context) ([]string, error) {
	var ids []string
	for m, err := range c.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list Gemini models: %w", err)
		}
		ids = append(ids, strings.TrimPrefix(m.Name, "models/"))
	}
	sort.Strings(ids)
	return ids, nil
}

// ListModels returns the OpenAI models.
func (c *OpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAI models: %w", err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

type openRouterModels struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ListModels returns the OpenRouter models.
func (c *OpenRouterClient) ListModels(ctx context.Context) ([]string, error) {
	var resp openRouterModels
	rr, err := c.http.R().SetContext(ctx).
		SetResult(&resp).
		Get(openRouterURL(c.baseURL(), "/models"))
	if err != nil {
		return nil, fmt.Errorf("OpenRouter request failed: %w", err)
	}
	if rr.IsError() {
		return nil, fmt.Errorf("OpenRouter API error: %s", rr.Status())
	}
	ids := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}
