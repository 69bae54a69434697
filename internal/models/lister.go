package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"codeberg.org/snonux/slangify/internal/llm"
)

// maxListed caps each printed category.
const maxListed = 25

// Lister handles listing available models
type Lister struct {
	client llm.Client
	out    io.Writer
}

// NewLister creates a new model lister
func NewLister(client llm.Client) *Lister {
	return &Lister{client: client, out: os.Stdout}
}

// SetOutput redirects the listing.
func (l *Lister) SetOutput(w io.Writer) {
	l.out = w
}

// Categories groups model ids by what slangify can use them for.
type Categories struct {
	Text   []string
	Speech []string
	Other  []string
}

// Categorize sorts model ids into categories.
func Categorize(ids []string) Categories {
	var c Categories
	for _, id := range ids {
		lower := strings.ToLower(id)
		switch {
		case strings.Contains(lower, "tts") || strings.Contains(lower, "audio") || strings.Contains(lower, "speech"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(lower, "embed") || strings.Contains(lower, "dall-e") ||
			strings.Contains(lower, "imagen") || strings.Contains(lower, "image") ||
			strings.Contains(lower, "whisper") || strings.Contains(lower, "moderation"):
			c.Other = append(c.Other, id)
		case strings.Contains(lower, "gemini") || strings.Contains(lower, "gpt") ||
			strings.Contains(lower, "chat") || strings.Contains(lower, "claude") ||
			strings.Contains(lower, "llama") || strings.Contains(lower, "mistral") ||
			strings.Contains(lower, "o1") || strings.Contains(lower, "o3") || strings.Contains(lower, "o4"):
			c.Text = append(c.Text, id)
		default:
			c.Other = append(c.Other, id)
		}
	}

	sort.Strings(c.Text)
	sort.Strings(c.Speech)
	sort.Strings(c.Other)
	return c
}

// ListAvailableModels prints the provider's models categorized by type
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	ml, ok := l.client.(llm.ModelLister)
	if !ok {
		return fmt.Errorf("provider %s cannot list models", l.client.Name())
	}

	ids, err := ml.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	c := Categorize(ids)

	fmt.Fprintf(l.out, "Available %s models:\n", l.client.Name())
	l.printCategory("Text generation (translation, detection, insights)", c.Text)
	l.printCategory("Text-to-Speech", c.Speech)
	if len(c.Other) > 0 {
		fmt.Fprintf(l.out, "\nOther models: %d not usable by slangify\n", len(c.Other))
	}

	return nil
}

func (l *Lister) printCategory(title string, ids []string) {
	fmt.Fprintf(l.out, "\n%s:\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(l.out, "  none found")
		return
	}
	shown := ids
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	for _, id := range shown {
		fmt.Fprintf(l.out, "  %s\n", id)
	}
	if len(ids) > len(shown) {
		fmt.Fprintf(l.out, "  ... and %d more models\n", len(ids)-len(shown))
	}
}
