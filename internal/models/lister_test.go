package models

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/slangify/internal/llm"
	"codeberg.org/snonux/slangify/internal/testutil"
)

type fakeLister struct {
	*testutil.MockModelClient
	ids []string
	err error
}

func (f *fakeLister) ListModels(context.Context) ([]string, error) {
	return f.ids, f.err
}

func TestCategorize(t *testing.T) {
	got := Categorize([]string{
		"gpt-4o-mini",
		"gemini-2.5-flash-preview-tts",
		"text-embedding-3-small",
		"gemini-2.5-flash",
		"gpt-4o-mini-tts",
		"dall-e-3",
		"babbage-002",
	})

	want := Categories{
		Text:   []string{"gemini-2.5-flash", "gpt-4o-mini"},
		Speech: []string{"gemini-2.5-flash-preview-tts", "gpt-4o-mini-tts"},
		Other:  []string{"babbage-002", "dall-e-3", "text-embedding-3-small"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categorize() = %+v, want %+v", got, want)
	}
}

func TestListAvailableModels(t *testing.T) {
	var ids []string
	for i := 0; i < maxListed+3; i++ {
		ids = append(ids, fmt.Sprintf("gemini-test-%02d", i))
	}
	ids = append(ids, "gemini-2.5-flash-preview-tts")

	l := NewLister(&fakeLister{MockModelClient: testutil.NewMockModelClient(), ids: ids})
	var out bytes.Buffer
	l.SetOutput(&out)

	if err := l.ListAvailableModels(context.Background()); err != nil {
		t.Fatalf("ListAvailableModels() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Available mock models:",
		"gemini-test-00",
		"... and 3 more models",
		"Text-to-Speech:\n  gemini-2.5-flash-preview-tts",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestListAvailableModels_Errors(t *testing.T) {
	t.Run("unsupported client", func(t *testing.T) {
		err := NewLister(testutil.NewMockModelClient()).ListAvailableModels(context.Background())
		if err == nil || !strings.Contains(err.Error(), "cannot list models") {
			t.Errorf("Expected unsupported error, got %v", err)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		l := NewLister(&fakeLister{MockModelClient: testutil.NewMockModelClient(), err: errors.New("unauthorized")})
		l.SetOutput(&bytes.Buffer{})
		err := l.ListAvailableModels(context.Background())
		if err == nil || !strings.Contains(err.Error(), "unauthorized") {
			t.Errorf("Expected wrapped provider error, got %v", err)
		}
	})
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	client, err := llm.NewClient(context.Background(), &llm.Config{Provider: llm.ProviderGemini, GeminiKey: apiKey})
	if err != nil {
		t.Fatal(err)
	}
	l := NewLister(client)
	l.SetOutput(&bytes.Buffer{})
	if err := l.ListAvailableModels(context.Background()); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
