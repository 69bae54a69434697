package cli

import (
	"context"
	"testing"

	"github.com/spf13/viper"

	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/testutil"
)

func TestNewSpeechProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   map[string]string
		expected string
	}{
		{
			name:     "no credentials",
			expected: "",
		},
		{
			name:     "gemini only",
			config:   map[string]string{"model.gemini_key": "g-key"},
			expected: "gemini",
		},
		{
			name:     "openai primary",
			config:   map[string]string{"model.openai_key": "o-key", "speech.provider": "openai"},
			expected: "openai",
		},
		{
			name:     "gemini with openai fallback",
			config:   map[string]string{"model.gemini_key": "g-key", "model.openai_key": "o-key", "speech.fallback": "openai"},
			expected: "gemini (fallback: openai)",
		},
		{
			name:     "fallback without credentials",
			config:   map[string]string{"model.gemini_key": "g-key", "speech.fallback": "openai"},
			expected: "gemini",
		},
		{
			name:     "fallback equal to primary",
			config:   map[string]string{"model.gemini_key": "g-key", "speech.fallback": "gemini"},
			expected: "gemini",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY"} {
				t.Setenv(env, "")
			}
			viper.Reset()
			t.Cleanup(viper.Reset)
			SetDefaults()
			for k, v := range tt.config {
				viper.Set(k, v)
			}

			p := NewSpeechProvider(context.Background(), nil)
			if tt.expected == "" {
				if p != nil {
					t.Errorf("Expected no provider, got %s", p.Name())
				}
				return
			}
			if p == nil {
				t.Fatalf("Expected provider %s, got none", tt.expected)
			}
			if p.Name() != tt.expected {
				t.Errorf("Expected provider %s, got %s", tt.expected, p.Name())
			}
		})
	}
}

func TestNewBoundary(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	client := testutil.NewMockModelClient()
	b := NewBoundary(client, testutil.NewMockSpeechProvider(), nil)

	results, err := b.Translate(context.Background(), dialect.TranslationRequest{
		Sentence:  testutil.TestSentence,
		Intensity: dialect.DefaultIntensity,
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(results) != dialect.DistrictCount {
		t.Errorf("Expected %d results, got %d", dialect.DistrictCount, len(results))
	}
	if results[0].District != dialect.Thiruvananthapuram || results[0].Slang == "" {
		t.Errorf("Unexpected first result: %+v", results[0])
	}
}

func TestNewBackendRequiresCredential(t *testing.T) {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(env, "")
	}
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	if _, _, err := NewBackend(context.Background(), nil); err == nil {
		t.Error("Expected error without a model credential")
	}
}
