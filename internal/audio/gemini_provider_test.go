package audio

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/snonux/slangify/internal/dialect"
)

func geminiTTSServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiProviderSynthesize(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	body := fmt.Sprintf(`{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"audio/L16;codec=pcm;rate=24000","data":%q}}]}}]}`,
		base64.StdEncoding.EncodeToString(pcm))
	srv := geminiTTSServer(t, body)

	provider, err := NewGeminiProvider(context.Background(), &Config{GeminiKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	res, err := provider.Synthesize(context.Background(), "നമസ്കാരം", "Speak like a Thrissur local.")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if res.MIMEType != "audio/wav" {
		t.Errorf("MIMEType = %q", res.MIMEType)
	}
	if len(res.Audio) != wavHeaderSize+len(pcm) || !isWAV(res.Audio) {
		t.Errorf("Audio is not a WAV clip of the PCM samples: %d bytes", len(res.Audio))
	}
}

func TestGeminiProviderNoAudio(t *testing.T) {
	srv := geminiTTSServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"sorry"}]}}]}`)

	provider, err := NewGeminiProvider(context.Background(), &Config{GeminiKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := provider.Synthesize(context.Background(), "നമസ്കാരം", ""); !errors.Is(err, dialect.ErrEmptyResponse) {
		t.Errorf("Synthesize() error = %v, want ErrEmptyResponse", err)
	}
}

func TestGeminiProviderIsAvailable(t *testing.T) {
	p := &GeminiProvider{config: &Config{}}
	if err := p.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error without key")
	}
	p.config.GeminiKey = "k"
	if err := p.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v", err)
	}
}
