package processor

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/slangify/internal/cli"
	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/testutil"
)

func newTestProcessor(t *testing.T) (*Processor, *testutil.MockModelClient, *bytes.Buffer) {
	t.Helper()

	client := testutil.NewMockModelClient()
	p := newProcessor(client, testutil.NewMockSpeechProvider(), nil)
	out := &bytes.Buffer{}
	p.out = out
	return p, client, out
}

func TestTranslate(t *testing.T) {
	p, client, out := newTestProcessor(t)

	if err := p.Translate(context.Background(), testutil.TestSentence, dialect.IntensityHigh); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	got := out.String()
	for _, d := range dialect.DistrictNames() {
		if !strings.Contains(got, d) {
			t.Errorf("Output is missing district %s", d)
		}
	}
	if !strings.Contains(got, "slang intensity: High") {
		t.Errorf("Output does not mention the intensity: %q", got)
	}
	if n := client.CallCount("translate"); n != 1 {
		t.Errorf("Expected 1 translate call, got %d", n)
	}
}

func TestTranslateEmptySentence(t *testing.T) {
	p, client, _ := newTestProcessor(t)

	if err := p.Translate(context.Background(), "   ", dialect.DefaultIntensity); err == nil {
		t.Error("Expected error for empty sentence")
	}
	if n := client.CallCount("translate"); n != 0 {
		t.Errorf("Expected no model call, got %d", n)
	}
}

func TestTranslateBatch(t *testing.T) {
	p, client, out := newTestProcessor(t)

	file := testutil.WriteBatchFile(t, "# commute", "Njan ippo varam", "high: Nee evide poyi?")

	if err := p.TranslateBatch(context.Background(), file, dialect.IntensityLow); err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}
	if n := client.CallCount("translate"); n != 2 {
		t.Errorf("Expected 2 translate calls, got %d", n)
	}
	if !strings.Contains(out.String(), "Translated: 2") {
		t.Errorf("Summary missing from output: %q", out.String())
	}
}

func TestTranslateBatchReportsFailures(t *testing.T) {
	p, client, out := newTestProcessor(t)
	client.Errors["translate"] = errors.New("quota exceeded")

	file := testutil.WriteBatchFile(t, "Njan ippo varam")

	var err error
	stderr := testutil.CaptureStderr(t, func() {
		err = p.TranslateBatch(context.Background(), file, dialect.DefaultIntensity)
	})
	if err == nil {
		t.Error("Expected error when a sentence fails")
	}
	if !strings.Contains(stderr, "Error translating line 1") {
		t.Errorf("Failure should be reported on stderr: %q", stderr)
	}
	if !strings.Contains(out.String(), "Errors: 1") {
		t.Errorf("Summary should count the failure: %q", out.String())
	}
}

func TestTranslateBatchMissingFile(t *testing.T) {
	p, _, _ := newTestProcessor(t)

	if err := p.TranslateBatch(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), dialect.DefaultIntensity); err == nil {
		t.Error("Expected error for missing batch file")
	}
}

func TestAnalyze(t *testing.T) {
	p, client, out := newTestProcessor(t)

	if err := p.Analyze(context.Background(), testutil.TestSentence); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !strings.Contains(out.String(), "Thrissur") || !strings.Contains(out.String(), "87%") {
		t.Errorf("Unexpected output: %q", out.String())
	}

	out.Reset()
	client.Replies["analyze"] = `{"isStandard": true, "dialect": "Standard", "confidence": 90}`
	if err := p.Analyze(context.Background(), testutil.TestSentence); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !strings.Contains(out.String(), "Standard Malayalam") {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestReverse(t *testing.T) {
	p, _, out := newTestProcessor(t)

	if err := p.Reverse(context.Background(), "എന്തൂട്ടാ ഗഡി", dialect.Thrissur); err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}
	if !strings.Contains(out.String(), "ഞാൻ നാട്ടിലേക്ക് പോകുന്നു.") {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestInsights(t *testing.T) {
	p, _, out := newTestProcessor(t)

	if err := p.Insights(context.Background(), dialect.Thrissur); err != nil {
		t.Fatalf("Insights failed: %v", err)
	}
	if got := strings.Count(out.String(), "  - "); got != 3 {
		t.Errorf("Expected 3 phrases, got %d in %q", got, out.String())
	}
}

func TestScore(t *testing.T) {
	p, _, out := newTestProcessor(t)

	err := p.Score(context.Background(), testutil.TestSentence, "എന്റെ പേര് ജോസഫ്", dialect.Kannur)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if !strings.Contains(out.String(), "96%") {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestSpeak(t *testing.T) {
	p, _, out := newTestProcessor(t)

	output := filepath.Join(t.TempDir(), "clip.wav")
	if err := p.Speak(context.Background(), "എന്തൂട്ടാ ഗഡി", dialect.Thrissur, output); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	testutil.AssertClip(t, output, testutil.GenerateAudioData())
	if !strings.Contains(out.String(), "Audio saved to: "+output) {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestSpeakDefaultFilename(t *testing.T) {
	p, _, out := newTestProcessor(t)

	dir := t.TempDir()
	t.Chdir(dir)

	if err := p.Speak(context.Background(), "Namaskaram", "", ""); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "slangify_*.wav"))
	if len(matches) != 1 {
		t.Fatalf("Expected one clip in %s, got %v (output %q)", dir, matches, out.String())
	}
	testutil.AssertClip(t, matches[0], testutil.GenerateAudioData())
}

func TestSpeakWithoutProvider(t *testing.T) {
	p := newProcessor(testutil.NewMockModelClient(), nil, nil)
	p.out = &bytes.Buffer{}

	output := filepath.Join(t.TempDir(), "x.wav")
	if err := p.Speak(context.Background(), "Namaskaram", "", output); err == nil {
		t.Error("Expected error without a speech provider")
	}
	testutil.AssertNoFile(t, output)
}

func TestListModelsUnsupported(t *testing.T) {
	p, _, _ := newTestProcessor(t)

	if err := p.ListModels(context.Background()); err == nil {
		t.Error("Expected error for a client that cannot list models")
	}
}

func TestProcessorImplementsRunner(t *testing.T) {
	var _ cli.Runner = (*Processor)(nil)
}
