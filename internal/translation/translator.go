package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal/audio"
	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/llm"
	"codeberg.org/snonux/slangify/internal/prompt"
	"codeberg.org/snonux/slangify/internal/reply"
)

// Translator runs the capabilities against a model client and a speech
// provider. It holds no per-request state and is safe for concurrent use.
type Translator struct {
	client  llm.Client
	speech  audio.Provider
	prompts *prompt.Store
	logger  *zap.Logger
}

// Option customizes a Translator.
type Option func(*Translator)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithPrompts replaces the embedded prompt store.
func WithPrompts(st *prompt.Store) Option {
	return func(t *Translator) {
		if st != nil {
			t.prompts = st
		}
	}
}

// NewTranslator creates a new translator instance. speech may be nil when
// text-to-speech is not configured.
func NewTranslator(client llm.Client, speech audio.Provider, opts ...Option) *Translator {
	t := &Translator{
		client:  client,
		speech:  speech,
		prompts: prompt.MustStore(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TranslateDialects renders the sentence in all fourteen district dialects.
func (t *Translator) TranslateDialects(ctx context.Context, req dialect.TranslationRequest) ([]dialect.DialectResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	content, err := t.generate(ctx, prompt.Translate, prompt.Data{
		Sentence:  req.Sentence,
		Intensity: req.Intensity,
	})
	if err != nil {
		return nil, err
	}

	results, err := reply.Translations(content)
	if err != nil {
		return nil, t.invalidReply(prompt.Translate, content, err)
	}
	return results, nil
}

// AnalyzeSentence detects which district dialect a sentence is written in.
func (t *Translator) AnalyzeSentence(ctx context.Context, req dialect.AnalysisRequest) (*dialect.AnalysisResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	content, err := t.generate(ctx, prompt.Analyze, prompt.Data{Sentence: req.Sentence})
	if err != nil {
		return nil, err
	}

	res, err := reply.Analysis(content)
	if err != nil {
		return nil, t.invalidReply(prompt.Analyze, content, err)
	}
	return res, nil
}

// ReverseTranslate converts a district slang sentence into standard Malayalam.
func (t *Translator) ReverseTranslate(ctx context.Context, req dialect.ReverseRequest) (*dialect.ReverseResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	content, err := t.generate(ctx, prompt.Reverse, prompt.Data{
		SlangSentence: req.SlangSentence,
		District:      req.District,
	})
	if err != nil {
		return nil, err
	}

	res, err := reply.Reverse(content)
	if err != nil {
		return nil, t.invalidReply(prompt.Reverse, content, err)
	}
	return res, nil
}

// CulturalInsights returns a short insight and popular phrases of a district.
func (t *Translator) CulturalInsights(ctx context.Context, req dialect.InsightRequest) (*dialect.InsightResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	content, err := t.generate(ctx, prompt.Insights, prompt.Data{District: req.District})
	if err != nil {
		return nil, err
	}

	res, err := reply.Insight(content)
	if err != nil {
		return nil, t.invalidReply(prompt.Insights, content, err)
	}
	return res, nil
}

// MeaningMatchScore rates how well a converted sentence keeps the original meaning.
func (t *Translator) MeaningMatchScore(ctx context.Context, req dialect.ScoreRequest) (*dialect.ScoreResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	content, err := t.generate(ctx, prompt.Score, prompt.Data{
		OriginalSentence:  req.OriginalSentence,
		ConvertedSentence: req.ConvertedSentence,
		District:          req.District,
	})
	if err != nil {
		return nil, err
	}

	res, err := reply.Score(content)
	if err != nil {
		return nil, t.invalidReply(prompt.Score, content, err)
	}
	return res, nil
}

// TextToSpeech speaks the text through the speech provider.
func (t *Translator) TextToSpeech(ctx context.Context, req dialect.SpeechRequest) (*dialect.SpeechResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	if t.speech == nil {
		return nil, fmt.Errorf("%w: no speech provider configured", dialect.ErrService)
	}

	instruction, err := t.prompts.Render(prompt.Speech, prompt.Data{Text: req.Text, District: req.District})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := t.speech.Synthesize(ctx, req.Text, instruction)
	if err != nil {
		if errors.Is(err, dialect.ErrEmptyResponse) || errors.Is(err, dialect.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", dialect.ErrService, t.speech.Name(), err)
	}
	if res == nil || len(res.Audio) == 0 {
		return nil, fmt.Errorf("%w: no audio data", dialect.ErrEmptyResponse)
	}

	t.logger.Debug("speech synthesized",
		zap.String("provider", t.speech.Name()),
		zap.Int("bytes", len(res.Audio)),
		zap.String("mime", res.MIMEType),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

// generate renders a capability prompt and returns the model's raw text.
func (t *Translator) generate(ctx context.Context, c prompt.Capability, data prompt.Data) (string, error) {
	spec, err := t.prompts.Spec(c)
	if err != nil {
		return "", err
	}
	text, err := spec.Render(data)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := t.client.Generate(ctx, llm.Request{
		Name:        string(c),
		System:      spec.System,
		Prompt:      text,
		Schema:      spec.Schema,
		Safety:      spec.Safety,
		Temperature: spec.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", dialect.ErrService, c, err)
	}

	t.logger.Debug("model replied",
		zap.String("capability", string(c)),
		zap.String("provider", t.client.Name()),
		zap.String("model", resp.Model),
		zap.Int("chars", len(resp.Text)),
		zap.Duration("took", time.Since(start)))

	if resp.Text == "" {
		if resp.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", dialect.ErrEmptyResponse, resp.BlockReason)
		}
		return "", dialect.ErrEmptyResponse
	}
	return resp.Text, nil
}

func (t *Translator) invalidReply(c prompt.Capability, content string, err error) error {
	t.logger.Warn("model reply rejected",
		zap.String("capability", string(c)),
		zap.String("reply", abbreviate(content, 300)),
		zap.Error(err))
	return err
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
