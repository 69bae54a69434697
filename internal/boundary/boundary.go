package boundary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/prompt"
)

// DefaultTranslateTimeout bounds a dialect translation call.
const DefaultTranslateTimeout = 120 * time.Second

// Capabilities is the set of operations the boundary exposes.
// *translation.Translator implements it.
type Capabilities interface {
	TranslateDialects(ctx context.Context, req dialect.TranslationRequest) ([]dialect.DialectResult, error)
	AnalyzeSentence(ctx context.Context, req dialect.AnalysisRequest) (*dialect.AnalysisResult, error)
	ReverseTranslate(ctx context.Context, req dialect.ReverseRequest) (*dialect.ReverseResult, error)
	CulturalInsights(ctx context.Context, req dialect.InsightRequest) (*dialect.InsightResult, error)
	MeaningMatchScore(ctx context.Context, req dialect.ScoreRequest) (*dialect.ScoreResult, error)
	TextToSpeech(ctx context.Context, req dialect.SpeechRequest) (*dialect.SpeechResult, error)
}

// Media is the wire form of synthesized speech.
type Media struct {
	Media    string `json:"media"`
	MIMEType string `json:"mimeType"`
}

// Boundary validates requests and invokes capabilities.
type Boundary struct {
	caps             Capabilities
	logger           *zap.Logger
	translateTimeout time.Duration
}

// Option customizes a Boundary.
type Option func(*Boundary)

// WithLogger sets the logger used for failures.
func WithLogger(l *zap.Logger) Option {
	return func(b *Boundary) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithTranslateTimeout sets the ceiling of a translate call; zero or less
// keeps the default.
func WithTranslateTimeout(d time.Duration) Option {
	return func(b *Boundary) {
		if d > 0 {
			b.translateTimeout = d
		}
	}
}

// New creates a boundary over caps.
func New(caps Capabilities, opts ...Option) *Boundary {
	b := &Boundary{
		caps:             caps,
		logger:           zap.NewNop(),
		translateTimeout: DefaultTranslateTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Translate returns the fourteen district renderings of a sentence.
func (b *Boundary) Translate(ctx context.Context, req dialect.TranslationRequest) ([]dialect.DialectResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, b.reject(prompt.Translate, err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.translateTimeout)
	defer cancel()

	start := time.Now()
	res, err := b.caps.TranslateDialects(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("translation exceeded %s: %w", b.translateTimeout, err)
		}
		return nil, b.fail(prompt.Translate, err)
	}
	b.logger.Info("translated", zap.Int("districts", len(res)), zap.Duration("took", time.Since(start)))
	return res, nil
}

// Analyze detects the dialect of a sentence.
func (b *Boundary) Analyze(ctx context.Context, req dialect.AnalysisRequest) (*dialect.AnalysisResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, b.reject(prompt.Analyze, err)
	}
	res, err := b.caps.AnalyzeSentence(ctx, req)
	if err != nil {
		return nil, b.fail(prompt.Analyze, err)
	}
	return res, nil
}

// Reverse converts a slang sentence to standard Malayalam.
func (b *Boundary) Reverse(ctx context.Context, req dialect.ReverseRequest) (*dialect.ReverseResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, b.reject(prompt.Reverse, err)
	}
	res, err := b.caps.ReverseTranslate(ctx, req)
	if err != nil {
		return nil, b.fail(prompt.Reverse, err)
	}
	return res, nil
}

// Insights returns cultural trivia about a district.
func (b *Boundary) Insights(ctx context.Context, req dialect.InsightRequest) (*dialect.InsightResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, b.reject(prompt.Insights, err)
	}
	res, err := b.caps.CulturalInsights(ctx, req)
	if err != nil {
		return nil, b.fail(prompt.Insights, err)
	}
	return res, nil
}

// Score rates the meaning match of a conversion.
func (b *Boundary) Score(ctx context.Context, req dialect.ScoreRequest) (*dialect.ScoreResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, b.reject(prompt.Score, err)
	}
	res, err := b.caps.MeaningMatchScore(ctx, req)
	if err != nil {
		return nil, b.fail(prompt.Score, err)
	}
	return res, nil
}

// Speak synthesizes speech.
func (b *Boundary) Speak(ctx context.Context, req dialect.SpeechRequest) (*dialect.SpeechResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, b.reject(prompt.Speech, err)
	}
	res, err := b.caps.TextToSpeech(ctx, req)
	if err != nil {
		return nil, b.fail(prompt.Speech, err)
	}
	return res, nil
}

// TranslatePayload decodes an untyped payload and calls Translate.
func (b *Boundary) TranslatePayload(ctx context.Context, payload json.RawMessage) ([]dialect.DialectResult, error) {
	var req dialect.TranslationRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, b.reject(prompt.Translate, err)
	}
	return b.Translate(ctx, req)
}

// AnalyzePayload decodes an untyped payload and calls Analyze.
func (b *Boundary) AnalyzePayload(ctx context.Context, payload json.RawMessage) (*dialect.AnalysisResult, error) {
	var req dialect.AnalysisRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, b.reject(prompt.Analyze, err)
	}
	return b.Analyze(ctx, req)
}

// ReversePayload decodes an untyped payload and calls Reverse.
func (b *Boundary) ReversePayload(ctx context.Context, payload json.RawMessage) (*dialect.ReverseResult, error) {
	var req dialect.ReverseRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, b.reject(prompt.Reverse, err)
	}
	return b.Reverse(ctx, req)
}

// InsightsPayload decodes an untyped payload and calls Insights.
func (b *Boundary) InsightsPayload(ctx context.Context, payload json.RawMessage) (*dialect.InsightResult, error) {
	var req dialect.InsightRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, b.reject(prompt.Insights, err)
	}
	return b.Insights(ctx, req)
}

// ScorePayload decodes an untyped payload and calls Score.
func (b *Boundary) ScorePayload(ctx context.Context, payload json.RawMessage) (*dialect.ScoreResult, error) {
	var req dialect.ScoreRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, b.reject(prompt.Score, err)
	}
	return b.Score(ctx, req)
}

// SpeakPayload decodes an untyped payload and returns the clip as a data URI.
func (b *Boundary) SpeakPayload(ctx context.Context, payload json.RawMessage) (*Media, error) {
	var req dialect.SpeechRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, b.reject(prompt.Speech, err)
	}
	res, err := b.Speak(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Media{Media: res.DataURI(), MIMEType: res.MIMEType}, nil
}

// Dispatch routes a payload to the named capability. The result is ready
// for JSON encoding.
func (b *Boundary) Dispatch(ctx context.Context, capability string, payload json.RawMessage) (any, error) {
	switch prompt.Capability(strings.ToLower(strings.TrimSpace(capability))) {
	case prompt.Translate:
		return b.TranslatePayload(ctx, payload)
	case prompt.Analyze:
		return b.AnalyzePayload(ctx, payload)
	case prompt.Reverse:
		return b.ReversePayload(ctx, payload)
	case prompt.Insights:
		return b.InsightsPayload(ctx, payload)
	case prompt.Score:
		return b.ScorePayload(ctx, payload)
	case prompt.Speech:
		return b.SpeakPayload(ctx, payload)
	}

	err := fmt.Errorf("%w: unknown capability %q", dialect.ErrInvalidInput, capability)
	b.logger.Info("request rejected", zap.String("capability", capability), zap.Error(err))
	return nil, &Error{Kind: InvalidInput, Message: "Unknown capability", cause: err}
}

// decodePayload strictly decodes exactly one JSON object.
func decodePayload(payload json.RawMessage, v any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return fmt.Errorf("%w: empty payload", dialect.ErrInvalidInput)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", dialect.ErrInvalidInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after payload", dialect.ErrInvalidInput)
	}
	return nil
}

func (b *Boundary) reject(c prompt.Capability, err error) error {
	b.logger.Info("request rejected", zap.String("capability", string(c)), zap.Error(err))
	return invalidInput(c, err)
}

func (b *Boundary) fail(c prompt.Capability, err error) error {
	if errors.Is(err, dialect.ErrInvalidInput) {
		return b.reject(c, err)
	}
	b.logger.Error("capability failed", zap.String("capability", string(c)), zap.Error(err))
	return serverError(c, err)
}
