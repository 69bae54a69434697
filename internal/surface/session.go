package surface

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// Backend is what a session calls. *boundary.Boundary implements it.
type Backend interface {
	Translate(ctx context.Context, req dialect.TranslationRequest) ([]dialect.DialectResult, error)
	Analyze(ctx context.Context, req dialect.AnalysisRequest) (*dialect.AnalysisResult, error)
	Reverse(ctx context.Context, req dialect.ReverseRequest) (*dialect.ReverseResult, error)
	Insights(ctx context.Context, req dialect.InsightRequest) (*dialect.InsightResult, error)
	Speak(ctx context.Context, req dialect.SpeechRequest) (*dialect.SpeechResult, error)
}

// Status is the state of one action.
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// DialogKind says what the shared dialog slot is showing.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogReverse
	DialogInsight
)

// Dialog is the single modal shared by reverse translation and insights.
type Dialog struct {
	Kind     DialogKind
	District dialect.District
	Loading  bool
	Reverse  *dialect.ReverseResult
	Insight  *dialect.InsightResult
}

// Open reports whether the dialog is visible.
func (d Dialog) Open() bool { return d.Kind != DialogNone }

// Snapshot is a copy of the session state handed to observers.
type Snapshot struct {
	Sentence  string
	Intensity dialect.Intensity

	Translate Status
	Detect    Status
	Reverse   Status
	Insight   Status
	Speech    Status

	Results     []dialect.DialectResult
	Analysis    *dialect.AnalysisResult
	Highlighted dialect.District
	Dialog      Dialog

	Clip         *dialect.SpeechResult
	ClipDistrict dialect.District
}

// Result returns the translation of district d, if any.
func (s Snapshot) Result(d dialect.District) (dialect.DialectResult, bool) {
	for _, r := range s.Results {
		if r.District == d {
			return r, true
		}
	}
	return dialect.DialectResult{}, false
}

// Config tunes a session.
type Config struct {
	Debounce          time.Duration
	MinAnalysisLength int
	Intensity         dialect.Intensity
}

// DefaultConfig returns the interactive defaults.
func DefaultConfig() Config {
	return Config{
		Debounce:          500 * time.Millisecond,
		MinAnalysisLength: 5,
		Intensity:         dialect.DefaultIntensity,
	}
}

// Toast titles and messages shown on failures.
const (
	TitleInputRequired   = "Input Required"
	TitleTranslateFailed = "Translation Error"
	TitleError           = "Error"

	MsgEmptySentence  = "Please enter a sentence to translate."
	MsgReverseFailed  = "Failed to reverse translate."
	MsgInsightsFailed = "Failed to get cultural insights."
	MsgSpeechFailed   = "Failed to generate speech."
)

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithExecutor replaces the goroutine-per-call executor.
func WithExecutor(e Executor) Option {
	return func(s *Session) { s.exec = e }
}

// WithToast sets the callback receiving user-facing errors.
func WithToast(f func(title, message string)) Option {
	return func(s *Session) { s.toast = f }
}

// WithObserver sets the callback receiving a snapshot after each change.
func WithObserver(f func(Snapshot)) Option {
	return func(s *Session) { s.observer = f }
}

// WithConfig overrides the defaults. Zero fields keep their default.
func WithConfig(c Config) Option {
	return func(s *Session) {
		if c.Debounce > 0 {
			s.config.Debounce = c.Debounce
		}
		if c.MinAnalysisLength > 0 {
			s.config.MinAnalysisLength = c.MinAnalysisLength
		}
		if c.Intensity.Valid() {
			s.config.Intensity = c.Intensity
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session is the state of one interactive user session. All methods are
// safe for concurrent use; callbacks run outside the session lock.
type Session struct {
	backend  Backend
	clock    Clock
	exec     Executor
	toast    func(title, message string)
	observer func(Snapshot)
	config   Config
	logger   *zap.Logger

	mu    sync.Mutex
	state Snapshot
	timer Timer

	timerGen     uint64
	translateSeq uint64
	detectSeq    uint64
	dialogSeq    uint64
	speechSeq    uint64

	closed   bool
	inflight sync.WaitGroup
}

// NewSession creates a session over backend.
func NewSession(backend Backend, opts ...Option) *Session {
	s := &Session{
		backend: backend,
		clock:   SystemClock{},
		exec:    GoExecutor,
		config:  DefaultConfig(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Intensity = s.config.Intensity
	return s
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetSentence updates the sentence and restarts the detection quiet window.
func (s *Session) SetSentence(sentence string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.Sentence = sentence
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.timer = s.clock.AfterFunc(s.config.Debounce, func() { s.detect(gen) })
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// SetIntensity sets the slang intensity for the next translation.
func (s *Session) SetIntensity(i dialect.Intensity) {
	if !i.Valid() {
		return
	}
	s.update(func() { s.state.Intensity = i })
}

// SetIntensitySlider sets the intensity from a 0..2 slider position.
func (s *Session) SetIntensitySlider(v float64) {
	s.SetIntensity(dialect.IntensityFromSlider(v))
}

// SelectDistrict highlights a result card.
func (s *Session) SelectDistrict(d dialect.District) {
	s.update(func() { s.state.Highlighted = d })
}

// Translate converts the current sentence into all fourteen dialects.
func (s *Session) Translate() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if strings.TrimSpace(s.state.Sentence) == "" {
		s.mu.Unlock()
		s.notify(TitleInputRequired, MsgEmptySentence)
		return
	}

	s.translateSeq++
	seq := s.translateSeq
	req := dialect.TranslationRequest{Sentence: s.state.Sentence, Intensity: s.state.Intensity}

	s.state.Results = nil
	s.state.Highlighted = ""
	s.closeDialogLocked()
	s.state.Translate = Pending
	snap := s.snapshotLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	s.publish(snap)
	s.spawn(func() {
		res, err := s.backend.Translate(context.Background(), req)

		s.mu.Lock()
		if s.closed || seq != s.translateSeq {
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.state.Results = nil
			s.state.Translate = Failed
			snap := s.snapshotLocked()
			s.mu.Unlock()

			s.logger.Warn("translation failed", zap.Error(err))
			s.publish(snap)
			s.notify(TitleTranslateFailed, err.Error())
			return
		}
		s.state.Results = res
		s.state.Translate = Succeeded
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snap)
	})
}

// detect runs when the quiet window of generation gen elapses.
func (s *Session) detect(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.detectSeq++
	seq := s.detectSeq
	sentence := s.state.Sentence

	if utf8.RuneCountInString(strings.TrimSpace(sentence)) <= s.config.MinAnalysisLength {
		s.state.Analysis = nil
		s.state.Detect = Idle
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snap)
		return
	}

	s.state.Detect = Pending
	snap := s.snapshotLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	s.publish(snap)
	s.spawn(func() {
		res, err := s.backend.Analyze(context.Background(), dialect.AnalysisRequest{Sentence: sentence})

		s.mu.Lock()
		if s.closed || seq != s.detectSeq {
			s.mu.Unlock()
			s.logger.Debug("discarded stale detection", zap.Uint64("seq", seq))
			return
		}
		if err != nil {
			s.state.Analysis = nil
			s.state.Detect = Failed
			s.logger.Debug("detection failed", zap.Error(err))
		} else {
			s.state.Analysis = res
			s.state.Detect = Succeeded
		}
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snap)
	})
}

// ReverseTranslate opens the dialog with slang converted back to standard
// Malayalam.
func (s *Session) ReverseTranslate(slang string, d dialect.District) {
	s.openDialog(DialogReverse, d, func(ctx context.Context, dlg *Dialog) error {
		res, err := s.backend.Reverse(ctx, dialect.ReverseRequest{SlangSentence: slang, District: d})
		if err != nil {
			return err
		}
		dlg.Reverse = res
		return nil
	})
}

// Insights opens the dialog with cultural trivia about a district.
func (s *Session) Insights(d dialect.District) {
	s.openDialog(DialogInsight, d, func(ctx context.Context, dlg *Dialog) error {
		res, err := s.backend.Insights(ctx, dialect.InsightRequest{District: d})
		if err != nil {
			return err
		}
		dlg.Insight = res
		return nil
	})
}

func (s *Session) openDialog(kind DialogKind, d dialect.District, call func(context.Context, *Dialog) error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.dialogSeq++
	seq := s.dialogSeq
	s.state.Dialog = Dialog{Kind: kind, District: d, Loading: true}
	s.setDialogStatus(kind, Pending)
	snap := s.snapshotLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	s.publish(snap)
	s.spawn(func() {
		dlg := Dialog{Kind: kind, District: d}
		err := call(context.Background(), &dlg)

		s.mu.Lock()
		if s.closed || seq != s.dialogSeq {
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.state.Dialog = Dialog{}
			s.setDialogStatus(kind, Failed)
			snap := s.snapshotLocked()
			s.mu.Unlock()

			s.logger.Warn("dialog request failed", zap.String("district", d.String()), zap.Error(err))
			s.publish(snap)
			msg := MsgReverseFailed
			if kind == DialogInsight {
				msg = MsgInsightsFailed
			}
			s.notify(TitleError, msg)
			return
		}
		s.state.Dialog = dlg
		s.setDialogStatus(kind, Succeeded)
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snap)
	})
}

// CloseDialog dismisses the dialog; a response still in flight is dropped.
func (s *Session) CloseDialog() {
	s.update(s.closeDialogLocked)
}

// Speak synthesizes text and keeps the clip for playback.
func (s *Session) Speak(text string, d dialect.District) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.speechSeq++
	seq := s.speechSeq
	s.state.Speech = Pending
	snap := s.snapshotLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	s.publish(snap)
	s.spawn(func() {
		clip, err := s.backend.Speak(context.Background(), dialect.SpeechRequest{Text: text, District: d})

		s.mu.Lock()
		if s.closed || seq != s.speechSeq {
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.state.Speech = Failed
			snap := s.snapshotLocked()
			s.mu.Unlock()

			s.logger.Warn("speech failed", zap.Error(err))
			s.publish(snap)
			s.notify(TitleError, MsgSpeechFailed)
			return
		}
		s.state.Clip = clip
		s.state.ClipDistrict = d
		s.state.Speech = Succeeded
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.publish(snap)
	})
}

// Close stops the detection timer and waits for requests in flight. Their
// results are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.inflight.Wait()
}

func (s *Session) update(f func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	f()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

func (s *Session) closeDialogLocked() {
	s.dialogSeq++
	if s.state.Dialog.Loading {
		s.setDialogStatus(s.state.Dialog.Kind, Idle)
	}
	s.state.Dialog = Dialog{}
}

func (s *Session) setDialogStatus(kind DialogKind, st Status) {
	switch kind {
	case DialogReverse:
		s.state.Reverse = st
	case DialogInsight:
		s.state.Insight = st
	}
}

// spawn runs work on the executor. The caller has already added to inflight.
func (s *Session) spawn(work func()) {
	s.exec(func() {
		defer s.inflight.Done()
		work()
	})
}

func (s *Session) snapshotLocked() Snapshot {
	snap := s.state
	if s.state.Results != nil {
		snap.Results = append([]dialect.DialectResult(nil), s.state.Results...)
	}
	return snap
}

func (s *Session) publish(snap Snapshot) {
	if s.observer != nil {
		s.observer(snap)
	}
}

func (s *Session) notify(title, message string) {
	if s.toast != nil {
		s.toast(title, message)
	}
}
