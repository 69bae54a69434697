package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/llm"
)

// MockModelClient mocks llm.Client. Replies and errors are keyed by the
// request name, which the capability functions set to the capability.
type MockModelClient struct {
	Replies map[string]string
	Errors  map[string]error
	// Block marks capabilities whose prompt the fake model refuses.
	Block map[string]bool

	mu    sync.Mutex
	calls []llm.Request
}

// NewMockModelClient returns a client answering every capability with a
// valid reply.
func NewMockModelClient() *MockModelClient {
	return &MockModelClient{
		Replies: map[string]string{
			"translate": TranslationReply(),
			"analyze":   `{"isStandard": false, "dialect": "Thrissur", "confidence": 87}`,
			"reverse":   `{"standardSentence": "ഞാൻ നാട്ടിലേക്ക് പോകുന്നു."}`,
			"insights":  `{"insight": "Thrissur speech is famous for its sing-song rhythm.", "popularPhrases": ["എന്തൂട്ടാ (what)", "ഗഡി (friend)", "പൊളി (awesome)"]}`,
			"score":     "96",
		},
		Errors: map[string]error{},
		Block:  map[string]bool{},
	}
}

// Generate mocks a model call
func (m *MockModelClient) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	reply := m.Replies[req.Name]
	err := m.Errors[req.Name]
	blocked := m.Block[req.Name]
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if blocked {
		return &llm.Response{Model: "mock", BlockReason: "SAFETY"}, nil
	}
	return &llm.Response{Text: reply, Model: "mock"}, nil
}

// Name returns the provider name
func (m *MockModelClient) Name() string {
	return "mock"
}

// Calls returns a copy of every request received so far.
func (m *MockModelClient) Calls() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.calls...)
}

// CallCount returns how many requests named name were received.
func (m *MockModelClient) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// MockSpeechProvider mocks audio.Provider
type MockSpeechProvider struct {
	Audio        []byte
	MIMEType     string
	Err          error
	AvailableErr error

	mu           sync.Mutex
	Texts        []string
	Instructions []string
}

// NewMockSpeechProvider returns a provider producing a tiny WAV clip.
func NewMockSpeechProvider() *MockSpeechProvider {
	return &MockSpeechProvider{
		Audio:    GenerateAudioData(),
		MIMEType: "audio/wav",
	}
}

// Synthesize records the call and returns the configured clip.
func (m *MockSpeechProvider) Synthesize(ctx context.Context, text, instruction string) (*dialect.SpeechResult, error) {
	m.mu.Lock()
	m.Texts = append(m.Texts, text)
	m.Instructions = append(m.Instructions, instruction)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return &dialect.SpeechResult{Audio: append([]byte(nil), m.Audio...), MIMEType: m.MIMEType}, nil
}

// Name returns the provider name
func (m *MockSpeechProvider) Name() string {
	return "mock"
}

// IsAvailable returns AvailableErr
func (m *MockSpeechProvider) IsAvailable() error {
	return m.AvailableErr
}

// FakeClock is a manually advanced clock for debounce tests.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*FakeTimer
}

// NewFakeClock starts at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// FakeTimer is a timer created by FakeClock.
type FakeTimer struct {
	clock   *FakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f to run once the clock is advanced past d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) interface{ Stop() bool } {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs due timers in deadline order on the
// calling goroutine.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*FakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
