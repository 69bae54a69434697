package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource identifies warmup events from the scheduler
	WarmupSource = "warmup"

	// WarmupDelay keeps instances busy long enough to overlap
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled event payload for warmup
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupBody reports how many instances were kept warm
type WarmupBody struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// WarmupResponse is returned for warmup events
type WarmupResponse struct {
	StatusCode int        `json:"statusCode"`
	Body       WarmupBody `json:"body"`
}

// IsWarmupEvent checks if the event is a warmup event
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var probe struct {
		Source      *string  `json:"source"`
		Concurrency *float64 `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return nil, false
	}
	if probe.Source == nil || *probe.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: WarmupSource}
	if probe.Concurrency != nil && *probe.Concurrency > 0 {
		warmup.Concurrency = int(*probe.Concurrency)
	}
	return warmup, true
}

// invoker asynchronously invokes this function with payload
type invoker interface {
	InvokeAsync(ctx context.Context, payload []byte) error
}

type warmer struct {
	invoker invoker
	logger  *zap.Logger
	sleep   func(time.Duration)
}

func newWarmer(inv invoker, logger *zap.Logger) *warmer {
	return &warmer{invoker: inv, logger: logger, sleep: time.Sleep}
}

// Handle answers a warmup event, fanning out to more instances when asked.
func (w *warmer) Handle(ctx context.Context, warmup *WarmupEvent) *WarmupResponse {
	instancesWarmed := 1

	if warmup.Concurrency > 0 {
		if err := w.selfInvoke(ctx, warmup.Concurrency); err != nil {
			w.logger.Warn("warmup self-invoke failed", zap.Int("concurrency", warmup.Concurrency), zap.Error(err))
		} else {
			instancesWarmed += warmup.Concurrency
		}
	}

	w.sleep(WarmupDelay)

	return &WarmupResponse{
		StatusCode: 200,
		Body:       WarmupBody{Status: "warm", InstancesWarmed: instancesWarmed},
	}
}

// selfInvoke invokes this function count times. Child events carry
// concurrency 0 so they never fan out again.
func (w *warmer) selfInvoke(ctx context.Context, count int) error {
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for range count {
		g.Go(func() error {
			return w.invoker.InvokeAsync(ctx, payload)
		})
	}
	return g.Wait()
}

// selfInvoker invokes a function by name through the Lambda API
type selfInvoker struct {
	functionName string
	loadConfig   func(ctx context.Context) (aws.Config, error)

	mu     sync.Mutex
	client lambdaInvoker
}

// lambdaInvoker is the part of the Lambda API client used for warmup
type lambdaInvoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

func newSelfInvoker(functionName string) *selfInvoker {
	return &selfInvoker{
		functionName: functionName,
		loadConfig: func(ctx context.Context) (aws.Config, error) {
			return config.LoadDefaultConfig(ctx)
		},
	}
}

// lambdaClient creates the client on first successful use. A failed load is
// retried by the next invocation.
func (s *selfInvoker) lambdaClient(ctx context.Context) (lambdaInvoker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	s.client = lambdasdk.NewFromConfig(cfg)
	return s.client, nil
}

// InvokeAsync sends payload as an event invocation
func (s *selfInvoker) InvokeAsync(ctx context.Context, payload []byte) error {
	client, err := s.lambdaClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.Invoke(ctx, &lambdasdk.InvokeInput{
		FunctionName:   aws.String(s.functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	return err
}
