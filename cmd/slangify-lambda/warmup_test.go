package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvoker struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (f *fakeInvoker) InvokeAsync(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.err
}

func newTestWarmer(inv invoker) *warmer {
	w := newWarmer(inv, zap.NewNop())
	w.sleep = func(time.Duration) {}
	return w
}

func TestIsWarmupEvent(t *testing.T) {
	tests := []struct {
		name        string
		event       string
		want        bool
		concurrency int
	}{
		{"warmup", `{"source": "warmup"}`, true, 0},
		{"with concurrency", `{"source": "warmup", "concurrency": 3}`, true, 3},
		{"negative concurrency", `{"source": "warmup", "concurrency": -2}`, true, 0},
		{"other source", `{"source": "aws.events"}`, false, 0},
		{"capability request", `{"capability": "translate", "payload": {}}`, false, 0},
		{"not an object", `[1, 2]`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IsWarmupEvent(json.RawMessage(tt.event))
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, tt.concurrency, got.Concurrency)
			}
		})
	}
}

func TestWarmupWithoutConcurrency(t *testing.T) {
	inv := &fakeInvoker{}
	resp := newTestWarmer(inv).Handle(context.Background(), &WarmupEvent{Source: WarmupSource})

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, WarmupBody{Status: "warm", InstancesWarmed: 1}, resp.Body)
	assert.Empty(t, inv.payloads)
}

func TestWarmupSelfInvokes(t *testing.T) {
	inv := &fakeInvoker{}
	resp := newTestWarmer(inv).Handle(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 4})

	assert.Equal(t, 5, resp.Body.InstancesWarmed)
	require.Len(t, inv.payloads, 4)
	for _, p := range inv.payloads {
		child, ok := IsWarmupEvent(p)
		require.True(t, ok)
		assert.Zero(t, child.Concurrency, "child events must not fan out")
	}
}

func TestWarmupSelfInvokeFailure(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("access denied")}
	resp := newTestWarmer(inv).Handle(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 2})

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, resp.Body.InstancesWarmed)
}

type recordingLambda struct {
	mu     sync.Mutex
	inputs []*lambdasdk.InvokeInput
}

func (r *recordingLambda) Invoke(_ context.Context, in *lambdasdk.InvokeInput, _ ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, in)
	return &lambdasdk.InvokeOutput{StatusCode: 202}, nil
}

func TestSelfInvokerRetriesConfigLoad(t *testing.T) {
	loads := 0
	s := newSelfInvoker("slangify")
	s.loadConfig = func(context.Context) (aws.Config, error) {
		loads++
		if loads == 1 {
			return aws.Config{}, errors.New("credentials endpoint timed out")
		}
		return aws.Config{Region: "eu-central-1"}, nil
	}

	err := s.InvokeAsync(context.Background(), []byte(`{"source":"warmup"}`))
	require.Error(t, err)
	assert.Nil(t, s.client)

	client, err := s.lambdaClient(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, 2, loads)

	again, err := s.lambdaClient(context.Background())
	require.NoError(t, err)
	assert.Same(t, client, again)
	assert.Equal(t, 2, loads, "a loaded client is reused")
}

func TestSelfInvokerSendsEventInvocation(t *testing.T) {
	rec := &recordingLambda{}
	s := newSelfInvoker("slangify-prod")
	s.client = rec

	require.NoError(t, s.InvokeAsync(context.Background(), []byte(`{"source":"warmup"}`)))
	require.Len(t, rec.inputs, 1)
	assert.Equal(t, "slangify-prod", aws.ToString(rec.inputs[0].FunctionName))
	assert.Equal(t, types.InvocationTypeEvent, rec.inputs[0].InvocationType)
	assert.JSONEq(t, `{"source":"warmup"}`, string(rec.inputs[0].Payload))
}
