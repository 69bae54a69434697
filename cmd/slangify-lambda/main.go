// Package main is the entry point for the slangify Lambda function.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal/boundary"
	"codeberg.org/snonux/slangify/internal/cli"
	"codeberg.org/snonux/slangify/internal/logging"
)

// Request is a capability invocation.
type Request struct {
	Capability string          `json:"capability"`
	Payload    json.RawMessage `json:"payload"`
}

// Response carries either the capability result or a user-facing message.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// dispatcher is the part of the request boundary the handler needs.
type dispatcher interface {
	Dispatch(ctx context.Context, capability string, payload json.RawMessage) (any, error)
}

type handler struct {
	boundary dispatcher
	warmer   *warmer
	logger   *zap.Logger
}

func main() {
	cli.InitConfig(os.Getenv("SLANGIFY_CONFIG"))

	logger := logging.Must(viper.GetString("log.level"), "json")
	defer logger.Sync()

	ctx := context.Background()
	b, _, err := cli.NewBackend(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize", zap.Error(err))
	}

	h := &handler{
		boundary: b,
		warmer:   newWarmer(newSelfInvoker(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")), logger),
		logger:   logger,
	}
	lambda.Start(h.handleRequest)
}

func (h *handler) handleRequest(ctx context.Context, event json.RawMessage) (any, error) {
	// Warmup detection comes before any other processing
	if warmup, ok := IsWarmupEvent(event); ok {
		return h.warmer.Handle(ctx, warmup), nil
	}

	var req Request
	if err := json.Unmarshal(event, &req); err != nil {
		return &Response{Error: "Invalid request"}, nil
	}

	data, err := h.boundary.Dispatch(ctx, req.Capability, req.Payload)
	if err != nil {
		var berr *boundary.Error
		if errors.As(err, &berr) {
			return &Response{Error: berr.Error()}, nil
		}
		h.logger.Error("dispatch failed", zap.String("capability", req.Capability), zap.Error(err))
		return &Response{Error: "Internal error"}, nil
	}
	return &Response{Data: data}, nil
}
