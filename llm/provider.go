package llm

import (
	"context"
	"errors"
)

// Upstream failures mapped to stable kinds so handlers can translate them
// without knowing the transport.
var (
	ErrUnauthorized = errors.New("llm: invalid API key")
	ErrRateLimited  = errors.New("llm: rate limit exceeded")
	ErrBadRequest   = errors.New("llm: invalid request")
)

// Option tunes a single completion call.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

func WithTemperature(temperature float64) Option {
	return func(o *Options) {
		o.Temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider is the text-completion capability the summarization gateway
// depends on. Tests substitute this interface rather than the HTTP client.
type Provider interface {
	// Complete sends a system instruction plus a user prompt and returns
	// the model's reply.
	Complete(ctx context.Context, system, prompt string, opts ...Option) (string, error)
}
