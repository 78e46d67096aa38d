package core

import (
	"context"
	"errors"
)

// Generation failure categories the transport layer maps to user-facing
// replies. Providers wrap their raw errors with these sentinels.
var (
	ErrRateLimited  = errors.New("model api rate limited")
	ErrUnauthorized = errors.New("model api authorization failed")
)

// Embedder converts text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a model completion for a fully composed prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
