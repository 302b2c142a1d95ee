// Package llm is the boundary to the generative language model provider.
// Everything past this package sees plain strings and *GenerationError.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when no provider API key was supplied at startup.
	ErrNotConfigured = errors.New("generative model is not configured: GEMINI_API_KEY is missing")
	// ErrEmptyResponse is returned when the provider answered without any candidate.
	ErrEmptyResponse = errors.New("generative model returned no candidates")
)

// Generator issues a single prompt and returns the completion text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError wraps any failure of a generative call. The message is the
// provider's own message so it can be surfaced to callers unchanged.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string { return e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }

type unconfigured struct{}

// Unconfigured returns a Generator that fails every call with ErrNotConfigured.
func Unconfigured() Generator { return unconfigured{} }

func (unconfigured) Generate(context.Context, string) (string, error) {
	return "", &GenerationError{Err: ErrNotConfigured}
}
