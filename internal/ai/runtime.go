package ai

import "context"

// Runtime is the single seam to a model backend: one blocking completion
// call. The pipeline holds a Runtime by reference for its whole lifetime;
// callers wanting timeouts or cancellation wrap ctx themselves.
type Runtime interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Provider identifiers used for runtime selection.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderLocal      = "local"
)
