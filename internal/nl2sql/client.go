// Package nl2sql turns analyst questions into SQL via a chat-completion
// model: a Builder renders generation and repair prompts, and a Client
// carries them to an OpenAI-compatible endpoint.
package nl2sql

import "context"

// Client sends a single prompt to a language model and returns its raw
// text completion. The caller is responsible for extracting SQL from it.
type Client interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}
