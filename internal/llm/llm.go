// Package llm wraps the generative model API behind small interfaces so the
// relay and assessment pipeline can be tested without network calls.
package llm

import (
	"context"

	"github.com/zulandar/chalkline/internal/chat"
)

// Request describes one completion call: a system instruction, the ordered
// conversation so far, and an output token budget.
type Request struct {
	System    string
	Messages  []chat.Message
	MaxTokens int32
}

// Stream yields incremental text deltas from a streaming completion.
// Recv returns io.EOF after the final delta; any other error means the
// upstream stream failed and no further deltas will arrive.
type Stream interface {
	Recv() (string, error)
}

// Client issues completion calls against a generative model.
type Client interface {
	// Stream opens a streaming completion for the conversation.
	Stream(ctx context.Context, req Request) (Stream, error)

	// Complete issues a single-shot completion and returns the first
	// text part of the response, or "" if the response carries no text.
	Complete(ctx context.Context, req Request) (string, error)

	// Close releases client resources.
	Close() error
}
