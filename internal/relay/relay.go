// Package relay turns an upstream completion stream into an ordered event
// sequence with a single terminal event.
package relay

import (
	"context"
	"io"
	"log"

	"github.com/zulandar/chalkline/internal/llm"
)

// GenericError is the only failure text ever surfaced downstream. Upstream
// error detail is logged server-side and never crosses the boundary.
const GenericError = "An error occurred"

// Kind classifies a relay event.
type Kind int

const (
	// KindText carries one verbatim upstream delta.
	KindText Kind = iota
	// KindError is terminal: the upstream stream failed.
	KindError
	// KindDone is terminal: the upstream stream completed cleanly.
	KindDone
)

// Event is one downstream unit. Exactly one terminal event (KindDone or
// KindError) ends every sequence, and it is always last.
type Event struct {
	Kind Kind
	Text string
}

// Run consumes the stream and emits events on the returned channel in
// upstream arrival order, one event per delta, without buffering or
// merging. The channel is closed after the terminal event. Deltas emitted
// before a failure remain valid; they are never retracted.
func Run(ctx context.Context, s llm.Stream) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		for {
			delta, err := s.Recv()
			if err == io.EOF {
				emit(ctx, ch, Event{Kind: KindDone})
				return
			}
			if err != nil {
				log.Printf("relay: upstream stream failed: %v", err)
				emit(ctx, ch, Event{Kind: KindError, Text: GenericError})
				return
			}
			if !emit(ctx, ch, Event{Kind: KindText, Text: delta}) {
				return
			}
		}
	}()
	return ch
}

// emit sends one event unless the consumer is gone.
func emit(ctx context.Context, ch chan<- Event, evt Event) bool {
	select {
	case ch <- evt:
		return true
	case <-ctx.Done():
		return false
	}
}
