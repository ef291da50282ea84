package relay

import (
	"context"
	"errors"
	"io"
	"testing"
)

// scriptStream replays a fixed list of deltas, then a final error.
type scriptStream struct {
	deltas []string
	final  error
	pos    int
}

func (s *scriptStream) Recv() (string, error) {
	if s.pos < len(s.deltas) {
		d := s.deltas[s.pos]
		s.pos++
		return d, nil
	}
	return "", s.final
}

func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	for evt := range ch {
		events = append(events, evt)
	}
	return events
}

func TestRun_CleanCompletion(t *testing.T) {
	s := &scriptStream{deltas: []string{"Hel", "lo", "!"}, final: io.EOF}
	events := collect(t, Run(context.Background(), s))

	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}
	for i, want := range []string{"Hel", "lo", "!"} {
		if events[i].Kind != KindText || events[i].Text != want {
			t.Errorf("events[%d] = %+v, want text %q", i, events[i], want)
		}
	}
	if events[3].Kind != KindDone {
		t.Errorf("terminal event = %+v, want done", events[3])
	}
}

func TestRun_UpstreamFailure(t *testing.T) {
	s := &scriptStream{deltas: []string{"Hel", "lo"}, final: errors.New("provider exploded: internal detail")}
	events := collect(t, Run(context.Background(), s))

	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	if events[0].Text != "Hel" || events[1].Text != "lo" {
		t.Errorf("deltas = %+v, want Hel, lo", events[:2])
	}
	last := events[2]
	if last.Kind != KindError {
		t.Fatalf("terminal event = %+v, want error", last)
	}
	if last.Text != GenericError {
		t.Errorf("error text = %q, want %q (no leaked detail)", last.Text, GenericError)
	}
}

func TestRun_ImmediateFailure(t *testing.T) {
	s := &scriptStream{final: errors.New("boom")}
	events := collect(t, Run(context.Background(), s))

	if len(events) != 1 || events[0].Kind != KindError {
		t.Fatalf("events = %+v, want single error event", events)
	}
}

func TestRun_EmptyStream(t *testing.T) {
	s := &scriptStream{final: io.EOF}
	events := collect(t, Run(context.Background(), s))

	if len(events) != 1 || events[0].Kind != KindDone {
		t.Fatalf("events = %+v, want single done event", events)
	}
}

func TestRun_SingleTerminalEvent(t *testing.T) {
	for name, s := range map[string]*scriptStream{
		"clean":  {deltas: []string{"a"}, final: io.EOF},
		"failed": {deltas: []string{"a"}, final: errors.New("x")},
	} {
		events := collect(t, Run(context.Background(), s))
		terminals := 0
		for i, evt := range events {
			if evt.Kind == KindDone || evt.Kind == KindError {
				terminals++
				if i != len(events)-1 {
					t.Errorf("%s: terminal event at index %d, want last", name, i)
				}
			}
		}
		if terminals != 1 {
			t.Errorf("%s: terminal events = %d, want 1", name, terminals)
		}
	}
}

func TestRun_ConsumerGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &scriptStream{deltas: []string{"a", "b", "c"}, final: io.EOF}
	ch := Run(ctx, s)

	<-ch // take one delta, then walk away
	cancel()

	// The producer must close the channel rather than block forever.
	for range ch {
	}
}
