// Package lifecycle adapts vault change notifications to the generic
// lifecycle.Source contract, so a host supervising workers can consume
// note events alongside its other event sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quill/pkg/core"
)

type vaultSource struct {
	in  <-chan core.Event
	out chan lifecycle.Event
}

// NewSource wraps a note event channel, typically obtained from
// Service.Watch, as a lifecycle.Source. The source drains the input
// channel until it closes or the context is cancelled.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &vaultSource{
		in:  events,
		out: make(chan lifecycle.Event),
	}
}

func (s *vaultSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *vaultSource) Start(ctx context.Context) error {
	// The bridge goroutine runs under lifecycle.Go so the host tracks it.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.in:
				if !ok {
					return nil
				}
				if !s.forward(ctx, e) {
					return nil
				}
			}
		}
	})
	return nil
}

// forward hands one event to the consumer, giving up on cancellation.
// core.Event satisfies lifecycle.Event through its String method.
func (s *vaultSource) forward(ctx context.Context, e core.Event) bool {
	select {
	case s.out <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
