// Package notify fans switch transitions out to background subscribers.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alkime/slideswitch/pkg/channels"
	"github.com/alkime/slideswitch/pkg/slideswitch"
)

// Transition is a completed open or close of the switch.
type Transition struct {
	Open bool
	At   time.Time
}

// String returns "open" or "close".
func (t Transition) String() string {
	if t.Open {
		return "open"
	}

	return "close"
}

// Hub publishes transitions to subscribers without blocking the owner goroutine.
type Hub struct {
	broadcaster *channels.Broadcaster[Transition]
	input       chan<- Transition
	now         func() time.Time
}

// NewHub creates a hub. Subscribe before Start.
func NewHub() *Hub {
	return &Hub{
		broadcaster: channels.NewBroadcaster[Transition](),
		now:         time.Now,
	}
}

// Subscribe registers ch. Slow subscribers drop transitions rather than
// stall the switch.
func (h *Hub) Subscribe(ch chan<- Transition) error {
	if err := h.broadcaster.Subscribe(ch); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	return nil
}

// Start begins delivery until ctx is done.
func (h *Hub) Start(ctx context.Context) error {
	input, err := h.broadcaster.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to start notification hub: %w", err)
	}

	h.input = input

	return nil
}

// Wait blocks until pending transitions are delivered after shutdown.
func (h *Hub) Wait() {
	h.broadcaster.Wait()
}

// Stats reports per-subscriber drops.
func (h *Hub) Stats() []channels.SubscriberStats {
	return h.broadcaster.Stats()
}

// Listener returns a slideswitch.Listener that publishes to the hub.
func (h *Hub) Listener() slideswitch.Listener {
	return slideswitch.ListenerFuncs{
		OnOpen:  func() { h.publish(true) },
		OnClose: func() { h.publish(false) },
	}
}

func (h *Hub) publish(open bool) {
	if h.input == nil {
		return
	}

	tr := Transition{Open: open, At: h.now()}
	if err := channels.SendNonBlock(h.input, tr); err != nil {
		slog.Warn("Dropped switch transition", "transition", tr.String(), "error", err)
	}
}

// LogTransitions logs every transition received on ch until it closes or
// ctx is done.
func LogTransitions(ctx context.Context, logger *slog.Logger, ch <-chan Transition) {
	for {
		select {
		case <-ctx.Done():
			return
		case tr, ok := <-ch:
			if !ok {
				return
			}

			logger.Info("Switch transition", "state", tr.String(), "at", tr.At)
		}
	}
}
