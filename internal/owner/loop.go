// Package owner runs a slide switch on a dedicated goroutine for hosts that
// have no UI loop of their own.
package owner

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/alkime/slideswitch/pkg/slideswitch"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("owner loop stopped")

// Loop serialises all access to a Switch onto one goroutine. Settle frames
// are drained as they arrive, so listener calls happen on the loop too.
type Loop struct {
	queue   chan func()
	stopped chan struct{}
	logger  *slog.Logger
	redraws atomic.Int64

	sw *slideswitch.Switch
}

// New creates a loop that builds its switch from cfg. The loop installs its
// own invalidator to count redraw requests.
func New(cfg slideswitch.Config, logger *slog.Logger, opts ...slideswitch.Option) *Loop {
	l := &Loop{
		queue:   make(chan func()),
		stopped: make(chan struct{}),
		logger:  logger,
	}

	opts = append(opts,
		slideswitch.WithLogger(logger),
		slideswitch.WithInvalidator(func() { l.redraws.Add(1) }),
	)
	l.sw = slideswitch.New(cfg, opts...)

	return l
}

// Run owns the switch until ctx is done, then disposes it.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	defer l.sw.Dispose()

	l.logger.Debug("Owner loop started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("Owner loop stopping")
			return nil
		case fn := <-l.queue:
			fn()
		case <-l.sw.Wake():
			l.sw.Drain()
		}
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(sw *slideswitch.Switch)) error {
	done := make(chan struct{})
	job := func() {
		defer close(done)
		fn(l.sw)
	}

	select {
	case l.queue <- job:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// once queued the job always runs to completion
	<-done

	return nil
}

// Redraws returns how many repaints the switch has requested. Animation
// ticks coalesce, so this is usually fewer than the frames computed.
func (l *Loop) Redraws() int64 {
	return l.redraws.Load()
}

// Snapshot is a copy of the switch state safe to use off the loop.
type Snapshot struct {
	Open      bool
	Phase     slideswitch.Phase
	Shape     slideswitch.Shape
	Slideable bool
	ThumbLeft int
	Alpha     int
	Range     slideswitch.PositionRange
	Size      slideswitch.Dimensions
	Ops       []slideswitch.DrawOp
}

// Snapshot captures the current state.
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := l.Do(ctx, func(sw *slideswitch.Switch) {
		snap = Snapshot{
			Open:      sw.IsOpen(),
			Phase:     sw.Phase(),
			Shape:     sw.Shape(),
			Slideable: sw.Slideable(),
			ThumbLeft: sw.ThumbLeft(),
			Alpha:     sw.Alpha(),
			Range:     sw.Range(),
			Size:      sw.Dimensions(),
			Ops:       sw.Paint(),
		}
	})

	return snap, err
}
