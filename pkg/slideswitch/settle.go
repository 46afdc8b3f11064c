package slideswitch

import (
	"context"
	"time"
)

const (
	// SettleStep is how far the thumb moves per animation tick.
	SettleStep = 3
	// DefaultTickPeriod is the delay between animation ticks.
	DefaultTickPeriod = 3 * time.Millisecond
)

// Frame is a snapshot published by the settle animator.
type Frame struct {
	Run       uint64
	ThumbLeft int
	Alpha     int
	// Final marks the terminal frame; Open is only meaningful on it.
	Final bool
	Open  bool
}

// settleRun is one in-flight animation and its cancellation token.
type settleRun struct {
	id      uint64
	toRight bool
	cancel  context.CancelFunc
}

// settleFrames computes the frame sequence from start toward one edge of r.
// Every intermediate frame is inside r; the last frame is Final and snapped
// exactly to the edge.
func settleFrames(start int, r PositionRange, toRight bool, emit func(Frame) bool) {
	pos := start

	if toRight {
		for pos <= r.Max {
			if !emit(Frame{ThumbLeft: max(pos, r.Min), Alpha: AlphaAt(max(pos, r.Min), r)}) {
				return
			}
			pos += SettleStep
		}

		emit(Frame{ThumbLeft: r.Max, Alpha: 255, Final: true, Open: true})

		return
	}

	for pos >= r.Min {
		if !emit(Frame{ThumbLeft: min(pos, r.Max), Alpha: AlphaAt(min(pos, r.Max), r)}) {
			return
		}
		pos -= SettleStep
	}

	emit(Frame{ThumbLeft: r.Min, Alpha: 0, Final: true, Open: false})
}

// startSettle launches the animator toward the chosen edge, replacing any
// run already in flight.
func (s *Switch) startSettle(toRight bool) {
	s.cancelSettle()

	if s.disposed {
		return
	}

	s.runID++
	ctx, cancel := context.WithCancel(s.ctx)
	run := &settleRun{id: s.runID, toRight: toRight, cancel: cancel}
	s.settle = run

	s.active.Store(run.id)

	start, rng, tick := s.thumbLeft, s.rng, s.tick

	s.logger.Debug("slide switch settling",
		"run", run.id,
		"from", start,
		"toRight", toRight,
	)

	s.wg.Go(func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		settleFrames(start, rng, toRight, func(f Frame) bool {
			if ctx.Err() != nil {
				return false
			}

			f.Run = run.id
			if !s.publish(f) {
				return false
			}

			if f.Final {
				return true
			}

			select {
			case <-ctx.Done():
				return false
			case <-ticker.C:
				return true
			}
		})
	})
}

// publish hands f to the owner if its run is still the active one. It is
// called from the animator goroutine and only touches the mailbox and the
// active run ID.
func (s *Switch) publish(f Frame) bool {
	return s.frames.PutIf(f, func() bool { return s.active.Load() == f.Run })
}

// cancelSettle stops the current animator. Retiring the run ID before the
// mailbox is cleared means a worker that already passed its cancellation
// check can no longer publish.
func (s *Switch) cancelSettle() {
	if s.settle == nil {
		return
	}

	s.settle.cancel()
	s.settle = nil
	s.active.Store(0)
	s.frames.Clear()
}

// Wake fires when the animator has published a frame for Drain.
func (s *Switch) Wake() <-chan struct{} {
	return s.frames.Ready()
}

// Drain applies the newest animation frame. Hosts call it on the owner
// goroutine whenever Wake fires, typically once per rendered frame. It
// reports whether the switch changed and needs repainting.
//
// When the final frame is applied the committed state is updated and the
// listener is notified exactly once for that edge, so notifications always
// arrive on the owner goroutine.
func (s *Switch) Drain() bool {
	f, ok := s.frames.Take()
	if !ok || s.settle == nil || f.Run != s.settle.id {
		return false
	}

	s.thumbLeft = f.ThumbLeft
	s.alpha = f.Alpha

	if !f.Final {
		s.requestRedraw()
		return true
	}

	s.settle.cancel()
	s.settle = nil
	s.active.Store(0)

	s.open = f.Open
	s.origin = s.thumbLeft
	s.requestRedraw()

	// every completed settle notifies, even one ending on the edge it left
	s.notify(f.Open)

	return true
}
