package slideswitch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alkime/slideswitch/pkg/channels"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultTheme is the track color of a fully open switch.
var DefaultTheme = colorful.Color{R: 0, G: 0xee / 255.0, B: 0}

// Phase is the interaction state of a Switch.
//
//	Closed|Open --down--> Dragging --up--> Settling --final frame--> Closed|Open
type Phase int

const (
	// PhaseClosed means the thumb rests on the left edge.
	PhaseClosed Phase = iota
	// PhaseOpen means the thumb rests on the right edge.
	PhaseOpen
	// PhaseDragging means a pointer is down and moving the thumb.
	PhaseDragging
	// PhaseSettling means the thumb is animating toward an edge.
	PhaseSettling
)

// String returns the lower-case name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpen:
		return "open"
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Config is the initial configuration supplied by the host.
type Config struct {
	Theme     colorful.Color
	Open      bool
	Shape     Shape
	Slideable bool
}

// DefaultConfig returns a closed, slideable, rectangular switch.
func DefaultConfig() Config {
	return Config{
		Theme:     DefaultTheme,
		Open:      false,
		Shape:     ShapeRect,
		Slideable: true,
	}
}

// Option customises a Switch.
type Option func(*Switch)

// WithListener registers the state change listener.
func WithListener(l Listener) Option {
	return func(s *Switch) { s.listener = l }
}

// WithInvalidator sets the redraw request hook. It is always called on the
// owner goroutine.
func WithInvalidator(fn func()) Option {
	return func(s *Switch) { s.invalidate = fn }
}

// WithTickPeriod sets the delay between settle animation steps.
func WithTickPeriod(d time.Duration) Option {
	return func(s *Switch) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Switch) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Switch is the interaction state machine of a slide switch.
//
// A Switch is owned by a single goroutine (the host's UI loop). Every
// method must be called from that goroutine. Settle animations run on a
// background goroutine that only publishes frames; the owner applies them
// with Drain when Wake fires.
type Switch struct {
	theme      colorful.Color
	shape      Shape
	slideable  bool
	listener   Listener
	invalidate func()
	tick       time.Duration
	logger     *slog.Logger

	dims    Dimensions
	laidOut bool
	rng     PositionRange

	open      bool
	thumbLeft int
	alpha     int

	// drag origin for the next gesture
	origin  int
	gesture *gestureSession

	settle *settleRun
	runID  uint64
	// run whose frames the mailbox accepts; 0 when none
	active atomic.Uint64
	frames *channels.Mailbox[Frame]
	wg     sync.WaitGroup

	ctx      context.Context
	cancel   context.CancelFunc
	disposed bool
}

// New creates a Switch. It draws nothing until the first Layout.
func New(cfg Config, opts ...Option) *Switch {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Switch{
		theme:     cfg.Theme,
		shape:     cfg.Shape,
		slideable: cfg.Slideable,
		open:      cfg.Open,
		tick:      DefaultTickPeriod,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		frames:    channels.NewMailbox[Frame](),
		ctx:       ctx,
		cancel:    cancel,
	}

	if s.shape != ShapeCircle {
		s.shape = ShapeRect
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IsOpen reports the committed logical state.
func (s *Switch) IsOpen() bool { return s.open }

// ThumbLeft returns the left edge of the thumb.
func (s *Switch) ThumbLeft() int { return s.thumbLeft }

// Alpha returns the track overlay alpha in [0, 255].
func (s *Switch) Alpha() int { return s.alpha }

// Range returns the current thumb position range.
func (s *Switch) Range() PositionRange { return s.rng }

// Dimensions returns the size from the last Layout.
func (s *Switch) Dimensions() Dimensions { return s.dims }

// Shape returns the current shape.
func (s *Switch) Shape() Shape { return s.shape }

// Theme returns the track color used when open.
func (s *Switch) Theme() colorful.Color { return s.theme }

// Slideable reports whether pointer gestures are accepted.
func (s *Switch) Slideable() bool { return s.slideable }

// Settling reports whether a settle animation is in flight.
func (s *Switch) Settling() bool { return s.settle != nil }

// Phase returns the current interaction phase.
func (s *Switch) Phase() Phase {
	switch {
	case s.gesture != nil:
		return PhaseDragging
	case s.settle != nil:
		return PhaseSettling
	case s.open:
		return PhaseOpen
	default:
		return PhaseClosed
	}
}

// SetListener replaces the listener. A nil listener disables notifications.
func (s *Switch) SetListener(l Listener) {
	s.listener = l
}

// SetSlideable enables or disables pointer gestures. Disabling does not
// interrupt a gesture already in progress.
func (s *Switch) SetSlideable(slideable bool) {
	s.slideable = slideable
}

// SetShape changes the shape and re-derives the geometry.
func (s *Switch) SetShape(shape Shape) {
	if shape != ShapeCircle {
		shape = ShapeRect
	}

	if shape == s.shape {
		return
	}

	s.shape = shape
	s.relayout()
}

// Layout applies a new size from the host's layout pass.
func (s *Switch) Layout(d Dimensions) {
	if s.disposed {
		return
	}

	d.Width = max(d.Width, 0)
	d.Height = max(d.Height, 1)

	if s.laidOut && d == s.dims {
		return
	}

	s.dims = d
	s.laidOut = true
	s.relayout()
}

// relayout recomputes the range and brings the thumb back into it.
func (s *Switch) relayout() {
	if !s.laidOut || s.disposed {
		return
	}

	s.rng = ComputeRange(s.dims, s.shape, RimSize)

	switch {
	case s.gesture != nil:
		s.thumbLeft = s.rng.Clamp(s.thumbLeft)
		s.alpha = AlphaAt(s.thumbLeft, s.rng)
		s.origin = s.rng.Clamp(s.origin)
	case s.settle != nil:
		toRight := s.settle.toRight
		s.thumbLeft = s.rng.Clamp(s.thumbLeft)
		s.alpha = AlphaAt(s.thumbLeft, s.rng)
		s.startSettle(toRight)
	default:
		s.snap()
	}

	s.requestRedraw()
}

// snap places the thumb on the resting edge of the committed state.
func (s *Switch) snap() {
	if s.open {
		s.thumbLeft = s.rng.Max
		s.alpha = 255
	} else {
		s.thumbLeft = s.rng.Min
		s.alpha = 0
	}

	s.origin = s.thumbLeft
}

// SetState forces the switch open or closed without animation. Any drag or
// settle in progress is abandoned. The listener is notified synchronously,
// and only when the logical state changes: setting the state a switch
// already has is silent. This differs from a completed settle, which always
// notifies, and from hosts that notify on every call.
func (s *Switch) SetState(open bool) {
	if s.disposed {
		return
	}

	s.cancelSettle()
	s.gesture = nil

	changed := s.open != open
	s.open = open

	if s.laidOut {
		s.snap()
	}

	s.requestRedraw()

	if changed {
		s.notify(open)
	}
}

// Read implements uictl.Knob.
func (s *Switch) Read() bool { return s.IsOpen() }

// On implements uictl.Knob.
func (s *Switch) On() { s.SetState(true) }

// Off implements uictl.Knob.
func (s *Switch) Off() { s.SetState(false) }

// Toggle implements uictl.Knob.
func (s *Switch) Toggle() { s.SetState(!s.open) }

// Position exposes the thumb as a uictl.CappedDial.
func (s *Switch) Position() ThumbDial { return ThumbDial{s: s} }

// ThumbDial reads the thumb position against the range maximum. Both values
// are in switch units from the track's left edge, so a closed switch reads
// Range().Min (the rim inset), not zero.
type ThumbDial struct {
	s *Switch
}

// Read returns the thumb left edge.
func (d ThumbDial) Read() int { return d.s.thumbLeft }

// Cap returns the thumb left edge and the range maximum.
func (d ThumbDial) Cap() (int, int) { return d.s.thumbLeft, d.s.rng.Max }

// Dispose stops any animation and waits for its goroutine to exit.
// The Switch ignores all further input.
func (s *Switch) Dispose() {
	if s.disposed {
		return
	}

	s.disposed = true
	s.gesture = nil
	s.cancelSettle()
	s.cancel()
	s.wg.Wait()
	s.frames.Clear()

	s.logger.Debug("slide switch disposed")
}

// Done is closed once the switch has been disposed.
func (s *Switch) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Switch) requestRedraw() {
	if s.invalidate != nil {
		s.invalidate()
	}
}

func (s *Switch) notify(open bool) {
	s.logger.Debug("slide switch settled", "open", open)

	if s.listener == nil {
		return
	}

	if open {
		s.listener.Open()
	} else {
		s.listener.Close()
	}
}
