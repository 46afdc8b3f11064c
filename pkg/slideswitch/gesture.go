package slideswitch

// TapSlop is the largest total pointer travel still treated as a tap.
const TapSlop = 3

// gestureSession tracks a single pointer between down and up.
type gestureSession struct {
	startX int
	lastX  int
}

// PointerDown starts a drag at x. It returns false when the gesture is not
// handled (not slideable, not laid out, or disposed) so the host can pass
// it on. A settle animation still in flight is cancelled and the drag
// continues from wherever the thumb currently is.
func (s *Switch) PointerDown(x int) bool {
	if !s.slideable || !s.laidOut || s.disposed {
		return false
	}

	s.cancelSettle()

	s.origin = s.thumbLeft
	s.gesture = &gestureSession{startX: x, lastX: x}

	return true
}

// PointerMove drags the thumb by the travel since PointerDown.
func (s *Switch) PointerMove(x int) bool {
	if s.gesture == nil {
		return false
	}

	s.gesture.lastX = x
	s.thumbLeft = s.rng.Clamp(s.origin + x - s.gesture.startX)
	s.alpha = AlphaAt(s.thumbLeft, s.rng)
	s.requestRedraw()

	return true
}

// PointerUp releases the thumb and starts settling toward an edge.
//
// The thumb settles toward whichever half it was released in. A release
// within TapSlop of the press point counts as a tap and settles toward the
// other side instead, so tapping always toggles.
func (s *Switch) PointerUp(x int) bool {
	if s.gesture == nil {
		return false
	}

	delta := x - s.gesture.startX
	s.gesture = nil
	s.origin = s.thumbLeft

	toRight := s.thumbLeft > s.rng.Threshold()
	if abs(delta) < TapSlop {
		toRight = !toRight
	}

	s.startSettle(toRight)

	return true
}

// Tap runs a press and release at the same point, as a keyboard toggle would.
func (s *Switch) Tap() bool {
	x := s.thumbLeft
	if !s.PointerDown(x) {
		return false
	}

	return s.PointerUp(x)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
