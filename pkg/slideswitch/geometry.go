package slideswitch

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// RimSize is the inset between the thumb and the edges of the track.
const RimSize = 6

// Preferred size of the control when the host leaves it unconstrained.
const (
	DefaultWidth  = 280
	DefaultHeight = 140
)

// ErrUnknownShape is returned by ParseShape for unrecognised names.
var ErrUnknownShape = errors.New("unknown shape")

// Shape selects how the track and thumb are drawn.
type Shape int

const (
	// ShapeRect draws a square track with a half-width thumb.
	ShapeRect Shape = iota + 1
	// ShapeCircle draws a pill track with a round thumb.
	ShapeCircle
)

// String returns the canonical name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts a shape name into a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rect", "rectangle", "rectangular":
		return ShapeRect, nil
	case "circle", "circular", "pill":
		return ShapeCircle, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// Dimensions is the laid out size of the control.
type Dimensions struct {
	Width  int
	Height int
}

// PositionRange bounds the left edge of the thumb.
type PositionRange struct {
	Min int
	Max int
}

// Clamp returns x limited to [Min, Max].
func (r PositionRange) Clamp(x int) int {
	return max(r.Min, min(x, r.Max))
}

// Threshold is the position past which a released thumb snaps open.
func (r PositionRange) Threshold() int {
	return r.Max / 2
}

// ComputeRange derives the valid thumb positions for the given size and shape.
// A size too small for the shape yields a single-point range at Min.
func ComputeRange(d Dimensions, shape Shape, rim int) PositionRange {
	r := PositionRange{Min: rim}

	if shape == ShapeCircle {
		r.Max = d.Width - (d.Height - 2*rim) - rim
	} else {
		r.Max = d.Width / 2
	}

	if r.Max < r.Min {
		r.Max = r.Min
	}

	return r
}

// AlphaAt returns the track overlay alpha for a thumb position.
//
// The ratio is taken against Max rather than Max-Min, so a closed thumb
// sitting on the rim inset still reports a small non-zero alpha mid-drag.
func AlphaAt(thumbLeft int, r PositionRange) int {
	if r.Max <= 0 {
		return 0
	}

	a := int(math.Round(255 * float64(thumbLeft) / float64(r.Max)))

	return max(0, min(a, 255))
}

// MeasureMode mirrors the constraint modes a layout host can pass down.
type MeasureMode int

const (
	// MeasureUnspecified lets the control pick its preferred size.
	MeasureUnspecified MeasureMode = iota
	// MeasureExactly forces the given size.
	MeasureExactly
	// MeasureAtMost caps the preferred size.
	MeasureAtMost
)

// MeasureSpec is a single-axis layout constraint.
type MeasureSpec struct {
	Mode MeasureMode
	Size int
}

// MeasureDimension resolves a preferred size against a constraint.
func MeasureDimension(desired int, spec MeasureSpec) int {
	switch spec.Mode {
	case MeasureExactly:
		return spec.Size
	case MeasureAtMost:
		return min(desired, spec.Size)
	default:
		return desired
	}
}

// Measure computes the control size for a layout pass.
// Circular switches narrower than they are tall are widened to twice their height.
func Measure(shape Shape, width, height MeasureSpec) Dimensions {
	d := Dimensions{
		Width:  MeasureDimension(DefaultWidth, width),
		Height: MeasureDimension(DefaultHeight, height),
	}

	if shape == ShapeCircle && d.Width < d.Height {
		d.Width = d.Height * 2
	}

	return d
}
