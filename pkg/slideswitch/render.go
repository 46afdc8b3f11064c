package slideswitch

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// Track and thumb base colors.
var (
	TrackColor = colorful.Color{R: 0x88 / 255.0, G: 0x88 / 255.0, B: 0x88 / 255.0}
	ThumbColor = colorful.Color{R: 1, G: 1, B: 1}
)

// OpKind is the primitive a DrawOp asks the host to draw.
type OpKind int

const (
	// OpRect fills an axis-aligned rectangle.
	OpRect OpKind = iota
	// OpRoundRect fills a rectangle with corners of Radius.
	OpRoundRect
)

// String returns the name of the primitive.
func (k OpKind) String() string {
	if k == OpRoundRect {
		return "roundrect"
	}

	return "rect"
}

// DrawOp is a single fill instruction, painted in order.
type DrawOp struct {
	Kind   OpKind
	Bounds image.Rectangle
	Radius int
	Color  colorful.Color
	// Alpha is the opacity in [0, 255].
	Alpha int
}

// Paint returns the draw instructions for the current state: the gray
// track, the theme colored track at the current alpha, then the thumb.
// It returns nil before the first Layout.
func (s *Switch) Paint() []DrawOp {
	if !s.laidOut {
		return nil
	}

	w, h := s.dims.Width, s.dims.Height
	back := image.Rect(0, 0, w, h)

	if s.shape == ShapeRect {
		front := image.Rect(s.thumbLeft, RimSize, s.thumbLeft+w/2-RimSize, h-RimSize)

		return []DrawOp{
			{Kind: OpRect, Bounds: back, Color: TrackColor, Alpha: 255},
			{Kind: OpRect, Bounds: back, Color: s.theme, Alpha: s.alpha},
			{Kind: OpRect, Bounds: front, Color: ThumbColor, Alpha: 255},
		}
	}

	radius := max(h/2-RimSize, 0)
	front := image.Rect(s.thumbLeft, RimSize, s.thumbLeft+h-2*RimSize, h-RimSize)

	return []DrawOp{
		{Kind: OpRoundRect, Bounds: back, Radius: radius, Color: TrackColor, Alpha: 255},
		{Kind: OpRoundRect, Bounds: back, Radius: radius, Color: s.theme, Alpha: s.alpha},
		{Kind: OpRoundRect, Bounds: front, Radius: radius, Color: ThumbColor, Alpha: 255},
	}
}

// Contains reports whether p falls inside the op's shape.
func (op DrawOp) Contains(p image.Point) bool {
	if !p.In(op.Bounds) {
		return false
	}

	if op.Kind != OpRoundRect || op.Radius <= 0 {
		return true
	}

	r := min(op.Radius, op.Bounds.Dx()/2, op.Bounds.Dy()/2)

	// distance to the nearest corner circle center, if p is in a corner
	cx := max(op.Bounds.Min.X+r-p.X, p.X-(op.Bounds.Max.X-1-r), 0)
	cy := max(op.Bounds.Min.Y+r-p.Y, p.Y-(op.Bounds.Max.Y-1-r), 0)

	return cx*cx+cy*cy <= r*r
}
