package slideswitch_test

import (
	"testing"

	"github.com/alkime/slideswitch/pkg/slideswitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dims  slideswitch.Dimensions
		shape slideswitch.Shape
		want  slideswitch.PositionRange
	}{
		{
			name:  "rect default size",
			dims:  slideswitch.Dimensions{Width: 280, Height: 140},
			shape: slideswitch.ShapeRect,
			want:  slideswitch.PositionRange{Min: 6, Max: 140},
		},
		{
			name:  "circle default size",
			dims:  slideswitch.Dimensions{Width: 280, Height: 140},
			shape: slideswitch.ShapeCircle,
			want:  slideswitch.PositionRange{Min: 6, Max: 280 - 128 - 6},
		},
		{
			name:  "rect too narrow collapses to min",
			dims:  slideswitch.Dimensions{Width: 8, Height: 4},
			shape: slideswitch.ShapeRect,
			want:  slideswitch.PositionRange{Min: 6, Max: 6},
		},
		{
			name:  "circle narrower than tall collapses to min",
			dims:  slideswitch.Dimensions{Width: 50, Height: 100},
			shape: slideswitch.ShapeCircle,
			want:  slideswitch.PositionRange{Min: 6, Max: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := slideswitch.ComputeRange(tt.dims, tt.shape, slideswitch.RimSize)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Min, got.Max)
		})
	}
}

func TestAlphaAt(t *testing.T) {
	t.Parallel()

	r := slideswitch.PositionRange{Min: 6, Max: 140}

	for x := r.Min; x <= r.Max; x++ {
		a := slideswitch.AlphaAt(x, r)
		assert.GreaterOrEqual(t, a, 0)
		assert.LessOrEqual(t, a, 255)
	}

	assert.Equal(t, 255, slideswitch.AlphaAt(140, r))
	assert.Equal(t, 11, slideswitch.AlphaAt(6, r), "divisor is max, not max-min")
	assert.Equal(t, 128, slideswitch.AlphaAt(70, r), "127.5 rounds up")
	assert.Equal(t, 255, slideswitch.AlphaAt(500, r), "clamped high")
	assert.Equal(t, 0, slideswitch.AlphaAt(10, slideswitch.PositionRange{}), "zero max")
}

func TestPositionRange(t *testing.T) {
	t.Parallel()

	r := slideswitch.PositionRange{Min: 6, Max: 140}
	assert.Equal(t, 6, r.Clamp(-50))
	assert.Equal(t, 140, r.Clamp(1000))
	assert.Equal(t, 77, r.Clamp(77))
	assert.Equal(t, 70, r.Threshold())
}

func TestParseShape(t *testing.T) {
	t.Parallel()

	s, err := slideswitch.ParseShape("Circle")
	require.NoError(t, err)
	assert.Equal(t, slideswitch.ShapeCircle, s)

	s, err = slideswitch.ParseShape(" rect ")
	require.NoError(t, err)
	assert.Equal(t, slideswitch.ShapeRect, s)
	assert.Equal(t, "rect", s.String())

	_, err = slideswitch.ParseShape("hexagon")
	assert.ErrorIs(t, err, slideswitch.ErrUnknownShape)
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	unspecified := slideswitch.MeasureSpec{}

	t.Run("preferred size", func(t *testing.T) {
		d := slideswitch.Measure(slideswitch.ShapeRect, unspecified, unspecified)
		assert.Equal(t, slideswitch.Dimensions{Width: 280, Height: 140}, d)
	})

	t.Run("at most caps", func(t *testing.T) {
		d := slideswitch.Measure(slideswitch.ShapeRect,
			slideswitch.MeasureSpec{Mode: slideswitch.MeasureAtMost, Size: 200},
			slideswitch.MeasureSpec{Mode: slideswitch.MeasureAtMost, Size: 500},
		)
		assert.Equal(t, slideswitch.Dimensions{Width: 200, Height: 140}, d)
	})

	t.Run("exact wins", func(t *testing.T) {
		d := slideswitch.Measure(slideswitch.ShapeRect,
			slideswitch.MeasureSpec{Mode: slideswitch.MeasureExactly, Size: 400},
			unspecified,
		)
		assert.Equal(t, 400, d.Width)
	})

	t.Run("circle widened when narrower than tall", func(t *testing.T) {
		d := slideswitch.Measure(slideswitch.ShapeCircle,
			slideswitch.MeasureSpec{Mode: slideswitch.MeasureExactly, Size: 100},
			unspecified,
		)
		assert.Equal(t, slideswitch.Dimensions{Width: 280, Height: 140}, d)
	})
}
