package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Surface that remembers live rects.
type recorder struct {
	next     Handle
	live     map[Handle]Rect
	released int
}

func newRecorder() *recorder {
	return &recorder{live: make(map[Handle]Rect)}
}

func (r *recorder) DrawRect(rect Rect) Handle {
	r.next++
	r.live[r.next] = rect
	return r.next
}

func (r *recorder) Release(h Handle) {
	if _, ok := r.live[h]; ok {
		delete(r.live, h)
		r.released++
	}
}

func uniquePoints(points []image.Point) map[image.Point]struct{} {
	set := make(map[image.Point]struct{}, len(points))
	for _, p := range points {
		set[p] = struct{}{}
	}
	return set
}

func TestCircleOffsetsRadiusFive(t *testing.T) {
	points := CircleOffsets(5)

	// initial point plus four steps, eight octants each
	assert.Len(t, points, 40)
	assert.Len(t, uniquePoints(points), 28)

	minX, minY, maxX, maxY := 0, 0, 0, 0
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	assert.Equal(t, []int{-5, -5, 5, 5}, []int{minX, minY, maxX, maxY})
}

func TestCircleOffsetsSymmetry(t *testing.T) {
	for _, r := range []float64{1, 2, 3, 5, 7.5, 13, 40} {
		set := uniquePoints(CircleOffsets(r))
		for p := range set {
			for _, q := range []image.Point{
				{p.X, -p.Y}, {-p.X, p.Y}, {-p.X, -p.Y},
				{p.Y, p.X}, {-p.Y, p.X}, {p.Y, -p.X}, {-p.Y, -p.X},
			} {
				_, ok := set[q]
				assert.True(t, ok, "radius %v: %v has no mirror %v", r, p, q)
			}
		}
	}
}

func TestCircleOffsetsSmallRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{"Zero", 0},
		{"Fraction", 0.4},
		{"Negative", -3},
		{"One", 1},
		{"Just under two", 1.99},
	}
	want := uniquePoints(CircleOffsets(1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := CircleOffsets(tt.radius)
			require.NotEmpty(t, points)
			assert.Equal(t, want, uniquePoints(points))
		})
	}
}

func TestCircleOffsetsStayNearRadius(t *testing.T) {
	for r := 1; r <= 30; r++ {
		for _, p := range CircleOffsets(float64(r)) {
			d2 := p.X*p.X + p.Y*p.Y
			assert.True(t, (r-1)*(r-1) <= d2 && d2 <= (r+1)*(r+1), "r=%d point %v", r, p)
		}
	}
}

func TestCircleFill(t *testing.T) {
	bars := CircleFill(0, 0, 5)
	require.Len(t, bars, 9)
	assert.Equal(t, FillBar{Left: -2, Right: 2, Top: -4, Bottom: -4}, bars[0])
	assert.Equal(t, FillBar{Left: -4, Right: 4, Top: 0, Bottom: 0}, bars[4])
	assert.Equal(t, FillBar{Left: -2, Right: 2, Top: 4, Bottom: 4}, bars[8])
}

func TestCircleFillCoarseForLargeRadius(t *testing.T) {
	bars := CircleFill(100, 100, 35)
	require.NotEmpty(t, bars)
	for i, b := range bars {
		assert.Equal(t, 2, b.Bottom-b.Top, "bar %d spans step rows", i)
		assert.True(t, b.Right > b.Left)
		if i > 0 {
			assert.Equal(t, 3, b.Top-bars[i-1].Top)
		}
	}
	assert.Equal(t, 66, bars[0].Top)
}

func TestCircleFillSkipsEmptySpans(t *testing.T) {
	// radius one: the only row has dx=1, so left=right and nothing is filled
	assert.Empty(t, CircleFill(10, 10, 1))
}

func TestRasterCircle(t *testing.T) {
	fill := color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
	outline := color.RGBA{0xff, 0xd7, 0x00, 0xff}
	rects := RasterCircle(20, 30, 5, fill, outline, 2)

	require.Len(t, rects, 40+9)
	first := rects[0]
	assert.Equal(t, Point{19, 34}, first.Min)
	assert.Equal(t, Point{21, 36}, first.Max)
	assert.Equal(t, outline, first.Fill)
	assert.Equal(t, outline, first.Outline)
	for _, r := range rects[40:] {
		assert.Equal(t, fill, r.Fill)
	}
	// first bar covers columns 18..22 of row 26
	bar := rects[40]
	assert.Equal(t, Point{17.5, 25.5}, bar.Min)
	assert.Equal(t, Point{22.5, 26.5}, bar.Max)
}

func TestCircleLifecycle(t *testing.T) {
	s := newRecorder()
	c := NewCircle(Pt(50, 50), 5).SetFill(White).SetOutline(Black)
	assert.False(t, c.Drawn())

	c.Draw(s)
	require.True(t, c.Drawn())
	drawn := len(s.live)
	assert.Equal(t, 49, drawn)

	c.Move(10, -10)
	assert.Equal(t, Pt(60, 40), c.Center())
	assert.Len(t, s.live, drawn)
	for _, r := range s.live {
		assert.True(t, r.Min.X >= 54 && r.Max.X <= 66, "rect %v moved", r)
	}

	c.Undraw()
	assert.Empty(t, s.live)
	assert.False(t, c.Drawn())
	c.Undraw()
	assert.Equal(t, 2*drawn, s.released)
}

func TestCircleSettersApplyOnNextDraw(t *testing.T) {
	s := newRecorder()
	c := NewCircle(Pt(0, 0), 3)
	c.Draw(s)
	c.SetOutline(color.RGBA{1, 2, 3, 255}).SetWidth(4)
	for _, r := range s.live {
		assert.NotEqual(t, color.RGBA{1, 2, 3, 255}, r.Outline)
	}
	c.Redraw()
	seen := false
	for _, r := range s.live {
		if r.Outline == (color.RGBA{1, 2, 3, 255}) {
			seen = true
			assert.Equal(t, 4.0, r.Width)
		}
	}
	assert.True(t, seen)
}

func TestCircleMoveWhenNotDrawn(t *testing.T) {
	c := NewCircle(Pt(1, 1), 2)
	c.Move(2, 3)
	assert.Equal(t, Pt(3, 4), c.Center())
	assert.False(t, c.Drawn())
}
