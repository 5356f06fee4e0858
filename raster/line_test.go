package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePoints(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           []image.Point
	}{
		{
			name: "Horizontal",
			x2:   5,
			want: []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}},
		},
		{
			name: "Diagonal",
			x2:   3, y2: 3,
			want: []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		},
		{
			name: "Vertical upwards",
			x1:   2, y1: 3, x2: 2, y2: 0,
			want: []image.Point{{2, 3}, {2, 2}, {2, 1}, {2, 0}},
		},
		{
			name: "Single point",
			x1:   4, y1: 4, x2: 4, y2: 4,
			want: []image.Point{{4, 4}},
		},
		{
			name: "Shallow",
			x2:   4, y2: 2,
			want: []image.Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}},
		},
		{
			name: "Steep reversed",
			x1:   1, y1: 3, x2: 0, y2: 0,
			want: []image.Point{{1, 3}, {1, 2}, {0, 1}, {0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinePoints(tt.x1, tt.y1, tt.x2, tt.y2)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinePointsAreConnected(t *testing.T) {
	ends := []image.Point{{7, 2}, {-7, 2}, {2, 7}, {2, -7}, {-3, -9}, {9, -1}, {-6, 6}}
	for _, end := range ends {
		points := LinePoints(0, 0, end.X, end.Y)
		require.Equal(t, image.Pt(0, 0), points[0])
		require.Equal(t, end, points[len(points)-1])
		steps := abs(end.X)
		if abs(end.Y) > steps {
			steps = abs(end.Y)
		}
		assert.Len(t, points, steps+1, "line to %v", end)
		for i := 1; i < len(points); i++ {
			d := points[i].Sub(points[i-1])
			assert.True(t, abs(d.X) <= 1 && abs(d.Y) <= 1, "gap between %v and %v", points[i-1], points[i])
		}
	}
}

func TestRasterLineRoundsEndpoints(t *testing.T) {
	rects := RasterLine(Pt(0.4, 0), Pt(2.6, 0.2), Black, 1)
	require.Len(t, rects, 4)
	assert.Equal(t, Pt(-0.5, -0.5), rects[0].Min)
	assert.Equal(t, Pt(3.5, 0.5), rects[3].Max)
}

func TestRasterBorderKeepsCornerDuplicates(t *testing.T) {
	rects := RasterBorder(Pt(0, 0), Pt(4, 2), Black, 1)
	// top 5, right 3, bottom 5, left 3
	require.Len(t, rects, 16)

	count := make(map[Point]int)
	for _, r := range rects {
		count[r.Min]++
	}
	for _, corner := range []Point{{-0.5, -0.5}, {3.5, -0.5}, {3.5, 1.5}, {-0.5, 1.5}} {
		assert.Equal(t, 2, count[corner], "corner %v", corner)
	}
	// top edge comes first, left-to-right
	assert.Equal(t, Pt(-0.5, -0.5), rects[0].Min)
	assert.Equal(t, Pt(3.5, -0.5), rects[4].Min)
}

func TestLineLifecycle(t *testing.T) {
	s := newRecorder()
	gold := color.RGBA{0xff, 0xd7, 0, 0xff}
	l := NewLine(Pt(0, 0), Pt(10, 0)).SetOutline(gold).SetWidth(2)
	l.Draw(s)
	require.Len(t, s.live, 11)
	for _, r := range s.live {
		assert.Equal(t, gold, r.Fill)
	}

	l.Move(0, 5)
	assert.Equal(t, Pt(0, 5), l.P1())
	assert.Equal(t, Pt(10, 5), l.P2())
	assert.Len(t, s.live, 11)

	l.Undraw()
	l.Undraw()
	assert.Empty(t, s.live)
}

func TestBorderRectWithFill(t *testing.T) {
	s := newRecorder()
	green := color.RGBA{0x90, 0xee, 0x90, 0xff}
	b := NewBorderRect(Pt(10, 10), Pt(20, 15)).SetFill(green).SetWidth(2)
	b.Draw(s)

	// one fill rect, then 11 + 6 + 11 + 6 border dots
	require.Len(t, s.live, 35)
	assert.Equal(t, green, s.live[1].Fill)
	assert.Equal(t, Pt(10, 10), s.live[1].Min)

	b.Move(5, 5)
	assert.Equal(t, Pt(15, 15), b.P1())
	assert.Len(t, s.live, 35)
	b.Undraw()
	assert.Empty(t, s.live)
}

func TestFilledRect(t *testing.T) {
	s := newRecorder()
	r := NewFilledRect(Pt(0, 40), Pt(40, 80)).SetFill(White).SetOutline(Black)
	var d Drawable = r
	d.Draw(s)
	require.Len(t, s.live, 1)
	assert.True(t, r.Contains(Pt(20, 60)))
	assert.False(t, r.Contains(Pt(41, 60)))

	d.Move(40, 0)
	assert.True(t, r.Contains(Pt(41, 60)))
	require.Len(t, s.live, 1)
	d.Undraw()
	d.Undraw()
	assert.Empty(t, s.live)
	assert.Equal(t, 2, s.released)
}
