package raster

import (
	"image"
	"image/color"
)

// LinePoints walks from (x1,y1) to (x2,y2) with Bresenham's algorithm.
// Both end points are included.
func LinePoints(x1, y1, x2, y2 int) []image.Point {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	err := dx - dy

	points := make([]image.Point, 0, max(dx, dy)+1)
	x, y := x1, y1
	for {
		points = append(points, image.Pt(x, y))
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		// both branches may run on the same step
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return points
}

// RasterLine rounds the end points to whole pixels and returns one dot per
// Bresenham step.
func RasterLine(p1, p2 Point, c color.RGBA, width float64) []Rect {
	points := LinePoints(round(p1.X), round(p1.Y), round(p2.X), round(p2.Y))
	rects := make([]Rect, 0, len(points))
	for _, p := range points {
		rects = append(rects, pixel(float64(p.X), float64(p.Y), c, width))
	}
	return rects
}

// RasterBorder outlines a rectangle with four lines: top, right, bottom,
// left. Every corner is emitted twice.
func RasterBorder(p1, p2 Point, c color.RGBA, width float64) []Rect {
	var rects []Rect
	rects = append(rects, RasterLine(Point{p1.X, p1.Y}, Point{p2.X, p1.Y}, c, width)...)
	rects = append(rects, RasterLine(Point{p2.X, p1.Y}, Point{p2.X, p2.Y}, c, width)...)
	rects = append(rects, RasterLine(Point{p2.X, p2.Y}, Point{p1.X, p2.Y}, c, width)...)
	rects = append(rects, RasterLine(Point{p1.X, p2.Y}, Point{p1.X, p1.Y}, c, width)...)
	return rects
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Line is a Bresenham line that owns its dots.
type Line struct {
	owned
	p1, p2 Point
	color  color.RGBA
	width  float64
}

func NewLine(p1, p2 Point) *Line {
	return &Line{p1: p1, p2: p2, color: Black, width: 1}
}

func (l *Line) Draw(s Surface) {
	l.release()
	l.draw(s, RasterLine(l.p1, l.p2, l.color, l.width))
}

func (l *Line) Undraw() {
	l.release()
}

func (l *Line) Move(dx, dy float64) {
	l.p1 = l.p1.Add(dx, dy)
	l.p2 = l.p2.Add(dx, dy)
	if s := l.surface; s != nil {
		l.Draw(s)
	}
}

// SetFill and SetOutline both set the line colour.
func (l *Line) SetFill(c color.RGBA) *Line {
	l.color = c
	return l
}

func (l *Line) SetOutline(c color.RGBA) *Line {
	return l.SetFill(c)
}

func (l *Line) SetWidth(w float64) *Line {
	l.width = w
	return l
}

func (l *Line) P1() Point { return l.p1 }
func (l *Line) P2() Point { return l.p2 }
