package raster

import (
	"image"
	"image/color"
	"math"
)

// CircleOffsets runs the midpoint algorithm for the given radius and
// returns every plotted offset from the centre, octant by octant, with the
// duplicates the symmetry produces on the axes and diagonals. The radius is
// floored and never less than one.
func CircleOffsets(radius float64) []image.Point {
	r := int(radius)
	if r < 1 {
		r = 1
	}
	x, y := 0, r
	p := 1 - r

	points := make([]image.Point, 0, 8*(r+1))
	points = appendOctants(points, x, y)
	for x < y {
		x++
		if p < 0 {
			p += 2*x + 1
		} else {
			y--
			p += 2*(x-y) + 1
		}
		points = appendOctants(points, x, y)
	}
	return points
}

func appendOctants(points []image.Point, x, y int) []image.Point {
	return append(points,
		image.Pt(x, y),
		image.Pt(-x, y),
		image.Pt(x, -y),
		image.Pt(-x, -y),
		image.Pt(y, x),
		image.Pt(-y, x),
		image.Pt(y, -x),
		image.Pt(-y, -x),
	)
}

// FillBar is one horizontal span of a circle fill. Left and Right are
// pixel columns, Top and Bottom the first and last row of the band.
type FillBar struct {
	Left, Right int
	Top, Bottom int
}

// CircleFill scan-line fills a circle in bands of max(1, r/10) rows, so big
// circles are filled coarsely. The bar width uses the exact radius while
// the row range uses the floored one.
func CircleFill(cx, cy, radius float64) []FillBar {
	cxi, cyi := int(cx), int(cy)
	r := int(radius)
	step := r / 10
	if step < 1 {
		step = 1
	}

	var bars []FillBar
	for y := cyi - r + 1; y < cyi+r; y += step {
		dy := float64(y) - cy
		dx := 0
		if d := radius*radius - dy*dy; d > 0 {
			dx = int(math.Sqrt(d))
		}
		left, right := cxi-dx+1, cxi+dx-1
		if right <= left {
			continue
		}
		bars = append(bars, FillBar{Left: left, Right: right, Top: y, Bottom: y + step - 1})
	}
	return bars
}

// RasterCircle returns the outline dots followed by the fill bars.
func RasterCircle(cx, cy, radius float64, fill, outline color.RGBA, width float64) []Rect {
	offsets := CircleOffsets(radius)
	bars := CircleFill(cx, cy, radius)
	rects := make([]Rect, 0, len(offsets)+len(bars))
	for _, o := range offsets {
		rects = append(rects, pixel(cx+float64(o.X), cy+float64(o.Y), outline, width))
	}
	// bars hold inclusive pixels, rects are edges: pad by half a pixel
	// the same way the outline dots are
	for _, b := range bars {
		rects = append(rects, Rect{
			Min:     Point{float64(b.Left) - 0.5, float64(b.Top) - 0.5},
			Max:     Point{float64(b.Right) + 0.5, float64(b.Bottom) + 0.5},
			Fill:    fill,
			Outline: fill,
			Width:   1,
		})
	}
	return rects
}

// Circle is a midpoint circle that owns the rects it puts on a surface.
type Circle struct {
	owned
	center  Point
	radius  float64
	fill    color.RGBA
	outline color.RGBA
	width   float64
}

func NewCircle(center Point, radius float64) *Circle {
	return &Circle{
		center:  center,
		radius:  radius,
		fill:    White,
		outline: Black,
		width:   1,
	}
}

func (c *Circle) Draw(s Surface) {
	c.release()
	c.draw(s, RasterCircle(c.center.X, c.center.Y, c.radius, c.fill, c.outline, c.width))
}

func (c *Circle) Undraw() {
	c.release()
}

// Move translates the centre and redraws when the circle is on a surface.
func (c *Circle) Move(dx, dy float64) {
	c.center = c.center.Add(dx, dy)
	if s := c.surface; s != nil {
		c.Draw(s)
	}
}

// Redraw draws again on the current surface, picking up any setter changes.
func (c *Circle) Redraw() {
	if s := c.surface; s != nil {
		c.Draw(s)
	}
}

func (c *Circle) SetFill(col color.RGBA) *Circle {
	c.fill = col
	return c
}

func (c *Circle) SetOutline(col color.RGBA) *Circle {
	c.outline = col
	return c
}

func (c *Circle) SetWidth(w float64) *Circle {
	c.width = w
	return c
}

func (c *Circle) SetRadius(r float64) *Circle {
	c.radius = r
	return c
}

func (c *Circle) Center() Point   { return c.center }
func (c *Circle) Radius() float64 { return c.radius }
