// Package raster scan-converts circles and lines into small rectangle
// commands and keeps track of which surface handles each shape owns.
package raster

import (
	"image/color"
	"math"
)

// Point is a position in screen space.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{x, y} }

// Add returns the point translated by dx, dy.
func (p Point) Add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Rect is a single rectangle draw command. Width is the outline width.
type Rect struct {
	Min, Max Point
	Fill     color.RGBA
	Outline  color.RGBA
	Width    float64
}

// Handle identifies a rect owned by a Surface.
type Handle uint64

// Surface is the drawing target. Releasing a handle twice, or a handle the
// surface never issued, does nothing.
type Surface interface {
	DrawRect(r Rect) Handle
	Release(h Handle)
}

// Drawable is anything that can put itself on a surface and take itself
// off again.
type Drawable interface {
	Draw(s Surface)
	Undraw()
	Move(dx, dy float64)
}

var (
	White = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Black = color.RGBA{0, 0, 0, 0xff}
)

// pixel is the outline dot for a single rasterized point.
func pixel(x, y float64, c color.RGBA, width float64) Rect {
	return Rect{
		Min:     Point{x - width/2, y - width/2},
		Max:     Point{x + width/2, y + width/2},
		Fill:    c,
		Outline: c,
		Width:   width,
	}
}

func round(f float64) int {
	return int(math.Round(f))
}

// owned is the handle bookkeeping shared by every shape.
type owned struct {
	surface Surface
	handles []Handle
}

func (o *owned) draw(s Surface, rects []Rect) {
	o.surface = s
	o.handles = make([]Handle, 0, len(rects))
	for _, r := range rects {
		o.handles = append(o.handles, s.DrawRect(r))
	}
}

func (o *owned) release() {
	if o.surface == nil {
		return
	}
	for _, h := range o.handles {
		o.surface.Release(h)
	}
	o.handles = nil
	o.surface = nil
}

func (o *owned) Drawn() bool {
	return o.surface != nil
}

// Handles returns the handles currently owned.
func (o *owned) Handles() []Handle {
	return append([]Handle(nil), o.handles...)
}
