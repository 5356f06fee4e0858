package raster

import "image/color"

// FilledRect is a plain surface rectangle: one handle, no rasterizing.
type FilledRect struct {
	owned
	p1, p2  Point
	fill    color.RGBA
	outline color.RGBA
	width   float64
}

func NewFilledRect(p1, p2 Point) *FilledRect {
	return &FilledRect{p1: p1, p2: p2, fill: White, outline: Black, width: 1}
}

func (r *FilledRect) Draw(s Surface) {
	r.release()
	r.draw(s, []Rect{{Min: r.p1, Max: r.p2, Fill: r.fill, Outline: r.outline, Width: r.width}})
}

func (r *FilledRect) Undraw() {
	r.release()
}

func (r *FilledRect) Move(dx, dy float64) {
	r.p1 = r.p1.Add(dx, dy)
	r.p2 = r.p2.Add(dx, dy)
	if s := r.surface; s != nil {
		r.Draw(s)
	}
}

func (r *FilledRect) SetFill(c color.RGBA) *FilledRect {
	r.fill = c
	return r
}

func (r *FilledRect) SetOutline(c color.RGBA) *FilledRect {
	r.outline = c
	return r
}

func (r *FilledRect) SetWidth(w float64) *FilledRect {
	r.width = w
	return r
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r *FilledRect) Contains(p Point) bool {
	return r.p1.X <= p.X && p.X <= r.p2.X && r.p1.Y <= p.Y && p.Y <= r.p2.Y
}

// BorderRect is a rectangle whose edge is made of Bresenham lines. The
// optional fill is a single surface rect drawn underneath.
type BorderRect struct {
	owned
	p1, p2  Point
	fill    *color.RGBA
	outline color.RGBA
	width   float64
}

func NewBorderRect(p1, p2 Point) *BorderRect {
	return &BorderRect{p1: p1, p2: p2, outline: Black, width: 1}
}

func (r *BorderRect) Draw(s Surface) {
	r.release()
	var rects []Rect
	if r.fill != nil {
		rects = append(rects, Rect{Min: r.p1, Max: r.p2, Fill: *r.fill, Outline: *r.fill, Width: 1})
	}
	rects = append(rects, RasterBorder(r.p1, r.p2, r.outline, r.width)...)
	r.draw(s, rects)
}

func (r *BorderRect) Undraw() {
	r.release()
}

func (r *BorderRect) Move(dx, dy float64) {
	r.p1 = r.p1.Add(dx, dy)
	r.p2 = r.p2.Add(dx, dy)
	if s := r.surface; s != nil {
		r.Draw(s)
	}
}

func (r *BorderRect) SetFill(c color.RGBA) *BorderRect {
	r.fill = &c
	return r
}

func (r *BorderRect) SetOutline(c color.RGBA) *BorderRect {
	r.outline = c
	return r
}

func (r *BorderRect) SetWidth(w float64) *BorderRect {
	r.width = w
	return r
}

func (r *BorderRect) P1() Point { return r.p1 }
func (r *BorderRect) P2() Point { return r.p2 }
