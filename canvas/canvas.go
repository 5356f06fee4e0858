// Package canvas is a retained-mode raster.Surface. It remembers every
// rect until it is released and can paint the survivors, in draw order,
// onto any draw.Image.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/zucenko/coinmaze/raster"
)

type entry struct {
	handle raster.Handle
	rect   raster.Rect
}

type Canvas struct {
	next    raster.Handle
	entries []entry
	index   map[raster.Handle]int
	dead    int
}

func New() *Canvas {
	return &Canvas{index: make(map[raster.Handle]int)}
}

func (c *Canvas) DrawRect(r raster.Rect) raster.Handle {
	c.next++
	c.index[c.next] = len(c.entries)
	c.entries = append(c.entries, entry{handle: c.next, rect: r})
	return c.next
}

// Release forgets the rect behind h. Unknown handles are ignored.
func (c *Canvas) Release(h raster.Handle) {
	i, ok := c.index[h]
	if !ok {
		return
	}
	delete(c.index, h)
	c.entries[i].handle = 0
	c.dead++
	if c.dead > 64 && c.dead > len(c.entries)/2 {
		c.compact()
	}
}

func (c *Canvas) compact() {
	live := c.entries[:0]
	for _, e := range c.entries {
		if e.handle == 0 {
			continue
		}
		c.index[e.handle] = len(live)
		live = append(live, e)
	}
	for i := len(live); i < len(c.entries); i++ {
		c.entries[i] = entry{}
	}
	c.entries = live
	c.dead = 0
}

// Len is the number of live rects.
func (c *Canvas) Len() int {
	return len(c.index)
}

// Rects returns the live rects bottom to top.
func (c *Canvas) Rects() []raster.Rect {
	rects := make([]raster.Rect, 0, len(c.index))
	c.Each(func(r raster.Rect) {
		rects = append(rects, r)
	})
	return rects
}

// Each calls fn for every live rect, bottom to top.
func (c *Canvas) Each(fn func(raster.Rect)) {
	for _, e := range c.entries {
		if e.handle != 0 {
			fn(e.rect)
		}
	}
}

func (c *Canvas) Clear() {
	c.entries = nil
	c.index = make(map[raster.Handle]int)
	c.dead = 0
}

// Bounds maps a rect to the pixels it covers. Edges round half up, and a
// rect thinner than a pixel still covers one.
func Bounds(r raster.Rect) image.Rectangle {
	x0, y0 := halfUp(r.Min.X), halfUp(r.Min.Y)
	x1, y1 := halfUp(r.Max.X), halfUp(r.Max.Y)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	return image.Rect(x0, y0, x1, y1)
}

func halfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}

// Paint draws every live rect onto dst: the fill, then an outline of
// r.Width pixels along the inside of the bounds.
func (c *Canvas) Paint(dst draw.Image) {
	c.Each(func(r raster.Rect) {
		b := Bounds(r)
		draw.Draw(dst, b, image.NewUniform(r.Fill), image.ZP, draw.Src)
		w := int(r.Width)
		if w <= 0 || r.Outline == r.Fill {
			return
		}
		src := image.NewUniform(r.Outline)
		for _, edge := range []image.Rectangle{
			image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+w),
			image.Rect(b.Min.X, b.Max.Y-w, b.Max.X, b.Max.Y),
			image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Max.Y),
			image.Rect(b.Max.X-w, b.Min.Y, b.Max.X, b.Max.Y),
		} {
			draw.Draw(dst, edge.Intersect(b), src, image.ZP, draw.Src)
		}
	})
}

// Image paints the canvas onto a fresh width x height image over bg.
func (c *Canvas) Image(width, height int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.ZP, draw.Src)
	c.Paint(img)
	return img
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}
