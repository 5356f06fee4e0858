package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten"

	"github.com/zucenko/coinmaze/canvas"
	"github.com/zucenko/coinmaze/raster"
)

// Nine is a nine-patch panel: the corners keep their size, the edges
// stretch one way and the centre both ways.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [3][2]float64
}

// panelImage draws a white rounded square with the rasterizer: corner
// circles of radius r joined by two crossing rects.
func panelImage(r int) *image.RGBA {
	size := 3 * r
	rf := float64(r)
	c := canvas.New()
	raster.NewFilledRect(raster.Pt(rf, 0), raster.Pt(2*rf, 3*rf)).
		SetFill(raster.White).SetOutline(raster.White).Draw(c)
	raster.NewFilledRect(raster.Pt(0, rf), raster.Pt(3*rf, 2*rf)).
		SetFill(raster.White).SetOutline(raster.White).Draw(c)
	for _, p := range []raster.Point{{X: rf, Y: rf}, {X: 2 * rf, Y: rf}, {X: rf, Y: 2 * rf}, {X: 2 * rf, Y: 2 * rf}} {
		raster.NewCircle(p, rf-0.5).SetFill(raster.White).SetOutline(raster.White).Draw(c)
	}
	return c.Image(size, size, color.Transparent)
}

func NewNine(corner int, tint color.RGBA, alpha float64) (*Nine, error) {
	img, err := ebiten.NewImageFromImage(panelImage(corner), ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	n := &Nine{
		images:    img,
		alpha:     alpha,
		Scale:     1,
		positions: [4][2]int{{0, 0}, {corner, corner}, {2 * corner, 2 * corner}, {3 * corner, 3 * corner}},
	}
	n.SetColor(tint)
	return n, nil
}

func (n *Nine) SetColor(c color.RGBA) {
	n.R = float64(c.R) / 0xff
	n.G = float64(c.G) / 0xff
	n.B = float64(c.B) / 0xff
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + n.Scale*float64(n.positions[1][0])
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := math.Max(0, n.targetPositions[2][0]-n.targetPositions[1][0])
	innerHigh := math.Max(0, n.targetPositions[2][1]-n.targetPositions[1][1])

	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sx, sy := n.Scale, n.Scale
			if col == 1 {
				sx = n.scaleCenterWidth
			}
			if row == 1 {
				sy = n.scaleCenterHeight
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(sx, sy)
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			patch := image.Rect(n.positions[col][0], n.positions[row][1], n.positions[col+1][0], n.positions[row+1][1])
			_ = screen.DrawImage(n.images.SubImage(patch).(*ebiten.Image), op)
		}
	}
}
