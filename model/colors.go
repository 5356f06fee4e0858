package model

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// ParseColor understands "#RRGGBB" and the X11 colour names.
func ParseColor(s string) (color.RGBA, error) {
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return color.RGBA{}, errors.Errorf("bad colour %q", s)
		}
		u, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, errors.Wrapf(err, "bad colour %q", s)
		}
		return HexToRGBA(uint32(u)), nil
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.RGBA{}, errors.Errorf("unknown colour %q", s)
	}
	return c, nil
}

// MustColor is ParseColor for values known to be good; bad ones come
// back black.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{0, 0, 0, 0xff}
	}
	return c
}

func HexToRGBA(u uint32) color.RGBA {
	return color.RGBA{
		R: uint8(0xff & (u >> 16)),
		G: uint8(0xff & (u >> 8)),
		B: uint8(0xff & u),
		A: 0xff,
	}
}

// Palette holds the colours of the board, as hex strings or names.
type Palette struct {
	Wall  string `json:"wall"`
	Path  string `json:"path"`
	Start string `json:"start"`
	End   string `json:"end"`
	Coin  string `json:"coin"`
	Grid  string `json:"grid"`
}

var DefaultPalette = Palette{
	Wall:  "#2C3E50",
	Path:  "#ECF0F1",
	Start: "#27AE60",
	End:   "#E74C3C",
	Coin:  "#F1C40F",
	Grid:  "#BDC3C7",
}

// CellColor is the fill used for a cell state. Coin cells are painted as
// path; the coin itself is a circle on top.
func (p Palette) CellColor(s CellState) color.RGBA {
	switch s {
	case Wall:
		return MustColor(p.Wall)
	case Start:
		return MustColor(p.Start)
	case End:
		return MustColor(p.End)
	default:
		return MustColor(p.Path)
	}
}

func (p Palette) validate() error {
	for _, s := range []string{p.Wall, p.Path, p.Start, p.End, p.Coin, p.Grid} {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}

// PlayerColors are the avatar colours on offer.
var PlayerColors = []string{"red", "green", "blue", "gray", "pink"}

// avatarOutlines pairs each avatar colour with a darker edge.
var avatarOutlines = map[string]string{
	"red":   "darkred",
	"green": "darkgreen",
	"blue":  "darkblue",
	"gray":  "dimgray",
	"pink":  "deeppink",
}

const defaultAvatarOutline = "black"

// AvatarOutline returns the outline colour name for an avatar colour.
func AvatarOutline(fill string) string {
	if o, ok := avatarOutlines[fill]; ok {
		return o
	}
	return defaultAvatarOutline
}

func validPlayerColor(c string) bool {
	for _, pc := range PlayerColors {
		if pc == c {
			return true
		}
	}
	return false
}
