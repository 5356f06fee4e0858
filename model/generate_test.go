package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reachable flood-fills the walkable cells from p.
func reachable(g *Grid, from Pos) map[Pos]bool {
	seen := map[Pos]bool{from: true}
	queue := []Pos{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for d := Right; d <= Up; d++ {
			dc, dr := d.Delta()
			next := Pos{Col: cur.Col + dc, Row: cur.Row + dr}
			if seen[next] || !g.InBounds(next.Col, next.Row) || !g.At(next.Col, next.Row).Walkable() {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return seen
}

func TestGenerateInvariants(t *testing.T) {
	tests := []struct {
		name string
		opts GenerateOptions
	}{
		{"Medium window", GenerateOptions{Rows: 13, Cols: 20, Complexity: 0.7, CoinCount: 10}},
		{"Easy window", GenerateOptions{Rows: 11, Cols: 16, Complexity: 0.5, CoinCount: 5}},
		{"Hard window", GenerateOptions{Rows: 18, Cols: 26, Complexity: 0.9, CoinCount: 15}},
		{"Smallest", GenerateOptions{Rows: 5, Cols: 5, CoinCount: 3}},
		{"Even sizes", GenerateOptions{Rows: 6, Cols: 8, Complexity: 1, CoinCount: 4}},
		{"Tall", GenerateOptions{Rows: 41, Cols: 7, Complexity: 0.3, CoinCount: 20}},
		{"Large", GenerateOptions{Rows: 201, Cols: 301, Complexity: 0.7, CoinCount: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				g, err := Generate(tt.opts, rand.New(rand.NewSource(seed)))
				require.NoError(t, err)
				require.Equal(t, tt.opts.Rows, g.Rows)
				require.Equal(t, tt.opts.Cols, g.Cols)

				require.Equal(t, 1, g.Count(Start), "seed %d\n%s", seed, g)
				require.Equal(t, 1, g.Count(End), "seed %d\n%s", seed, g)

				start, _ := g.Find(Start)
				seen := reachable(g, start)
				for r := 0; r < g.Rows; r++ {
					for c := 0; c < g.Cols; c++ {
						if g.At(c, r).Walkable() {
							assert.True(t, seen[Pos{c, r}], "seed %d: %d,%d unreachable\n%s", seed, c, r, g)
						}
					}
				}
			}
		})
	}
}

func TestGenerateCoinCount(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		cols  int
		coins int
	}{
		{"Fewer coins than paths", 13, 20, 10},
		{"No coins", 13, 20, 0},
		{"Negative coins", 9, 9, -4},
		{"More coins than paths", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := GenerateOptions{Rows: tt.rows, Cols: tt.cols, Complexity: 0.5, CoinCount: tt.coins}
			g, err := Generate(opts, rand.New(rand.NewSource(7)))
			require.NoError(t, err)

			// the same draws without coins show how many path cells were left
			bare, err := Generate(GenerateOptions{Rows: tt.rows, Cols: tt.cols, Complexity: 0.5}, rand.New(rand.NewSource(7)))
			require.NoError(t, err)
			paths := bare.Count(Path)

			want := tt.coins
			if want < 0 {
				want = 0
			}
			if want > paths {
				want = paths
			}
			assert.Equal(t, want, g.Count(Coin))
			assert.Equal(t, paths-want, g.Count(Path))
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	opts := GenerateOptions{Rows: 13, Cols: 20, Complexity: 0.7, CoinCount: 10}
	a, err := Generate(opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Generate(opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())

	c, err := Generate(opts, rand.New(rand.NewSource(43)))
	require.NoError(t, err)
	assert.NotEqual(t, a.String(), c.String())
}

func TestGenerateStartAndEndRegions(t *testing.T) {
	opts := GenerateOptions{Rows: 13, Cols: 20, Complexity: 0.7, CoinCount: 10}
	for seed := int64(1); seed <= 30; seed++ {
		g, err := Generate(opts, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		start, _ := g.Find(Start)
		end, _ := g.Find(End)
		assert.True(t, start.Row < 5 && start.Col < 5, "start %v", start)
		assert.True(t, end.Row >= 8 && end.Col >= 15, "end %v", end)
	}
}

func TestGenerateBordersStayWalls(t *testing.T) {
	// odd sizes leave the outer ring uncarved
	g, err := Generate(GenerateOptions{Rows: 15, Cols: 21, CoinCount: 5}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for c := 0; c < g.Cols; c++ {
		assert.Equal(t, Wall, g.At(c, 0))
		assert.Equal(t, Wall, g.At(c, g.Rows-1))
	}
	for r := 0; r < g.Rows; r++ {
		assert.Equal(t, Wall, g.At(0, r))
		assert.Equal(t, Wall, g.At(g.Cols-1, r))
	}
}

func TestGenerateDimensionError(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"Zero", 0, 0},
		{"Narrow", 10, 2},
		{"Flat", 2, 10},
		{"Negative", -1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Generate(GenerateOptions{Rows: tt.rows, Cols: tt.cols}, rand.New(rand.NewSource(1)))
			assert.Nil(t, g)
			require.Error(t, err)
			dimErr, ok := err.(*DimensionError)
			require.True(t, ok)
			assert.Equal(t, tt.rows, dimErr.Rows)
			assert.Equal(t, tt.cols, dimErr.Cols)
		})
	}
}

// On a 3x3 grid neither corner region holds a path cell, so both fallbacks
// land on (1,1) and the end overwrites the start. Kept as is: a tiny board
// has an end and no start.
func TestGenerateFallbackOnTinyGrid(t *testing.T) {
	g, err := Generate(GenerateOptions{Rows: 3, Cols: 3, CoinCount: 2}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Count(Start))
	assert.Equal(t, End, g.At(1, 1))
	assert.Equal(t, 0, g.Count(Coin))
	assert.Equal(t, 8, g.Count(Wall))
}

// The end fallback writes over whatever is at (cols-2, rows-2), even a
// wall with no path next to it.
func TestPlaceStartEndFallbackCanIsolateEnd(t *testing.T) {
	g := NewGrid(6, 6)
	g.Set(1, 1, Path)
	placeStartEnd(g, rand.New(rand.NewSource(5)))

	assert.Equal(t, Start, g.At(1, 1))
	assert.Equal(t, End, g.At(4, 4))
	assert.False(t, reachable(g, Pos{1, 1})[Pos{4, 4}])
}

func TestPlaceStartEndFallbackOverwritesWallForStart(t *testing.T) {
	g := NewGrid(7, 7)
	g.Set(5, 5, Path)
	placeStartEnd(g, rand.New(rand.NewSource(5)))

	assert.Equal(t, Start, g.At(1, 1))
	assert.Equal(t, End, g.At(5, 5))
}

func TestCarveVisitsEveryOddCell(t *testing.T) {
	for _, complexity := range []float64{0, 0.5, 1, -1, 3} {
		g := NewGrid(11, 15)
		carve(g, Pos{Col: 5, Row: 3}, complexity, rand.New(rand.NewSource(11)))
		for r := 1; r < g.Rows; r += 2 {
			for c := 1; c < g.Cols; c += 2 {
				assert.Equal(t, Path, g.At(c, r), "complexity %v: %d,%d", complexity, c, r)
			}
		}
		// a spanning tree over n rooms carves n-1 corridors
		rooms := 5 * 7
		assert.Equal(t, 2*rooms-1, g.Count(Path))
	}
}
