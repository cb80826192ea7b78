package grid_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spacegrid/grid"
)

//----------------------------------------------------------------------------//
// From2D / FromAny
//----------------------------------------------------------------------------//

// TestFrom2D_Errors verifies that From2D rejects ragged rows and unknown kinds.
func TestFrom2D_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		err  error
	}{
		{"NonRectangular", [][]int{{1, 2}, {3}}, grid.ErrNonRectangular},
		{"Negative", [][]int{{0, -1}}, grid.ErrUnknownKind},
		{"TooLarge", [][]int{{0, 4}}, grid.ErrUnknownKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.From2D(tc.grid)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestFrom2D_ReportsEveryCell checks that all bad cells are listed in one error.
func TestFrom2D_ReportsEveryCell(t *testing.T) {
	_, err := grid.From2D([][]int{{7, 0}, {0, 9}})
	require.ErrorIs(t, err, grid.ErrUnknownKind)
	assert.Contains(t, err.Error(), "(0,0)")
	assert.Contains(t, err.Error(), "(1,1)")
}

// TestFrom2D_Empty accepts empty inputs as size-0 grids.
func TestFrom2D_Empty(t *testing.T) {
	g, err := grid.From2D([][]int{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
	assert.Equal(t, 0, g.Rows())

	g, err = grid.From2D([][]int{{}, {}})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 0, g.Cols())
	assert.Equal(t, 0, g.Size())
}

// TestFrom2D_Copies ensures the grid does not alias its input.
func TestFrom2D_Copies(t *testing.T) {
	in := [][]int{{0, 2}}
	g, err := grid.From2D(in)
	require.NoError(t, err)
	in[0][1] = 3
	assert.Equal(t, grid.Station, g.At(grid.Coord{Row: 0, Col: 1}))
}

// TestFromAny covers the accepted and rejected dynamic inputs.
func TestFromAny(t *testing.T) {
	type level uint8

	accepted := []any{
		[][]int{{0, 2}},
		[][]uint8{{0, 2}},
		[][]int64{{0, 2}},
		[][]level{{0, 2}},
		[][]grid.CellKind{{grid.Void, grid.Station}},
	}
	for _, v := range accepted {
		g, err := grid.FromAny(v)
		require.NoError(t, err, "%T", v)
		assert.Equal(t, []grid.Coord{{Row: 0, Col: 1}}, g.Stations(), "%T", v)
	}

	rejected := []any{
		nil,
		[]int{0, 0, 0},
		[][][]int{{{0}}},
		[][]float64{{0}},
		"0 0",
		(*grid.Grid)(nil),
	}
	for _, v := range rejected {
		_, err := grid.FromAny(v)
		assert.ErrorIs(t, err, grid.ErrTypeMismatch, "%T", v)
	}

	// a 2D integer array with a bad value is not a type mismatch
	_, err := grid.FromAny([][]uint16{{9}})
	assert.ErrorIs(t, err, grid.ErrUnknownKind)
	assert.NotErrorIs(t, err, grid.ErrTypeMismatch)
}

//----------------------------------------------------------------------------//
// Accessors
//----------------------------------------------------------------------------//

// TestInBounds checks InBounds on a 2×3 grid.
func TestInBounds(t *testing.T) {
	g, err := grid.From2D([][]int{
		{0, 1, 0},
		{1, 0, 1},
	})
	require.NoError(t, err)

	for _, c := range []grid.Coord{{0, 0}, {1, 2}, {1, 1}} {
		assert.True(t, g.InBounds(c), "%v", c)
	}
	for _, c := range []grid.Coord{{-1, 0}, {0, 3}, {2, 1}, {1, -1}} {
		assert.False(t, g.InBounds(c), "%v", c)
	}
	assert.Panics(t, func() { g.At(grid.Coord{Row: 5, Col: 5}) })
}

// TestIndexCoordinate round-trips row-major indices.
func TestIndexCoordinate(t *testing.T) {
	g, err := grid.From2D([][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	require.NoError(t, err)
	for i := 0; i < g.Size(); i++ {
		assert.Equal(t, i, g.Index(g.Coordinate(i)))
	}
	assert.Equal(t, grid.Coord{Row: 2, Col: 1}, g.Coordinate(9))
}

// TestCountStations counts kinds on a mixed grid.
func TestCountStations(t *testing.T) {
	g, err := grid.From2D([][]int{
		{2, 1, 3},
		{0, 2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Count(grid.Void))
	assert.Equal(t, 2, g.Count(grid.Node))
	assert.Equal(t, 2, g.Count(grid.Station))
	assert.Equal(t, 1, g.Count(grid.Singularity))
	assert.Equal(t, []grid.Coord{{0, 0}, {1, 1}}, g.Stations())
}

// TestTranspose swaps axes and keeps cells.
func TestTranspose(t *testing.T) {
	g, err := grid.From2D([][]int{
		{0, 1, 2},
		{3, 0, 1},
	})
	require.NoError(t, err)
	tr := g.Transpose()
	assert.Equal(t, [][]int{{0, 3}, {1, 0}, {2, 1}}, tr.Values())
	assert.True(t, g.Equal(tr.Transpose()))
	assert.False(t, g.Equal(tr))
}

//----------------------------------------------------------------------------//
// Text and JSON forms
//----------------------------------------------------------------------------//

// TestParse accepts comments, separators and blank lines.
func TestParse(t *testing.T) {
	src := `
# two stations
0 1 2
3,0,2

`
	g, err := grid.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 0, 2}}, g.Values())
	assert.Equal(t, "012\n302\n", g.String())

	back, err := grid.ParseString(g.String())
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

// TestParse_Errors covers each parse failure.
func TestParse_Errors(t *testing.T) {
	_, err := grid.ParseString("01\n0x\n")
	assert.ErrorIs(t, err, grid.ErrSyntax)
	assert.Contains(t, err.Error(), "line 2")

	_, err = grid.ParseString("05\n")
	assert.ErrorIs(t, err, grid.ErrUnknownKind)

	_, err = grid.Parse(strings.NewReader("012\n01\n"))
	assert.ErrorIs(t, err, grid.ErrNonRectangular)
}

// TestJSON checks the [][]int wire shape and validation on decode.
func TestJSON(t *testing.T) {
	g, err := grid.From2D([][]int{{0, 2}, {1, 3}})
	require.NoError(t, err)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `[[0,2],[1,3]]`, string(data))

	var back grid.Grid
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, g.Equal(&back))

	assert.ErrorIs(t, json.Unmarshal([]byte(`[[0,8]]`), &back), grid.ErrUnknownKind)
	assert.ErrorIs(t, json.Unmarshal([]byte(`[0,1]`), &back), grid.ErrTypeMismatch)
}

// TestCellKindString names every kind.
func TestCellKindString(t *testing.T) {
	assert.Equal(t, "void", grid.Void.String())
	assert.Equal(t, "node", grid.Node.String())
	assert.Equal(t, "station", grid.Station.String())
	assert.Equal(t, "singularity", grid.Singularity.String())
	assert.Equal(t, "kind(7)", grid.CellKind(7).String())
	assert.False(t, grid.CellKind(7).Valid())
}
