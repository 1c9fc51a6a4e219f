package topo

import (
	"github.com/paulmach/orb"
)

// Elevation is a 2D grid of elevation samples indexed [row][col],
// row 0 being the southernmost row.
type Elevation interface {
	// Dims returns the dimensions of the grid.
	Dims() (rows, cols int)
	// Z returns the sample at (row, col).
	// It will panic if row or col are out of bounds for the grid.
	Z(row, col int) float64
}

// FloatElevation is an Elevation backed by floating-point samples.
type FloatElevation [][]float64

// Dims returns the dimensions of the grid.
func (e FloatElevation) Dims() (rows, cols int) {
	if len(e) == 0 {
		return 0, 0
	}
	return len(e), len(e[0])
}

// Z returns the sample at (row, col).
func (e FloatElevation) Z(row, col int) float64 {
	return e[row][col]
}

// IntElevation is an Elevation backed by integer samples.
type IntElevation [][]int

// Dims returns the dimensions of the grid.
func (e IntElevation) Dims() (rows, cols int) {
	if len(e) == 0 {
		return 0, 0
	}
	return len(e), len(e[0])
}

// Z returns the sample at (row, col).
func (e IntElevation) Z(row, col int) float64 {
	return float64(e[row][col])
}

// Topography is a gridded elevation dataset with square cells of size Dx.
// X and Y hold the cell coordinates along each axis; only the first entry
// of each is consulted when writing (it marks the lower-left origin).
type Topography struct {
	Elev Elevation
	X, Y []float64
	Dx   float64
}

// Extent returns the coordinate bounding box covered by the grid,
// measured from the origin over nrows x ncols cells.
func (t Topography) Extent() orb.Bound {
	rows, cols := t.Elev.Dims()

	min := orb.Point{t.X[0], t.Y[0]}
	max := orb.Point{
		t.X[0] + float64(cols-1)*t.Dx,
		t.Y[0] + float64(rows-1)*t.Dx,
	}

	return orb.Bound{Min: min, Max: max}
}

// Crop returns the sub-grid whose cell coordinates fall inside bound.
// The returned Topography shares no data with the receiver.
func (t Topography) Crop(bound orb.Bound) Topography {
	rows, cols := t.Elev.Dims()

	colFirst, colLast := cropRange(t.X[0], t.Dx, cols, bound.Min[0], bound.Max[0])
	rowFirst, rowLast := cropRange(t.Y[0], t.Dx, rows, bound.Min[1], bound.Max[1])

	cropped := Topography{
		X:  []float64{t.X[0] + float64(colFirst)*t.Dx},
		Y:  []float64{t.Y[0] + float64(rowFirst)*t.Dx},
		Dx: t.Dx,
	}

	nrows := rowLast - rowFirst + 1
	ncols := colLast - colFirst + 1
	if nrows < 1 || ncols < 1 {
		cropped.Elev = FloatElevation{}
		return cropped
	}

	switch elev := t.Elev.(type) {
	case IntElevation:
		data := make(IntElevation, nrows)
		for row := 0; row < nrows; row++ {
			data[row] = make([]int, ncols)
			copy(data[row], elev[rowFirst+row][colFirst:colLast+1])
		}
		cropped.Elev = data
	default:
		data := make(FloatElevation, nrows)
		for row := 0; row < nrows; row++ {
			data[row] = make([]float64, ncols)
			for col := 0; col < ncols; col++ {
				data[row][col] = elev.Z(rowFirst+row, colFirst+col)
			}
		}
		cropped.Elev = data
	}

	return cropped
}

// cropRange returns the first and last cell index along one axis whose
// coordinate lies in [min, max].
func cropRange(origin, dx float64, n int, min, max float64) (first, last int) {
	first = 0
	last = n - 1

	for first < n && origin+float64(first)*dx < min {
		first++
	}
	for last >= 0 && origin+float64(last)*dx > max {
		last--
	}

	return first, last
}
