package topo

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestExtent(t *testing.T) {
	topo := Topography{
		Elev: FloatElevation{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		X:  []float64{100.0},
		Y:  []float64{200.0},
		Dx: 10.0,
	}

	bound := topo.Extent()
	want := orb.Bound{Min: orb.Point{100, 200}, Max: orb.Point{130, 220}}
	if bound != want {
		t.Errorf("Extent() = %v, want %v", bound, want)
	}
}

func TestCrop(t *testing.T) {
	topo := Topography{
		Elev: FloatElevation{
			{1, 2, 3, 4},
			{5, 6, 7, 8},
			{9, 10, 11, 12},
			{13, 14, 15, 16},
		},
		X:  []float64{0.0},
		Y:  []float64{0.0},
		Dx: 10.0,
	}

	cropped := topo.Crop(orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{20, 30}})

	rows, cols := cropped.Elev.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("cropped dims = (%d, %d), want (3, 2)", rows, cols)
	}
	if cropped.X[0] != 10.0 || cropped.Y[0] != 10.0 {
		t.Errorf("cropped origin = (%v, %v), want (10, 10)", cropped.X[0], cropped.Y[0])
	}
	if z := cropped.Elev.Z(0, 0); z != 6 {
		t.Errorf("cropped Z(0, 0) = %v, want 6", z)
	}
	if z := cropped.Elev.Z(2, 1); z != 15 {
		t.Errorf("cropped Z(2, 1) = %v, want 15", z)
	}
}

func TestCropInt(t *testing.T) {
	topo := Topography{
		Elev: IntElevation{
			{1, 2},
			{3, 4},
		},
		X:  []float64{0.0},
		Y:  []float64{0.0},
		Dx: 1.0,
	}

	cropped := topo.Crop(orb.Bound{Min: orb.Point{1, 0}, Max: orb.Point{1, 1}})

	if _, isInt := cropped.Elev.(IntElevation); !isInt {
		t.Fatal("cropping an integer grid should keep it integer")
	}
	rows, cols := cropped.Elev.Dims()
	if rows != 2 || cols != 1 {
		t.Fatalf("cropped dims = (%d, %d), want (2, 1)", rows, cols)
	}
	if z := cropped.Elev.Z(1, 0); z != 4 {
		t.Errorf("cropped Z(1, 0) = %v, want 4", z)
	}
}

func TestCropEmptyResult(t *testing.T) {
	topo := Topography{
		Elev: FloatElevation{{1, 2}, {3, 4}},
		X:    []float64{0.0},
		Y:    []float64{0.0},
		Dx:   1.0,
	}

	cropped := topo.Crop(orb.Bound{Min: orb.Point{50, 50}, Max: orb.Point{60, 60}})

	rows, cols := cropped.Elev.Dims()
	if rows != 0 || cols != 0 {
		t.Errorf("cropped dims = (%d, %d), want empty grid", rows, cols)
	}
}
