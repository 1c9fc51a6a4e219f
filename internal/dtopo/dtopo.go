package dtopo

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tsunami-vis/topo-utils/internal/topo"
)

// DefaultFilename is the output path used when the caller doesn't name one.
const DefaultFilename = "dtopo.tt3"

// Deformation is a time-dependent seafloor-deformation dataset: one
// displacement grid per time layer, indexed [layer][row][col] with row 0
// the southernmost row. Layers are Dt apart, starting at T0.
type Deformation struct {
	DZ             [][][]float64
	X, Y           []float64
	T0, Dx, Dy, Dt float64
}

// Dims returns the number of columns, rows and time layers.
func (def Deformation) Dims() (mx, my, mt int) {
	mt = len(def.DZ)
	if mt == 0 {
		return 0, 0, 0
	}
	my = len(def.DZ[0])
	if my == 0 {
		return 0, 0, mt
	}
	mx = len(def.DZ[0][0])
	return mx, my, mt
}

// Write writes the deformation to filename, truncating any existing file.
// The header follows the same <value><four spaces><key> layout as the
// topography encoder; the body holds one grid per time layer, southernmost
// row last, every value in scientific notation.
func Write(filename string, def Deformation, opts topo.WriteOptions) error {
	mx, my, mt := def.Dims()
	if mx < 1 || my < 1 || mt < 1 {
		return fmt.Errorf("deformation grid is empty")
	}
	if len(def.X) < 1 || len(def.Y) < 1 {
		return fmt.Errorf("deformation has no axis coordinates")
	}
	for layer := 0; layer < mt; layer++ {
		if len(def.DZ[layer]) != my {
			return fmt.Errorf("layer %d has %d rows, want %d", layer, len(def.DZ[layer]), my)
		}
		for row := 0; row < my; row++ {
			if len(def.DZ[layer][row]) != mx {
				return fmt.Errorf("layer %d row %d has %d columns, want %d", layer, row, len(def.DZ[layer][row]), mx)
			}
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)

	xKey, yKey := "xllcorner", "yllcorner"
	if opts.Center {
		xKey, yKey = "xllcenter", "yllcenter"
	}

	fmt.Fprintf(w, "%d    mx\n", mx)
	fmt.Fprintf(w, "%d    my\n", my)
	fmt.Fprintf(w, "%d    mt\n", mt)
	fmt.Fprintf(w, "%e    %s\n", def.X[0], xKey)
	fmt.Fprintf(w, "%e    %s\n", def.Y[0], yKey)
	fmt.Fprintf(w, "%e    t0\n", def.T0)
	fmt.Fprintf(w, "%e    dx\n", def.Dx)
	fmt.Fprintf(w, "%e    dy\n", def.Dy)
	fmt.Fprintf(w, "%e    dt\n", def.Dt)

	for layer := 0; layer < mt; layer++ {
		for row := my - 1; row >= 0; row-- {
			for col := 0; col < mx; col++ {
				if col < mx-1 {
					fmt.Fprintf(w, "%e ", def.DZ[layer][row][col])
				} else {
					fmt.Fprintf(w, "%e\n", def.DZ[layer][row][col])
				}
			}
		}
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
