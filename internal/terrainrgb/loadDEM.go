package terrainrgb

import (
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/tsunami-vis/topo-utils/internal/metajson"
	"github.com/tsunami-vis/topo-utils/internal/topo"
)

// LoadDEM decodes a Terrain-RGB encoded elevation image into a Topography
// georeferenced by meta.
func LoadDEM(path string, meta metajson.MetaJSON) (topo.Topography, error) {
	elev, err := LoadElevation(path, meta.ElevationOffset)
	if err != nil {
		return topo.Topography{}, err
	}

	return topo.Topography{
		Elev: elev,
		X:    []float64{meta.Xll},
		Y:    []float64{meta.Yll},
		Dx:   meta.CellSize,
	}, nil
}

// LoadElevation decodes the Terrain-RGB image at path, shifted down by the
// elevation offset it was encoded with.
func LoadElevation(path string, offset float64) (topo.FloatElevation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	return DecodeElevation(img, offset), nil
}

// DecodeElevation converts an image into an elevation grid. Image row 0 is
// the northern edge, so rows are flipped into the grid's south-up ordering.
func DecodeElevation(img image.Image, offset float64) topo.FloatElevation {
	bounds := img.Bounds()
	rows := bounds.Dy()
	cols := bounds.Dx()

	elev := make(topo.FloatElevation, rows)
	for row := 0; row < rows; row++ {
		elev[row] = make([]float64, cols)
		imgY := bounds.Min.Y + (rows - 1 - row)

		for col := 0; col < cols; col++ {
			r, g, b, _ := img.At(bounds.Min.X+col, imgY).RGBA()
			pixel := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
			elev[row][col] = RgbToHeight(pixel) - offset
		}
	}

	return elev
}
