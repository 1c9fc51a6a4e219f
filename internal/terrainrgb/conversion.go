package terrainrgb

import (
	"image/color"
	"math"
)

/*
	Terrain-RGB images encode elevation into the three color channels:

	height = -10000 + ((R * 256 * 256 + G * 256 + B) * 0.1)

	Solving for x = (R * 256 * 256 + G * 256 + B) gives

	x = 10 * height + 100000

	which is just x written as a Base256 number: position 2 is r,
	position 1 is g and position 0 is b.
*/

var maxX = int64(math.Pow(256, 3) - 1)

// HeightToRgb calculates rgb values from height
func HeightToRgb(height float64) color.RGBA {
	x := int64(10*height+100000) % maxX

	b := uint8(x % 256)
	x = x / 256

	g := uint8(x % 256)
	x = x / 256

	r := uint8(x % 256)

	return color.RGBA{
		R: r,
		G: g,
		B: b,
		A: 255,
	}
}

// RgbToHeight calculates height from given rgb values
func RgbToHeight(c color.RGBA) float64 {
	x := int64(c.R)*256*256 + int64(c.G)*256 + int64(c.B)

	return -10000.0 + float64(x)*0.1
}
