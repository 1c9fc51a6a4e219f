package contours

import (
	"github.com/paulmach/orb"

	"github.com/tsunami-vis/topo-utils/internal/topo"
)

// MarchingSquares calculates the contour lines at the given height for the
// given topography. Adjacent segments are combined into longer line strings
// as they are found.
func MarchingSquares(t topo.Topography, height float64) []orb.LineString {
	lines := []orb.LineString{}
	rows, cols := t.Elev.Dims()

	for row := 0; row < rows-1; row++ {
		for col := 0; col < cols-1; col++ {
			newLines := calcLinesForCell(t, row, col, height)

			for _, newLine := range newLines {
				// find all lines which can be combined with newLine
				combinableIndices := []int{}
				for j := 0; j < len(lines); j++ {
					canCombine, _ := canCombineLines(newLine, lines[j])

					if canCombine {
						combinableIndices = append(combinableIndices, j)

						if len(combinableIndices) == 2 {
							break
						}
					}
				}

				if len(combinableIndices) == 0 {
					// no line was found which could be combined
					lines = append(lines, newLine)
				} else {
					// combine all combinable lines
					combinedLine := newLine
					for _, index := range combinableIndices {
						_, combinedLine = combineLines(combinedLine, lines[index])
					}

					lines[combinableIndices[0]] = combinedLine

					if len(combinableIndices) == 2 {
						// remove the second combined line
						lines[combinableIndices[1]] = lines[len(lines)-1]
						lines[len(lines)-1] = nil
						lines = lines[:len(lines)-1]
					}
				}
			}
		}
	}

	return lines
}

// calcLinesForCell runs one marching-squares step on the cell whose
// south-west corner is (row, col).
func calcLinesForCell(t topo.Topography, row, col int, height float64) []orb.LineString {
	swHeight := t.Elev.Z(row, col)
	seHeight := t.Elev.Z(row, col+1)
	neHeight := t.Elev.Z(row+1, col+1)
	nwHeight := t.Elev.Z(row+1, col)

	westX := t.X[0] + float64(col)*t.Dx
	eastX := t.X[0] + float64(col+1)*t.Dx
	southY := t.Y[0] + float64(row)*t.Dx
	northY := t.Y[0] + float64(row+1)*t.Dx

	// find MS "case"
	index := 0
	if nwHeight > height {
		index = index | 8
	}
	if neHeight > height {
		index = index | 4
	}
	if seHeight > height {
		index = index | 2
	}
	if swHeight > height {
		index = index | 1
	}

	northEdgePoint := func() orb.Point {
		return orb.Point{interpolate(westX, nwHeight, eastX, neHeight, height), northY}
	}
	westEdgePoint := func() orb.Point {
		return orb.Point{westX, interpolate(southY, swHeight, northY, nwHeight, height)}
	}
	southEdgePoint := func() orb.Point {
		return orb.Point{interpolate(westX, swHeight, eastX, seHeight, height), southY}
	}
	eastEdgePoint := func() orb.Point {
		return orb.Point{eastX, interpolate(southY, seHeight, northY, neHeight, height)}
	}

	switch index {
	case 1, 14:
		// one line from south to west edge
		return []orb.LineString{{southEdgePoint(), westEdgePoint()}}
	case 2, 13:
		// one line from east to south edge
		return []orb.LineString{{eastEdgePoint(), southEdgePoint()}}
	case 3, 12:
		// one line from east to west edge
		return []orb.LineString{{eastEdgePoint(), westEdgePoint()}}
	case 4, 11:
		// one line from north to east edge
		return []orb.LineString{{northEdgePoint(), eastEdgePoint()}}
	case 5:
		// one line from west to north edge and one from south to east edge
		l1 := orb.LineString{westEdgePoint(), northEdgePoint()}
		l2 := orb.LineString{southEdgePoint(), eastEdgePoint()}
		return []orb.LineString{l1, l2}
	case 6, 9:
		// one line from north to south edge
		return []orb.LineString{{northEdgePoint(), southEdgePoint()}}
	case 7, 8:
		// one line from west to north edge
		return []orb.LineString{{westEdgePoint(), northEdgePoint()}}
	case 10:
		// one line from west to south edge and one from north to east edge
		l1 := orb.LineString{westEdgePoint(), southEdgePoint()}
		l2 := orb.LineString{northEdgePoint(), eastEdgePoint()}
		return []orb.LineString{l1, l2}
	}

	// cases 0 and 15: cell is entirely below or above the contour
	return []orb.LineString{}
}

func interpolate(c0, h0, c1, h1, height float64) float64 {
	return (c0*(h1-height) + c1*(height-h0)) / (h1 - h0)
}

// canCombineLines checks wether two lines can be combined (second bool is
// whether l2, l1 have to be reversed to be combined)
func canCombineLines(l1 orb.LineString, l2 orb.LineString) (bool, bool) {
	len1 := len(l1) - 1
	len2 := len(l2) - 1

	if l1[len1].Equal(l2[0]) {
		return true, false
	}

	if l2[len2].Equal(l1[0]) {
		return true, true
	}

	l2.Reverse()

	if l1[len1].Equal(l2[0]) {
		return true, false
	}

	if l2[len2].Equal(l1[0]) {
		return true, true
	}

	return false, false
}

// combineLines checks wether line1 and line2 can be combined. If they can
// the combined line will be returned
func combineLines(l1 orb.LineString, l2 orb.LineString) (bool, orb.LineString) {
	canCombine, reversed := canCombineLines(l1, l2)

	if !canCombine {
		return false, nil
	}

	if reversed {
		return true, stitchLines(l2, l1)
	}

	return true, stitchLines(l1, l2)
}

// stitchLines appends all points of line2 (except the first one) to line1
func stitchLines(line1 orb.LineString, line2 orb.LineString) orb.LineString {
	// 1 because we assume last point of line1 is equal to first point of line2
	for i := 1; i < len(line2); i++ {
		line1 = append(line1, line2[i])
	}

	return line1
}
