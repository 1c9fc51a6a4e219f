package preview

import (
	"testing"

	"github.com/tsunami-vis/topo-utils/internal/topo"
)

func TestRenderRelief(t *testing.T) {
	elev := topo.FloatElevation{
		{0, 50},    // southern row
		{100, 200}, // northern row
	}

	img := renderRelief(elev)

	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Fatalf("image is %dx%d, want 2x2", bounds.Dx(), bounds.Dy())
	}

	// northern row ends up at the top of the image
	if got := img.GrayAt(1, 0).Y; got != 255 {
		t.Errorf("top-right pixel = %d, want 255 (max elevation)", got)
	}
	if got := img.GrayAt(0, 1).Y; got != 0 {
		t.Errorf("bottom-left pixel = %d, want 0 (min elevation)", got)
	}
}

func TestRenderReliefFlatGrid(t *testing.T) {
	elev := topo.FloatElevation{
		{7, 7},
		{7, 7},
	}

	img := renderRelief(elev)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := img.GrayAt(x, y).Y; got != 0 {
				t.Errorf("pixel (%d, %d) = %d, want 0 for a flat grid", x, y, got)
			}
		}
	}
}
