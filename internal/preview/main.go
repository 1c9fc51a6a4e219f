package preview

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path"
	"runtime"
	"sync"
	"time"

	"github.com/nfnt/resize"
	"golang.org/x/sync/semaphore"

	"github.com/tsunami-vis/topo-utils/internal/metajson"
	"github.com/tsunami-vis/topo-utils/internal/terrainrgb"
	"github.com/tsunami-vis/topo-utils/internal/topo"
	"github.com/tsunami-vis/topo-utils/internal/utils"
	"github.com/tsunami-vis/topo-utils/internal/validate"
)

var sizes = []uint{128, 256, 512, 1024}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// Run is the preview subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to directory with dem.png and meta.json")
	outputPtr := flagSet.String("out", "", "Path to output directory")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	// make sure given output directory is a valid directory
	if !utils.IsDirectory(*outputPtr) {
		log.Fatal(errors.New("Output directory doesn't exist"))
	}

	// validate input directory structure
	if err := validate.RunDirectory(*inputPtr); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Validated input directory structure")

	// load meta.json
	timer = time.Now()
	fmt.Println("▶️  Loading meta.json")
	meta, err := metajson.Read(path.Join(*inputPtr, "meta.json"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded meta.json in", time.Now().Sub(timer).String())

	// load DEM
	timer = time.Now()
	fmt.Println("▶️  Loading DEM")
	topography, err := terrainrgb.LoadDEM(path.Join(*inputPtr, "dem.png"), meta)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded DEM in", time.Now().Sub(timer).String())

	// render relief image
	timer = time.Now()
	fmt.Println("▶️  Rendering relief image")
	img := renderRelief(topography.Elev)
	fmt.Println("✔️  Rendered relief image in", time.Now().Sub(timer).String())

	// write previews
	timer = time.Now()
	fmt.Println("▶️  Writing preview images")

	wg := sync.WaitGroup{}
	for _, size := range sizes {
		wg.Add(1)
		go func(size uint) {
			defer wg.Done()

			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			resized := resize.Resize(size, 0, img, resize.MitchellNetravali)
			previewPath := path.Join(*outputPtr, fmt.Sprintf("preview_%d.png", size))

			if err := writePng(previewPath, resized); err != nil {
				fmt.Println(err)
			}
		}(size)
	}
	wg.Wait()

	fmt.Println("✔️  Wrote preview images in", time.Now().Sub(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}

// renderRelief maps the elevation range onto a grayscale image, northern
// row at the top.
func renderRelief(elev topo.Elevation) *image.Gray {
	rows, cols := elev.Dims()

	min := elev.Z(0, 0)
	max := min
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			z := elev.Z(row, col)
			if z < min {
				min = z
			}
			if z > max {
				max = z
			}
		}
	}

	scale := 0.0
	if max > min {
		scale = 255.0 / (max - min)
	}

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			gray := uint8((elev.Z(row, col) - min) * scale)
			img.SetGray(col, rows-1-row, color.Gray{Y: gray})
		}
	}

	return img
}

func writePng(filename string, img image.Image) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
