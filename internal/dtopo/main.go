package dtopo

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/tsunami-vis/topo-utils/internal/metajson"
	"github.com/tsunami-vis/topo-utils/internal/terrainrgb"
	"github.com/tsunami-vis/topo-utils/internal/topo"
	"github.com/tsunami-vis/topo-utils/internal/validate"
)

// Run is the dtopo subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to directory with dz_*.png frames and meta.json")
	outputPtr := flagSet.String("out", DefaultFilename, "Path to output file")
	t0Ptr := flagSet.Float64("t0", 0, "Time of the first deformation frame")
	dtPtr := flagSet.Float64("dt", 1, "Time between deformation frames")
	cornerPtr := flagSet.Bool("corner", false, "Origin is the lower-left cell corner instead of the center")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	// validate input directory structure
	if err := validate.DeformationDirectory(*inputPtr); err != nil {
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

	// load frames
	timer = time.Now()
	fmt.Println("▶️  Loading deformation frames")
	def, err := loadFrames(*inputPtr, meta)
	if err != nil {
		log.Fatal(err)
	}
	def.T0 = *t0Ptr
	def.Dt = *dtPtr
	fmt.Println("✔️  Loaded", len(def.DZ), "frames in", time.Now().Sub(timer).String())

	opts := topo.DefaultWriteOptions()
	opts.Center = !*cornerPtr && !meta.Corner

	// write deformation file
	timer = time.Now()
	fmt.Println("▶️  Writing deformation file")
	if err := Write(*outputPtr, def, opts); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote", *outputPtr, "in", time.Now().Sub(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}

// loadFrames decodes all dz_*.png frames in frame-name order into one
// deformation dataset.
func loadFrames(dirPath string, meta metajson.MetaJSON) (Deformation, error) {
	def := Deformation{
		X:  []float64{meta.Xll},
		Y:  []float64{meta.Yll},
		Dx: meta.CellSize,
		Dy: meta.CellSize,
	}

	framePaths, err := filepath.Glob(path.Join(dirPath, "dz_*.png"))
	if err != nil {
		return def, err
	}
	sort.Strings(framePaths)

	for _, framePath := range framePaths {
		elev, err := terrainrgb.LoadElevation(framePath, meta.ElevationOffset)
		if err != nil {
			return def, fmt.Errorf("%s: %v", framePath, err)
		}
		def.DZ = append(def.DZ, elev)
	}

	return def, nil
}
