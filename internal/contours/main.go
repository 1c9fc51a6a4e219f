package contours

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"runtime"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/simplify"
	"golang.org/x/sync/semaphore"

	"github.com/tsunami-vis/topo-utils/internal/metajson"
	"github.com/tsunami-vis/topo-utils/internal/terrainrgb"
	"github.com/tsunami-vis/topo-utils/internal/topo"
	"github.com/tsunami-vis/topo-utils/internal/validate"
)

const tileSize = mvt.DefaultExtent

// Run is the contours subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to directory with dem.png and meta.json")
	outputPtr := flagSet.String("out", "", "Path to output file")
	intervalPtr := flagSet.Float64("interval", 10, "Height between contour lines")
	formatPtr := flagSet.String("format", "geojson", "Output format (geojson or mvt)")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" || *outputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	if *intervalPtr <= 0 {
		log.Fatal(fmt.Errorf("interval must be greater than 0"))
	}
	if *formatPtr != "geojson" && *formatPtr != "mvt" {
		log.Fatal(fmt.Errorf("unknown format %q", *formatPtr))
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

	// build contour lines
	timer = time.Now()
	fmt.Println("▶️  Building contour lines")
	collection := buildContours(topography, *intervalPtr)
	fmt.Println("✔️  Built", len(collection.Features), "contour lines in", time.Now().Sub(timer).String())

	// write output
	timer = time.Now()
	fmt.Println("▶️  Writing", *formatPtr, "output")
	if *formatPtr == "geojson" {
		err = writeGeoJSON(*outputPtr, collection)
	} else {
		err = writeMvt(*outputPtr, topography.Extent(), collection)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote", *outputPtr, "in", time.Now().Sub(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}

// buildContours computes the contour lines at every multiple of interval
// inside the topography's height range.
func buildContours(t topo.Topography, interval float64) *geojson.FeatureCollection {
	rows, cols := t.Elev.Dims()

	min := t.Elev.Z(0, 0)
	max := min
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			z := t.Elev.Z(row, col)
			if z < min {
				min = z
			}
			if z > max {
				max = z
			}
		}
	}

	collection := geojson.NewFeatureCollection()
	mutex := sync.Mutex{}
	wg := sync.WaitGroup{}
	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))

	for height := math.Ceil(min/interval) * interval; height <= max; height += interval {
		wg.Add(1)
		go func(height float64) {
			defer wg.Done()

			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			lines := MarchingSquares(t, height)

			mutex.Lock()
			defer mutex.Unlock()
			for i := 0; i < len(lines); i++ {
				f := geojson.NewFeature(lines[i])
				f.Properties["elevation"] = height
				collection.Append(f)
			}
		}(height)
	}

	wg.Wait()

	return collection
}

func writeGeoJSON(filename string, collection *geojson.FeatureCollection) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// writeMvt writes the contours as a single gzipped Mapbox vector tile
// covering the given extent.
func writeMvt(filename string, extent orb.Bound, collection *geojson.FeatureCollection) error {
	layers := mvt.NewLayers(map[string]*geojson.FeatureCollection{"contours": collection})

	// project world coordinates onto the tile extent, y axis flipped
	width := extent.Max[0] - extent.Min[0]
	height := extent.Max[1] - extent.Min[1]
	factor := float64(tileSize) / math.Max(width, height)
	projectLayersInPlace(layers, func(p orb.Point) orb.Point {
		return orb.Point{
			(p[0] - extent.Min[0]) * factor,
			(extent.Max[1] - p[1]) * factor,
		}
	})

	for _, l := range layers {
		l.Version = 2
	}

	layers.Simplify(simplify.DouglasPeucker(1.0))
	layers.RemoveEmpty(1.0, 1.0)

	data, err := mvt.MarshalGzipped(layers)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// projectLayersInPlace projects all features of a layer
func projectLayersInPlace(layers mvt.Layers, projection orb.Projection) {
	for _, layer := range layers {
		for _, feature := range layer.Features {
			feature.Geometry = project.Geometry(feature.Geometry, projection)
		}
	}
}
