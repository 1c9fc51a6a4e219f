package asc

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/tsunami-vis/topo-utils/internal/metajson"
	"github.com/tsunami-vis/topo-utils/internal/terrainrgb"
	"github.com/tsunami-vis/topo-utils/internal/topo"
	"github.com/tsunami-vis/topo-utils/internal/validate"
)

// Run is the asc subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to directory with dem.png and meta.json")
	outputPtr := flagSet.String("out", topo.DefaultFilename, "Path to output file")
	nodataPtr := flagSet.Int("nodata", -9999, "nodatavalue header field")
	cornerPtr := flagSet.Bool("corner", false, "Origin is the lower-left cell corner instead of the center")
	cropPtr := flagSet.String("crop", "", "Crop to \"x0,y0,x1,y1\" before writing")
	roundPtr := flagSet.Bool("round", false, "Round elevations and write an integer grid")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
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

	if *cropPtr != "" {
		bound, err := parseBound(*cropPtr)
		if err != nil {
			log.Fatal(err)
		}
		topography = topography.Crop(bound)
		rows, cols := topography.Elev.Dims()
		fmt.Println("ℹ️  Cropped grid to", rows, "x", cols, "cells")
	}

	if *roundPtr {
		topography.Elev = roundElevation(topography.Elev)
	}

	opts := topo.WriteOptions{
		NoDataValue: *nodataPtr,
		Center:      !*cornerPtr && !meta.Corner,
	}

	// write raster
	timer = time.Now()
	fmt.Println("▶️  Writing ASCII raster")
	if err := topo.WriteAsc(*outputPtr, topography, opts); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote", *outputPtr, "in", time.Now().Sub(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}

// parseBound parses a "x0,y0,x1,y1" crop flag
func parseBound(value string) (orb.Bound, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 4 {
		return orb.Bound{}, fmt.Errorf("crop must be \"x0,y0,x1,y1\", got %q", value)
	}

	coords := make([]float64, 4)
	for i, field := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("crop coordinate %q is not a number", field)
		}
		coords[i] = f
	}

	bound := orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	}
	if bound.Min[0] > bound.Max[0] || bound.Min[1] > bound.Max[1] {
		return orb.Bound{}, fmt.Errorf("crop bound %q is inverted", value)
	}

	return bound, nil
}

func roundElevation(elev topo.Elevation) topo.IntElevation {
	rows, cols := elev.Dims()

	rounded := make(topo.IntElevation, rows)
	for row := 0; row < rows; row++ {
		rounded[row] = make([]int, cols)
		for col := 0; col < cols; col++ {
			rounded[row][col] = int(math.Round(elev.Z(row, col)))
		}
	}

	return rounded
}
