package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tsunami-vis/topo-utils/internal/asc"
	"github.com/tsunami-vis/topo-utils/internal/contours"
	"github.com/tsunami-vis/topo-utils/internal/dtopo"
	"github.com/tsunami-vis/topo-utils/internal/preview"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"asc", "Build a topo.asc ASCII raster from run input data.", asc.Run},
		{"dtopo", "Build a seafloor-deformation file from dz frames.", dtopo.Run},
		{"preview", "Render grayscale relief previews of the DEM.", preview.Run},
		{"contours", "Build contour lines from the DEM.", contours.Run},
		{"help", "Print this message.", func(s *flag.FlagSet) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for i := 0; i < len(subCommands); i++ {
		name := subCommands[i].name

		fmt.Printf("%12s    %s\n", name, subCommands[i].description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func main() {

	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	for i := 0; i < len(subCommands); i++ {
		if subCommands[i].name == cmd {
			set := flag.NewFlagSet(cmd, flag.ExitOnError)
			subCommands[i].run(set)
			return
		}
	}

	fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", cmd)
	printUsage()
}
