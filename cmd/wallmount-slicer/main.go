// Command wallmount-slicer turns sheets of wall-mounted object poses into a
// single DMI file with one four-direction icon state per sheet.
//
// Usage:
//
//	wallmount-slicer [flags] image.png anim.gif ...
//
// The layout of the poses on each sheet is read from config.yaml, looked up
// next to the executable and then in the working directory.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"github.com/Rohesie/wallmount-slicer/imageprint"
	"github.com/Rohesie/wallmount-slicer/layout"
	"github.com/Rohesie/wallmount-slicer/paths"
	"github.com/Rohesie/wallmount-slicer/slicer"
)

var (
	outputPath = flag.String("output", "output.dmi", "where to write the assembled dmi")
	parallel   = flag.Int("parallel", 1, "number of images processed at once")
	printState = flag.Bool("print", false, "whether to print each built icon state on the terminal")
	printMode  = flag.String("print_mode", "24bit", "how to print icon states: 24bit, 256, nocolor, iterm or rasterm")
	blanks     = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	previewDir = flag.String("preview_dir", "", "if set, a gif preview of every direction of every built state is written here")
	scale      = flag.Int("preview_scale", 4, "scale of gif previews")
	banner     = flag.Bool("banner", false, "whether to print a banner on start")
	wait       = flag.Bool("wait", false, "whether to wait for enter before exiting")

	configPath string
)

func main() {
	paths.SetupFilePathFlag(flag.CommandLine, layout.ConfigFileName, "config", "layout config", &configPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *banner {
		figure.NewFigure("wallmount slicer", "", true).Print()
		fmt.Println()
	}

	run()

	fmt.Println("Program finished.")
	if *wait {
		fmt.Println("Press enter to exit.")
		bufio.NewReader(os.Stdin).ReadString('\n')
	}
}

func run() {
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("No images found to open.")
		fmt.Println("Solution: click and drag .png or .gif files onto the executable, or pass them as arguments.")
		return
	}

	mode, err := imageprint.ParseMode(*printMode)
	if err != nil {
		glog.Exitf("bad -print_mode: %v", err)
	}

	if configPath == "" {
		configPath = layout.ConfigFileName
	}
	l, err := layout.Load(configPath)
	if err != nil {
		failure("Failed to load configs: %v", err)
		fmt.Printf("Solution: add the %s file next to the executable, or pass -config.\n", layout.ConfigFileName)
		return
	}

	b := &slicer.Batch{Layout: l, Parallelism: *parallel}
	outcomes, err := b.Run(context.Background(), inputs)
	if err != nil {
		glog.Errorf("batch interrupted: %v", err)
	}

	for _, o := range outcomes {
		report(o)
		if o.State == nil {
			continue
		}
		if *printState {
			imageprint.PrintState(o.State, imageprint.Options{Mode: mode, Blanks: *blanks, Downsize: true})
		}
		if *previewDir != "" {
			if err := writePreviews(*previewDir, o.State, *scale); err != nil {
				failure("Failed to write previews of %s: %v", o.Path, err)
			}
		}
	}

	ic := slicer.Icon(outcomes, l)
	if ic == nil {
		failure("No icon states were built, %s was not written.", *outputPath)
		return
	}
	n, err := writeIcon(*outputPath, ic)
	if err != nil {
		failure("Failed to write %s: %v", *outputPath, err)
		return
	}
	success("Wrote %d icon states to %s (%s).", len(ic.States), *outputPath, n)
}
