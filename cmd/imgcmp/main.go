// Command imgcmp prints similarity metrics between a reference image and a
// candidate, typically a source image and its halftone.
//
// Usage:
//
//	imgcmp [-gray] reference candidate
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/halftone"
	"github.com/gogpu/halftone/metrics"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "imgcmp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("imgcmp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	gray := fs.Bool("gray", false, "compare luminance instead of color channels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("want 2 images, got %d", fs.NArg())
	}

	mode := halftone.ModeColor
	if *gray {
		mode = halftone.ModeGray
	}
	ref, err := halftone.Load(fs.Arg(0), mode)
	if err != nil {
		return err
	}
	cand, err := halftone.Load(fs.Arg(1), mode)
	if err != nil {
		return err
	}

	report, err := metrics.Compare(ref, cand)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, report.String())
	return err
}
