// Command halftone converts images to black and white (per channel) by
// error diffusion.
//
// Usage:
//
//	halftone [flags] input
//	halftone -all build [flags] input...
//
// With -all, every input is rendered with every registered kernel under
// every strategy into build/<strategy>/<kernel>/<name>.png.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/halftone"
	"github.com/gogpu/halftone/kernel"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "halftone: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	kernel  string
	scan    halftone.Strategy
	output  string
	all     string
	gray    bool
	scale   float64
	workers int
	verbose bool
	list    bool
}

func parseFlags(args []string, stderr io.Writer) (*config, []string, error) {
	cfg := &config{scan: halftone.Serpentine}

	fs := flag.NewFlagSet("halftone", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.kernel, "kernel", "FLOYD_STEINBERG", "diffusion kernel name, or NONE to threshold")
	fs.Var(&cfg.scan, "scan", "scan order: "+strings.Join(halftone.Strategies(), ", "))
	fs.StringVar(&cfg.output, "o", "out.png", "output file (.png, .jpg, .bmp, .tiff, optionally .zst)")
	fs.StringVar(&cfg.all, "all", "", "render every kernel and strategy into this directory")
	fs.BoolVar(&cfg.gray, "gray", false, "convert the input to grayscale first")
	fs.Float64Var(&cfg.scale, "scale", 1, "resize the input by this factor first")
	fs.IntVar(&cfg.workers, "workers", 0, "goroutines per image (0 = GOMAXPROCS)")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug output to stderr")
	fs.BoolVar(&cfg.list, "list", false, "list kernels and strategies and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, inputs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	halftone.SetLogger(logger)

	if cfg.list {
		printList(stdout)
		return nil
	}

	switch {
	case len(inputs) == 0:
		return errors.New("no input image")
	case cfg.all == "" && len(inputs) > 1:
		return errors.New("more than one input; use -all to process several")
	}

	mode := halftone.ModeColor
	if cfg.gray {
		mode = halftone.ModeGray
	}
	opts := []halftone.Option{halftone.WithWorkers(cfg.workers), halftone.WithWhite(255)}

	if cfg.all == "" {
		k, err := kernel.Lookup(cfg.kernel)
		if err != nil {
			return err
		}
		img, err := load(inputs[0], mode, cfg.scale)
		if err != nil {
			return err
		}
		return render(logger, img, k, cfg.scan, cfg.output, opts)
	}

	for _, in := range inputs {
		img, err := load(in, mode, cfg.scale)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".png"
		for _, s := range halftone.Strategies() {
			strategy, _ := halftone.ParseStrategy(s)
			for _, k := range append([]*kernel.Kernel{nil}, kernel.All()...) {
				dir := filepath.Join(cfg.all, s, kernelDir(k))
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
				if err := render(logger, img, k, strategy, filepath.Join(dir, name), opts); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func load(path string, mode halftone.Mode, scale float64) (*halftone.Image, error) {
	img, err := halftone.Load(path, mode)
	if err != nil {
		return nil, err
	}
	if scale != 1 {
		return halftone.Scale(img, scale)
	}
	return img, nil
}

func render(logger *slog.Logger, img *halftone.Image, k *kernel.Kernel, s halftone.Strategy, out string, opts []halftone.Option) error {
	start := time.Now()
	res, err := halftone.Halftone(img, k, s, opts...)
	if err != nil {
		return err
	}
	if err := halftone.Save(out, res); err != nil {
		return err
	}
	logger.Info("saved", "path", out, "kernel", kernelDir(k), "scan", s, "image", img, "elapsed", time.Since(start))
	return nil
}

func kernelDir(k *kernel.Kernel) string {
	if k == nil {
		return kernel.None
	}
	return k.Name()
}

func printList(w io.Writer) {
	fmt.Fprintln(w, "kernels:")
	for _, name := range kernel.Names() {
		if name == kernel.None {
			fmt.Fprintf(w, "  %-20s threshold only\n", name)
			continue
		}
		k, _ := kernel.Lookup(name)
		rows, cols := k.Size()
		fmt.Fprintf(w, "  %-20s %dx%d\n", name, rows, cols)
	}
	fmt.Fprintln(w, "strategies:")
	for _, s := range halftone.Strategies() {
		fmt.Fprintf(w, "  %s\n", s)
	}
}
