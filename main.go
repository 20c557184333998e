package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/integrator"
	"github.com/df07/go-flatland-raytracer/pkg/output"
	"github.com/df07/go-flatland-raytracer/pkg/renderer"
	"github.com/df07/go-flatland-raytracer/pkg/scene"
)

// options holds everything the command line controls
type options struct {
	sceneName   string
	sampling    core.SamplingConfig
	progressive renderer.ProgressiveConfig
	format      string
	outputDir   string
	debugRays   bool
	help        bool
}

// parseFlags reads options from args (without the program name)
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{
		sampling:    core.DefaultSamplingConfig(),
		progressive: renderer.DefaultProgressiveConfig(),
	}

	fs := flag.NewFlagSet("flatland", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sceneName, "scene", scene.DefaultSceneName, "Scene name: "+strings.Join(scene.ListScenes(), ", "))
	fs.IntVar(&opts.sampling.Width, "width", opts.sampling.Width, "Image width in pixels")
	fs.IntVar(&opts.sampling.Height, "height", opts.sampling.Height, "Image height in pixels")
	fs.IntVar(&opts.sampling.SamplesPerPixel, "samples", opts.sampling.SamplesPerPixel, "Jittered directions per pixel per pass")
	fs.IntVar(&opts.sampling.MaxDepth, "depth", opts.sampling.MaxDepth, "Maximum scattering depth")
	fs.IntVar(&opts.progressive.MaxPasses, "passes", opts.progressive.MaxPasses, "Number of progressive passes")
	fs.IntVar(&opts.progressive.NumWorkers, "workers", opts.progressive.NumWorkers, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.progressive.TileSize, "tile", opts.progressive.TileSize, "Tile size in pixels")
	fs.Int64Var(&opts.progressive.Seed, "seed", opts.progressive.Seed, "Base random seed")
	fs.StringVar(&opts.format, "format", "png", "Output format: png or ppm")
	fs.StringVar(&opts.outputDir, "output", "output", "Output directory")
	fs.BoolVar(&opts.debugRays, "debug-rays", false, "Also save an image of every traced segment")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.help {
		return opts, nil
	}

	if err := opts.sampling.Validate(); err != nil {
		return nil, err
	}
	if err := opts.progressive.Validate(); err != nil {
		return nil, err
	}
	if opts.format != "png" && opts.format != "ppm" {
		return nil, fmt.Errorf("unknown output format %q (use png or ppm)", opts.format)
	}
	return opts, nil
}

// createScene builds the named scene
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name must not be empty")
	}
	return scene.NewSceneByName(name)
}

// run renders the scene and returns the path of the saved image
func run(ctx context.Context, opts *options, logger core.Logger) (string, error) {
	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return "", err
	}
	logger.Printf("Using %s scene (%d objects)...\n", selectedScene.Name, selectedScene.Len())

	outputDir := filepath.Join(opts.outputDir, selectedScene.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	tracer := integrator.NewLightTracingIntegrator(core.DefaultTransportConfig(), opts.sampling.MaxDepth)
	var overlay *output.DebugOverlay
	if opts.debugRays {
		overlay = output.NewDebugOverlay(opts.sampling.Width, opts.sampling.Height, 0)
		tracer.SetSegmentRecorder(overlay)
	}

	raytracer := renderer.NewRaytracer(selectedScene, tracer, opts.sampling)
	progressive := renderer.NewProgressiveRaytracer(raytracer, opts.progressive, logger)

	startTime := time.Now()
	passChan, _, errChan := progressive.RenderProgressive(ctx, renderer.RenderOptions{})

	var final renderer.PassResult
	for result := range passChan {
		final = result
	}
	for err := range errChan {
		if err != nil {
			return "", fmt.Errorf("render failed: %w", err)
		}
	}
	if final.Image == nil {
		return "", errors.New("render produced no image")
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	logger.Printf("Samples per pixel: %.1f (range %d - %d), average luminance %.3f\n",
		final.Stats.AverageSamples, final.Stats.MinSamples, final.Stats.MaxSamplesUsed,
		renderer.CalculateAverageLuminance(final.Image))

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, opts.format))
	if err := output.Save(filename, opts.format, final.Image); err != nil {
		return "", err
	}

	if overlay != nil {
		debugName := filepath.Join(outputDir, fmt.Sprintf("debug_%s.png", timestamp))
		if err := overlay.SavePNG(debugName); err != nil {
			return "", err
		}
		logger.Printf("Debug rays saved as %s (%d segments, %d dropped)\n", debugName, overlay.Len(), overlay.Dropped())
	}

	return filename, nil
}

func printHelp() {
	fmt.Println("Flatland Raytracer")
	fmt.Println("Usage: flatland [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -scene, -width, -height, -samples, -depth, -passes, -workers, -tile,")
	fmt.Println("  -seed, -format, -output, -debug-rays (run with -h for details)")
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListSceneInfos() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.<format>")
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}
	if opts.help {
		printHelp()
		return
	}

	fmt.Println("Starting Flatland Raytracer...")

	filename, err := run(context.Background(), opts, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}
