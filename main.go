package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-direct-raytracer/pkg/config"
	"github.com/df07/go-direct-raytracer/pkg/imageio"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
	"github.com/df07/go-direct-raytracer/pkg/scene"
	"github.com/df07/go-direct-raytracer/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Parse command line flags; the environment provides the defaults
	sceneType := flag.String("scene", "default", "Scene name or path to a .json scene file")
	width := flag.Int("width", 0, "Image width (0 uses the scene's width)")
	height := flag.Int("height", 0, "Image height (0 uses the scene's height)")
	outDir := flag.String("out", cfg.OutputDir, "Output directory")
	format := flag.String("format", cfg.Format, "Output format: png, jpg, gif, tiff or bmp")
	workers := flag.Int("workers", cfg.Workers, "Number of render workers (0 uses all CPUs)")
	tileSize := flag.Int("tile", cfg.TileSize, "Tile size in pixels")
	thumbnail := flag.Int("thumbnail", cfg.ThumbnailWidth, "Also write a thumbnail of this width (0 disables)")
	reference := flag.String("reference", "", "Compare the render against this image and report the largest difference")
	upload := flag.Bool("upload", false, "Upload to the configured S3 bucket instead of writing locally")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Direct Lighting Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.<format>")
		return
	}

	if *list {
		printScenes()
		return
	}

	fmt.Println("Starting Direct Lighting Raytracer...")

	selectedScene, err := createScene(*sceneType, *width, *height)
	if err != nil {
		log.Fatalf("Error creating scene: %v", err)
	}
	fmt.Printf("Using scene %s (%dx%d, %d surfaces, %d lights)\n", *sceneType,
		selectedScene.Width, selectedScene.Height, len(selectedScene.Surfaces), len(selectedScene.Lights))

	imgFormat, err := imageio.ParseFormat(*format)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	sink, err := createSink(*outDir, *upload, cfg.S3)
	if err != nil {
		log.Fatalf("Error creating output: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewParallelRaytracer(selectedScene, renderer.ParallelConfig{
		TileSize:   *tileSize,
		NumWorkers: *workers,
	}, renderer.NewDefaultLogger())

	frame, stats, err := raytracer.Render(ctx, nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Render interrupted")
			return
		}
		log.Fatalf("Error rendering: %v", err)
	}

	fmt.Printf("Hit %.1f%% of pixels, %d of %d shadow rays occluded\n",
		stats.HitRatio()*100, stats.OccludedShadowRays, stats.ShadowRays)

	if *reference != "" {
		if err := compareReference(frame, *reference); err != nil {
			log.Printf("Error comparing against reference: %v", err)
		}
	}

	outputs, err := storage.Publish(ctx, sink, *sceneType, imageio.ToNRGBA(frame), imgFormat, *thumbnail, time.Now())
	if err != nil {
		log.Fatalf("Error saving render: %v", err)
	}
	for _, out := range outputs {
		fmt.Printf("Render saved as %s (%d bytes)\n", out.Location, out.Size)
	}
}

// createScene resolves a scene by built-in name, scenes directory entry or file path
func createScene(sceneType string, width, height int) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}
	return scene.Create(sceneType, width, height)
}

// createSink returns the local output directory or, when upload is set, the S3 bucket
func createSink(outDir string, upload bool, s3Config storage.S3Config) (storage.Sink, error) {
	if !upload {
		return storage.NewFileSink(outDir), nil
	}
	return storage.NewS3Sink(s3Config)
}

// compareReference reports the largest channel difference from a reference
// image, in 8-bit steps
func compareReference(frame *renderer.Frame, path string) error {
	ref, err := imageio.LoadFrame(path)
	if err != nil {
		return err
	}
	diff, err := frame.MaxDifference(ref)
	if err != nil {
		return err
	}
	fmt.Printf("Largest difference from %s: %.1f/255\n", path, diff*255)
	return nil
}

func printScenes() {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		fmt.Printf("Warning: could not list scene files: %v\n", err)
	}
	fmt.Println("Available scenes:")
	for _, group := range scenes.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("    %-20s %s\n", info.ID, info.Description)
		}
	}
}
