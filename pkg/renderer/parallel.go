package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// ParallelConfig contains configuration for tiled parallel rendering
type ParallelConfig struct {
	TileSize   int // Size of each square tile (64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX int // Tile coordinates (not pixel coordinates)
	TileY int
	Tile  *Frame // Copy of the finished pixels of this tile

	// Progress information
	TileNumber int // Tiles finished so far, including this one (1-based)
	TotalTiles int
}

// ParallelRaytracer splits the image into tiles and renders them on a worker
// pool. Every pixel is computed independently from the read-only scene, so
// the result is identical to a sequential Render.
type ParallelRaytracer struct {
	scene     *scene.Scene
	config    ParallelConfig
	raytracer *Raytracer
	tiles     []*Tile
	logger    core.Logger
}

// NewParallelRaytracer creates a new parallel raytracer. A nil logger
// discards output.
func NewParallelRaytracer(s *scene.Scene, config ParallelConfig, logger core.Logger) *ParallelRaytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultParallelConfig().TileSize
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &ParallelRaytracer{
		scene:     s,
		config:    config,
		raytracer: NewRaytracer(s),
		tiles:     NewTileGrid(s.Width, s.Height, config.TileSize),
		logger:    logger,
	}
}

// Render renders all tiles and returns the assembled frame. tileCallback,
// if not nil, is called from the calling goroutine as each tile finishes.
// Cancelling ctx abandons the render and returns ctx.Err().
func (pr *ParallelRaytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*Frame, RenderStats, error) {
	start := time.Now()
	frame := NewFrame(pr.scene.Width, pr.scene.Height)

	workerPool := NewWorkerPool(pr.raytracer, len(pr.tiles), pr.config.NumWorkers)
	workerPool.Start()
	defer workerPool.Stop()

	pr.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		pr.scene.Width, pr.scene.Height, len(pr.tiles), workerPool.GetNumWorkers())

	for taskID, tile := range pr.tiles {
		workerPool.SubmitTask(TileTask{
			Ctx:    ctx,
			Tile:   tile,
			TaskID: taskID,
			Frame:  frame,
		})
	}

	var stats RenderStats
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			pr.logger.Printf("Rendering cancelled after %d of %d tiles\n", i, len(pr.tiles))
			return nil, RenderStats{}, result.Error
		}

		stats.Merge(result.Stats)

		if tileCallback != nil {
			tile := pr.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / pr.config.TileSize,
				TileY:      tile.Bounds.Min.Y / pr.config.TileSize,
				Tile:       frame.SubFrame(tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(pr.tiles),
			})
		}
	}

	stats.Duration = time.Since(start)
	pr.logger.Printf("Render completed in %v (%d of %d pixels hit, %d shadow rays)\n",
		stats.Duration, stats.HitPixels, stats.TotalPixels, stats.ShadowRays)

	return frame, stats, nil
}

// GetTileCount returns the number of tiles the image is split into
func (pr *ParallelRaytracer) GetTileCount() int {
	return len(pr.tiles)
}
