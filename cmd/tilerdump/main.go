// Command tilerdump tiles a scene described by a TOML file and prints
// the resulting command-stream statistics. With -dump it also writes a
// per-tile classification image: solid tiles in their paint color,
// alpha tiles hatched, everything else dark.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gen2brain/webp"

	"github.com/gogpu/tiler"
	"github.com/gogpu/tiler/geom"
	"github.com/gogpu/tiler/outline"
)

func main() {
	var (
		scenePath = flag.String("scene", "scene.toml", "scene description file")
		dumpPath  = flag.String("dump", "", "write tile classification image (.webp or .png)")
		workers   = flag.Int("workers", 0, "tiling workers (0 = GOMAXPROCS)")
		repeat    = flag.Int("repeat", 1, "number of builds (exercises caching)")
	)
	flag.Parse()

	config, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	manager, err := config.buildManager()
	if err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}

	executor := tiler.NewPoolExecutor(*workers)
	defer executor.Close()

	var collector commandCollector
	for range max(*repeat, 1) {
		collector.reset()
		manager.Build(&collector, executor)
		collector.report(os.Stdout)
	}

	if *dumpPath != "" {
		viewBox := manager.Scene().EffectiveViewBox(&tiler.BuildOptions{
			SubpixelAAEnabled: config.SubpixelAA,
		})
		img := collector.classificationImage(viewBox, manager.Scene())
		if err := writeImage(*dumpPath, img); err != nil {
			log.Fatalf("Failed to write %s: %v", *dumpPath, err)
		}
		log.Printf("Tile classification written to %s", *dumpPath)
	}
}

// sceneConfig is the TOML scene description.
type sceneConfig struct {
	ViewBox            [4]float64   `toml:"view_box"` // min x, min y, width, height
	Transform          *[6]float64  `toml:"transform"`
	Dilation           [2]float64   `toml:"dilation"`
	SubpixelAA         bool         `toml:"subpixel_aa"`
	CacheOnTranslation bool         `toml:"cache_on_translation"`
	Paths              []pathConfig `toml:"path"`
}

type pathConfig struct {
	Name   string       `toml:"name"`
	Color  [4]uint8     `toml:"color"` // RGBA
	Points [][2]float64 `toml:"points"`
}

func loadScene(path string) (*sceneConfig, error) {
	var config sceneConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &config, nil
}

func (c *sceneConfig) buildManager() (*tiler.SceneManager, error) {
	scene := tiler.NewScene()
	scene.SetViewBox(geom.NewRect(
		geom.Pt(c.ViewBox[0], c.ViewBox[1]),
		geom.Pt(c.ViewBox[2], c.ViewBox[3]),
	))

	for i, path := range c.Paths {
		if len(path.Points) < 3 {
			return nil, fmt.Errorf("path %d (%q): need at least 3 points", i, path.Name)
		}
		var b outline.Builder
		b.MoveTo(geom.Pt(path.Points[0][0], path.Points[0][1]))
		for _, p := range path.Points[1:] {
			b.LineTo(geom.Pt(p[0], p[1]))
		}
		b.Close()

		paint := scene.PushPaint(tiler.NewPaint(color.RGBA{
			R: path.Color[0], G: path.Color[1], B: path.Color[2], A: path.Color[3],
		}))
		scene.PushPath(tiler.NewPathObject(b.Outline(), paint, path.Name))
	}

	manager := tiler.FromScene(scene)
	if c.Transform != nil {
		t := *c.Transform
		manager.Set2DTransform(geom.Matrix{
			A: t[0], B: t[1], C: t[2],
			D: t[3], E: t[4], F: t[5],
		})
	}
	manager.SetDilation(geom.Pt(c.Dilation[0], c.Dilation[1]))
	manager.SetSubpixelAAEnabled(c.SubpixelAA)
	if c.CacheOnTranslation {
		manager.SetCachePolicy(tiler.CacheOnTranslation)
	}
	return manager, nil
}

// commandCollector is a thread-safe listener that tallies the command
// stream and retains the tile batches.
type commandCollector struct {
	mu sync.Mutex

	pathCount  int
	fillCount  int
	batchCount int
	paintBytes int
	solid      []tiler.SolidTileBatchPrimitive
	alpha      []tiler.AlphaTileBatchPrimitive
	finish     tiler.FinishCommand
}

func (c *commandCollector) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pathCount = 0
	c.fillCount = 0
	c.batchCount = 0
	c.paintBytes = 0
	c.solid = nil
	c.alpha = nil
	c.finish = tiler.FinishCommand{}
}

func (c *commandCollector) Send(command tiler.RenderCommand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch cmd := command.(type) {
	case tiler.StartCommand:
		c.pathCount = cmd.PathCount
	case tiler.AddPaintDataCommand:
		c.paintBytes = len(cmd.Data)
	case tiler.AddFillsCommand:
		c.fillCount += len(cmd.Fills)
		c.batchCount++
	case tiler.SolidTileCommand:
		c.solid = cmd.Tiles
	case tiler.AlphaTileCommand:
		c.alpha = cmd.Tiles
	case tiler.FinishCommand:
		c.finish = cmd
	}
}

func (c *commandCollector) report(w *os.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	live, culled := 0, 0
	for i := range c.alpha {
		if c.alpha[i].IsCulled() {
			culled++
		} else {
			live++
		}
	}
	fmt.Fprintf(w, "paths=%d paints=%dB fills=%d (in %d batches) solid=%d alpha=%d culled=%d build=%v\n",
		c.pathCount, c.paintBytes, c.fillCount, c.batchCount,
		len(c.solid), live, culled, c.finish.BuildTime)
}

// classificationImage renders one pixel per tile: solid tiles in their
// paint color, alpha tiles hatched gray, culled and empty tiles dark.
func (c *commandCollector) classificationImage(viewBox geom.Rect, scene *tiler.Scene) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	rect := tiler.RoundRectOutToTileBounds(viewBox)
	img := image.NewNRGBA(image.Rect(0, 0, max(rect.Width(), 1), max(rect.Height(), 1)))
	for y := range img.Rect.Dy() {
		for x := range img.Rect.Dx() {
			img.SetNRGBA(x, y, color.NRGBA{R: 24, G: 24, B: 32, A: 255})
		}
	}

	paints := scene.BuildPaintData()
	for _, tile := range c.solid {
		x, y := int(tile.TileX)-rect.Min.X, int(tile.TileY)-rect.Min.Y
		p := int(tile.PaintID) * 4
		if p+3 < len(paints) {
			img.SetNRGBA(x, y, color.NRGBA{R: paints[p], G: paints[p+1], B: paints[p+2], A: 255})
		}
	}
	for i := range c.alpha {
		tile := &c.alpha[i]
		if tile.IsCulled() {
			continue
		}
		coords := tile.TileCoords()
		x, y := coords.X-rect.Min.X, coords.Y-rect.Min.Y
		shade := uint8(128 + 64*((x+y)%2))
		img.SetNRGBA(x, y, color.NRGBA{R: shade, G: shade, B: shade, A: 255})
	}
	return img
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if filepath.Ext(path) == ".png" {
		err = png.Encode(f, img)
	} else {
		err = webp.Encode(f, img, webp.Options{Quality: 90})
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
