// Package tiler implements the CPU side of a tile-based 2D vector
// graphics renderer: it takes a scene of filled paths and emits, in
// parallel, a compact stream of GPU-ready primitives organized by a
// fixed 16x16 pixel screen-space tile grid. The output is consumed by
// a downstream rasterizer that composites tiles; the tiler itself
// produces structured data, not pixels.
//
// # Pipeline
//
// A build walks every path through the same stages: the outline is
// clipped against the view box (or a perspective clip polygon),
// transformed into screen space, optionally dilated, and conditioned
// into monotone segments; the tiler then scan-converts the segments
// against the tile grid, emitting per-tile fill records that encode
// fractional edge crossings in 4.8 fixed point and tracking the
// winding carried into each tile. Tiles fully covered by opaque
// paints skip rasterization entirely: a Z-buffer over the tile grid
// records the topmost opaque path per tile and culls the alpha tiles
// underneath.
//
// # Quick start
//
//	scene := tiler.NewScene()
//	scene.SetViewBox(geom.NewRect(geom.Pt(0, 0), geom.Pt(640, 480)))
//	red := scene.PushPaint(tiler.NewPaint(color.RGBA{R: 255, A: 255}))
//	scene.PushPath(tiler.NewPathObject(shape, red, "shape"))
//
//	manager := tiler.FromScene(scene)
//	executor := tiler.NewPoolExecutor(0)
//	defer executor.Close()
//	manager.Build(tiler.ListenerFunc(func(cmd tiler.RenderCommand) {
//	    // consume the command stream
//	}), executor)
//
// # Command stream
//
// Listeners receive, in order: StartCommand, AddPaintDataCommand, any
// number of AddFillsCommand (from worker goroutines, in completion
// order), FlushFillsCommand, at most one SolidTileCommand and one
// AlphaTileCommand, then FinishCommand.
//
// # Concurrency
//
// Paths tile independently: each task owns its tile map and output
// vectors, and only the alpha tile index allocator and the Z-buffer
// are shared (both atomic). Listeners must be safe for concurrent
// use.
package tiler
