package tiler

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gogpu/tiler/geom"
)

// SceneBuilder runs a single build: it fans path tiling across an
// executor, streams fills to the listener as paths complete, culls
// occluded alpha tiles against the Z-buffer, and synthesizes the
// solid tile batch.
//
// The builder's shared state during a build is minimal: the alpha tile
// index counter and the Z-buffer. Everything else is either read-only
// or owned by a single tiling task.
type SceneBuilder struct {
	scene     *Scene
	transform PreparedRenderTransform
	options   BuildOptions

	nextAlphaTileIndex atomic.Uint32
	zBuffer            *ZBuffer
	listener           RenderCommandListener
}

// NewSceneBuilder creates a builder for one build of scene. The
// listener must be safe for concurrent use.
func NewSceneBuilder(scene *Scene, transform PreparedRenderTransform,
	options *BuildOptions, listener RenderCommandListener) *SceneBuilder {
	return &SceneBuilder{
		scene:     scene,
		transform: transform,
		options:   *options,
		zBuffer:   NewZBuffer(scene.EffectiveViewBox(options)),
		listener:  listener,
	}
}

// Build tiles every path and returns the scene tiles along with the
// elapsed build time.
func (b *SceneBuilder) Build(executor Executor) (SceneTiles, time.Duration) {
	startTime := time.Now()

	pathCount := b.scene.PathCount()
	b.listener.Send(StartCommand{
		BoundingQuad: b.transform.BoundingQuad(),
		PathCount:    pathCount,
	})
	b.listener.Send(AddPaintDataCommand{Data: b.scene.BuildPaintData()})

	effectiveViewBox := b.scene.EffectiveViewBox(&b.options)
	alphaTiles := FlattenIntoVector(executor, pathCount,
		func(pathIndex int) []AlphaTileBatchPrimitive {
			return b.buildPath(pathIndex, effectiveViewBox)
		})

	tiles := b.finishBuilding(alphaTiles)
	return tiles, time.Since(startTime)
}

// buildPath tiles a single path and returns its alpha tile
// primitives. Runs on executor workers.
func (b *SceneBuilder) buildPath(pathIndex int, viewBox geom.Rect) []AlphaTileBatchPrimitive {
	pathObject := &b.scene.paths[pathIndex]
	prepared := b.scene.ApplyRenderOptions(pathObject.Outline(), &b.transform, &b.options)
	paintID := pathObject.Paint()
	objectIsOpaque := b.scene.paints[paintID].IsOpaque()

	tiler := NewTiler(b, prepared, viewBox, uint16(pathIndex), paintID, objectIsOpaque)
	tiler.GenerateTiles()

	if len(tiler.BuiltObject.Fills) != 0 {
		b.listener.Send(AddFillsCommand{Fills: tiler.BuiltObject.Fills})
	}
	return tiler.BuiltObject.AlphaTiles
}

// cullAlphaTiles sentinel-masks every alpha tile occluded by a
// strictly later opaque solid tile.
func (b *SceneBuilder) cullAlphaTiles(alphaTiles []AlphaTileBatchPrimitive) {
	for i := range alphaTiles {
		alphaTile := &alphaTiles[i]
		if b.zBuffer.Test(alphaTile.TileCoords(), uint32(alphaTile.ObjectIndex)) {
			alphaTile.MarkCulled()
		}
	}
}

func (b *SceneBuilder) finishBuilding(alphaTiles []AlphaTileBatchPrimitive) SceneTiles {
	b.listener.Send(FlushFillsCommand{})
	b.cullAlphaTiles(alphaTiles)
	return NewSceneTiles(alphaTiles, b.zBuffer, b.scene.paths)
}

// TileStats summarizes one build's tile output.
type TileStats struct {
	SolidTileCount uint32
	AlphaTileCount uint32
}

// SceneTiles is a precomposed scene: the culled alpha batch and the
// synthesized solid batch. The slices are shared with listeners, which
// may retain them past the builder's lifetime; they are never mutated
// after construction.
type SceneTiles struct {
	Alpha []AlphaTileBatchPrimitive
	Solid []SolidTileBatchPrimitive
}

// NewSceneTiles bundles the alpha batch with the solid batch built
// from the Z-buffer.
func NewSceneTiles(alphaTiles []AlphaTileBatchPrimitive, zBuffer *ZBuffer,
	paths []PathObject) SceneTiles {
	return SceneTiles{
		Alpha: alphaTiles,
		Solid: zBuffer.BuildSolidTiles(paths, 0, uint32(len(paths))),
	}
}

// Send emits the non-empty batches to the listener.
func (t *SceneTiles) Send(listener RenderCommandListener) {
	if len(t.Solid) != 0 {
		listener.Send(SolidTileCommand{Tiles: t.Solid})
	}
	if len(t.Alpha) != 0 {
		listener.Send(AlphaTileCommand{Tiles: t.Alpha})
	}
}

// Stats counts the batch sizes, ignoring culled alpha records.
func (t *SceneTiles) Stats() TileStats {
	stats := TileStats{SolidTileCount: uint32(len(t.Solid))}
	for i := range t.Alpha {
		if !t.Alpha[i].IsCulled() {
			stats.AlphaTileCount++
		}
	}
	return stats
}

// BuiltObject is one path's tiling output: the fill list, the alpha
// tile list, and the per-tile state map. Owned by a single tiling task
// until handed to the builder.
type BuiltObject struct {
	Bounds     geom.Rect
	Fills      []FillBatchPrimitive
	AlphaTiles []AlphaTileBatchPrimitive
	Tiles      DenseTileMap[TileObjectPrimitive]
}

// NewBuiltObject creates a built object whose tile map covers bounds
// rounded out to tile boundaries, with every tile unallocated.
func NewBuiltObject(bounds geom.Rect) BuiltObject {
	tileRect := RoundRectOutToTileBounds(bounds)
	tiles := NewDenseTileMapFromBuilder(tileRect, func(coords geom.PointI) TileObjectPrimitive {
		return TileObjectPrimitive{
			TileX:          int16(coords.X),
			TileY:          int16(coords.Y),
			AlphaTileIndex: InvalidAlphaTileIndex,
		}
	})
	return BuiltObject{
		Bounds: bounds,
		Tiles:  tiles,
	}
}

// TileRect returns the tile rectangle the object covers.
func (o *BuiltObject) TileRect() geom.RectI {
	return o.Tiles.Rect
}

// TileCoordsToLocalIndex returns the tile-map index of coords, or
// false when coords fall outside the object's tile rectangle.
func (o *BuiltObject) TileCoordsToLocalIndex(coords geom.PointI) (int, bool) {
	return o.Tiles.CoordsToIndex(coords)
}

// LocalTileIndexToCoords inverts TileCoordsToLocalIndex.
func (o *BuiltObject) LocalTileIndexToCoords(index int) geom.PointI {
	return o.Tiles.IndexToCoords(index)
}

// addFill emits one fill record for the given segment, which must lie
// within the tile at tileCoords. Coordinates are converted to 4.8
// fixed point relative to the tile's upper-left corner; degenerate
// (vertical after clamping) contributions are culled.
func (o *BuiltObject) addFill(builder *SceneBuilder, segment geom.LineSegment,
	tileCoords geom.PointI) {
	// Ensure this fill is in bounds. If not, cull it.
	if _, ok := o.TileCoordsToLocalIndex(tileCoords); !ok {
		return
	}

	tileUpperLeft := geom.Pt(
		float64(tileCoords.X*TileWidth),
		float64(tileCoords.Y*TileHeight),
	)

	// Convert to 4.8 fixed point.
	fromX := clampFixed((segment.From.X - tileUpperLeft.X) * 256)
	fromY := clampFixed((segment.From.Y - tileUpperLeft.Y) * 256)
	toX := clampFixed((segment.To.X - tileUpperLeft.X) * 256)
	toY := clampFixed((segment.To.Y - tileUpperLeft.Y) * 256)

	// Cull degenerate fills.
	if fromX == toX {
		return
	}

	alphaTileIndex := o.getOrAllocateAlphaTileIndex(builder, tileCoords)

	o.Fills = append(o.Fills, FillBatchPrimitive{
		Px: LineSegmentU4{
			From: uint8(fromX>>8) | uint8(fromY>>8)<<4,
			To:   uint8(toX>>8) | uint8(toY>>8)<<4,
		},
		Subpx: LineSegmentU8{
			FromX: uint8(fromX),
			FromY: uint8(fromY),
			ToX:   uint8(toX),
			ToY:   uint8(toY),
		},
		AlphaTileIndex: alphaTileIndex,
	})
}

// clampFixed truncates a scaled coordinate into the 4.8 fixed point
// range of one tile.
func clampFixed(v float64) int32 {
	const max = TileWidth*256 - 1
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return int32(v)
}

// getOrAllocateAlphaTileIndex returns the tile's global alpha tile
// index, allocating one from the builder's shared counter on first
// use. Relaxed atomic ordering suffices: each tile slot is owned by
// exactly one task and global indices need only be unique.
func (o *BuiltObject) getOrAllocateAlphaTileIndex(builder *SceneBuilder,
	tileCoords geom.PointI) uint16 {
	localIndex := o.Tiles.CoordsToIndexUnchecked(tileCoords)
	if index := o.Tiles.Data[localIndex].AlphaTileIndex; index != InvalidAlphaTileIndex {
		return index
	}

	allocated := builder.nextAlphaTileIndex.Add(1) - 1
	if allocated >= InvalidAlphaTileIndex {
		// The u16 index space is exhausted; saturate below the
		// sentinel rather than collide with it.
		logger().Debug("alpha tile index space exhausted", "allocated", allocated)
		allocated = InvalidAlphaTileIndex - 1
	}
	index := uint16(allocated)
	o.Tiles.Data[localIndex].AlphaTileIndex = index
	return index
}

// adjustBackdrop adds the carried winding to the tile's backdrop.
// Out-of-range coords are dropped.
func (o *BuiltObject) adjustBackdrop(tileCoords geom.PointI, delta int) {
	if index, ok := o.Tiles.CoordsToIndex(tileCoords); ok {
		o.Tiles.Data[index].Backdrop += int8(delta)
	}
}

// addActiveFill injects |winding| copies of a horizontal fill along
// the tile's top edge spanning [left, right], oriented per the sign of
// the winding, so the accumulated winding carried into the span is
// rasterized.
func (o *BuiltObject) addActiveFill(builder *SceneBuilder, left, right float64,
	winding int, tileCoords geom.PointI) {
	tileOriginY := float64(tileCoords.Y * TileHeight)
	leftPoint := geom.Pt(left, tileOriginY)
	rightPoint := geom.Pt(right, tileOriginY)

	var segment geom.LineSegment
	if winding < 0 {
		segment = geom.Seg(leftPoint, rightPoint)
	} else {
		segment = geom.Seg(rightPoint, leftPoint)
	}

	logger().Debug("emitting active fill",
		"left", left, "right", right, "winding", winding, "tile", tileCoords)

	for winding != 0 {
		o.addFill(builder, segment, tileCoords)
		if winding < 0 {
			winding++
		} else {
			winding--
		}
	}
}

// generateFillPrimitivesForLine splits a segment known to lie within
// tile row tileY at tile column boundaries and emits one fill per
// column crossed, preserving orientation so non-zero winding carries
// through.
func (o *BuiltObject) generateFillPrimitivesForLine(builder *SceneBuilder,
	segment geom.LineSegment, tileY int) {
	reversed := segment.From.X > segment.To.X
	segmentLeft, segmentRight := segment.From.X, segment.To.X
	if reversed {
		segmentLeft, segmentRight = segmentRight, segmentLeft
	}

	segmentTileLeft := int(math.Floor(segmentLeft / TileWidth))
	segmentTileRight := alignUp(int(math.Ceil(segmentRight)), TileWidth)

	for subsegmentTileX := segmentTileLeft; subsegmentTileX < segmentTileRight; subsegmentTileX++ {
		fillFrom, fillTo := segment.From, segment.To
		subsegmentTileBound := float64((subsegmentTileX + 1) * TileWidth)
		if subsegmentTileBound < segmentRight {
			x := subsegmentTileBound
			point := geom.Pt(x, segment.SolveYForX(x))
			if !reversed {
				fillTo = point
				segment = geom.Seg(point, segment.To)
			} else {
				fillFrom = point
				segment = geom.Seg(segment.From, point)
			}
		}

		fillSegment := geom.Seg(fillFrom, fillTo)
		fillTileCoords := geom.PointI{X: subsegmentTileX, Y: tileY}
		o.addFill(builder, fillSegment, fillTileCoords)
	}
}

// alignUp rounds x up to the next multiple of align, in units of
// align.
func alignUp(x, align int) int {
	q := x / align
	if x%align > 0 {
		q++
	}
	return q
}
