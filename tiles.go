package tiler

import (
	"math"
	"slices"

	"github.com/gogpu/tiler/geom"
	"github.com/gogpu/tiler/outline"
)

// Tile dimensions in pixels. The 4.8 fill encoding assumes both fit in
// a 4-bit integer part, so they must stay at 16.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 16

	// TileHeight is the height of a tile in pixels.
	TileHeight = 16
)

// RoundRectOutToTileBounds returns the smallest tile rectangle
// containing rect.
func RoundRectOutToTileBounds(rect geom.Rect) geom.RectI {
	return rect.ScaleXY(geom.Pt(1.0/TileWidth, 1.0/TileHeight)).RoundOut()
}

// Tiler scan-converts one prepared outline into fills and per-tile
// winding state. Each tiler is owned by a single build task.
type Tiler struct {
	// BuiltObject accumulates the path's fills, alpha tiles, and tile
	// map.
	BuiltObject BuiltObject

	builder        *SceneBuilder
	outline        *outline.Outline
	objectIndex    uint16
	paintID        PaintID
	objectIsOpaque bool

	edges     []tilerEdge
	nextEdge  int
	active    []activeEdge
	oldActive []activeEdge
}

// tilerEdge is one directed outline segment queued for tiling, keyed
// by the y of its upper endpoint.
type tilerEdge struct {
	segment geom.LineSegment
	topY    float64
}

// activeEdge is the part of an edge below the strips processed so far.
// crossingX is where it crosses the top of the current strip; winding
// is +1 for a downward edge, -1 for upward.
type activeEdge struct {
	segment   geom.LineSegment
	crossingX float64
	winding   int
}

// NewTiler creates a tiler for one path. The outline must already be
// conditioned by PrepareForTiling.
func NewTiler(builder *SceneBuilder, o *outline.Outline, viewBox geom.Rect,
	objectIndex uint16, paintID PaintID, objectIsOpaque bool) *Tiler {
	bounds := o.Bounds().Intersect(viewBox)
	return &Tiler{
		BuiltObject:    NewBuiltObject(bounds),
		builder:        builder,
		outline:        o,
		objectIndex:    objectIndex,
		paintID:        paintID,
		objectIsOpaque: objectIsOpaque,
	}
}

// GenerateTiles scan-converts the outline strip by strip, then packs
// the tile map into alpha tile primitives and Z-buffer updates.
func (t *Tiler) GenerateTiles() {
	t.collectEdges()

	tileRect := t.BuiltObject.TileRect()
	for stripY := tileRect.Min.Y; stripY < tileRect.Max.Y; stripY++ {
		t.generateStrip(stripY)
	}

	t.packTiles()
}

// collectEdges gathers every outline segment, dropping zero-length
// ones, sorted by upper endpoint y.
func (t *Tiler) collectEdges() {
	for segment := range t.outline.Segments() {
		if segment.From == segment.To {
			continue
		}
		t.edges = append(t.edges, tilerEdge{segment: segment, topY: segment.MinY()})
	}
	slices.SortStableFunc(t.edges, func(a, b tilerEdge) int {
		switch {
		case a.topY < b.topY:
			return -1
		case a.topY > b.topY:
			return 1
		default:
			return 0
		}
	})
}

// generateStrip processes one tile row: first the edges crossing the
// strip's top boundary (carried from above, plus edges whose top
// endpoint lies exactly on the boundary), which drive the winding
// sweep, then the edges that start inside the strip.
func (t *Tiler) generateStrip(tileY int) {
	stripTop := float64(tileY * TileHeight)
	stripBottom := stripTop + TileHeight

	// An edge starting exactly on the strip top extends below it, so
	// it crosses the boundary and belongs in the sweep. A horizontal
	// edge on the boundary carries no winding and no area below
	// itself; the sweep alone accounts for it, so it is dropped.
	for t.nextEdge < len(t.edges) && t.edges[t.nextEdge].topY <= stripTop {
		segment := t.edges[t.nextEdge].segment
		t.nextEdge++
		if winding := segment.YWinding(); winding != 0 {
			t.active = append(t.active, activeEdge{
				segment:   segment,
				crossingX: topEndpointX(segment),
				winding:   winding,
			})
		}
	}

	t.processActiveEdges(tileY, stripBottom)

	for t.nextEdge < len(t.edges) && t.edges[t.nextEdge].topY < stripBottom {
		t.processEdge(t.edges[t.nextEdge].segment, tileY, stripBottom)
		t.nextEdge++
	}
}

// topEndpointX returns the x coordinate of the segment's upper
// endpoint.
func topEndpointX(segment geom.LineSegment) float64 {
	if segment.From.Y <= segment.To.Y {
		return segment.From.X
	}
	return segment.To.X
}

// processActiveEdges sweeps the strip's top boundary left to right.
// Between consecutive edge crossings the carried winding, when
// non-zero, is injected into the crossed tiles: whole tiles take it as
// backdrop, partial spans as active fills. Each active edge then emits
// its fills for the strip.
func (t *Tiler) processActiveEdges(tileY int, stripBottom float64) {
	if len(t.active) == 0 {
		return
	}
	slices.SortStableFunc(t.active, func(a, b activeEdge) int {
		switch {
		case a.crossingX < b.crossingX:
			return -1
		case a.crossingX > b.crossingX:
			return 1
		default:
			return 0
		}
	})

	tileRect := t.BuiltObject.TileRect()
	currentX := float64(tileRect.Min.X * TileWidth)
	winding := 0

	// processEdge refills t.active with the strip remainders, so the
	// crossing list moves to its own buffer first.
	t.active, t.oldActive = t.oldActive[:0], t.active
	for _, edge := range t.oldActive {
		if winding != 0 && edge.crossingX > currentX {
			t.fillSpan(currentX, edge.crossingX, winding, tileY)
		}
		if edge.crossingX > currentX {
			currentX = edge.crossingX
		}
		winding += edge.winding

		t.processEdge(edge.segment, tileY, stripBottom)
	}

	if winding != 0 {
		logger().Debug("unbalanced winding at strip end",
			"tileY", tileY, "winding", winding)
	}
}

// processEdge emits fills for the part of segment inside the current
// strip and queues the remainder for the next strip.
func (t *Tiler) processEdge(segment geom.LineSegment, tileY int, stripBottom float64) {
	if segment.MaxY() <= stripBottom {
		t.BuiltObject.generateFillPrimitivesForLine(t.builder, segment, tileY)
		return
	}

	upper, lower := segment.SplitAtY(stripBottom)
	t.BuiltObject.generateFillPrimitivesForLine(t.builder, upper, tileY)
	t.active = append(t.active, activeEdge{
		segment:   lower,
		crossingX: lower.SolveXForY(stripBottom),
		winding:   segment.YWinding(),
	})
}

// fillSpan injects winding into [left, right) along the top of tile
// row tileY. Tiles fully covered by the span take the winding as
// backdrop; partially covered tiles get explicit active fills.
func (t *Tiler) fillSpan(left, right float64, winding int, tileY int) {
	tileLeft := int(math.Floor(left / TileWidth))
	tileRight := alignUp(int(math.Ceil(right)), TileWidth)

	for tileX := tileLeft; tileX < tileRight; tileX++ {
		tileMinX := float64(tileX * TileWidth)
		tileMaxX := tileMinX + TileWidth
		spanLeft := math.Max(left, tileMinX)
		spanRight := math.Min(right, tileMaxX)
		coords := geom.PointI{X: tileX, Y: tileY}

		if spanLeft == tileMinX && spanRight == tileMaxX {
			t.BuiltObject.adjustBackdrop(coords, winding)
		} else {
			t.BuiltObject.addActiveFill(t.builder, spanLeft, spanRight, winding, coords)
		}
	}
}

// packTiles walks the finished tile map. Tiles with fills become alpha
// tile primitives carrying their backdrop; untouched tiles with
// non-zero backdrop are fully covered and, for opaque paints, recorded
// in the Z-buffer. Fully covered translucent tiles contribute nothing.
func (t *Tiler) packTiles() {
	object := &t.BuiltObject
	for index := range object.Tiles.Data {
		tile := &object.Tiles.Data[index]
		coords := object.LocalTileIndexToCoords(index)
		if tile.IsSolid() {
			if tile.Backdrop != 0 && t.objectIsOpaque {
				t.builder.zBuffer.Update(coords, t.objectIndex)
			}
			continue
		}
		object.AlphaTiles = append(object.AlphaTiles,
			NewAlphaTileBatchPrimitive(coords, tile.Backdrop, t.objectIndex, t.paintID))
	}
}
