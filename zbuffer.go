package tiler

import (
	"sync/atomic"

	"github.com/gogpu/tiler/geom"
)

// ZBuffer tracks, per tile of the effective view box, the highest
// opaque path index fully covering that tile. Cells store path index
// plus one; zero means no opaque path covers the tile. Cell updates
// are monotone maxes, so concurrent tiling tasks may update freely.
type ZBuffer struct {
	rect geom.RectI
	data []atomic.Uint32
}

// NewZBuffer creates a Z-buffer covering the view box rounded out to
// tile bounds.
func NewZBuffer(viewBox geom.Rect) *ZBuffer {
	rect := RoundRectOutToTileBounds(viewBox)
	return &ZBuffer{
		rect: rect,
		data: make([]atomic.Uint32, rect.Area()),
	}
}

// Rect returns the tile rectangle the buffer covers.
func (z *ZBuffer) Rect() geom.RectI {
	return z.rect
}

// Update raises the cell at coords to at least objectIndex+1.
// Out-of-range coords are dropped.
func (z *ZBuffer) Update(coords geom.PointI, objectIndex uint16) {
	if !z.rect.Contains(coords) {
		return
	}
	cell := &z.data[z.indexUnchecked(coords)]
	value := uint32(objectIndex) + 1
	for {
		current := cell.Load()
		if current >= value {
			return
		}
		if cell.CompareAndSwap(current, value) {
			return
		}
	}
}

// Test reports whether an opaque path with index strictly greater than
// objectIndex fully covers the tile at coords, i.e. whether a tile of
// path objectIndex there is occluded.
func (z *ZBuffer) Test(coords geom.PointI, objectIndex uint32) bool {
	if !z.rect.Contains(coords) {
		return false
	}
	return z.data[z.indexUnchecked(coords)].Load() > objectIndex+1
}

// BuildSolidTiles synthesizes the solid tile batch: one record per
// covered cell whose winning path index falls in [start, end), carrying
// that path's paint.
func (z *ZBuffer) BuildSolidTiles(paths []PathObject, start, end uint32) []SolidTileBatchPrimitive {
	var tiles []SolidTileBatchPrimitive
	for i := range z.data {
		value := z.data[i].Load()
		if value == 0 {
			continue
		}
		objectIndex := value - 1
		if objectIndex < start || objectIndex >= end {
			continue
		}
		coords := z.indexToCoords(i)
		tiles = append(tiles, SolidTileBatchPrimitive{
			TileX:   int16(coords.X),
			TileY:   int16(coords.Y),
			PaintID: paths[objectIndex].paint,
		})
	}
	return tiles
}

func (z *ZBuffer) indexUnchecked(coords geom.PointI) int {
	return (coords.Y-z.rect.Min.Y)*z.rect.Width() + coords.X - z.rect.Min.X
}

func (z *ZBuffer) indexToCoords(index int) geom.PointI {
	w := z.rect.Width()
	return geom.PointI{
		X: z.rect.Min.X + index%w,
		Y: z.rect.Min.Y + index/w,
	}
}
