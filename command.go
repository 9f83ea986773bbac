package tiler

import (
	"encoding/binary"
	"time"

	"github.com/gogpu/tiler/geom"
)

// InvalidAlphaTileIndex marks a tile that has no alpha tile allocated.
// It is also the reserved ceiling of the index space: the allocator
// saturates at InvalidAlphaTileIndex-1.
const InvalidAlphaTileIndex = 0xffff

// RenderCommand is one wire-level unit of build output. Commands are
// delivered to a RenderCommandListener in the order described in the
// package documentation: Start, AddPaintData, any number of AddFills,
// FlushFills, at most one SolidTile and one AlphaTile, then Finish.
type RenderCommand interface {
	isRenderCommand()
}

// StartCommand opens a build. PathCount is the number of paths that
// will be tiled; BoundingQuad is the perspective-projected quad of the
// scene bounds (all zeros for 2D renders), forwarded to the rasterizer
// for blit placement.
type StartCommand struct {
	BoundingQuad BoundingQuad
	PathCount    int
}

// AddPaintDataCommand carries the scene's paints serialized to the
// GPU-ready byte layout (4 bytes RGBA per paint, in paint ID order).
type AddPaintDataCommand struct {
	Data []byte
}

// AddFillsCommand streams one path's fill records. Fills arrive in
// task-completion order, not path order; each record carries its alpha
// tile index so no reassembly is needed.
type AddFillsCommand struct {
	Fills []FillBatchPrimitive
}

// FlushFillsCommand signals that no further AddFills will arrive.
type FlushFillsCommand struct{}

// SolidTileCommand carries the batch of fully-covered opaque tiles.
// The slice is shared with the builder's cache; consumers must treat
// it as read-only.
type SolidTileCommand struct {
	Tiles []SolidTileBatchPrimitive
}

// AlphaTileCommand carries the batch of partially-covered tiles after
// Z-culling. The slice is shared; consumers must treat it as read-only.
type AlphaTileCommand struct {
	Tiles []AlphaTileBatchPrimitive
}

// FinishCommand closes a build. BuildTime is zero when cached tiles
// were reused.
type FinishCommand struct {
	BuildTime time.Duration
}

func (StartCommand) isRenderCommand()        {}
func (AddPaintDataCommand) isRenderCommand() {}
func (AddFillsCommand) isRenderCommand()     {}
func (FlushFillsCommand) isRenderCommand()   {}
func (SolidTileCommand) isRenderCommand()    {}
func (AlphaTileCommand) isRenderCommand()    {}
func (FinishCommand) isRenderCommand()       {}

// RenderCommandListener receives the command stream produced by a
// build. Send is called from worker goroutines concurrently and must
// be safe for concurrent use.
type RenderCommandListener interface {
	Send(RenderCommand)
}

// ListenerFunc adapts a function to the RenderCommandListener
// interface. The function must be safe for concurrent use.
type ListenerFunc func(RenderCommand)

// Send calls f(command).
func (f ListenerFunc) Send(command RenderCommand) {
	f(command)
}

// LineSegmentU4 packs the whole-pixel parts of a fill segment's
// endpoints: each byte holds the x high nibble in bits 0-3 and the y
// high nibble in bits 4-7.
type LineSegmentU4 struct {
	From, To uint8
}

// LineSegmentU8 holds the fractional-pixel low bytes of a fill
// segment's endpoints.
type LineSegmentU8 struct {
	FromX, FromY, ToX, ToY uint8
}

// FillBatchPrimitive is one edge-crossing contribution within a tile,
// in 4.8 fixed point relative to the tile's upper-left corner. The
// rasterizer consumes the 8-byte wire form directly as vertex
// attributes, so the layout is stable: px (2 bytes), subpx (4 bytes),
// alpha tile index (2 bytes little-endian).
type FillBatchPrimitive struct {
	Px             LineSegmentU4
	Subpx          LineSegmentU8
	AlphaTileIndex uint16
}

// FillBatchPrimitiveSize is the wire size of a fill record in bytes.
const FillBatchPrimitiveSize = 8

// AppendBytes appends the stable 8-byte wire encoding to buf.
func (f FillBatchPrimitive) AppendBytes(buf []byte) []byte {
	buf = append(buf, f.Px.From, f.Px.To,
		f.Subpx.FromX, f.Subpx.FromY, f.Subpx.ToX, f.Subpx.ToY)
	return binary.LittleEndian.AppendUint16(buf, f.AlphaTileIndex)
}

// From returns the decoded from endpoint in 4.8 fixed point.
func (f FillBatchPrimitive) From() (x, y int) {
	return int(f.Px.From&0xf)<<8 | int(f.Subpx.FromX),
		int(f.Px.From>>4)<<8 | int(f.Subpx.FromY)
}

// To returns the decoded to endpoint in 4.8 fixed point.
func (f FillBatchPrimitive) To() (x, y int) {
	return int(f.Px.To&0xf)<<8 | int(f.Subpx.ToX),
		int(f.Px.To>>4)<<8 | int(f.Subpx.ToY)
}

// TileObjectPrimitive is the per-tile state a path accumulates during
// tiling: the allocated alpha tile (InvalidAlphaTileIndex when none)
// and the winding carried across the tile's top edge.
type TileObjectPrimitive struct {
	TileX, TileY   int16
	AlphaTileIndex uint16
	Backdrop       int8
}

// IsSolid reports whether no fills touched this tile.
func (t TileObjectPrimitive) IsSolid() bool {
	return t.AlphaTileIndex == InvalidAlphaTileIndex
}

// AlphaTileBatchPrimitive addresses one partially-covered tile. Tile
// coordinates are packed as 12-bit signed values: low bytes plus a
// shared high byte holding the x high nibble in bits 0-3 and the y
// high nibble in bits 4-7. The all-0xff coordinate is the cull
// sentinel.
type AlphaTileBatchPrimitive struct {
	TileXLo     uint8
	TileYLo     uint8
	TileHi      uint8
	Backdrop    int8
	ObjectIndex uint16
	PaintID     PaintID
}

// AlphaTileBatchPrimitiveSize is the wire size of an alpha tile record
// in bytes.
const AlphaTileBatchPrimitiveSize = 8

// NewAlphaTileBatchPrimitive packs tile coordinates, backdrop, object
// index, and paint into a batch record.
func NewAlphaTileBatchPrimitive(tileCoords geom.PointI, backdrop int8,
	objectIndex uint16, paintID PaintID) AlphaTileBatchPrimitive {
	x, y := tileCoords.X, tileCoords.Y
	return AlphaTileBatchPrimitive{
		TileXLo:     uint8(x),
		TileYLo:     uint8(y),
		TileHi:      uint8(x>>8)&0x0f | uint8(y>>8)<<4,
		Backdrop:    backdrop,
		ObjectIndex: objectIndex,
		PaintID:     paintID,
	}
}

// TileCoords unpacks the 12-bit signed tile coordinates.
func (a *AlphaTileBatchPrimitive) TileCoords() geom.PointI {
	x := int(a.TileXLo) | int(a.TileHi&0x0f)<<8
	y := int(a.TileYLo) | int(a.TileHi>>4)<<8
	// Sign-extend from 12 bits.
	if x >= 0x800 {
		x -= 0x1000
	}
	if y >= 0x800 {
		y -= 0x1000
	}
	return geom.PointI{X: x, Y: y}
}

// MarkCulled overwrites the tile coordinates with the cull sentinel so
// the rasterizer skips this record.
func (a *AlphaTileBatchPrimitive) MarkCulled() {
	a.TileXLo = 0xff
	a.TileYLo = 0xff
	a.TileHi = 0xff
}

// IsCulled reports whether the record carries the cull sentinel.
func (a *AlphaTileBatchPrimitive) IsCulled() bool {
	return a.TileXLo == 0xff && a.TileYLo == 0xff && a.TileHi == 0xff
}

// AppendBytes appends the stable 8-byte wire encoding to buf.
func (a AlphaTileBatchPrimitive) AppendBytes(buf []byte) []byte {
	buf = append(buf, a.TileXLo, a.TileYLo, a.TileHi, uint8(a.Backdrop))
	buf = binary.LittleEndian.AppendUint16(buf, a.ObjectIndex)
	return binary.LittleEndian.AppendUint16(buf, uint16(a.PaintID))
}

// SolidTileBatchPrimitive addresses one fully-covered opaque tile.
type SolidTileBatchPrimitive struct {
	TileX, TileY int16
	PaintID      PaintID
}

// SolidTileBatchPrimitiveSize is the wire size of a solid tile record
// in bytes.
const SolidTileBatchPrimitiveSize = 6

// AppendBytes appends the stable 6-byte wire encoding to buf.
func (s SolidTileBatchPrimitive) AppendBytes(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint16(buf, uint16(s.TileX))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(s.TileY))
	return binary.LittleEndian.AppendUint16(buf, uint16(s.PaintID))
}
