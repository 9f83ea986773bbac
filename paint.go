package tiler

import (
	"image/color"
)

// PaintID indexes a scene's paint table. At most 1<<16 paints per
// scene.
type PaintID uint16

// Paint describes the surface appearance applied to a path. Currently
// a single straight-alpha color; the type is comparable so scenes can
// deduplicate equal paints.
type Paint struct {
	Color color.RGBA
}

// NewPaint creates a paint from a color.
func NewPaint(c color.RGBA) Paint {
	return Paint{Color: c}
}

// IsOpaque reports whether the paint fully covers what it is drawn
// over. Only opaque paints participate in Z-buffer occlusion.
func (p Paint) IsOpaque() bool {
	return p.Color.A == 0xff
}

// paintDataSize is the serialized size of one paint: RGBA, one byte
// per channel.
const paintDataSize = 4

// BuildPaintData serializes the paint table to the GPU-ready layout
// consumed via AddPaintDataCommand: 4 bytes RGBA per paint in paint ID
// order.
func (s *Scene) BuildPaintData() []byte {
	data := make([]byte, 0, len(s.paints)*paintDataSize)
	for _, paint := range s.paints {
		c := paint.Color
		data = append(data, c.R, c.G, c.B, c.A)
	}
	return data
}
