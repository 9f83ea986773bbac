package tiler

import (
	"github.com/gogpu/tiler/geom"
)

// DenseTileMap is a flat 2D array of T over an integer tile rectangle.
// Storage is row-major with y as the outer dimension, so
// len(Data) == Rect.Width()*Rect.Height() always holds.
type DenseTileMap[T any] struct {
	Data []T
	Rect geom.RectI
}

// NewDenseTileMap creates a zero-initialized map covering rect.
func NewDenseTileMap[T any](rect geom.RectI) DenseTileMap[T] {
	return DenseTileMap[T]{
		Data: make([]T, rect.Area()),
		Rect: rect,
	}
}

// NewDenseTileMapFromBuilder creates a map covering rect with every
// cell initialized by build(coords).
func NewDenseTileMapFromBuilder[T any](rect geom.RectI, build func(geom.PointI) T) DenseTileMap[T] {
	m := DenseTileMap[T]{
		Data: make([]T, 0, rect.Area()),
		Rect: rect,
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			m.Data = append(m.Data, build(geom.PointI{X: x, Y: y}))
		}
	}
	return m
}

// CoordsToIndex returns the flat index of coords, or false if coords
// lie outside the rectangle.
func (m *DenseTileMap[T]) CoordsToIndex(coords geom.PointI) (int, bool) {
	if !m.Rect.Contains(coords) {
		return 0, false
	}
	return m.CoordsToIndexUnchecked(coords), true
}

// CoordsToIndexUnchecked returns the flat index of coords. The caller
// must have checked that coords lie inside the rectangle.
func (m *DenseTileMap[T]) CoordsToIndexUnchecked(coords geom.PointI) int {
	return (coords.Y-m.Rect.Min.Y)*m.Rect.Width() + coords.X - m.Rect.Min.X
}

// IndexToCoords inverts CoordsToIndexUnchecked.
func (m *DenseTileMap[T]) IndexToCoords(index int) geom.PointI {
	w := m.Rect.Width()
	return geom.PointI{
		X: m.Rect.Min.X + index%w,
		Y: m.Rect.Min.Y + index/w,
	}
}
