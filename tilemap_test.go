package tiler

import (
	"testing"

	"github.com/gogpu/tiler/geom"
)

func TestDenseTileMapLengthInvariant(t *testing.T) {
	rect := geom.RectI{Min: geom.PtI(-2, 3), Max: geom.PtI(5, 7)}
	m := NewDenseTileMap[int](rect)
	if got, want := len(m.Data), rect.Width()*rect.Height(); got != want {
		t.Errorf("len(Data) = %d, want %d", got, want)
	}
}

func TestDenseTileMapIndexRoundTrip(t *testing.T) {
	rect := geom.RectI{Min: geom.PtI(-2, 3), Max: geom.PtI(5, 7)}
	m := NewDenseTileMap[int](rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			coords := geom.PtI(x, y)
			index, ok := m.CoordsToIndex(coords)
			if !ok {
				t.Fatalf("CoordsToIndex(%v) not ok", coords)
			}
			if index != m.CoordsToIndexUnchecked(coords) {
				t.Fatalf("checked/unchecked mismatch at %v", coords)
			}
			if back := m.IndexToCoords(index); back != coords {
				t.Fatalf("IndexToCoords(%d) = %v, want %v", index, back, coords)
			}
		}
	}
}

func TestDenseTileMapRowMajor(t *testing.T) {
	rect := geom.RectI{Min: geom.PtI(0, 0), Max: geom.PtI(3, 2)}
	m := NewDenseTileMap[int](rect)
	if got := m.CoordsToIndexUnchecked(geom.PtI(2, 0)); got != 2 {
		t.Errorf("(2,0) index = %d, want 2", got)
	}
	if got := m.CoordsToIndexUnchecked(geom.PtI(0, 1)); got != 3 {
		t.Errorf("(0,1) index = %d, want 3", got)
	}
}

func TestDenseTileMapOutOfRange(t *testing.T) {
	rect := geom.RectI{Min: geom.PtI(0, 0), Max: geom.PtI(3, 2)}
	m := NewDenseTileMap[int](rect)
	for _, coords := range []geom.PointI{
		geom.PtI(-1, 0), geom.PtI(3, 0), geom.PtI(0, 2), geom.PtI(0, -1),
	} {
		if _, ok := m.CoordsToIndex(coords); ok {
			t.Errorf("CoordsToIndex(%v) ok, want out of range", coords)
		}
	}
}

func TestDenseTileMapFromBuilder(t *testing.T) {
	rect := geom.RectI{Min: geom.PtI(1, 1), Max: geom.PtI(3, 3)}
	m := NewDenseTileMapFromBuilder(rect, func(c geom.PointI) geom.PointI { return c })
	for i, coords := range m.Data {
		if m.IndexToCoords(i) != coords {
			t.Errorf("cell %d initialized with %v, want %v", i, coords, m.IndexToCoords(i))
		}
	}
}
