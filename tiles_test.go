package tiler

import (
	"image/color"
	"testing"

	"github.com/gogpu/tiler/geom"
)

func TestRoundRectOutToTileBounds(t *testing.T) {
	tests := []struct {
		name string
		rect geom.Rect
		want geom.RectI
	}{
		{
			"tile aligned",
			geom.NewRect(geom.Pt(0, 0), geom.Pt(32, 16)),
			geom.RectI{Min: geom.PtI(0, 0), Max: geom.PtI(2, 1)},
		},
		{
			"fractional",
			geom.Rect{Min: geom.Pt(5, 5), Max: geom.Pt(20, 20)},
			geom.RectI{Min: geom.PtI(0, 0), Max: geom.PtI(2, 2)},
		},
		{
			"negative origin",
			geom.Rect{Min: geom.Pt(-1, -17), Max: geom.Pt(1, 1)},
			geom.RectI{Min: geom.PtI(-1, -2), Max: geom.PtI(1, 1)},
		},
		{
			"empty",
			geom.Rect{},
			geom.RectI{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundRectOutToTileBounds(tt.rect); got != tt.want {
				t.Errorf("RoundRectOutToTileBounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTilerMultiStripBackdropContinuity(t *testing.T) {
	// A tall tile-aligned column: every strip must carry the winding
	// down via active edges, making all tiles solid.
	scene := NewScene()
	scene.SetViewBox(geom.NewRect(geom.Pt(0, 0), geom.Pt(16, 64)))
	red := scene.PushPaint(NewPaint(color.RGBA{R: 255, A: 255}))
	scene.PushPath(NewPathObject(rectPath(0, 0, 16, 64), red, "column"))

	collector := buildScene(t, FromScene(scene))

	solid := collector.solidTiles()
	if len(solid) != 4 {
		t.Fatalf("solid tiles = %d, want 4", len(solid))
	}
	rows := map[int16]bool{}
	for _, tile := range solid {
		rows[tile.TileY] = true
	}
	for y := int16(0); y < 4; y++ {
		if !rows[y] {
			t.Errorf("missing solid tile in row %d", y)
		}
	}
	if fills := collector.fills(); len(fills) != 0 {
		t.Errorf("fills = %d, want 0", len(fills))
	}
}

func TestTilerUnalignedShapeEmitsEdgeFills(t *testing.T) {
	// A shape offset from the grid needs fills on every boundary
	// tile; the center tile of a 3x3 cover is still solid.
	scene := NewScene()
	scene.SetViewBox(geom.NewRect(geom.Pt(0, 0), geom.Pt(64, 64)))
	red := scene.PushPaint(NewPaint(color.RGBA{R: 255, A: 255}))
	scene.PushPath(NewPathObject(rectPath(8, 8, 36, 36), red, "offset"))

	collector := buildScene(t, FromScene(scene))

	if fills := collector.fills(); len(fills) == 0 {
		t.Fatal("no fills for unaligned shape")
	}

	solidAt := map[geom.PointI]bool{}
	for _, tile := range collector.solidTiles() {
		solidAt[geom.PtI(int(tile.TileX), int(tile.TileY))] = true
	}
	if !solidAt[geom.PtI(1, 1)] {
		t.Error("interior tile (1,1) not solid")
	}
	for _, boundary := range []geom.PointI{
		geom.PtI(0, 0), geom.PtI(1, 0), geom.PtI(2, 0),
		geom.PtI(0, 1), geom.PtI(2, 1),
		geom.PtI(0, 2), geom.PtI(1, 2), geom.PtI(2, 2),
	} {
		if solidAt[boundary] {
			t.Errorf("boundary tile %+v wrongly solid", boundary)
		}
	}

	alphaAt := map[geom.PointI]bool{}
	for _, tile := range collector.liveAlphaTiles() {
		alphaAt[tile.TileCoords()] = true
	}
	for _, boundary := range []geom.PointI{
		geom.PtI(0, 0), geom.PtI(2, 2),
	} {
		if !alphaAt[boundary] {
			t.Errorf("boundary tile %+v missing alpha record", boundary)
		}
	}
}

func TestTilerClipsToViewBox(t *testing.T) {
	// A path hanging off the view box contributes only its visible
	// part.
	scene := NewScene()
	scene.SetViewBox(geom.NewRect(geom.Pt(0, 0), geom.Pt(32, 32)))
	red := scene.PushPaint(NewPaint(color.RGBA{R: 255, A: 255}))
	scene.PushPath(NewPathObject(rectPath(-64, -64, 80, 80), red, "overflow"))

	collector := buildScene(t, FromScene(scene))

	for _, tile := range collector.solidTiles() {
		if tile.TileX < 0 || tile.TileY < 0 {
			t.Errorf("solid tile outside view box: %+v", tile)
		}
	}
	for _, tile := range collector.liveAlphaTiles() {
		coords := tile.TileCoords()
		if coords.X < 0 || coords.Y < 0 || coords.X > 1 || coords.Y > 1 {
			t.Errorf("alpha tile outside clipped bounds: %+v", coords)
		}
	}
}

func TestTilerFullyOutsideViewBox(t *testing.T) {
	scene := NewScene()
	scene.SetViewBox(geom.NewRect(geom.Pt(0, 0), geom.Pt(16, 16)))
	red := scene.PushPaint(NewPaint(color.RGBA{R: 255, A: 255}))
	scene.PushPath(NewPathObject(rectPath(100, 100, 16, 16), red, "offscreen"))

	collector := buildScene(t, FromScene(scene))

	if fills := collector.fills(); len(fills) != 0 {
		t.Errorf("fills = %d, want 0", len(fills))
	}
	if tiles := collector.solidTiles(); len(tiles) != 0 {
		t.Errorf("solid tiles = %d, want 0", len(tiles))
	}
	if tiles := collector.liveAlphaTiles(); len(tiles) != 0 {
		t.Errorf("alpha tiles = %d, want 0", len(tiles))
	}
}
