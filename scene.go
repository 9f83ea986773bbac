package tiler

import (
	"image/color"
	"iter"

	"github.com/gogpu/tiler/geom"
	"github.com/gogpu/tiler/outline"
)

// Scene is the mutable container of paths and paints to be tiled.
// Scenes accumulate content across frames; a build borrows the scene
// read-only.
//
// Example:
//
//	scene := tiler.NewScene()
//	scene.SetViewBox(geom.NewRect(geom.Pt(0, 0), geom.Pt(640, 480)))
//	paint := scene.PushPaint(tiler.NewPaint(color.RGBA{R: 255, A: 255}))
//	scene.PushPath(tiler.NewPathObject(shape, paint, "shape"))
type Scene struct {
	paths      []PathObject
	paints     []Paint
	paintCache map[Paint]PaintID
	bounds     geom.Rect
	viewBox    geom.Rect
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		paintCache: make(map[Paint]PaintID),
	}
}

// PushPath appends a path and unions its outline bounds into the
// scene bounds.
func (s *Scene) PushPath(path PathObject) {
	s.bounds = s.bounds.Union(path.outline.Bounds())
	s.paths = append(s.paths, path)
}

// PushPaint interns a paint: pushing an equal paint twice returns the
// same PaintID and stores the paint once.
func (s *Scene) PushPaint(paint Paint) PaintID {
	if id, ok := s.paintCache[paint]; ok {
		return id
	}
	id := PaintID(len(s.paints))
	s.paintCache[paint] = id
	s.paints = append(s.paints, paint)
	return id
}

// PathCount returns the number of paths in the scene.
func (s *Scene) PathCount() int {
	return len(s.paths)
}

// Bounds returns the union of all path outline bounds.
func (s *Scene) Bounds() geom.Rect {
	return s.bounds
}

// SetBounds overrides the scene bounds.
func (s *Scene) SetBounds(bounds geom.Rect) {
	s.bounds = bounds
}

// ViewBox returns the rectangular rendering region.
func (s *Scene) ViewBox() geom.Rect {
	return s.viewBox
}

// SetViewBox sets the rectangular rendering region.
func (s *Scene) SetViewBox(viewBox geom.Rect) {
	s.viewBox = viewBox
}

// MonochromeColor returns the sole color of the scene if every path
// shares one paint, and false otherwise.
func (s *Scene) MonochromeColor() (color.RGBA, bool) {
	if len(s.paths) == 0 {
		return color.RGBA{}, false
	}
	first := s.paths[0].paint
	for _, path := range s.paths[1:] {
		if path.paint != first {
			return color.RGBA{}, false
		}
	}
	return s.paints[first].Color, true
}

// ScenePath is one element yielded by Paths.
type ScenePath struct {
	Paint   Paint
	Outline *outline.Outline
	Name    string
}

// Paths returns an iterator over the scene's paths with their paints
// resolved.
func (s *Scene) Paths() iter.Seq[ScenePath] {
	return func(yield func(ScenePath) bool) {
		for i := range s.paths {
			path := &s.paths[i]
			sp := ScenePath{
				Paint:   s.paints[path.paint],
				Outline: path.outline,
				Name:    path.name,
			}
			if !yield(sp) {
				return
			}
		}
	}
}

// EffectiveViewBox returns the view box adjusted for the build
// options: subpixel AA renders at triple horizontal resolution for
// LCD filtering.
func (s *Scene) EffectiveViewBox(options *BuildOptions) geom.Rect {
	if options.SubpixelAAEnabled {
		return s.viewBox.ScaleXY(geom.Pt(3, 1))
	}
	return s.viewBox
}

// ApplyRenderOptions produces the tiling-ready outline of a path:
// clipped to the render region, transformed into screen space, dilated
// if requested, and conditioned for the scanline tiler. The original
// outline is never modified.
func (s *Scene) ApplyRenderOptions(original *outline.Outline,
	transform *PreparedRenderTransform, options *BuildOptions) *outline.Outline {
	effectiveViewBox := s.EffectiveViewBox(options)

	var out *outline.Outline
	if transform.Kind == TransformPerspective {
		if original.IsOutsidePolygon(transform.ClipPolygon) {
			out = outline.New()
		} else {
			out = original.Clone()
			out.ClipAgainstPolygon(transform.ClipPolygon)
			out.ApplyPerspective(transform.Perspective)
		}
	} else {
		out = original.Clone()
		if transform.Kind == Transform2D || options.SubpixelAAEnabled {
			matrix := geom.Identity()
			if transform.Kind == Transform2D {
				matrix = transform.Matrix
			}
			if options.SubpixelAAEnabled {
				matrix = geom.Scale(3, 1).Multiply(matrix)
			}
			out.Transform(matrix)
		}
		out.ClipAgainstRect(effectiveViewBox)
	}

	if !options.Dilation.IsZero() {
		out.Dilate(options.Dilation)
	}

	out.PrepareForTiling(effectiveViewBox)
	return out
}

// PathObject is one fillable path in a scene: an outline, the paint
// applied to it, and a human-readable name for diagnostics.
type PathObject struct {
	outline *outline.Outline
	paint   PaintID
	name    string
}

// NewPathObject creates a path object.
func NewPathObject(o *outline.Outline, paint PaintID, name string) PathObject {
	return PathObject{outline: o, paint: paint, name: name}
}

// Outline returns the path's outline.
func (p *PathObject) Outline() *outline.Outline {
	return p.outline
}

// Paint returns the path's paint ID.
func (p *PathObject) Paint() PaintID {
	return p.paint
}

// Name returns the path's diagnostic name.
func (p *PathObject) Name() string {
	return p.name
}
