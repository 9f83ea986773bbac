package tiler

import (
	"time"

	"github.com/gogpu/tiler/geom"
	"github.com/gogpu/tiler/outline"
)

// CachePolicy controls how tiles are cached from frame to frame.
type CachePolicy int

const (
	// CacheNever performs no caching: every build retiles the scene.
	CacheNever CachePolicy = iota

	// CacheOnTranslation reuses the previous build's tiles while the
	// 2D transform matrix (everything but the translation column) is
	// unchanged. Scale, skew, or rotation changes retile.
	CacheOnTranslation
)

// BuildOptions is the per-build render configuration.
type BuildOptions struct {
	// Dilation widens every outline by the given amount per axis
	// before tiling.
	Dilation geom.Point

	// SubpixelAAEnabled renders at triple horizontal resolution for
	// LCD subpixel filtering.
	SubpixelAAEnabled bool
}

// BoundingQuad is the perspective-projected quad of the scene bounds,
// forwarded to the rasterizer for blit placement.
type BoundingQuad [4]geom.Vector4

// SceneManager directs the rendering of a scene: it owns the scene,
// the render transform and build options, and the tile cache, and
// drives SceneBuilder when the cache cannot be reused.
type SceneManager struct {
	scene *Scene

	cached *cachedData

	cachePolicy CachePolicy
	transform2D geom.Matrix
	perspective *geom.Perspective
	options     BuildOptions
}

type cachedData struct {
	transform geom.Matrix
	tiles     SceneTiles
}

// NewSceneManager creates a manager over an empty scene.
func NewSceneManager() *SceneManager {
	return FromScene(NewScene())
}

// FromScene creates a manager over an existing scene.
func FromScene(scene *Scene) *SceneManager {
	return &SceneManager{
		scene:       scene,
		cachePolicy: CacheNever,
		transform2D: geom.Identity(),
	}
}

// Scene returns the managed scene. Mutating it invalidates nothing by
// itself; pair mutation with CacheNever or a transform change.
func (m *SceneManager) Scene() *Scene {
	return m.scene
}

// SetCachePolicy sets the frame-to-frame tile caching policy.
func (m *SceneManager) SetCachePolicy(policy CachePolicy) {
	m.cachePolicy = policy
}

// Set2DTransform sets a 2D affine render transform, replacing any
// perspective transform.
func (m *SceneManager) Set2DTransform(transform geom.Matrix) {
	m.transform2D = transform
	m.perspective = nil
}

// SetPerspectiveTransform sets a perspective render transform.
func (m *SceneManager) SetPerspectiveTransform(perspective geom.Perspective) {
	p := perspective
	m.perspective = &p
}

// SetDilation sets the per-axis outline dilation applied each build.
func (m *SceneManager) SetDilation(dilation geom.Point) {
	m.options.Dilation = dilation
}

// SetSubpixelAAEnabled toggles subpixel AA (3x horizontal resolution).
func (m *SceneManager) SetSubpixelAAEnabled(enabled bool) {
	m.options.SubpixelAAEnabled = enabled
}

// Build tiles the scene (or reuses cached tiles) and sends the
// resulting command stream to the listener. The executor fans path
// tiling across workers; the listener receives commands from those
// workers concurrently.
func (m *SceneManager) Build(listener RenderCommandListener, executor Executor) {
	var buildTime time.Duration
	var tiles SceneTiles

	if m.sceneIsDirty() {
		prepared := m.prepareRenderTransform()
		builder := NewSceneBuilder(m.scene, prepared, &m.options, listener)
		tiles, buildTime = builder.Build(executor)

		if m.perspective == nil && m.cachePolicy == CacheOnTranslation {
			m.cached = &cachedData{transform: m.transform2D, tiles: tiles}
		}
	} else {
		tiles = m.cached.tiles
	}

	tiles.Send(listener)
	listener.Send(FinishCommand{BuildTime: buildTime})
}

// sceneIsDirty reports whether the cached tiles cannot be reused.
func (m *SceneManager) sceneIsDirty() bool {
	if m.cachePolicy == CacheNever {
		return true
	}
	if m.perspective != nil {
		return true
	}
	if m.cached == nil {
		return true
	}
	cached, current := m.cached.transform, m.transform2D
	return cached.A != current.A || cached.B != current.B ||
		cached.D != current.D || cached.E != current.E
}

// PreparedTransformKind discriminates PreparedRenderTransform.
type PreparedTransformKind int

const (
	// TransformNone is the identity fast path: no transform pass runs.
	TransformNone PreparedTransformKind = iota

	// Transform2D applies a 2D affine matrix.
	Transform2D

	// TransformPerspective clips against a source-space polygon and
	// applies a perspective projection.
	TransformPerspective
)

// PreparedRenderTransform is the render transform resolved against the
// scene bounds for one build.
type PreparedRenderTransform struct {
	Kind        PreparedTransformKind
	Matrix      geom.Matrix
	Perspective geom.Perspective

	// ClipPolygon is the convex source-space region that survives the
	// perspective view volume; outlines entirely outside it are
	// dropped. Empty when the scene is entirely clipped away.
	ClipPolygon []geom.Point

	// Quad is the perspective-divided clip-space quad of the scene
	// bounds.
	Quad BoundingQuad
}

// BoundingQuad returns the quad for the Start command: the projected
// scene bounds under perspective, all zeros otherwise.
func (t *PreparedRenderTransform) BoundingQuad() BoundingQuad {
	if t.Kind == TransformPerspective {
		return t.Quad
	}
	return BoundingQuad{}
}

// Is2D reports whether the transform is a non-identity 2D affine.
func (t *PreparedRenderTransform) Is2D() bool {
	return t.Kind == Transform2D
}

// prepareRenderTransform resolves the current render transform against
// the scene bounds.
func (m *SceneManager) prepareRenderTransform() PreparedRenderTransform {
	if m.perspective == nil {
		if m.transform2D.IsIdentity() {
			return PreparedRenderTransform{Kind: TransformNone}
		}
		return PreparedRenderTransform{Kind: Transform2D, Matrix: m.transform2D}
	}

	perspective := *m.perspective
	bounds := m.scene.Bounds()
	corners := [4]geom.Point{
		bounds.Origin(),
		bounds.UpperRight(),
		bounds.LowerRight(),
		bounds.LowerLeft(),
	}

	points := make([]geom.Vector4, 4)
	for i, corner := range corners {
		points[i] = perspective.Transform.TransformPoint(corner)
	}
	logger().Debug("prepared perspective quad",
		"bounds", bounds, "quad", points)

	var quad BoundingQuad
	for i, point := range points {
		quad[i] = point.PerspectiveDivide()
	}

	clipped := outline.ClipPolygon4D(points)

	inverse := perspective.Transform.Inverse()
	clipPolygon := make([]geom.Point, len(clipped))
	for i, point := range clipped {
		unprojected := inverse.TransformVector(point.PerspectiveDivide())
		clipPolygon[i] = unprojected.PerspectiveDivide().To2D()
	}

	return PreparedRenderTransform{
		Kind:        TransformPerspective,
		Perspective: perspective,
		ClipPolygon: clipPolygon,
		Quad:        quad,
	}
}
