package outline

import (
	"github.com/gogpu/tiler/geom"
)

// ClipAgainstRect clips every contour to the rectangle using
// Sutherland-Hodgman against its four half-planes. Contours reduced to
// fewer than three points are dropped.
func (o *Outline) ClipAgainstRect(r geom.Rect) {
	planes := []halfPlane{
		{inside: func(p geom.Point) bool { return p.X >= r.Min.X },
			cross: func(a, b geom.Point) geom.Point { return intersectX(a, b, r.Min.X) }},
		{inside: func(p geom.Point) bool { return p.X <= r.Max.X },
			cross: func(a, b geom.Point) geom.Point { return intersectX(a, b, r.Max.X) }},
		{inside: func(p geom.Point) bool { return p.Y >= r.Min.Y },
			cross: func(a, b geom.Point) geom.Point { return intersectY(a, b, r.Min.Y) }},
		{inside: func(p geom.Point) bool { return p.Y <= r.Max.Y },
			cross: func(a, b geom.Point) geom.Point { return intersectY(a, b, r.Max.Y) }},
	}
	o.clipAgainstPlanes(planes)
}

// ClipAgainstPolygon clips every contour to a convex polygon in source
// space. Polygon orientation is detected from its signed area. An
// empty or degenerate polygon clips the outline away entirely.
func (o *Outline) ClipAgainstPolygon(polygon []geom.Point) {
	if len(polygon) < 3 {
		o.contours = nil
		o.bounds = geom.Rect{}
		return
	}

	// Signed area > 0 means the interior is to the left of each edge
	// with y-down screen coordinates flipping the usual convention.
	sign := 1.0
	if signedArea(polygon) < 0 {
		sign = -1.0
	}

	planes := make([]halfPlane, len(polygon))
	for i := range polygon {
		a, b := polygon[i], polygon[(i+1)%len(polygon)]
		edge := b.Sub(a)
		planes[i] = halfPlane{
			inside: func(p geom.Point) bool {
				return sign*edge.Cross(p.Sub(a)) >= 0
			},
			cross: func(p, q geom.Point) geom.Point {
				return intersectLine(p, q, a, b)
			},
		}
	}
	o.clipAgainstPlanes(planes)
}

// IsOutsidePolygon reports whether the outline's bounds lie entirely
// outside the convex polygon. Used to cull paths before the more
// expensive per-point clip. An empty polygon contains nothing, so
// everything is outside it.
func (o *Outline) IsOutsidePolygon(polygon []geom.Point) bool {
	if len(polygon) < 3 {
		return true
	}
	return !convexPolygonIntersectsRect(polygon, o.bounds)
}

type halfPlane struct {
	inside func(geom.Point) bool
	cross  func(a, b geom.Point) geom.Point
}

func (o *Outline) clipAgainstPlanes(planes []halfPlane) {
	kept := o.contours[:0]
	for i := range o.contours {
		c := &o.contours[i]
		points := c.points
		for _, plane := range planes {
			points = clipLoop(points, plane)
			if len(points) < 3 {
				points = nil
				break
			}
		}
		if len(points) >= 3 {
			nc := NewContour(points)
			kept = append(kept, nc)
		}
	}
	o.contours = kept
	o.updateBounds()
}

// clipLoop runs one Sutherland-Hodgman pass of a closed loop against a
// half-plane.
func clipLoop(points []geom.Point, plane halfPlane) []geom.Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]geom.Point, 0, len(points)+4)
	prev := points[len(points)-1]
	prevInside := plane.inside(prev)
	for _, cur := range points {
		curInside := plane.inside(cur)
		if curInside != prevInside {
			out = append(out, plane.cross(prev, cur))
		}
		if curInside {
			out = append(out, cur)
		}
		prev, prevInside = cur, curInside
	}
	return out
}

func intersectX(a, b geom.Point, x float64) geom.Point {
	t := (x - a.X) / (b.X - a.X)
	return geom.Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func intersectY(a, b geom.Point, y float64) geom.Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return geom.Point{X: a.X + t*(b.X-a.X), Y: y}
}

// intersectLine returns the intersection of segment p-q with the
// infinite line through a-b.
func intersectLine(p, q, a, b geom.Point) geom.Point {
	d := b.Sub(a)
	denom := d.Cross(q.Sub(p))
	if denom == 0 {
		return p
	}
	t := d.Cross(a.Sub(p)) / denom
	return p.Lerp(q, t)
}

func signedArea(polygon []geom.Point) float64 {
	area := 0.0
	for i := range polygon {
		a, b := polygon[i], polygon[(i+1)%len(polygon)]
		area += a.Cross(b)
	}
	return area * 0.5
}

// convexPolygonIntersectsRect is a separating-axis test between a
// convex polygon and an axis-aligned rectangle.
func convexPolygonIntersectsRect(polygon []geom.Point, r geom.Rect) bool {
	if r.IsEmpty() {
		return false
	}

	// Rect axes: polygon entirely off one side of the rect.
	minX, minY := polygon[0].X, polygon[0].Y
	maxX, maxY := minX, minY
	for _, p := range polygon[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if maxX <= r.Min.X || minX >= r.Max.X || maxY <= r.Min.Y || minY >= r.Max.Y {
		return false
	}

	// Polygon edge normals: rect entirely outside one edge.
	corners := [4]geom.Point{r.Min, r.UpperRight(), r.Max, r.LowerLeft()}
	sign := 1.0
	if signedArea(polygon) < 0 {
		sign = -1.0
	}
	for i := range polygon {
		a, b := polygon[i], polygon[(i+1)%len(polygon)]
		edge := b.Sub(a)
		allOutside := true
		for _, c := range corners {
			if sign*edge.Cross(c.Sub(a)) >= 0 {
				allOutside = false
				break
			}
		}
		if allOutside {
			return false
		}
	}
	return true
}

// ClipPolygon4D clips a convex polygon of homogeneous clip-space
// points against the canonical view volume (|x| <= w, |y| <= w,
// |z| <= w). Points behind the camera are cut away; an empty result
// means the polygon is entirely outside the volume.
func ClipPolygon4D(points []geom.Vector4) []geom.Vector4 {
	// Distance functions are linear in homogeneous space, so
	// Sutherland-Hodgman interpolation stays exact.
	planes := [6]func(geom.Vector4) float64{
		func(v geom.Vector4) float64 { return v.W() + v.X() },
		func(v geom.Vector4) float64 { return v.W() - v.X() },
		func(v geom.Vector4) float64 { return v.W() + v.Y() },
		func(v geom.Vector4) float64 { return v.W() - v.Y() },
		func(v geom.Vector4) float64 { return v.W() + v.Z() },
		func(v geom.Vector4) float64 { return v.W() - v.Z() },
	}

	for _, dist := range planes {
		if len(points) == 0 {
			return nil
		}
		out := make([]geom.Vector4, 0, len(points)+2)
		prev := points[len(points)-1]
		prevDist := dist(prev)
		for _, cur := range points {
			curDist := dist(cur)
			if (curDist >= 0) != (prevDist >= 0) {
				t := prevDist / (prevDist - curDist)
				out = append(out, prev.Lerp(cur, t))
			}
			if curDist >= 0 {
				out = append(out, cur)
			}
			prev, prevDist = cur, curDist
		}
		points = out
	}
	if len(points) < 3 {
		return nil
	}
	return points
}
