package outline

import (
	"github.com/gogpu/tiler/geom"
)

// Dilate pushes every contour point outward along its vertex normal,
// scaled per-axis by amount. Used to widen shapes slightly before
// tiling, e.g. to compensate for subpixel AA filters.
//
// The vertex normal is the normalized sum of the two adjacent edge
// normals; the outward side is chosen from the contour's winding so
// both orientations dilate rather than erode.
func (o *Outline) Dilate(amount geom.Point) {
	for i := range o.contours {
		dilateContour(&o.contours[i], amount)
	}
	o.updateBounds()
}

func dilateContour(c *Contour, amount geom.Point) {
	n := len(c.points)
	if n < 3 {
		return
	}

	// With y-down coordinates a positive signed area means left-hand
	// edge normals point outward; flip them for the other winding.
	sign := 1.0
	if signedArea(c.points) < 0 {
		sign = -1.0
	}

	dilated := make([]geom.Point, n)
	for i := range c.points {
		prev := c.points[(i+n-1)%n]
		cur := c.points[i]
		next := c.points[(i+1)%n]

		n0 := edgeNormal(prev, cur)
		n1 := edgeNormal(cur, next)
		normal := n0.Add(n1).Normalize()
		if normal.IsZero() {
			normal = n1
		}
		offset := geom.Point{X: normal.X * amount.X, Y: normal.Y * amount.Y}
		dilated[i] = cur.Add(offset.Mul(sign))
	}
	c.points = dilated
	c.updateBounds()
}

// edgeNormal returns the unit normal of edge a->b on its left side.
func edgeNormal(a, b geom.Point) geom.Point {
	d := b.Sub(a)
	return geom.Point{X: d.Y, Y: -d.X}.Normalize()
}
