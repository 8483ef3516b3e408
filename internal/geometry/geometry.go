// Package geometry implements the exact 2-D predicates the nesting engine
// depends on: shape construction from part descriptions, rotation about the
// centroid, bounds, polygonal area, convex overlap testing, and sheet
// containment.
//
// All three supported primitives are convex polygons. Circles are
// deliberately approximated as regular 32-gons; fitness scoring and reported
// statistics must use the same approximation, so there is no exact-circle
// path anywhere in this package.
package geometry

import (
	"fmt"
	"math"

	"github.com/piwi3910/NestCut/internal/model"
)

// CircleSegments is the number of sides used to approximate a circle.
const CircleSegments = 32

// Point is a 2-D coordinate in mm.
type Point struct {
	X, Y float64
}

// Polygon is a closed polygon as a vertex sequence. The last vertex
// implicitly connects back to the first.
type Polygon []Point

// BuildShape constructs the polygon for a part, centered at the origin.
//
// Rectangles are axis-aligned with the given width/height. Circles are
// regular CircleSegments-gons inscribed at the radius. Triangles are
// isosceles with vertices (-b/2,-h/3), (b/2,-h/3), (0,2h/3), which places
// the centroid at the origin.
func BuildShape(part model.ExpandedPart) (Polygon, error) {
	switch part.Kind {
	case model.ShapeRectangle:
		w, h := part.Width, part.Height
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("rectangle %q: %w: %vx%v", part.ID, model.ErrInvalidDimension, w, h)
		}
		return Polygon{
			{-w / 2, -h / 2},
			{w / 2, -h / 2},
			{w / 2, h / 2},
			{-w / 2, h / 2},
		}, nil

	case model.ShapeCircle:
		r := part.Radius
		if r <= 0 {
			return nil, fmt.Errorf("circle %q: %w: radius %v", part.ID, model.ErrInvalidDimension, r)
		}
		poly := make(Polygon, CircleSegments)
		for i := 0; i < CircleSegments; i++ {
			angle := 2 * math.Pi * float64(i) / CircleSegments
			poly[i] = Point{r * math.Cos(angle), r * math.Sin(angle)}
		}
		return poly, nil

	case model.ShapeTriangle:
		b, h := part.Base, part.Height
		if b <= 0 || h <= 0 {
			return nil, fmt.Errorf("triangle %q: %w: base %v height %v", part.ID, model.ErrInvalidDimension, b, h)
		}
		return Polygon{
			{-b / 2, -h / 3},
			{b / 2, -h / 3},
			{0, 2 * h / 3},
		}, nil

	default:
		return nil, fmt.Errorf("part %q: %w: %q", part.ID, model.ErrUnsupportedShapeKind, string(part.Kind))
	}
}

// Transform rotates the polygon about its own centroid by rotation radians,
// then translates it by (x, y). Zero rotation skips the trigonometry.
func (p Polygon) Transform(x, y, rotation float64) Polygon {
	result := make(Polygon, len(p))
	if rotation == 0 {
		for i, pt := range p {
			result[i] = Point{pt.X + x, pt.Y + y}
		}
		return result
	}

	c := p.Centroid()
	sin, cos := math.Sincos(rotation)
	for i, pt := range p {
		dx := pt.X - c.X
		dy := pt.Y - c.Y
		result[i] = Point{
			X: c.X + dx*cos - dy*sin + x,
			Y: c.Y + dx*sin + dy*cos + y,
		}
	}
	return result
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p[0].X, p[0].X
	minY, maxY = p[0].Y, p[0].Y
	for _, pt := range p[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return minX, minY, maxX, maxY
}

// Area returns the polygon area via the shoelace formula.
func (p Polygon) Area() float64 {
	return math.Abs(p.signedArea())
}

func (p Polygon) signedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return area / 2
}

// Centroid returns the area centroid of the polygon.
func (p Polygon) Centroid() Point {
	n := len(p)
	if n == 0 {
		return Point{}
	}
	a := p.signedArea()
	if a == 0 {
		// Degenerate polygon: fall back to the vertex average.
		var c Point
		for _, pt := range p {
			c.X += pt.X
			c.Y += pt.Y
		}
		return Point{c.X / float64(n), c.Y / float64(n)}
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p[i].X*p[j].Y - p[j].X*p[i].Y
		cx += (p[i].X + p[j].X) * cross
		cy += (p[i].Y + p[j].Y) * cross
	}
	return Point{cx / (6 * a), cy / (6 * a)}
}

// WithinSheet reports whether the polygon lies entirely inside the
// [0,sheetWidth] x [0,sheetHeight] rectangle.
func (p Polygon) WithinSheet(sheetWidth, sheetHeight float64) bool {
	minX, minY, maxX, maxY := p.Bounds()
	return minX >= 0 && minY >= 0 && maxX <= sheetWidth && maxY <= sheetHeight
}

// Overlaps reports whether two convex polygons intersect with an
// intersection area greater than epsilon. The area threshold suppresses
// false positives from boundary touching and floating-point noise.
func Overlaps(a, b Polygon, epsilon float64) bool {
	if !boundsIntersect(a, b) {
		return false
	}
	return IntersectionArea(a, b) > epsilon
}

// IntersectionArea returns the area of the intersection of two convex
// polygons, computed by Sutherland-Hodgman clipping.
func IntersectionArea(a, b Polygon) float64 {
	if len(a) < 3 || len(b) < 3 {
		return 0
	}
	clipped := clipConvex(a, ccw(b))
	if len(clipped) < 3 {
		return 0
	}
	return clipped.Area()
}

func boundsIntersect(a, b Polygon) bool {
	aMinX, aMinY, aMaxX, aMaxY := a.Bounds()
	bMinX, bMinY, bMaxX, bMaxY := b.Bounds()
	return aMinX <= bMaxX && bMinX <= aMaxX && aMinY <= bMaxY && bMinY <= aMaxY
}

// ccw returns the polygon in counter-clockwise winding.
func ccw(p Polygon) Polygon {
	if p.signedArea() >= 0 {
		return p
	}
	reversed := make(Polygon, len(p))
	for i, pt := range p {
		reversed[len(p)-1-i] = pt
	}
	return reversed
}

// clipConvex clips the subject polygon against each edge of the convex,
// counter-clockwise clip polygon.
func clipConvex(subject, clip Polygon) Polygon {
	output := subject
	n := len(clip)
	for i := 0; i < n && len(output) > 0; i++ {
		edgeA := clip[i]
		edgeB := clip[(i+1)%n]
		output = clipByEdge(output, edgeA, edgeB)
	}
	return output
}

// clipByEdge keeps the part of the polygon on the left side of the directed
// edge a->b.
func clipByEdge(poly Polygon, a, b Point) Polygon {
	var out Polygon
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i+n-1)%n]
		curInside := sideOf(a, b, cur) >= 0
		prevInside := sideOf(a, b, prev) >= 0

		switch {
		case curInside && prevInside:
			out = append(out, cur)
		case curInside && !prevInside:
			out = append(out, lineIntersection(prev, cur, a, b), cur)
		case !curInside && prevInside:
			out = append(out, lineIntersection(prev, cur, a, b))
		}
	}
	return out
}

// sideOf returns a positive value when p is left of the directed line a->b,
// negative when right, zero on the line.
func sideOf(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// lineIntersection returns the intersection of segment p1-p2 with the
// infinite line through a-b. Callers only invoke it when the segment
// endpoints straddle the line.
func lineIntersection(p1, p2, a, b Point) Point {
	d1 := sideOf(a, b, p1)
	d2 := sideOf(a, b, p2)
	t := d1 / (d1 - d2)
	return Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}
}
