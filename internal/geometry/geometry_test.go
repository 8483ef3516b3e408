package geometry

import (
	"math"
	"testing"

	"github.com/piwi3910/NestCut/internal/model"
)

func rectPart(w, h float64) model.ExpandedPart {
	return model.ExpandedPart{ID: "r", Kind: model.ShapeRectangle, Width: w, Height: h}
}

func circlePart(r float64) model.ExpandedPart {
	return model.ExpandedPart{ID: "c", Kind: model.ShapeCircle, Radius: r}
}

func trianglePart(b, h float64) model.ExpandedPart {
	return model.ExpandedPart{ID: "t", Kind: model.ShapeTriangle, Base: b, Height: h}
}

func TestBuildShapeRectangle(t *testing.T) {
	poly, err := BuildShape(rectPart(100, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(poly) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(poly))
	}
	if got := poly.Area(); math.Abs(got-5000) > 1e-9 {
		t.Errorf("expected area 5000, got %v", got)
	}

	minX, minY, maxX, maxY := poly.Bounds()
	if minX != -50 || maxX != 50 || minY != -25 || maxY != 25 {
		t.Errorf("unexpected bounds: %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestBuildShapeCircleIs32Gon(t *testing.T) {
	r := 75.0
	poly, err := BuildShape(circlePart(r))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(poly) != CircleSegments {
		t.Fatalf("expected %d vertices, got %d", CircleSegments, len(poly))
	}

	// Every vertex sits exactly on the radius.
	for i, pt := range poly {
		d := math.Hypot(pt.X, pt.Y)
		if math.Abs(d-r) > 1e-9 {
			t.Errorf("vertex %d at distance %v, expected %v", i, d, r)
		}
	}

	// Inscribed polygon area: slightly below pi*r^2, never above.
	exact := math.Pi * r * r
	got := poly.Area()
	if got >= exact {
		t.Errorf("32-gon area %v should be below exact circle area %v", got, exact)
	}
	if got < 0.99*exact {
		t.Errorf("32-gon area %v too far below exact circle area %v", got, exact)
	}
}

func TestBuildShapeTriangleCentroidAtOrigin(t *testing.T) {
	poly, err := BuildShape(trianglePart(120, 90))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(poly) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(poly))
	}
	if got := poly.Area(); math.Abs(got-0.5*120*90) > 1e-9 {
		t.Errorf("expected area 5400, got %v", got)
	}

	c := poly.Centroid()
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Errorf("expected centroid at origin, got (%v, %v)", c.X, c.Y)
	}
}

func TestBuildShapeInvalidDimensions(t *testing.T) {
	cases := []model.ExpandedPart{
		rectPart(0, 10),
		rectPart(10, -1),
		circlePart(0),
		trianglePart(-1, 10),
		{ID: "x", Kind: "hexagon"},
	}
	for _, part := range cases {
		if _, err := BuildShape(part); err == nil {
			t.Errorf("expected error for %+v", part)
		}
	}
}

func TestTransformTranslateOnly(t *testing.T) {
	poly, _ := BuildShape(rectPart(100, 50))
	moved := poly.Transform(200, 300, 0)

	c := moved.Centroid()
	if math.Abs(c.X-200) > 1e-9 || math.Abs(c.Y-300) > 1e-9 {
		t.Errorf("expected centroid (200, 300), got (%v, %v)", c.X, c.Y)
	}
	if math.Abs(moved.Area()-poly.Area()) > 1e-9 {
		t.Errorf("translation changed area: %v vs %v", moved.Area(), poly.Area())
	}
}

func TestTransformRotationPreservesArea(t *testing.T) {
	parts := []model.ExpandedPart{rectPart(100, 50), circlePart(40), trianglePart(120, 90)}
	angles := []float64{0.3, math.Pi / 2, math.Pi, 5.1}

	for _, part := range parts {
		poly, err := BuildShape(part)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, angle := range angles {
			rotated := poly.Transform(500, 500, angle)
			if math.Abs(rotated.Area()-poly.Area()) > 1e-6 {
				t.Errorf("%s rotated by %v: area %v, expected %v",
					part.Kind, angle, rotated.Area(), poly.Area())
			}
		}
	}
}

func TestTransformQuarterTurnSwapsRectExtent(t *testing.T) {
	poly, _ := BuildShape(rectPart(100, 50))
	rotated := poly.Transform(0, 0, math.Pi/2)

	minX, minY, maxX, maxY := rotated.Bounds()
	if math.Abs((maxX-minX)-50) > 1e-9 {
		t.Errorf("expected width 50 after quarter turn, got %v", maxX-minX)
	}
	if math.Abs((maxY-minY)-100) > 1e-9 {
		t.Errorf("expected height 100 after quarter turn, got %v", maxY-minY)
	}
}

func TestRotationIsAboutCentroid(t *testing.T) {
	poly, _ := BuildShape(trianglePart(120, 90))
	placed := poly.Transform(400, 250, 0)
	rotated := poly.Transform(400, 250, 1.7)

	pc := placed.Centroid()
	rc := rotated.Centroid()
	if math.Abs(pc.X-rc.X) > 1e-9 || math.Abs(pc.Y-rc.Y) > 1e-9 {
		t.Errorf("rotation moved the centroid: (%v, %v) vs (%v, %v)", pc.X, pc.Y, rc.X, rc.Y)
	}
}

func TestWithinSheet(t *testing.T) {
	poly, _ := BuildShape(rectPart(100, 50))

	if !poly.Transform(50, 25, 0).WithinSheet(2000, 1000) {
		t.Error("shape flush with the origin corner should be within the sheet")
	}
	if poly.Transform(49, 25, 0).WithinSheet(2000, 1000) {
		t.Error("shape crossing the left edge should not be within the sheet")
	}
	if poly.Transform(1960, 25, 0).WithinSheet(2000, 1000) {
		t.Error("shape crossing the right edge should not be within the sheet")
	}
	if !poly.Transform(1950, 975, 0).WithinSheet(2000, 1000) {
		t.Error("shape flush with the far corner should be within the sheet")
	}
}

func TestOverlapsDisjoint(t *testing.T) {
	a, _ := BuildShape(rectPart(100, 50))
	b, _ := BuildShape(rectPart(100, 50))

	if Overlaps(a.Transform(100, 100, 0), b.Transform(300, 100, 0), 1e-6) {
		t.Error("disjoint rectangles should not overlap")
	}
}

func TestOverlapsIntersecting(t *testing.T) {
	a, _ := BuildShape(rectPart(100, 50))
	b, _ := BuildShape(rectPart(100, 50))

	if !Overlaps(a.Transform(100, 100, 0), b.Transform(150, 100, 0), 1e-6) {
		t.Error("half-offset rectangles should overlap")
	}
}

func TestOverlapsEdgeTouchingIsTolerated(t *testing.T) {
	a, _ := BuildShape(rectPart(100, 50))
	b, _ := BuildShape(rectPart(100, 50))

	// Shapes sharing exactly one edge have zero intersection area.
	if Overlaps(a.Transform(100, 100, 0), b.Transform(200, 100, 0), 1e-6) {
		t.Error("edge-touching rectangles should not count as overlapping")
	}
}

func TestOverlapsCircles(t *testing.T) {
	a, _ := BuildShape(circlePart(40))
	b, _ := BuildShape(circlePart(40))

	if !Overlaps(a.Transform(100, 100, 0), b.Transform(150, 100, 0), 1e-6) {
		t.Error("circles 50mm apart with radius 40 should overlap")
	}
	if Overlaps(a.Transform(100, 100, 0), b.Transform(200, 100, 0), 1e-6) {
		t.Error("circles 100mm apart with radius 40 should not overlap")
	}
}

func TestIntersectionAreaKnownOverlap(t *testing.T) {
	a, _ := BuildShape(rectPart(100, 100))
	b, _ := BuildShape(rectPart(100, 100))

	// 50mm offset in both axes leaves a 50x50 intersection.
	got := IntersectionArea(a.Transform(0, 0, 0), b.Transform(50, 50, 0))
	if math.Abs(got-2500) > 1e-6 {
		t.Errorf("expected intersection area 2500, got %v", got)
	}
}

func TestIntersectionAreaContained(t *testing.T) {
	outer, _ := BuildShape(rectPart(200, 200))
	inner, _ := BuildShape(rectPart(50, 50))

	got := IntersectionArea(outer, inner)
	if math.Abs(got-2500) > 1e-6 {
		t.Errorf("expected contained area 2500, got %v", got)
	}
}

func TestIntersectionAreaDisjoint(t *testing.T) {
	a, _ := BuildShape(rectPart(10, 10))
	b, _ := BuildShape(rectPart(10, 10))

	if got := IntersectionArea(a, b.Transform(100, 0, 0)); got != 0 {
		t.Errorf("expected zero intersection, got %v", got)
	}
}

func TestCentroidRectangle(t *testing.T) {
	poly := Polygon{{0, 0}, {10, 0}, {10, 4}, {0, 4}}
	c := poly.Centroid()
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y-2) > 1e-9 {
		t.Errorf("expected centroid (5, 2), got (%v, %v)", c.X, c.Y)
	}
}

func TestAreaWindingIndependent(t *testing.T) {
	ccwPoly := Polygon{{0, 0}, {10, 0}, {10, 4}, {0, 4}}
	cwPoly := Polygon{{0, 0}, {0, 4}, {10, 4}, {10, 0}}
	if ccwPoly.Area() != cwPoly.Area() {
		t.Errorf("area should not depend on winding: %v vs %v", ccwPoly.Area(), cwPoly.Area())
	}
}
