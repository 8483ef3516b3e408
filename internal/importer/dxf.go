package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/NestCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a bare 2D coordinate used while chaining DXF entities.
type point struct {
	x, y float64
}

// segment is a line segment between two points, used for chaining
// disconnected LINE and ARC entities into closed outlines.
type segment struct {
	start point
	end   point
}

// ImportDXF imports a catalog from a DXF file. CIRCLE entities become
// circle parts; closed LWPOLYLINEs and chains of connected LINEs/ARCs
// become rectangle parts sized to their bounding box, since the optimizer
// supports rectangle, circle, and triangle primitives only.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment
	partNum := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Circle:
			partNum++
			result.Catalog = append(result.Catalog, model.PartSpec{
				ID:       fmt.Sprintf("dxf_circle_%d", partNum),
				Kind:     model.ShapeCircle,
				Radius:   e.Radius,
				Quantity: 1,
			})

		case *entity.LwPolyline:
			outline := make([]point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, point{v[0], v[1]})
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			segments = append(segments, pointsToSegments(pts)...)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	for _, outline := range outlines {
		partNum++
		width, height := outlineExtent(outline)
		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", width, height))
			continue
		}
		// Non-circular outlines are reduced to their bounding rectangle.
		result.Catalog = append(result.Catalog, model.PartSpec{
			ID:       fmt.Sprintf("dxf_part_%d", partNum),
			Kind:     model.ShapeRectangle,
			Width:    width,
			Height:   height,
			Quantity: 1,
		})
	}

	if len(result.Catalog) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}

	return result
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

// pointsToSegments converts a point sequence to connected segments.
func pointsToSegments(pts []point) []segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum endpoint distance to consider two segments
// connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Drop the duplicate closing point on closed chains.
		if len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain = chain[:len(chain)-1]
		}

		if len(chain) >= 3 {
			outlines = append(outlines, chain)
		}
	}

	// Largest first for consistent part numbering.
	sort.Slice(outlines, func(i, j int) bool {
		wi, hi := outlineExtent(outlines[i])
		wj, hj := outlineExtent(outlines[j])
		return wi*hi > wj*hj
	})

	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	dx := a.x - b.x
	dy := a.y - b.y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

// outlineExtent returns the bounding-box width and height of an outline.
func outlineExtent(outline []point) (width, height float64) {
	if len(outline) == 0 {
		return 0, 0
	}
	minX, maxX := outline[0].x, outline[0].x
	minY, maxY := outline[0].y, outline[0].y
	for _, p := range outline[1:] {
		minX = math.Min(minX, p.x)
		maxX = math.Max(maxX, p.x)
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}
	return maxX - minX, maxY - minY
}
