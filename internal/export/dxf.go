package export

import (
	"fmt"

	"github.com/piwi3910/NestCut/internal/engine"
	"github.com/piwi3910/NestCut/internal/geometry"
	"github.com/piwi3910/NestCut/internal/model"
	"github.com/yofu/dxf"
)

// DXF layer names for the generated cut file.
const (
	dxfSheetLayer = "SHEET"
	dxfCutLayer   = "CUT"
)

// ExportDXF writes the accepted placements of a layout as a DXF cut file:
// the sheet boundary on its own layer, then one closed contour per accepted
// part. Circles are emitted as true CIRCLE entities; rectangles and
// triangles become closed LWPOLYLINEs at their transformed positions.
func ExportDXF(path string, layout model.Layout, settings model.NestSettings) error {
	report := engine.PlaceLayout(layout, settings)
	if report.AcceptedCount == 0 {
		return fmt.Errorf("no parts placed to export")
	}

	drawing := dxf.NewDrawing()

	if _, err := drawing.AddLayer(dxfSheetLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add sheet layer: %w", err)
	}
	drawing.LwPolyline(true,
		[]float64{0, 0},
		[]float64{settings.SheetWidth, 0},
		[]float64{settings.SheetWidth, settings.SheetHeight},
		[]float64{0, settings.SheetHeight},
	)

	if _, err := drawing.AddLayer(dxfCutLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add cut layer: %w", err)
	}

	for i, placement := range layout {
		if !report.Accepted[i] {
			continue
		}

		// Circles keep their exact form in the cut file; the 32-gon is an
		// internal scoring approximation, not a machining instruction.
		if placement.Part.Kind == model.ShapeCircle {
			drawing.Circle(placement.X, placement.Y, 0, placement.Part.Radius)
			continue
		}

		shape, err := geometry.BuildShape(placement.Part)
		if err != nil {
			continue
		}
		shape = shape.Transform(placement.X, placement.Y, placement.Rotation)

		vertices := make([][]float64, len(shape))
		for j, pt := range shape {
			vertices[j] = []float64{pt.X, pt.Y}
		}
		drawing.LwPolyline(true, vertices...)
	}

	return drawing.SaveAs(path)
}
