// Package export writes optimization results to various file formats:
// PDF layout diagrams, QR-coded part labels, DXF cut files, and Excel
// reports.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/NestCut/internal/engine"
	"github.com/piwi3910/NestCut/internal/geometry"
	"github.com/piwi3910/NestCut/internal/model"
)

// partColor represents an RGB fill color for a drawn part.
type partColor struct {
	R, G, B int
}

// shapeColors assigns one color per shape family, matching the original
// visualization scheme.
var shapeColors = map[model.ShapeKind]partColor{
	model.ShapeRectangle: {R: 33, G: 150, B: 243}, // blue
	model.ShapeCircle:    {R: 76, G: 175, B: 80},  // green
	model.ShapeTriangle:  {R: 255, G: 152, B: 0},  // orange
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a nesting run: the layout diagram
// on the first page and a statistics summary on the second. When baseline
// stats are provided the summary includes the random-vs-optimized
// comparison table.
//
// The diagram draws the full decoded layout, including entries the
// placement procedure rejected, mirroring the reference renderer; rejected
// entries are outlined without fill so overlaps remain visible.
func ExportPDF(path string, layout model.Layout, stats model.PlacementStats, baseline *model.PlacementStats, settings model.NestSettings) error {
	if len(layout) == 0 {
		return fmt.Errorf("no layout to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, layout, stats, settings)

	pdf.AddPage()
	renderSummaryPage(pdf, stats, baseline, settings)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the sheet and every decoded placement.
func renderLayoutPage(pdf *fpdf.Fpdf, layout model.Layout, stats model.PlacementStats, settings model.NestSettings) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Nesting Layout (%.0f x %.0f mm sheet)", settings.SheetWidth, settings.SheetHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Parts: %d/%d placed | Used area: %.0f mm² | Utilization: %.1f%%",
		stats.PartsPlaced, stats.TotalParts, stats.TotalArea, stats.Utilization)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 10

	scale := math.Min(drawWidth/settings.SheetWidth, drawHeight/settings.SheetHeight)
	canvasW := settings.SheetWidth * scale
	canvasH := settings.SheetHeight * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	report := engine.PlaceLayout(layout, settings)

	for i, placement := range layout {
		shape, err := geometry.BuildShape(placement.Part)
		if err != nil {
			continue
		}
		shape = shape.Transform(placement.X, placement.Y, placement.Rotation)

		points := make([]fpdf.PointType, len(shape))
		for j, pt := range shape {
			points[j] = fpdf.PointType{
				X: offsetX + pt.X*scale,
				Y: offsetY + (settings.SheetHeight-pt.Y)*scale, // sheet Y is up, page Y is down
			}
		}

		col, ok := shapeColors[placement.Part.Kind]
		if !ok {
			col = partColor{R: 160, G: 160, B: 160}
		}
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)

		if report.Accepted[i] {
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.Polygon(points, "FD")
		} else {
			pdf.Polygon(points, "D")
		}

		// Part id at the placement point
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(0, 0, 0)
		idW := pdf.GetStringWidth(placement.Part.ID)
		pdf.SetXY(offsetX+placement.X*scale-idW/2, offsetY+(settings.SheetHeight-placement.Y)*scale-1.5)
		pdf.CellFormat(idW, 3, placement.Part.ID, "", 0, "C", false, 0, "")
	}

	drawDimensionAnnotations(pdf, settings, scale, offsetX, offsetY, canvasW, canvasH)
}

// drawDimensionAnnotations adds sheet dimension labels outside the sheet
// rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, settings model.NestSettings, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", settings.SheetWidth)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", settings.SheetHeight)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the statistics summary and, when a baseline is
// available, the random-vs-optimized comparison table.
func renderSummaryPage(pdf *fpdf.Fpdf, stats model.PlacementStats, baseline *model.PlacementStats, settings model.NestSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Material Utilization", fmt.Sprintf("%.1f%%", stats.Utilization)},
		{"Parts Placed", fmt.Sprintf("%d / %d", stats.PartsPlaced, stats.TotalParts)},
		{"Placed Area", fmt.Sprintf("%.0f mm²", stats.TotalArea)},
		{"Sheet Area", fmt.Sprintf("%.0f mm²", stats.SheetArea)},
		{"Waste Area", fmt.Sprintf("%.0f mm²", stats.WasteArea)},
		{"Optimization Time", fmt.Sprintf("%.2f s", stats.OptimizationTime)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if baseline != nil {
		y += 5
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Random vs Optimized", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{60, 45, 45, 45}
		headers := []string{"Metric", "Random", "Optimized", "Improvement"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6

		rows := [][]string{
			{
				"Material Utilization",
				fmt.Sprintf("%.1f%%", baseline.Utilization),
				fmt.Sprintf("%.1f%%", stats.Utilization),
				fmt.Sprintf("%+.1f%%", stats.Utilization-baseline.Utilization),
			},
			{
				"Parts Placed",
				fmt.Sprintf("%d / %d", baseline.PartsPlaced, baseline.TotalParts),
				fmt.Sprintf("%d / %d", stats.PartsPlaced, stats.TotalParts),
				fmt.Sprintf("%+d", stats.PartsPlaced-baseline.PartsPlaced),
			},
			{
				"Waste Area",
				fmt.Sprintf("%.0f mm²", baseline.WasteArea),
				fmt.Sprintf("%.0f mm²", stats.WasteArea),
				fmt.Sprintf("%+.0f mm²", stats.WasteArea-baseline.WasteArea),
			},
		}

		pdf.SetFont("Helvetica", "", 9)
		for i, row := range rows {
			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			xPos = marginLeft
			for j, cell := range row {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Optimizer Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Sheet", fmt.Sprintf("%.0f x %.0f mm", settings.SheetWidth, settings.SheetHeight)},
		{"Population Size", fmt.Sprintf("%d", settings.PopulationSize)},
		{"Generations", fmt.Sprintf("%d", settings.Generations)},
		{"Mutation Rate", fmt.Sprintf("%.2f", settings.MutationRate)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by NestCut - Sheet Nesting Optimizer", "", 0, "C", false, 0, "")
}
