package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/NestCut/internal/engine"
	"github.com/piwi3910/NestCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the generated workbook.
const (
	excelPlacementsSheet = "Placements"
	excelStatsSheet      = "Statistics"
)

// ExportExcel writes a nesting report workbook: a Placements sheet with one
// row per layout entry (including rejected ones, flagged in the Placed
// column) and a Statistics sheet with the run metrics.
func ExportExcel(path string, layout model.Layout, stats model.PlacementStats, settings model.NestSettings) error {
	if len(layout) == 0 {
		return fmt.Errorf("no layout to export")
	}

	report := engine.PlaceLayout(layout, settings)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), excelPlacementsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Part ID", "Shape", "Dimensions (mm)", "X (mm)", "Y (mm)", "Rotation (deg)", "Placed"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(excelPlacementsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, placement := range layout {
		row := i + 2
		values := []interface{}{
			placement.Part.ID,
			string(placement.Part.Kind),
			partDimensions(placement.Part),
			placement.X,
			placement.Y,
			placement.Rotation * 180 / math.Pi,
			report.Accepted[i],
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(excelPlacementsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if _, err := f.NewSheet(excelStatsSheet); err != nil {
		return fmt.Errorf("failed to add stats sheet: %w", err)
	}

	statRows := []struct {
		label string
		value interface{}
	}{
		{"Sheet Width (mm)", settings.SheetWidth},
		{"Sheet Height (mm)", settings.SheetHeight},
		{"Material Utilization (%)", stats.Utilization},
		{"Parts Placed", stats.PartsPlaced},
		{"Total Parts", stats.TotalParts},
		{"Placed Area (mm²)", stats.TotalArea},
		{"Sheet Area (mm²)", stats.SheetArea},
		{"Waste Area (mm²)", stats.WasteArea},
		{"Optimization Time (s)", stats.OptimizationTime},
	}

	for i, row := range statRows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(excelStatsSheet, labelCell, row.label); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
		if err := f.SetCellValue(excelStatsSheet, valueCell, row.value); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
	}

	return f.SaveAs(path)
}

// partDimensions formats the shape-specific dimensions of a part.
func partDimensions(part model.ExpandedPart) string {
	switch part.Kind {
	case model.ShapeRectangle:
		return fmt.Sprintf("%.0f x %.0f", part.Width, part.Height)
	case model.ShapeCircle:
		return fmt.Sprintf("r %.0f", part.Radius)
	case model.ShapeTriangle:
		return fmt.Sprintf("base %.0f x %.0f", part.Base, part.Height)
	default:
		return ""
	}
}
