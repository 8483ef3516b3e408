package engine

import (
	"github.com/piwi3910/NestCut/internal/geometry"
	"github.com/piwi3910/NestCut/internal/model"
)

// defaultOverlapEpsilon is the minimum intersection area (mm²) treated as a
// real collision when the settings leave OverlapEpsilon unset.
const defaultOverlapEpsilon = 1e-6

// PlacementReport is the outcome of running the sequential placement
// procedure over a layout. Accepted[i] corresponds to layout entry i.
type PlacementReport struct {
	Accepted      []bool
	AcceptedCount int
	AcceptedArea  float64
}

// PlaceLayout runs the canonical sequential first-fit placement over a
// layout: each entry in order is built, transformed, and accepted only if it
// lies within the sheet and does not overlap any previously accepted shape
// beyond the epsilon tolerance.
//
// A part whose shape cannot be constructed is skipped, never aborting the
// run. Acceptance is first-come in layout order, not conflict-optimal; the
// fitness function and the reported statistics both rely on this exact
// procedure, so they always agree.
func PlaceLayout(layout model.Layout, settings model.NestSettings) PlacementReport {
	epsilon := settings.OverlapEpsilon
	if epsilon <= 0 {
		epsilon = defaultOverlapEpsilon
	}

	report := PlacementReport{Accepted: make([]bool, len(layout))}
	accepted := make([]geometry.Polygon, 0, len(layout))

	for i, placement := range layout {
		shape, err := geometry.BuildShape(placement.Part)
		if err != nil {
			continue // fail-soft: part stays unplaced
		}
		shape = shape.Transform(placement.X, placement.Y, placement.Rotation)

		if !shape.WithinSheet(settings.SheetWidth, settings.SheetHeight) {
			continue
		}

		collides := false
		for _, other := range accepted {
			if geometry.Overlaps(shape, other, epsilon) {
				collides = true
				break
			}
		}
		if collides {
			continue
		}

		accepted = append(accepted, shape)
		report.Accepted[i] = true
		report.AcceptedCount++
		report.AcceptedArea += shape.Area()
	}

	return report
}

// LayoutStats recomputes placement statistics for a layout using the same
// accept/skip procedure the fitness function scores with.
func LayoutStats(layout model.Layout, settings model.NestSettings) model.PlacementStats {
	report := PlaceLayout(layout, settings)
	sheetArea := settings.SheetArea()

	utilization := 0.0
	if sheetArea > 0 {
		utilization = report.AcceptedArea / sheetArea * 100
	}

	return model.PlacementStats{
		Utilization: utilization,
		PartsPlaced: report.AcceptedCount,
		TotalParts:  len(layout),
		TotalArea:   report.AcceptedArea,
		SheetArea:   sheetArea,
		WasteArea:   sheetArea - report.AcceptedArea,
	}
}

// evaluateLayout scores a decoded layout. Utilization is blended with the
// placement ratio so that two layouts with identical accepted area but
// different drop counts are not fitness-equal.
func evaluateLayout(layout model.Layout, settings model.NestSettings) float64 {
	report := PlaceLayout(layout, settings)

	sheetArea := settings.SheetArea()
	utilization := 0.0
	if sheetArea > 0 {
		utilization = report.AcceptedArea / sheetArea * 100
	}

	placementRatio := 0.0
	if len(layout) > 0 {
		placementRatio = float64(report.AcceptedCount) / float64(len(layout))
	}

	return utilization * (0.5 + 0.5*placementRatio)
}
