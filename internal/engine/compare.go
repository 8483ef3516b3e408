package engine

import (
	"fmt"

	"github.com/piwi3910/NestCut/internal/model"
)

// ComparisonScenario defines a named parameter set to compare. Baseline
// scenarios skip the search entirely and report a single random layout.
type ComparisonScenario struct {
	Name     string
	Settings model.NestSettings
	Baseline bool
}

// ComparisonResult holds the layout and statistics for a single scenario.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Layout   model.Layout
	Stats    model.PlacementStats
}

// CompareScenarios runs each scenario over the same catalog with the same
// seed and returns the results in scenario order. This powers the
// random-vs-optimized table and what-if parameter comparisons.
func CompareScenarios(scenarios []ComparisonScenario, catalog []model.PartSpec, seed int64) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		var (
			layout model.Layout
			stats  model.PlacementStats
			err    error
		)
		if scenario.Baseline {
			layout, stats, err = RandomLayout(catalog, scenario.Settings, seed)
		} else {
			layout, stats, err = Optimize(catalog, scenario.Settings, seed)
		}
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario: scenario,
			Layout:   layout,
			Stats:    stats,
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a comparison set from the current
// settings: the random baseline, the settings as-is, and two what-if
// variants with more search effort.
func BuildDefaultScenarios(base model.NestSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Random Baseline", Settings: base, Baseline: true},
		{Name: "Current Settings", Settings: base},
	}

	if base.Generations > 0 {
		longer := base
		longer.Generations = base.Generations * 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%d Generations", longer.Generations),
			Settings: longer,
		})
	}

	if base.MutationRate > 0 && base.MutationRate <= 0.25 {
		hotter := base
		hotter.MutationRate = base.MutationRate * 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Mutation Rate %.2f", hotter.MutationRate),
			Settings: hotter,
		})
	}

	return scenarios
}
