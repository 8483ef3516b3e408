// Package engine implements the genetic nesting optimizer: genotype
// encoding, fitness evaluation, genetic operators, and the generational
// search loop.
package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/piwi3910/NestCut/internal/model"
)

// nestingOptimizer runs the genetic search for one expanded part set.
// It holds no state across runs; the RNG is created per run from the
// caller's seed so results are reproducible.
type nestingOptimizer struct {
	settings model.NestSettings
	parts    []model.ExpandedPart
	rng      *rand.Rand
}

func newNestingOptimizer(settings model.NestSettings, parts []model.ExpandedPart, seed int64) *nestingOptimizer {
	return &nestingOptimizer{
		settings: normalize(settings),
		parts:    parts,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// normalize fills unset operator parameters so a zero-value settings struct
// from an old project file still runs.
func normalize(s model.NestSettings) model.NestSettings {
	if s.PopulationSize < 1 {
		s.PopulationSize = 1
	}
	if s.TournamentSize < 1 {
		s.TournamentSize = 3
	}
	if s.OverlapEpsilon <= 0 {
		s.OverlapEpsilon = defaultOverlapEpsilon
	}
	return s
}

// optimize runs the generational loop and returns the best genome of the
// final population. With a zero generation budget the best of the seeded
// population is returned with no variation applied.
func (n *nestingOptimizer) optimize() genome {
	population := randomPopulation(n.settings.PopulationSize, n.parts, n.settings, n.rng)
	n.evaluateAll(population)

	for gen := 0; gen < n.settings.Generations; gen++ {
		// Selection: fill a new pool of the same size by tournaments.
		selected := make([]genome, len(population))
		for i := range selected {
			selected[i] = n.tournamentSelect(population)
		}

		// Crossover pairwise across the pool.
		for i := 1; i < len(selected); i += 2 {
			if n.rng.Float64() < n.settings.CrossoverProb {
				n.crossover(&selected[i-1], &selected[i])
			}
		}

		// Mutation per individual.
		for i := range selected {
			if n.rng.Float64() < n.settings.MutationProb {
				n.mutate(&selected[i])
			}
		}

		n.evaluateAll(selected)
		population = selected
	}

	best := population[0]
	for _, g := range population[1:] {
		if g.fitness > best.fitness {
			best = g
		}
	}
	return best
}

// evaluateAll scores every genome whose cached fitness was invalidated.
func (n *nestingOptimizer) evaluateAll(population []genome) {
	for i := range population {
		if population[i].evaluated {
			continue
		}
		layout := decode(population[i].genes, n.parts)
		population[i].fitness = evaluateLayout(layout, n.settings)
		population[i].evaluated = true
	}
}

// tournamentSelect samples tournament-size genomes uniformly with
// replacement and returns a copy of the fittest.
func (n *nestingOptimizer) tournamentSelect(population []genome) genome {
	best := &population[n.rng.Intn(len(population))]
	for i := 1; i < n.settings.TournamentSize; i++ {
		candidate := &population[n.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return best.clone()
}

// crossover swaps the gene tails of two genomes at a cut index aligned to a
// part boundary, so no (x, y, rotation) triple is ever split. Genomes with
// fewer than two parts pass through unchanged.
func (n *nestingOptimizer) crossover(a, b *genome) {
	if len(a.genes) <= genesPerPart {
		return
	}
	nParts := len(a.genes) / genesPerPart
	cut := (1 + n.rng.Intn(nParts-1)) * genesPerPart

	for i := cut; i < len(a.genes); i++ {
		a.genes[i], b.genes[i] = b.genes[i], a.genes[i]
	}
	a.invalidate()
	b.invalidate()
}

// mutate visits each part triple independently with probability
// MutationRate. A selected triple takes either a position jump (both x and
// y redrawn over the sheet extent) or a rotation jump, never both.
func (n *nestingOptimizer) mutate(g *genome) {
	for i := 0; i < len(g.genes); i += genesPerPart {
		if n.rng.Float64() >= n.settings.MutationRate {
			continue
		}
		if n.rng.Float64() < 0.5 {
			g.genes[i] = n.rng.Float64() * n.settings.SheetWidth
			g.genes[i+1] = n.rng.Float64() * n.settings.SheetHeight
		} else {
			g.genes[i+2] = n.rng.Float64() * 2 * math.Pi
		}
	}
	g.invalidate()
}

// Optimize expands the catalog, evolves a population of candidate layouts
// for the configured generation budget, and returns the best layout found
// together with its placement statistics (including elapsed time).
func Optimize(catalog []model.PartSpec, settings model.NestSettings, seed int64) (model.Layout, model.PlacementStats, error) {
	start := time.Now()

	parts, err := model.ExpandCatalog(catalog)
	if err != nil {
		return nil, model.PlacementStats{}, err
	}
	if len(parts) == 0 {
		stats := LayoutStats(nil, settings)
		stats.OptimizationTime = time.Since(start).Seconds()
		return model.Layout{}, stats, nil
	}

	opt := newNestingOptimizer(settings, parts, seed)
	best := opt.optimize()

	layout := decode(best.genes, parts)
	stats := LayoutStats(layout, opt.settings)
	stats.OptimizationTime = time.Since(start).Seconds()
	return layout, stats, nil
}

// RandomLayout expands the catalog and decodes a single random genome
// without any search. Used as the unoptimized baseline for comparison.
func RandomLayout(catalog []model.PartSpec, settings model.NestSettings, seed int64) (model.Layout, model.PlacementStats, error) {
	parts, err := model.ExpandCatalog(catalog)
	if err != nil {
		return nil, model.PlacementStats{}, err
	}

	settings = normalize(settings)
	rng := rand.New(rand.NewSource(seed))
	layout := decode(randomGenome(parts, settings, rng).genes, parts)
	return layout, LayoutStats(layout, settings), nil
}
