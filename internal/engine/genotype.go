package engine

import (
	"math"
	"math/rand"

	"github.com/piwi3910/NestCut/internal/model"
)

// genesPerPart is the number of genes encoding one part placement:
// x, y, rotation.
const genesPerPart = 3

// genome is one candidate layout: a flat gene sequence of consecutive
// (x, y, rotation) triples, one per expanded part in catalog order, plus a
// cached fitness. The cache is only valid while no gene has changed since
// the last evaluation; every variation operator must call invalidate.
type genome struct {
	genes     []float64
	fitness   float64
	evaluated bool
}

func (g *genome) invalidate() {
	g.evaluated = false
	g.fitness = 0
}

func (g genome) clone() genome {
	genes := make([]float64, len(g.genes))
	copy(genes, g.genes)
	return genome{genes: genes, fitness: g.fitness, evaluated: g.evaluated}
}

// randomGenome draws a uniform placement for every part: x in [0, sheet
// width), y in [0, sheet height), rotation in [0, 2π).
func randomGenome(parts []model.ExpandedPart, settings model.NestSettings, rng *rand.Rand) genome {
	genes := make([]float64, 0, len(parts)*genesPerPart)
	for range parts {
		genes = append(genes,
			rng.Float64()*settings.SheetWidth,
			rng.Float64()*settings.SheetHeight,
			rng.Float64()*2*math.Pi,
		)
	}
	return genome{genes: genes}
}

// randomPopulation seeds n random genomes.
func randomPopulation(n int, parts []model.ExpandedPart, settings model.NestSettings, rng *rand.Rand) []genome {
	population := make([]genome, n)
	for i := range population {
		population[i] = randomGenome(parts, settings, rng)
	}
	return population
}

// decode pairs gene triple i with part i, in order.
func decode(genes []float64, parts []model.ExpandedPart) model.Layout {
	layout := make(model.Layout, len(parts))
	for i, part := range parts {
		idx := i * genesPerPart
		layout[i] = model.PlacedPart{
			Part:     part,
			X:        genes[idx],
			Y:        genes[idx+1],
			Rotation: genes[idx+2],
		}
	}
	return layout
}
