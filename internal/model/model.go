// Package model defines the core data types shared across NestCut:
// the part catalog, expanded part instances, decoded layouts, placement
// statistics, and optimizer settings.
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for catalog validation and shape construction.
var (
	// ErrUnsupportedShapeKind indicates a part with an unknown shape type.
	ErrUnsupportedShapeKind = errors.New("unsupported shape kind")
	// ErrInvalidDimension indicates a non-positive width/height/radius/base.
	ErrInvalidDimension = errors.New("invalid dimension")
)

// ShapeKind identifies one of the supported shape primitives.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeTriangle  ShapeKind = "triangle"
)

// Valid reports whether the kind is one of the supported primitives.
func (k ShapeKind) Valid() bool {
	switch k {
	case ShapeRectangle, ShapeCircle, ShapeTriangle:
		return true
	}
	return false
}

// PartSpec is one catalog entry: a shape description plus a quantity.
// Dimension fields are in mm; only the fields matching Kind are meaningful
// (Width/Height for rectangles, Radius for circles, Base/Height for
// triangles).
type PartSpec struct {
	ID       string    `json:"id"`
	Kind     ShapeKind `json:"type"`
	Quantity int       `json:"quantity"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Radius   float64   `json:"radius,omitempty"`
	Base     float64   `json:"base,omitempty"`
}

// NewRectangle creates a rectangle catalog entry with a generated id.
func NewRectangle(w, h float64, qty int) PartSpec {
	return PartSpec{ID: newID(), Kind: ShapeRectangle, Width: w, Height: h, Quantity: qty}
}

// NewCircle creates a circle catalog entry with a generated id.
func NewCircle(r float64, qty int) PartSpec {
	return PartSpec{ID: newID(), Kind: ShapeCircle, Radius: r, Quantity: qty}
}

// NewTriangle creates an isosceles triangle catalog entry with a generated id.
func NewTriangle(base, h float64, qty int) PartSpec {
	return PartSpec{ID: newID(), Kind: ShapeTriangle, Base: base, Height: h, Quantity: qty}
}

func newID() string {
	return uuid.New().String()[:8]
}

// Validate checks the spec's shape kind and dimensions.
// Quantity 0 is allowed and treated as 1 by ExpandCatalog.
func (p PartSpec) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("part with empty id")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("part %q: negative quantity %d", p.ID, p.Quantity)
	}
	switch p.Kind {
	case ShapeRectangle:
		if p.Width <= 0 {
			return fmt.Errorf("part %q: %w: width %v", p.ID, ErrInvalidDimension, p.Width)
		}
		if p.Height <= 0 {
			return fmt.Errorf("part %q: %w: height %v", p.ID, ErrInvalidDimension, p.Height)
		}
	case ShapeCircle:
		if p.Radius <= 0 {
			return fmt.Errorf("part %q: %w: radius %v", p.ID, ErrInvalidDimension, p.Radius)
		}
	case ShapeTriangle:
		if p.Base <= 0 {
			return fmt.Errorf("part %q: %w: base %v", p.ID, ErrInvalidDimension, p.Base)
		}
		if p.Height <= 0 {
			return fmt.Errorf("part %q: %w: height %v", p.ID, ErrInvalidDimension, p.Height)
		}
	default:
		return fmt.Errorf("part %q: %w: %q", p.ID, ErrUnsupportedShapeKind, string(p.Kind))
	}
	return nil
}

// ExpandedPart is one physical shape instance after quantity expansion.
// Immutable once created; the slice order produced by ExpandCatalog defines
// genotype triple indexing.
type ExpandedPart struct {
	ID     string    `json:"id"`
	Kind   ShapeKind `json:"type"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	Radius float64   `json:"radius,omitempty"`
	Base   float64   `json:"base,omitempty"`
}

// ExpandCatalog turns catalog entries into individually identified part
// instances, catalog order then replica order. Ids are suffixed _1.._q when
// quantity > 1. Validation is eager: a malformed entry fails the whole
// expansion rather than producing degenerate geometry later.
func ExpandCatalog(catalog []PartSpec) ([]ExpandedPart, error) {
	var expanded []ExpandedPart
	for _, spec := range catalog {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		qty := spec.Quantity
		if qty == 0 {
			qty = 1
		}
		for i := 1; i <= qty; i++ {
			id := spec.ID
			if qty > 1 {
				id = fmt.Sprintf("%s_%d", spec.ID, i)
			}
			expanded = append(expanded, ExpandedPart{
				ID:     id,
				Kind:   spec.Kind,
				Width:  spec.Width,
				Height: spec.Height,
				Radius: spec.Radius,
				Base:   spec.Base,
			})
		}
	}
	return expanded, nil
}

// PlacedPart is one decoded genotype triple: a part instance together with
// its candidate position and rotation. It carries no acceptance flag;
// acceptance is recomputed by the engine's placement procedure.
type PlacedPart struct {
	Part     ExpandedPart `json:"part"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Rotation float64      `json:"rotation"` // radians, about the shape centroid
}

// Layout is the decoded form of a genotype, one entry per expanded part in
// catalog order, whether or not the part was ultimately accepted.
type Layout []PlacedPart

// PlacementStats summarizes a layout after sequential placement.
type PlacementStats struct {
	Utilization      float64 `json:"utilization"`  // 0-100
	PartsPlaced      int     `json:"parts_placed"` // accepted count
	TotalParts       int     `json:"total_parts"`
	TotalArea        float64 `json:"total_area"` // accepted area, mm²
	SheetArea        float64 `json:"sheet_area"`
	WasteArea        float64 `json:"waste_area"`
	OptimizationTime float64 `json:"optimization_time,omitempty"` // seconds
}

// NestSettings holds sheet dimensions and genetic algorithm parameters.
type NestSettings struct {
	SheetWidth  float64 `json:"sheet_width"`  // mm
	SheetHeight float64 `json:"sheet_height"` // mm

	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MutationRate   float64 `json:"mutation_rate"`  // per-part triple probability
	CrossoverProb  float64 `json:"crossover_prob"` // per-pair probability
	MutationProb   float64 `json:"mutation_prob"`  // per-individual probability
	TournamentSize int     `json:"tournament_size"`
	OverlapEpsilon float64 `json:"overlap_epsilon"` // mm², intersection area tolerance
}

// DefaultSettings returns the stock parameters: a 2000x1000 mm sheet and the
// GA configuration the optimizer was tuned with.
func DefaultSettings() NestSettings {
	return NestSettings{
		SheetWidth:     2000,
		SheetHeight:    1000,
		PopulationSize: 50,
		Generations:    30,
		MutationRate:   0.1,
		CrossoverProb:  0.7,
		MutationProb:   0.2,
		TournamentSize: 3,
		OverlapEpsilon: 1e-6,
	}
}

// SheetArea returns the usable sheet area in mm².
func (s NestSettings) SheetArea() float64 {
	return s.SheetWidth * s.SheetHeight
}

// Project ties everything together for save/load.
type Project struct {
	Name     string          `json:"name"`
	Catalog  []PartSpec      `json:"catalog"`
	Settings NestSettings    `json:"settings"`
	Layout   Layout          `json:"layout,omitempty"`
	Stats    *PlacementStats `json:"stats,omitempty"`
}

// NewProject returns an empty project with default settings.
func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Catalog:  []PartSpec{},
		Settings: DefaultSettings(),
	}
}
