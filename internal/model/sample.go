package model

// SampleCatalog returns a small mixed catalog useful for demos and smoke
// tests: a few bracket rectangles, gasket circles, and gusset triangles that
// comfortably fit the default 2000x1000 sheet.
func SampleCatalog() []PartSpec {
	return []PartSpec{
		{ID: "panel_a", Kind: ShapeRectangle, Width: 300, Height: 200, Quantity: 2},
		{ID: "panel_b", Kind: ShapeRectangle, Width: 150, Height: 100, Quantity: 3},
		{ID: "flange", Kind: ShapeCircle, Radius: 75, Quantity: 2},
		{ID: "gasket", Kind: ShapeCircle, Radius: 40, Quantity: 4},
		{ID: "gusset", Kind: ShapeTriangle, Base: 120, Height: 90, Quantity: 2},
	}
}
