package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/NestCut/internal/model"
)

// CatalogTemplate is a named, reusable part catalog.
type CatalogTemplate struct {
	Name    string           `json:"name"`
	Catalog []model.PartSpec `json:"catalog"`
}

// BuiltinTemplates returns the catalogs shipped with the application.
func BuiltinTemplates() []CatalogTemplate {
	return []CatalogTemplate{
		{Name: "sample", Catalog: model.SampleCatalog()},
		{
			Name: "brackets",
			Catalog: []model.PartSpec{
				{ID: "bracket", Kind: model.ShapeRectangle, Width: 80, Height: 60, Quantity: 10},
				{ID: "washer", Kind: model.ShapeCircle, Radius: 20, Quantity: 10},
			},
		},
	}
}

// TemplatesPath returns the default path for user-saved templates.
func TemplatesPath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates persists user templates to the given path.
func SaveTemplates(path string, templates []CatalogTemplate) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads user templates from the given path. A missing file is
// not an error; it simply yields no user templates.
func LoadTemplates(path string) ([]CatalogTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var templates []CatalogTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// FindTemplate looks a template up by name, searching user templates first
// and then the built-ins.
func FindTemplate(name string, userTemplates []CatalogTemplate) (CatalogTemplate, bool) {
	for _, t := range userTemplates {
		if t.Name == name {
			return t, true
		}
	}
	for _, t := range BuiltinTemplates() {
		if t.Name == name {
			return t, true
		}
	}
	return CatalogTemplate{}, false
}
