// NestCut — AI-Powered Sheet Nesting Optimizer
//
// A command line tool that places rectangles, circles, and triangles on a
// fixed sheet using a genetic algorithm, then reports material utilization
// against a random baseline and exports the layout as PDF, DXF, Excel, or
// QR label sheets.
//
// Build:
//   go build -o nestcut ./cmd/nestcut
//
// Examples:
//   nestcut -in parts.csv -sheet-width 2000 -sheet-height 1000 -pdf layout.pdf
//   nestcut -template sample -generations 60 -dxf cuts.dxf -xlsx report.xlsx
//   nestcut -in parts.json -compare
//   nestcut -in parts.csv -save-template fixtures
//   nestcut -export-config backup.json

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/NestCut/internal/engine"
	"github.com/piwi3910/NestCut/internal/export"
	"github.com/piwi3910/NestCut/internal/importer"
	"github.com/piwi3910/NestCut/internal/model"
	"github.com/piwi3910/NestCut/internal/project"
)

func main() {
	var (
		inPath       = flag.String("in", "", "catalog file (.json, .csv, .xlsx, .dxf)")
		templateName = flag.String("template", "", "use a built-in or saved catalog template")
		projectPath  = flag.String("load", "", "load catalog and settings from a project file")

		sheetWidth  = flag.Float64("sheet-width", 0, "sheet width in mm")
		sheetHeight = flag.Float64("sheet-height", 0, "sheet height in mm")
		population  = flag.Int("population", 0, "GA population size")
		generations = flag.Int("generations", -1, "GA generation budget")
		mutation    = flag.Float64("mutation", 0, "per-part mutation rate")
		seed        = flag.Int64("seed", 0, "random seed (0 = time-based)")

		compare    = flag.Bool("compare", false, "run what-if scenario comparison")
		pdfPath    = flag.String("pdf", "", "write layout PDF to this path")
		dxfPath    = flag.String("dxf", "", "write DXF cut file to this path")
		xlsxPath   = flag.String("xlsx", "", "write Excel report to this path")
		labelsPath = flag.String("labels", "", "write QR label sheet to this path")
		savePath   = flag.String("save", "", "save project file to this path")

		templateSave = flag.String("save-template", "", "save the loaded catalog as a reusable template")
		configExport = flag.String("export-config", "", "export app config backup to this path and exit")
		configImport = flag.String("import-config", "", "import app config backup from this path and exit")
	)
	flag.Parse()

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fatalf("cannot load config: %v", err)
	}

	if *configExport != "" {
		if err := project.ExportAllData(*configExport, config); err != nil {
			fatalf("config export failed: %v", err)
		}
		fmt.Printf("Wrote %s\n", *configExport)
		return
	}
	if *configImport != "" {
		backup, err := project.ImportAllData(*configImport)
		if err != nil {
			fatalf("config import failed: %v", err)
		}
		if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
			fatalf("cannot save imported config: %v", err)
		}
		fmt.Printf("Imported config from %s\n", *configImport)
		return
	}

	catalog, settings, err := resolveInputs(*inPath, *templateName, *projectPath, config)
	if err != nil {
		fatalf("%v", err)
	}
	if len(catalog) == 0 {
		fatalf("no parts to nest; provide -in, -template, or -load")
	}

	if *templateSave != "" {
		if err := storeTemplate(project.TemplatesPath(), *templateSave, catalog); err != nil {
			fatalf("template save failed: %v", err)
		}
		fmt.Printf("Saved template %q\n", *templateSave)
	}

	// Command line overrides
	if *sheetWidth > 0 {
		settings.SheetWidth = *sheetWidth
	}
	if *sheetHeight > 0 {
		settings.SheetHeight = *sheetHeight
	}
	if *population > 0 {
		settings.PopulationSize = *population
	}
	if *generations >= 0 {
		settings.Generations = *generations
	}
	if *mutation > 0 {
		settings.MutationRate = *mutation
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	if *compare {
		runComparison(catalog, settings, runSeed)
		return
	}

	_, baselineStats, err := engine.RandomLayout(catalog, settings, runSeed)
	if err != nil {
		fatalf("baseline failed: %v", err)
	}

	layout, stats, err := engine.Optimize(catalog, settings, runSeed)
	if err != nil {
		fatalf("optimization failed: %v", err)
	}

	printResults(stats, baselineStats)

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, layout, stats, &baselineStats, settings); err != nil {
			fatalf("PDF export failed: %v", err)
		}
		fmt.Printf("Wrote %s\n", *pdfPath)
	}
	if *dxfPath != "" {
		if err := export.ExportDXF(*dxfPath, layout, settings); err != nil {
			fatalf("DXF export failed: %v", err)
		}
		fmt.Printf("Wrote %s\n", *dxfPath)
	}
	if *xlsxPath != "" {
		if err := export.ExportExcel(*xlsxPath, layout, stats, settings); err != nil {
			fatalf("Excel export failed: %v", err)
		}
		fmt.Printf("Wrote %s\n", *xlsxPath)
	}
	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, layout, settings); err != nil {
			fatalf("label export failed: %v", err)
		}
		fmt.Printf("Wrote %s\n", *labelsPath)
	}
	if *savePath != "" {
		proj := model.Project{
			Name:     strings.TrimSuffix(filepath.Base(*savePath), filepath.Ext(*savePath)),
			Catalog:  catalog,
			Settings: settings,
			Layout:   layout,
			Stats:    &stats,
		}
		if err := project.Save(*savePath, proj); err != nil {
			fatalf("project save failed: %v", err)
		}
		fmt.Printf("Wrote %s\n", *savePath)
	}
}

// resolveInputs determines the catalog and settings from the input flags,
// applying the saved application defaults first.
func resolveInputs(inPath, templateName, projectPath string, config model.AppConfig) ([]model.PartSpec, model.NestSettings, error) {
	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)

	if projectPath != "" {
		proj, err := project.Load(projectPath)
		if err != nil {
			return nil, settings, err
		}
		return proj.Catalog, proj.Settings, nil
	}

	if templateName != "" {
		userTemplates, err := project.LoadTemplates(project.TemplatesPath())
		if err != nil {
			return nil, settings, fmt.Errorf("cannot load templates: %w", err)
		}
		tmpl, ok := project.FindTemplate(templateName, userTemplates)
		if !ok {
			return nil, settings, fmt.Errorf("unknown template %q", templateName)
		}
		return tmpl.Catalog, settings, nil
	}

	if inPath == "" {
		return nil, settings, nil
	}

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(inPath)) {
	case ".json":
		result = importer.ImportJSON(inPath)
	case ".csv":
		result = importer.ImportCSV(inPath)
	case ".xlsx", ".xls":
		result = importer.ImportExcel(inPath)
	case ".dxf":
		result = importer.ImportDXF(inPath)
	default:
		return nil, settings, fmt.Errorf("unsupported catalog format %q", filepath.Ext(inPath))
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if len(result.Catalog) == 0 {
		return nil, settings, fmt.Errorf("no usable parts in %s", inPath)
	}

	return result.Catalog, settings, nil
}

// storeTemplate adds the catalog to the user templates under the given name,
// replacing an existing template of the same name.
func storeTemplate(path, name string, catalog []model.PartSpec) error {
	templates, err := project.LoadTemplates(path)
	if err != nil {
		return fmt.Errorf("cannot load templates: %w", err)
	}

	replaced := false
	for i := range templates {
		if templates[i].Name == name {
			templates[i].Catalog = catalog
			replaced = true
			break
		}
	}
	if !replaced {
		templates = append(templates, project.CatalogTemplate{Name: name, Catalog: catalog})
	}

	return project.SaveTemplates(path, templates)
}

// printResults writes the random-vs-optimized comparison table.
func printResults(stats, baseline model.PlacementStats) {
	fmt.Printf("\n%-24s %12s %12s %12s\n", "Metric", "Random", "Optimized", "Improvement")
	fmt.Printf("%s\n", strings.Repeat("-", 64))
	fmt.Printf("%-24s %11.1f%% %11.1f%% %+11.1f%%\n",
		"Material Utilization", baseline.Utilization, stats.Utilization,
		stats.Utilization-baseline.Utilization)
	fmt.Printf("%-24s %9d/%-2d %9d/%-2d %+12d\n",
		"Parts Placed", baseline.PartsPlaced, baseline.TotalParts,
		stats.PartsPlaced, stats.TotalParts, stats.PartsPlaced-baseline.PartsPlaced)
	fmt.Printf("%-24s %12.0f %12.0f %+12.0f\n",
		"Waste Area (mm²)", baseline.WasteArea, stats.WasteArea,
		stats.WasteArea-baseline.WasteArea)
	fmt.Printf("%-24s %12s %11.2fs\n\n",
		"Optimization Time", "-", stats.OptimizationTime)
}

// runComparison runs the default what-if scenarios and prints a table.
func runComparison(catalog []model.PartSpec, settings model.NestSettings, seed int64) {
	scenarios := engine.BuildDefaultScenarios(settings)
	results, err := engine.CompareScenarios(scenarios, catalog, seed)
	if err != nil {
		fatalf("comparison failed: %v", err)
	}

	fmt.Printf("\n%-24s %12s %14s %10s\n", "Scenario", "Utilization", "Parts Placed", "Time")
	fmt.Printf("%s\n", strings.Repeat("-", 64))
	for _, r := range results {
		fmt.Printf("%-24s %11.1f%% %9d/%-4d %9.2fs\n",
			r.Scenario.Name, r.Stats.Utilization,
			r.Stats.PartsPlaced, r.Stats.TotalParts, r.Stats.OptimizationTime)
	}
	fmt.Println()
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "nestcut: "+format+"\n", args...)
	os.Exit(1)
}
