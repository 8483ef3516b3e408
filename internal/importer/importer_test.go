package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/NestCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("ID,Type,Width,Height,Qty\npanel,rectangle,300,200,2\nring,circle,,,1\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("ID;Type;Width;Height;Qty\npanel;rectangle;300;200;2\nring;circle;;;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("ID\tType\tWidth\tHeight\tQty\npanel\trectangle\t300\t200\t2\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("ID|Type|Width|Height|Qty\npanel|rectangle|300|200|2\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"ID", "Type", "Width", "Height", "Radius", "Base", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.ID != 0 {
		t.Errorf("expected ID at 0, got %d", mapping.ID)
	}
	if mapping.Kind != 1 {
		t.Errorf("expected Type at 1, got %d", mapping.Kind)
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Height != 3 {
		t.Errorf("expected Height at 3, got %d", mapping.Height)
	}
	if mapping.Radius != 4 {
		t.Errorf("expected Radius at 4, got %d", mapping.Radius)
	}
	if mapping.Base != 5 {
		t.Errorf("expected Base at 5, got %d", mapping.Base)
	}
	if mapping.Quantity != 6 {
		t.Errorf("expected Quantity at 6, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_AliasHeaders(t *testing.T) {
	row := []string{"Name", "Shape", "W", "H", "R", "B", "Pcs"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected from aliases")
	}
	if mapping.ID != 0 || mapping.Kind != 1 || mapping.Width != 2 || mapping.Quantity != 6 {
		t.Errorf("alias mapping wrong: %+v", mapping)
	}
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	row := []string{"panel", "rectangle", "300", "200", "", "", "2"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("data row should not be detected as a header")
	}
	if mapping.ID != 0 || mapping.Kind != 1 || mapping.Width != 2 ||
		mapping.Height != 3 || mapping.Radius != 4 || mapping.Base != 5 || mapping.Quantity != 6 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_AllShapes(t *testing.T) {
	csvData := `ID,Type,Width,Height,Radius,Base,Quantity
panel,rectangle,300,200,,,2
flange,circle,,,75,,1
gusset,triangle,,90,,120,3
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Catalog) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(result.Catalog))
	}

	rect := result.Catalog[0]
	if rect.Kind != model.ShapeRectangle || rect.Width != 300 || rect.Height != 200 || rect.Quantity != 2 {
		t.Errorf("unexpected rectangle: %+v", rect)
	}
	circle := result.Catalog[1]
	if circle.Kind != model.ShapeCircle || circle.Radius != 75 || circle.Quantity != 1 {
		t.Errorf("unexpected circle: %+v", circle)
	}
	tri := result.Catalog[2]
	if tri.Kind != model.ShapeTriangle || tri.Base != 120 || tri.Height != 90 || tri.Quantity != 3 {
		t.Errorf("unexpected triangle: %+v", tri)
	}
}

func TestImportCSVFromReader_ShapeAliases(t *testing.T) {
	csvData := `ID,Type,Width,Height,Radius,Base,Quantity
a,rect,100,50,,,1
b,tri,,40,,60,1
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Catalog[0].Kind != model.ShapeRectangle {
		t.Errorf("expected rect alias to parse as rectangle, got %s", result.Catalog[0].Kind)
	}
	if result.Catalog[1].Kind != model.ShapeTriangle {
		t.Errorf("expected tri alias to parse as triangle, got %s", result.Catalog[1].Kind)
	}
}

func TestImportCSVFromReader_BadRowsAccumulateErrors(t *testing.T) {
	csvData := `ID,Type,Width,Height,Radius,Base,Quantity
good,rectangle,100,50,,,1
noshape,,100,50,,,1
badkind,hexagon,100,50,,,1
baddim,circle,,,-5,,1
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Catalog) != 1 {
		t.Errorf("expected 1 good part, got %d", len(result.Catalog))
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 row errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSVFromReader_InvalidQuantityWarnsAndDefaults(t *testing.T) {
	csvData := `ID,Type,Width,Height,Radius,Base,Quantity
panel,rectangle,100,50,,,abc
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Catalog) != 1 || result.Catalog[0].Quantity != 1 {
		t.Errorf("expected quantity to default to 1, got %+v", result.Catalog)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Invalid quantity") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("expected invalid quantity warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingIDGetsGenerated(t *testing.T) {
	csvData := `ID,Type,Width,Height,Radius,Base,Quantity
,rectangle,100,50,,,1
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Catalog) != 1 {
		t.Fatalf("expected 1 part, got %d", len(result.Catalog))
	}
	if result.Catalog[0].ID != "part_1" {
		t.Errorf("expected generated id part_1, got %s", result.Catalog[0].ID)
	}
}

func TestImportCSVFromReader_HeaderWithoutTypeColumn(t *testing.T) {
	csvData := `ID,Width,Height
panel,100,50
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Catalog) != 0 {
		t.Errorf("expected no parts without a type column, got %d", len(result.Catalog))
	}
	if len(result.Errors) == 0 {
		t.Error("expected an error about the missing type column")
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	data := "ID;Type;Width;Height;Radius;Base;Quantity\npanel;rectangle;300;200;;;2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("cannot write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Catalog) != 1 {
		t.Fatalf("expected 1 part, got %d", len(result.Catalog))
	}

	foundDelimWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			foundDelimWarning = true
		}
	}
	if !foundDelimWarning {
		t.Errorf("expected semicolon delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("cannot write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── JSON Import Tests ─────────────────────────────────────

func TestImportJSON_ValidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.json")
	data := `[
		{"id": "panel", "type": "rectangle", "width": 300, "height": 200, "quantity": 2},
		{"id": "flange", "type": "circle", "radius": 75},
		{"id": "gusset", "type": "triangle", "base": 120, "height": 90, "quantity": 3}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("cannot write test file: %v", err)
	}

	result := ImportJSON(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Catalog) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(result.Catalog))
	}
	if result.Catalog[1].Quantity != 1 {
		t.Errorf("expected omitted quantity to default to 1, got %d", result.Catalog[1].Quantity)
	}
}

func TestImportJSON_SkipsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.json")
	data := `[
		{"id": "good", "type": "rectangle", "width": 300, "height": 200, "quantity": 1},
		{"id": "bad", "type": "circle", "radius": -1, "quantity": 1}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("cannot write test file: %v", err)
	}

	result := ImportJSON(path)

	if len(result.Catalog) != 1 {
		t.Errorf("expected 1 good part, got %d", len(result.Catalog))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 entry error, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportJSON_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("cannot write test file: %v", err)
	}

	result := ImportJSON(path)
	if len(result.Errors) == 0 {
		t.Error("expected parse error")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func TestImportExcel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"ID", "Type", "Width", "Height", "Radius", "Base", "Quantity"},
		{"panel", "rectangle", 300, 200, nil, nil, 2},
		{"flange", "circle", nil, nil, 75, nil, 1},
	}
	for r, row := range rows {
		for c, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("cannot save test workbook: %v", err)
	}
	f.Close()

	result := ImportExcel(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Catalog) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Catalog))
	}
	if result.Catalog[0].ID != "panel" || result.Catalog[0].Width != 300 {
		t.Errorf("unexpected first part: %+v", result.Catalog[0])
	}
	if result.Catalog[1].Kind != model.ShapeCircle || result.Catalog[1].Radius != 75 {
		t.Errorf("unexpected second part: %+v", result.Catalog[1])
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
