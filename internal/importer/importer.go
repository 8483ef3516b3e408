// Package importer reads part catalogs from JSON, CSV, Excel, and DXF
// files. CSV import supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/NestCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Row-level problems
// accumulate in Errors/Warnings instead of aborting the whole file.
type ImportResult struct {
	Catalog  []model.PartSpec
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID       int
	Kind     int
	Width    int
	Height   int
	Radius   int
	Base     int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"id":       {"id", "name", "part", "part id", "label", "piece", "item"},
	"kind":     {"type", "kind", "shape", "shape type", "geometry"},
	"width":    {"width", "w"},
	"height":   {"height", "h"},
	"radius":   {"radius", "r", "rad"},
	"base":     {"base", "b"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected, or a
// default positional mapping (id, type, width, height, radius, base,
// quantity) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		ID: -1, Kind: -1, Width: -1, Height: -1, Radius: -1, Base: -1, Quantity: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "id":
					if mapping.ID == -1 {
						mapping.ID = i
					}
				case "kind":
					if mapping.Kind == -1 {
						mapping.Kind = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "radius":
					if mapping.Radius == -1 {
						mapping.Radius = i
					}
				case "base":
					if mapping.Base == -1 {
						mapping.Base = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			ID: 0, Kind: 1, Width: 2, Height: 3, Radius: 4, Base: 5, Quantity: 6,
		}, false
	}

	return mapping, true
}

// parseShapeKind converts a shape type string to a model.ShapeKind.
func parseShapeKind(s string) (model.ShapeKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return model.ShapeRectangle, true
	case "circle":
		return model.ShapeCircle, true
	case "triangle", "tri":
		return model.ShapeTriangle, true
	default:
		return "", false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDim parses an optional positive dimension cell. Empty cells return 0
// with no error so that shape-irrelevant columns may be left blank.
func parseDim(row []string, idx int, field, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return v, ""
}

// parseRow extracts a PartSpec from a row using the given column mapping.
// Returns the spec, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (model.PartSpec, string, string) {
	id := getCell(row, mapping.ID)
	if id == "" {
		id = fmt.Sprintf("part_%d", partCount+1)
	}

	kindStr := getCell(row, mapping.Kind)
	if kindStr == "" {
		return model.PartSpec{}, fmt.Sprintf("%s: Missing shape type", rowLabel), ""
	}
	kind, ok := parseShapeKind(kindStr)
	if !ok {
		return model.PartSpec{}, fmt.Sprintf("%s: Unsupported shape type '%s'", rowLabel, kindStr), ""
	}

	spec := model.PartSpec{ID: id, Kind: kind, Quantity: 1}

	var errMsg string
	if spec.Width, errMsg = parseDim(row, mapping.Width, "width", rowLabel); errMsg != "" {
		return model.PartSpec{}, errMsg, ""
	}
	if spec.Height, errMsg = parseDim(row, mapping.Height, "height", rowLabel); errMsg != "" {
		return model.PartSpec{}, errMsg, ""
	}
	if spec.Radius, errMsg = parseDim(row, mapping.Radius, "radius", rowLabel); errMsg != "" {
		return model.PartSpec{}, errMsg, ""
	}
	if spec.Base, errMsg = parseDim(row, mapping.Base, "base", rowLabel); errMsg != "" {
		return model.PartSpec{}, errMsg, ""
	}

	var warning string
	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			warning = fmt.Sprintf("%s: Invalid quantity '%s', defaulting to 1", rowLabel, qtyStr)
		} else {
			spec.Quantity = qty
		}
	}

	if err := spec.Validate(); err != nil {
		return model.PartSpec{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	return spec, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportJSON imports a catalog from a JSON array of part specs, the format
// the optimizer's project files and sample catalogs use.
func ImportJSON(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	var catalog []model.PartSpec
	if err := json.Unmarshal(data, &catalog); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse JSON: %v", err))
		return result
	}

	for i, spec := range catalog {
		if spec.Quantity == 0 {
			spec.Quantity = 1
		}
		if err := spec.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Entry %d: %v", i+1, err))
			continue
		}
		result.Catalog = append(result.Catalog, spec)
	}

	return result
}

// ImportCSV imports a catalog from a CSV file. It automatically detects the
// delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a catalog from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a catalog from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Kind == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Type")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		spec, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Catalog))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Catalog = append(result.Catalog, spec)
	}

	return result
}
