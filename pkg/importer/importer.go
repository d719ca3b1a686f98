// Package importer loads assets from .xlsx workbooks into the store.
package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"devicehub-api/internal/models"
	"devicehub-api/internal/store"

	"github.com/tealeg/xlsx/v3"
)

// ImportOptions defines the configuration for Excel import operations
type ImportOptions struct {
	MappingPath string // empty selects the embedded default mapping
	DryRun      bool
	MaxErrors   int // default 50
}

// RowError represents an error that occurred during row processing
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SheetSummary contains the import statistics for a single sheet
type SheetSummary struct {
	Name     string     `json:"name"`
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   int        `json:"errors"`
	Samples  []RowError `json:"error_samples,omitempty"`
}

// ImportSummary contains the overall import statistics
type ImportSummary struct {
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Skipped  int            `json:"skipped"`
	Errors   int            `json:"errors"`
	Sheets   []SheetSummary `json:"sheets"`
	DryRun   bool           `json:"dry_run"`
}

const maxSamples = 20

// ImportExcel reads a workbook and upserts one asset per data row, keyed by
// serial number. Writes go through the store, so every integrity rule
// applies; a rejected row is counted and reported, not fatal.
func ImportExcel(ctx context.Context, st *store.Store, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{
		DryRun: opts.DryRun,
		Sheets: []SheetSummary{},
	}
	if opts.MaxErrors == 0 {
		opts.MaxErrors = 50
	}

	mapping, err := LoadMapping(opts.MappingPath)
	if err != nil {
		return summary, fmt.Errorf("failed to load mapping config: %w", err)
	}

	// xlsx needs random access, so the upload is buffered.
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, fmt.Errorf("failed to read Excel file: %w", err)
	}
	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, fmt.Errorf("failed to open Excel file: %w", err)
	}

	for _, sheet := range xlFile.Sheets {
		config, ok := mapping.Sheets[sheet.Name]
		if !ok {
			continue
		}

		ss := processSheet(ctx, st, sheet, config, mapping.Defaults, opts)
		summary.Sheets = append(summary.Sheets, ss)
		summary.Inserted += ss.Inserted
		summary.Updated += ss.Updated
		summary.Skipped += ss.Skipped
		summary.Errors += ss.Errors

		if summary.Errors > opts.MaxErrors {
			return summary, fmt.Errorf("too many errors (%d), stopping import", summary.Errors)
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func processSheet(ctx context.Context, st *store.Store, sheet *xlsx.Sheet, config SheetConfig, defaults map[string]string, opts ImportOptions) SheetSummary {
	summary := SheetSummary{Name: sheet.Name}
	fail := func(row int, msg string) {
		summary.Errors++
		if len(summary.Samples) < maxSamples {
			summary.Samples = append(summary.Samples, RowError{Sheet: sheet.Name, Row: row + 1, Message: msg})
		}
	}

	if sheet.MaxRow == 0 {
		return summary
	}

	// Header row: column index -> configured column name.
	byHeader := config.headerIndex()
	columns := make(map[int]string)
	for col := 0; col < sheet.MaxCol; col++ {
		name := cellText(sheet, 0, col)
		if name == "" {
			continue
		}
		if column, ok := byHeader[strings.ToUpper(name)]; ok {
			columns[col] = column
		}
	}
	for column, cc := range config.Columns {
		if strings.HasSuffix(cc.Type, "?") || hasColumn(columns, column) {
			continue
		}
		fail(0, fmt.Sprintf("required column %q is missing", column))
		return summary
	}

	for row := 1; row < sheet.MaxRow; row++ {
		values := make(map[string]string)
		for col, column := range columns {
			if v := cellText(sheet, row, col); v != "" {
				values[column] = v
			}
		}
		if len(values) == 0 {
			summary.Skipped++
			continue
		}

		fields, err := parseRow(values, config)
		if err != nil {
			fail(row, err.Error())
			continue
		}
		serial, _ := fields["serial_number"].(string)
		if serial == "" {
			fail(row, "serial_number is required")
			continue
		}

		existing, found, err := st.AssetBySerial(ctx, serial)
		if err != nil {
			fail(row, err.Error())
			continue
		}

		if found {
			applyFields(&existing, fields)
			if !opts.DryRun {
				if _, err := st.Assets.Update(ctx, existing.ID, existing); err != nil {
					fail(row, err.Error())
					continue
				}
			}
			summary.Updated++
			continue
		}

		var asset models.Asset
		applyFields(&asset, defaultFields(defaults))
		applyFields(&asset, fields)
		if !opts.DryRun {
			if _, err := st.Assets.Create(ctx, asset); err != nil {
				fail(row, err.Error())
				continue
			}
		}
		summary.Inserted++
	}
	return summary
}

func hasColumn(columns map[int]string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

func cellText(sheet *xlsx.Sheet, row, col int) string {
	cell, err := sheet.Cell(row, col)
	if err != nil || cell == nil {
		return ""
	}
	return strings.TrimSpace(cell.String())
}

// parseRow converts the raw cell texts of one row into typed field values.
func parseRow(values map[string]string, config SheetConfig) (map[string]any, error) {
	fields := make(map[string]any, len(values))
	for column, raw := range values {
		cc := config.Columns[column]
		v, err := parseValue(raw, cc.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %v", column, err)
		}
		fields[cc.Field] = v
	}
	return fields, nil
}

func defaultFields(defaults map[string]string) map[string]any {
	out := make(map[string]any, len(defaults))
	for field, v := range defaults {
		if fieldTypes[field] == "TEXT" {
			out[field] = v
		}
	}
	return out
}

func parseValue(value, valueType string) (any, error) {
	switch canonicalType(valueType) {
	case "TEXT":
		return value, nil
	case "INT":
		return strconv.ParseInt(value, 10, 64)
	case "FLOAT":
		return strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	case "DATE":
		formats := []string{
			"2006-01-02",
			"2006-01-02 15:04:05",
			time.RFC3339,
			"01/02/2006",
			"01/02/2006 15:04:05",
			"02/01/2006",
		}
		for _, format := range formats {
			if t, err := time.ParseInLocation(format, value, time.UTC); err == nil {
				return t, nil
			}
		}
		// Unformatted date cells come through as Excel serial numbers.
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return xlsx.TimeFromExcelTime(f, false).UTC(), nil
		}
		return nil, fmt.Errorf("invalid date format: %s", value)
	}
	return nil, fmt.Errorf("unsupported column type %q", valueType)
}

// fieldTypes lists the asset fields a column can target and the cell type
// each one takes.
var fieldTypes = map[string]string{
	"name":             "TEXT",
	"description":      "TEXT",
	"manufacturer":     "TEXT",
	"model":            "TEXT",
	"serial_number":    "TEXT",
	"location":         "TEXT",
	"status":           "TEXT",
	"acquisition_date": "DATE",
	"value":            "FLOAT",
	"responsible_id":   "INT",
	"department_id":    "INT",
	"supplier_id":      "INT",
}

func canonicalType(t string) string {
	switch strings.ToUpper(strings.TrimSuffix(t, "?")) {
	case "", "TEXT", "STRING":
		return "TEXT"
	case "INT":
		return "INT"
	case "FLOAT":
		return "FLOAT"
	case "DATE", "TIMESTAMP":
		return "DATE"
	}
	return t
}

// applyFields copies parsed values onto a. Fields absent from the row keep
// their current value.
func applyFields(a *models.Asset, fields map[string]any) {
	for field, v := range fields {
		switch field {
		case "name":
			a.Name = v.(string)
		case "description":
			a.Description = v.(string)
		case "manufacturer":
			a.Manufacturer = v.(string)
		case "model":
			a.Model = v.(string)
		case "serial_number":
			a.SerialNumber = v.(string)
		case "location":
			a.Location = v.(string)
		case "status":
			a.Status = v.(string)
		case "acquisition_date":
			a.AcquisitionDate = v.(time.Time)
		case "value":
			a.Value = v.(float64)
		case "responsible_id":
			id := v.(int64)
			a.ResponsibleID = &id
		case "department_id":
			id := v.(int64)
			a.DepartmentID = &id
		case "supplier_id":
			id := v.(int64)
			a.SupplierID = &id
		}
	}
}
