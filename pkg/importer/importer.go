// Package importer loads asset registers from XLSX workbooks. A YAML
// mapping names the sheets to read, the header of each column (with
// aliases), the column type and the natural key used to decide between
// insert and update. Storage is left to a Target.
package importer

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
	"gopkg.in/yaml.v3"
)

// DefaultMaxErrors is the error budget used when ImportOptions leaves it
// at zero.
const DefaultMaxErrors = 50

// ImportOptions defines the configuration for Excel import operations
type ImportOptions struct {
	MappingPath string // empty means DefaultMapping
	DryRun      bool
	MaxErrors   int
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

// maxSamples caps the row errors kept per sheet.
const maxSamples = 20

func (s *SheetSummary) fail(row int, msg string) {
	s.Errors++
	if len(s.Samples) < maxSamples {
		s.Samples = append(s.Samples, RowError{Sheet: s.Name, Row: row, Message: msg})
	}
}

// Values is one parsed row keyed by field name. TEXT columns hold string,
// INT int, DECIMAL decimal.Decimal and DATE time.Time.
type Values map[string]any

// String returns the field as text, "" when absent.
func (v Values) String(field string) (string, bool) {
	s, ok := v[field].(string)
	return s, ok
}

func (v Values) Int(field string) (int, bool) {
	n, ok := v[field].(int)
	return n, ok
}

func (v Values) Decimal(field string) (decimal.Decimal, bool) {
	d, ok := v[field].(decimal.Decimal)
	return d, ok
}

func (v Values) Time(field string) (time.Time, bool) {
	t, ok := v[field].(time.Time)
	return t, ok
}

// Target stores imported rows.
type Target interface {
	// Find returns the id of the record whose field equals value.
	Find(ctx context.Context, field, value string) (id int, found bool, err error)
	Insert(ctx context.Context, values Values) error
	Update(ctx context.Context, id int, values Values) error
}

// ImportFile opens path and imports it.
func ImportFile(ctx context.Context, target Target, path string, opts ImportOptions) (ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportSummary{DryRun: opts.DryRun}, errors.Annotatef(err, "opening %s", path)
	}
	defer f.Close()
	return ImportExcel(ctx, target, f, opts)
}

// ImportExcel processes an Excel workbook and stores its rows in target.
// Sheets without a mapping are ignored. The import stops with an error once
// more than MaxErrors rows have failed; the summary then covers the rows
// processed so far.
func ImportExcel(ctx context.Context, target Target, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{
		DryRun: opts.DryRun,
		Sheets: []SheetSummary{},
	}
	if opts.MaxErrors == 0 {
		opts.MaxErrors = DefaultMaxErrors
	}

	mapping, err := LoadMapping(opts.MappingPath)
	if err != nil {
		return summary, err
	}

	// xlsx.OpenBinary needs the whole workbook in memory
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, errors.Annotate(err, "reading workbook")
	}
	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, errors.Annotate(err, "opening workbook")
	}

	for _, sheet := range xlFile.Sheets {
		sheetConfig, exists := mapping.Sheets[sheet.Name]
		if !exists {
			continue
		}

		budget := opts.MaxErrors - summary.Errors
		sheetSummary, err := processSheet(ctx, target, sheet, sheetConfig, mapping.Defaults, opts.DryRun, budget)
		summary.Sheets = append(summary.Sheets, sheetSummary)
		summary.Inserted += sheetSummary.Inserted
		summary.Updated += sheetSummary.Updated
		summary.Skipped += sheetSummary.Skipped
		summary.Errors += sheetSummary.Errors
		if err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func processSheet(ctx context.Context, target Target, sheet *xlsx.Sheet, config SheetConfig, defaults map[string]string, dryRun bool, budget int) (SheetSummary, error) {
	summary := SheetSummary{Name: sheet.Name}
	if sheet.MaxRow == 0 {
		return summary, nil
	}

	columns, err := resolveHeader(sheet, config)
	if err != nil {
		summary.fail(1, err.Error())
		return summary, nil
	}

	for rowIdx := 1; rowIdx < sheet.MaxRow; rowIdx++ {
		if err := ctx.Err(); err != nil {
			return summary, errors.Annotatef(err, "importing sheet %s", sheet.Name)
		}
		rowNum := rowIdx + 1

		raw := make(map[string]string)
		for col, field := range columns {
			cell, err := sheet.Cell(rowIdx, col)
			if err != nil {
				continue
			}
			// "-" is how the export writes an empty optional value
			if v := strings.TrimSpace(cell.String()); v != "" && v != "-" {
				raw[field] = v
			}
		}
		if len(raw) == 0 {
			summary.Skipped++
			continue
		}

		values, err := buildValues(raw, config, defaults)
		if err == nil {
			var id int
			var found bool
			id, found, err = findExisting(ctx, target, values, config.NaturalKey)
			switch {
			case err != nil:
			case found && dryRun:
				summary.Updated++
			case found:
				if err = target.Update(ctx, id, values); err == nil {
					summary.Updated++
				}
			case dryRun:
				summary.Inserted++
			default:
				if err = target.Insert(ctx, values); err == nil {
					summary.Inserted++
				}
			}
		}
		if err != nil {
			summary.fail(rowNum, err.Error())
			if summary.Errors > budget {
				return summary, errors.Errorf("too many errors (%d), stopping import", summary.Errors)
			}
		}
	}
	return summary, nil
}

// resolveHeader maps column indexes of the first row to field names.
func resolveHeader(sheet *xlsx.Sheet, config SheetConfig) (map[int]string, error) {
	byHeader := make(map[string]string)
	for header, col := range config.Columns {
		byHeader[strings.ToUpper(header)] = col.Field
		for _, alias := range config.Aliases[header] {
			byHeader[strings.ToUpper(alias)] = col.Field
		}
	}

	columns := make(map[int]string)
	for col := 0; col < sheet.MaxCol; col++ {
		cell, err := sheet.Cell(0, col)
		if err != nil {
			return nil, errors.Annotate(err, "reading header row")
		}
		name := strings.ToUpper(strings.TrimSpace(cell.String()))
		if field, ok := byHeader[name]; ok {
			columns[col] = field
		}
	}
	if len(columns) == 0 {
		return nil, errors.NotFoundf("mapped columns in sheet %q", sheet.Name)
	}
	return columns, nil
}

func buildValues(raw map[string]string, config SheetConfig, defaults map[string]string) (Values, error) {
	types := make(map[string]string, len(config.Columns))
	for _, col := range config.Columns {
		types[col.Field] = strings.ToUpper(col.Type)
	}

	values := make(Values, len(raw)+len(defaults))
	for field, v := range defaults {
		if _, ok := raw[field]; !ok {
			raw[field] = v
		}
	}
	for field, v := range raw {
		parsed, err := parseValue(types[field], v)
		if err != nil {
			return nil, errors.Annotatef(err, "column %s", field)
		}
		values[field] = parsed
	}
	return values, nil
}

func parseValue(colType, v string) (any, error) {
	switch colType {
	case "", "TEXT":
		return v, nil
	case "INT":
		n, err := strconv.Atoi(strings.ReplaceAll(v, ",", ""))
		if err != nil {
			return nil, errors.NotValidf("integer %q", v)
		}
		return n, nil
	case "DECIMAL":
		d, err := decimal.NewFromString(cleanNumber(v))
		if err != nil {
			return nil, errors.NotValidf("amount %q", v)
		}
		return d, nil
	case "DATE":
		return parseDate(v)
	}
	return nil, errors.NotSupportedf("column type %q", colType)
}

func cleanNumber(v string) string {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "JPY"))
	v = strings.TrimPrefix(v, "¥")
	return strings.ReplaceAll(v, ",", "")
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01-02-06", "1/2/06", "2006-01-02 15:04:05"}

// parseDate accepts ISO and the common spreadsheet layouts as well as raw
// Excel serial numbers.
func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		return xlsx.TimeFromExcelTime(serial, false).UTC(), nil
	}
	return time.Time{}, errors.NotValidf("date %q", v)
}

// findExisting tries each natural key field in order; the first match wins.
func findExisting(ctx context.Context, target Target, values Values, naturalKey []string) (int, bool, error) {
	tried := false
	for _, field := range naturalKey {
		v, ok := values.String(field)
		if !ok || v == "" {
			continue
		}
		tried = true
		id, found, err := target.Find(ctx, field, v)
		if err != nil || found {
			return id, found, err
		}
	}
	if !tried && len(naturalKey) > 0 {
		return 0, false, errors.NotValidf("row without %s", strings.Join(naturalKey, " or "))
	}
	return 0, false, nil
}

// MappingConfig represents the YAML mapping configuration
type MappingConfig struct {
	Version  int                    `yaml:"version"`
	Defaults map[string]string      `yaml:"defaults"`
	Sheets   map[string]SheetConfig `yaml:"sheets"`
}

type SheetConfig struct {
	NaturalKey []string                `yaml:"natural_key"`
	Aliases    map[string][]string     `yaml:"aliases"`
	Columns    map[string]ColumnConfig `yaml:"columns"`
}

type ColumnConfig struct {
	Field string `yaml:"field"`
	Type  string `yaml:"type"`
}

// LoadMapping reads a YAML mapping from path. An empty path returns
// DefaultMapping.
func LoadMapping(path string) (*MappingConfig, error) {
	if path == "" {
		return DefaultMapping(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading mapping %s", path)
	}
	m, err := ParseMapping(data)
	if err != nil {
		return nil, errors.Annotatef(err, "mapping %s", path)
	}
	return m, nil
}

// ParseMapping decodes and checks a YAML mapping.
func ParseMapping(data []byte) (*MappingConfig, error) {
	var m MappingConfig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Annotate(err, "decoding mapping")
	}
	if len(m.Sheets) == 0 {
		return nil, errors.NotValidf("mapping without sheets")
	}
	for name, sheet := range m.Sheets {
		if len(sheet.Columns) == 0 {
			return nil, errors.NotValidf("sheet %q without columns", name)
		}
		for header, col := range sheet.Columns {
			if col.Field == "" {
				return nil, errors.NotValidf("column %q of sheet %q without field", header, name)
			}
			if _, err := parseValue(strings.ToUpper(col.Type), ""); errors.Is(err, errors.NotSupported) {
				return nil, errors.NotValidf("column %q of sheet %q: type %q", header, name, col.Type)
			}
		}
	}
	return &m, nil
}

// DefaultMapping reads the "Assets" sheet written by the asset export.
func DefaultMapping() *MappingConfig {
	return &MappingConfig{
		Version: 1,
		Sheets: map[string]SheetConfig{
			"Assets": {
				NaturalKey: []string{"asset_number", "serial_number"},
				Aliases: map[string][]string{
					"Asset Number":  {"Asset No", "Asset #"},
					"Serial Number": {"Serial", "S/N"},
					"Manufacturer":  {"Vendor", "Maker"},
				},
				Columns: map[string]ColumnConfig{
					"Asset Number":    {Field: "asset_number", Type: "TEXT"},
					"Name":            {Field: "name", Type: "TEXT"},
					"Type":            {Field: "type", Type: "TEXT"},
					"Status":          {Field: "status", Type: "TEXT"},
					"Department":      {Field: "department", Type: "TEXT"},
					"Location":        {Field: "location", Type: "TEXT"},
					"User":            {Field: "user", Type: "TEXT"},
					"Manufacturer":    {Field: "manufacturer", Type: "TEXT"},
					"Model":           {Field: "model", Type: "TEXT"},
					"Serial Number":   {Field: "serial_number", Type: "TEXT"},
					"Purchase Date":   {Field: "purchase_date", Type: "DATE"},
					"Purchase Price":  {Field: "purchase_price", Type: "DECIMAL"},
					"Current Value":   {Field: "current_value", Type: "DECIMAL"},
					"Warranty Expiry": {Field: "warranty_expiry", Type: "DATE"},
					"Useful Life":     {Field: "useful_life", Type: "INT"},
				},
			},
		},
	}
}
