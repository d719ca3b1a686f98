package importer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed mapping/assets.yaml
var defaultMapping []byte

// MappingConfig represents the YAML mapping configuration
type MappingConfig struct {
	Version  int                    `yaml:"version"`
	Defaults map[string]string      `yaml:"defaults"`
	Sheets   map[string]SheetConfig `yaml:"sheets"`
}

type SheetConfig struct {
	NaturalKey string                  `yaml:"natural_key"`
	Aliases    map[string][]string     `yaml:"aliases"`
	Columns    map[string]ColumnConfig `yaml:"columns"`
}

// ColumnConfig maps one spreadsheet header onto an asset field. A type
// ending in "?" marks the column optional.
type ColumnConfig struct {
	Field string `yaml:"field"`
	Type  string `yaml:"type"`
}

// LoadMapping reads a mapping file, or the embedded default when path is empty.
func LoadMapping(path string) (*MappingConfig, error) {
	data := defaultMapping
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read mapping %s: %w", path, err)
		}
	}
	return ParseMapping(data)
}

// ParseMapping decodes and checks a mapping document.
func ParseMapping(data []byte) (*MappingConfig, error) {
	var m MappingConfig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}
	if len(m.Sheets) == 0 {
		return nil, fmt.Errorf("mapping declares no sheets")
	}
	for name, sheet := range m.Sheets {
		if sheet.NaturalKey != "" && sheet.NaturalKey != "serial_number" {
			return nil, fmt.Errorf("sheet %s: unsupported natural key %q", name, sheet.NaturalKey)
		}
		for header, col := range sheet.Columns {
			want, ok := fieldTypes[col.Field]
			if !ok {
				return nil, fmt.Errorf("sheet %s: column %s maps to unknown field %q", name, header, col.Field)
			}
			if got := canonicalType(col.Type); got != want {
				return nil, fmt.Errorf("sheet %s: column %s has type %s, field %s needs %s", name, header, col.Type, col.Field, want)
			}
		}
	}
	return &m, nil
}

// headerIndex resolves spreadsheet headers (case-insensitive, aliases
// included) to the configured column names.
func (c SheetConfig) headerIndex() map[string]string {
	idx := make(map[string]string)
	for column := range c.Columns {
		idx[strings.ToUpper(column)] = column
		for _, alias := range c.Aliases[column] {
			idx[strings.ToUpper(alias)] = column
		}
	}
	return idx
}
