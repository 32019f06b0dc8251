package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lookupdoc/internal/domain"
	"lookupdoc/internal/sqlbuild"
)

// Manifest is the on-disk YAML form of a catalog. Every field is optional;
// missing fields keep the built-in defaults.
//
//	title: PAD-US 4.1 Lookup Tables
//	base_url: https://s3-west.nrp-nautilus.io/public-padus/padus-4-1/lookup
//	extension: .parquet
//	tables:
//	  - Public_Access
//	  - Category
type Manifest struct {
	Title     string   `yaml:"title,omitempty"`
	BaseURL   string   `yaml:"base_url,omitempty"`
	Extension string   `yaml:"extension,omitempty"`
	Tables    []string `yaml:"tables,omitempty"`
}

// LoadManifest reads a manifest file and returns the resulting catalog.
func LoadManifest(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest YAML and applies it over the defaults.
func ParseManifest(data []byte) (*Catalog, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m.Apply(Default())
}

// Apply overlays the manifest on base and validates the result.
func (m *Manifest) Apply(base *Catalog) (*Catalog, error) {
	out := *base
	if m.Title != "" {
		out.Title = m.Title
	}
	if m.BaseURL != "" {
		out.BaseURL = m.BaseURL
	}
	if m.Extension != "" {
		out.Extension = NormalizeExtension(m.Extension)
	}
	if m.Tables != nil {
		tables, err := TablesFromNames(m.Tables)
		if err != nil {
			return nil, err
		}
		out.Tables = tables
	}
	return &out, nil
}

// NormalizeExtension returns ext with a leading dot, so "parquet" and
// ".parquet" name the same suffix.
func NormalizeExtension(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// TablesFromNames validates names and converts them to table descriptors,
// keeping their order.
func TablesFromNames(names []string) ([]domain.Table, error) {
	if len(names) == 0 {
		return nil, domain.ErrValidation("table list is empty")
	}
	seen := make(map[string]bool, len(names))
	tables := make([]domain.Table, 0, len(names))
	for _, name := range names {
		if err := sqlbuild.ValidateIdentifier(name); err != nil {
			return nil, domain.ErrValidation("invalid table name %q: %v", name, err)
		}
		if seen[name] {
			return nil, domain.ErrValidation("duplicate table name %q", name)
		}
		seen[name] = true
		tables = append(tables, domain.Table{Name: name})
	}
	return tables, nil
}
