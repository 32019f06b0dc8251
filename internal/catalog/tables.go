// Package catalog holds the set of lookup tables to document and where they live.
package catalog

import (
	"strings"

	"lookupdoc/internal/domain"
)

const (
	// DefaultTitle is the level-1 heading printed at the top of the report.
	DefaultTitle = "PAD-US 4.1 Lookup Tables"

	// DefaultBaseURL is the public object-store prefix holding the lookup files.
	DefaultBaseURL = "https://s3-west.nrp-nautilus.io/public-padus/padus-4-1/lookup"

	// DefaultExtension is appended to every table name to form its file name.
	DefaultExtension = ".parquet"
)

// DefaultTableNames lists the PAD-US lookup tables in report order.
var DefaultTableNames = []string{
	"Public_Access",
	"Category",
	"Designation_Type",
	"GAP_Status",
	"IUCN_Category",
	"Agency_Name",
	"Agency_Type",
	"State_Name",
}

// Catalog is an ordered list of lookup tables plus the prefix they are read from.
type Catalog struct {
	Title     string
	BaseURL   string
	Extension string
	Tables    []domain.Table
}

// Default returns the built-in PAD-US catalog.
func Default() *Catalog {
	tables := make([]domain.Table, len(DefaultTableNames))
	for i, name := range DefaultTableNames {
		tables[i] = domain.Table{Name: name}
	}
	return &Catalog{
		Title:     DefaultTitle,
		BaseURL:   DefaultBaseURL,
		Extension: DefaultExtension,
		Tables:    tables,
	}
}

// Location returns the remote file location for table t.
func (c *Catalog) Location(t domain.Table) string {
	return Location(c.BaseURL, t.Name, c.Extension)
}

// Location joins base, table name and extension into a file location.
// A trailing slash on base is tolerated; ext is appended as given.
func Location(base, table, ext string) string {
	return strings.TrimRight(base, "/") + "/" + table + ext
}
