// Package sqlbuild builds the read-only DuckDB statements used to inspect remote lookup files.
package sqlbuild

import (
	"fmt"
	"path"
	"strings"
)

// readFunction picks the DuckDB table function for a file location based on its extension.
func readFunction(location string) (string, error) {
	ext := strings.ToLower(path.Ext(location))
	switch ext {
	case ".parquet", "":
		return "read_parquet", nil
	case ".csv":
		return "read_csv", nil
	case ".json", ".ndjson":
		return "read_json", nil
	default:
		return "", fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// ReadFile returns the table-function call that reads location, e.g.
//
//	read_parquet('https://host/bucket/Category.parquet')
func ReadFile(location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("location is required")
	}
	fn, err := readFunction(location)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", fn, QuoteLiteral(location)), nil
}

// CountRows returns SELECT COUNT(*) FROM <read>.
func CountRows(location string) (string, error) {
	from, err := ReadFile(location)
	if err != nil {
		return "", err
	}
	return "SELECT COUNT(*) FROM " + from, nil
}

// DescribeColumns returns DESCRIBE SELECT * FROM <read>.
// DuckDB answers with column_name, column_type, null, key, default, extra.
func DescribeColumns(location string) (string, error) {
	from, err := ReadFile(location)
	if err != nil {
		return "", err
	}
	return "DESCRIBE SELECT * FROM " + from, nil
}

// ScanAll returns SELECT * FROM <read> ORDER BY 1.
func ScanAll(location string) (string, error) {
	from, err := ReadFile(location)
	if err != nil {
		return "", err
	}
	return "SELECT * FROM " + from + " ORDER BY 1", nil
}

// SetOption returns SET <name> = '<value>'.
func SetOption(name, value string) (string, error) {
	if err := ValidateIdentifier(name); err != nil {
		return "", fmt.Errorf("invalid setting name: %w", err)
	}
	if value == "" {
		return "", fmt.Errorf("value for %s is required", name)
	}
	return fmt.Sprintf("SET %s = %s", name, QuoteLiteral(value)), nil
}
