package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookupdoc/internal/domain"
)

func TestParseManifest(t *testing.T) {
	t.Run("empty_keeps_defaults", func(t *testing.T) {
		c, err := ParseManifest([]byte(""))
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("overrides", func(t *testing.T) {
		c, err := ParseManifest([]byte(`
title: Local Lookups
base_url: /srv/lookup
extension: csv
tables:
  - Category
  - GAP_Status
`))
		require.NoError(t, err)
		assert.Equal(t, "Local Lookups", c.Title)
		assert.Equal(t, "/srv/lookup", c.BaseURL)
		assert.Equal(t, []domain.Table{{Name: "Category"}, {Name: "GAP_Status"}}, c.Tables)
		assert.Equal(t, ".csv", c.Extension)
		assert.Equal(t, "/srv/lookup/Category.csv", c.Location(c.Tables[0]))
	})

	t.Run("extension_dot_added_once", func(t *testing.T) {
		for _, ext := range []string{"parquet", ".parquet"} {
			c, err := ParseManifest([]byte("extension: " + ext + "\n"))
			require.NoError(t, err)
			assert.Equal(t, ".parquet", c.Extension, ext)
		}
	})

	t.Run("partial_override", func(t *testing.T) {
		c, err := ParseManifest([]byte("base_url: https://mirror.example.com/lookup\n"))
		require.NoError(t, err)
		assert.Equal(t, DefaultTitle, c.Title)
		assert.Len(t, c.Tables, len(DefaultTableNames))
		assert.Equal(t, "https://mirror.example.com/lookup/Public_Access.parquet", c.Location(c.Tables[0]))
	})

	t.Run("invalid_yaml", func(t *testing.T) {
		_, err := ParseManifest([]byte("tables: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse manifest")
	})

	t.Run("empty_table_list", func(t *testing.T) {
		_, err := ParseManifest([]byte("tables: []\n"))
		require.Error(t, err)
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, err.Error(), "table list is empty")
	})

	t.Run("duplicate_table", func(t *testing.T) {
		_, err := ParseManifest([]byte("tables: [Category, Category]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate table name "Category"`)
	})

	t.Run("bad_table_name", func(t *testing.T) {
		_, err := ParseManifest([]byte("tables: [\"../secret\"]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid table name")
	})
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "csv", want: ".csv"},
		{in: ".csv", want: ".csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeExtension(tt.in), tt.in)
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tables: [Agency_Name]\n"), 0o600))

	c, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Table{{Name: "Agency_Name"}}, c.Tables)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
}
