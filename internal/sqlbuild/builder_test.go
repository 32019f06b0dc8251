package sqlbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoryURL = "https://s3-west.nrp-nautilus.io/public-padus/padus-4-1/lookup/Category.parquet"

func TestReadFile(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
		wantErr  string
	}{
		{name: "parquet", location: categoryURL, want: "read_parquet('" + categoryURL + "')"},
		{name: "uppercase_extension", location: "/tmp/x.PARQUET", want: "read_parquet('/tmp/x.PARQUET')"},
		{name: "csv", location: "/tmp/x.csv", want: "read_csv('/tmp/x.csv')"},
		{name: "json", location: "/tmp/x.json", want: "read_json('/tmp/x.json')"},
		{name: "quote_escaped", location: "/tmp/it's.parquet", want: "read_parquet('/tmp/it''s.parquet')"},
		{name: "empty", location: "", wantErr: "location is required"},
		{name: "unsupported", location: "/tmp/x.xlsx", wantErr: "unsupported file extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.location)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryBuilders(t *testing.T) {
	read := "read_parquet('" + categoryURL + "')"

	count, err := CountRows(categoryURL)
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM "+read, count)

	describe, err := DescribeColumns(categoryURL)
	require.NoError(t, err)
	assert.Equal(t, "DESCRIBE SELECT * FROM "+read, describe)

	scan, err := ScanAll(categoryURL)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM "+read+" ORDER BY 1", scan)
}

func TestQueryBuilders_EmptyLocation(t *testing.T) {
	_, err := CountRows("")
	require.Error(t, err)
	_, err = DescribeColumns("")
	require.Error(t, err)
	_, err = ScanAll("")
	require.Error(t, err)
}

func TestSetOption(t *testing.T) {
	got, err := SetOption("max_memory", "4GB")
	require.NoError(t, err)
	assert.Equal(t, "SET max_memory = '4GB'", got)

	got, err = SetOption("threads", "2")
	require.NoError(t, err)
	assert.Equal(t, "SET threads = '2'", got)

	_, err = SetOption("max memory", "4GB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid setting name")

	_, err = SetOption("threads", "")
	require.Error(t, err)
}
