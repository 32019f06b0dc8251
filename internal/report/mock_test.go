package report

import (
	"context"
	"errors"
	"strings"

	"lookupdoc/internal/domain"
)

// fakeTable is what the fake source returns for one location.
type fakeTable struct {
	count   int64
	columns []domain.Column
	rows    []domain.Row
}

// fakeSource answers from an in-memory map keyed by table name (the last
// path element of the location without extension). failAt makes the given
// step fail for the given table.
type fakeSource struct {
	tables map[string]fakeTable
	failAt map[string]string
	calls  []string
}

var errEngine = errors.New("HTTP Error: unable to connect")

func tableName(location string) string {
	name := location[strings.LastIndex(location, "/")+1:]
	return strings.TrimSuffix(name, ".parquet")
}

func (f *fakeSource) record(step, location string) (fakeTable, error) {
	name := tableName(location)
	f.calls = append(f.calls, step+":"+name)
	if f.failAt[name] == step {
		return fakeTable{}, errEngine
	}
	return f.tables[name], nil
}

func (f *fakeSource) CountRows(_ context.Context, location string) (int64, error) {
	t, err := f.record(StepCount, location)
	return t.count, err
}

func (f *fakeSource) DescribeColumns(_ context.Context, location string) ([]domain.Column, error) {
	t, err := f.record(StepDescribe, location)
	return t.columns, err
}

func (f *fakeSource) ScanRows(_ context.Context, location string) ([]domain.Row, error) {
	t, err := f.record(StepScan, location)
	return t.rows, err
}
