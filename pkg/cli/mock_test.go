package cli

import (
	"context"
	"errors"
	"strings"

	"lookupdoc/internal/domain"
	"lookupdoc/internal/engine"
	"lookupdoc/internal/storage"
)

// fakeSource returns the same small table for every location and records
// the locations it was asked about.
type fakeSource struct {
	locations []string
	failOn    string
	closed    bool
}

func (f *fakeSource) CountRows(_ context.Context, location string) (int64, error) {
	f.locations = append(f.locations, location)
	if f.failOn != "" && strings.Contains(location, "/"+f.failOn+".") {
		return 0, errors.New("IO Error: unable to open file")
	}
	return 2, nil
}

func (f *fakeSource) DescribeColumns(context.Context, string) ([]domain.Column, error) {
	return []domain.Column{{Name: "Code", Type: "VARCHAR"}, {Name: "Dom", Type: "VARCHAR"}}, nil
}

func (f *fakeSource) ScanRows(context.Context, string) ([]domain.Row, error) {
	return []domain.Row{{"A", "Alpha"}, {"B", "Beta"}}, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

type fakeLister struct {
	names []string
	loc   storage.Location
	ext   string
}

func (f *fakeLister) ListTables(_ context.Context, ext string) ([]string, error) {
	f.ext = ext
	return f.names, nil
}

// testDeps wires fakes and records the engine options the command asked for.
func testDeps(src *fakeSource, lister *fakeLister, gotOpts *engine.Options) deps {
	return deps{
		openSource: func(_ context.Context, opts engine.Options) (lookupSource, error) {
			if gotOpts != nil {
				*gotOpts = opts
			}
			return src, nil
		},
		newLister: func(loc storage.Location, _ string) tableLister {
			lister.loc = loc
			return lister
		},
	}
}
