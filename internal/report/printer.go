// Package report renders the Markdown catalog of lookup tables.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"lookupdoc/internal/catalog"
	"lookupdoc/internal/domain"
)

// Query steps, used to label failures.
const (
	StepCount    = "count"
	StepDescribe = "describe"
	StepScan     = "scan"
)

// Printer documents every table of a catalog by issuing a count, a describe
// and a full scan per table and writing one Markdown section each.
type Printer struct {
	source domain.LookupSource
	out    io.Writer
	logger *slog.Logger
}

// NewPrinter creates a Printer that reads through source and writes to out.
func NewPrinter(source domain.LookupSource, out io.Writer, logger *slog.Logger) *Printer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Printer{source: source, out: out, logger: logger}
}

// Print writes the title and then one section per table, in catalog order.
// The first failing query stops the run; sections already written stay
// written and nothing is emitted for later tables.
func (p *Printer) Print(ctx context.Context, cat *catalog.Catalog) error {
	if cat.Title != "" {
		if _, err := fmt.Fprintf(p.out, "# %s\n\n", cat.Title); err != nil {
			return fmt.Errorf("write title: %w", err)
		}
	}

	for i, table := range cat.Tables {
		if err := p.printTable(ctx, cat, table); err != nil {
			p.logger.Error("catalog aborted", "table", table.Name, "position", i+1, "total", len(cat.Tables), "error", err)
			return err
		}
	}
	p.logger.Info("catalog complete", "tables", len(cat.Tables))
	return nil
}

// printTable runs the three queries for one table. The section is rendered
// into a buffer and written only once every query has succeeded.
func (p *Printer) printTable(ctx context.Context, cat *catalog.Catalog, table domain.Table) error {
	location := cat.Location(table)
	start := time.Now()

	count, err := p.source.CountRows(ctx, location)
	if err != nil {
		return &domain.QueryError{Table: table.Name, Step: StepCount, Err: err}
	}

	columns, err := p.source.DescribeColumns(ctx, location)
	if err != nil {
		return &domain.QueryError{Table: table.Name, Step: StepDescribe, Err: err}
	}

	rows, err := p.source.ScanRows(ctx, location)
	if err != nil {
		return &domain.QueryError{Table: table.Name, Step: StepScan, Err: err}
	}

	if int64(len(rows)) != count {
		p.logger.Warn("row count differs from scanned rows",
			"table", table.Name, "count", count, "scanned", len(rows))
	}

	var buf bytes.Buffer
	WriteSection(&buf, table.Name, count, columns, rows)
	if _, err := p.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write section %s: %w", table.Name, err)
	}

	p.logger.Info("table documented",
		"table", table.Name,
		"location", location,
		"rows", count,
		"columns", len(columns),
		"duration", time.Since(start))
	return nil
}
