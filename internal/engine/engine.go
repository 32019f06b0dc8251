// Package engine runs the lookup catalog's read-only queries against DuckDB.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"
	"golang.org/x/time/rate"

	"lookupdoc/internal/domain"
	"lookupdoc/internal/sqlbuild"
)

// Compile-time check.
var _ domain.LookupSource = (*Engine)(nil)

// Options controls how the DuckDB session is prepared.
type Options struct {
	// InstallExtensions runs INSTALL/LOAD httpfs before the first query.
	InstallExtensions bool
	// MaxMemory is passed to SET max_memory when non-empty (e.g. "2GB").
	MaxMemory string
	// Threads is passed to SET threads when positive.
	Threads int
	// RateLimit caps queries per second; zero or negative means unlimited.
	RateLimit float64
	Logger    *slog.Logger
}

// Engine wraps a single DuckDB session and answers count, describe and scan
// queries over remote lookup files.
type Engine struct {
	db      *sql.DB
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New wraps an existing DuckDB handle. The pool is pinned to one connection
// so every query shares the same session settings and loaded extensions.
func New(db *sql.DB, opts Options) *Engine {
	db.SetMaxOpenConns(1)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{db: db, logger: logger}
	if opts.RateLimit > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return e
}

// Open creates an in-memory DuckDB and prepares it according to opts.
func Open(ctx context.Context, opts Options) (*Engine, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	e := New(db, opts)
	if err := e.configure(ctx, opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}

// Close releases the DuckDB handle.
func (e *Engine) Close() error {
	return e.db.Close()
}

func (e *Engine) configure(ctx context.Context, opts Options) error {
	if opts.InstallExtensions {
		if err := InstallExtensions(ctx, e.db); err != nil {
			return err
		}
		e.logger.Debug("DuckDB extensions installed")
	}

	var settings [][2]string
	if opts.MaxMemory != "" {
		settings = append(settings, [2]string{"max_memory", opts.MaxMemory})
	}
	if opts.Threads > 0 {
		settings = append(settings, [2]string{"threads", strconv.Itoa(opts.Threads)})
	}
	for _, s := range settings {
		stmt, err := sqlbuild.SetOption(s[0], s[1])
		if err != nil {
			return fmt.Errorf("build setting: %w", err)
		}
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("set %s: %w", s[0], err)
		}
		e.logger.Debug("DuckDB setting applied", "name", s[0], "value", s[1])
	}
	return nil
}

// InstallExtensions installs and loads the DuckDB extensions needed to read
// files over HTTP(S) and S3.
func InstallExtensions(ctx context.Context, db *sql.DB) error {
	extensions := []string{
		"INSTALL httpfs; LOAD httpfs;",
	}
	for _, ext := range extensions {
		if _, err := db.ExecContext(ctx, ext); err != nil {
			return fmt.Errorf("extension setup (%s): %w", ext, err)
		}
	}
	return nil
}

// wait blocks until the throttle admits one more query.
func (e *Engine) wait(ctx context.Context) error {
	if e.limiter == nil {
		return nil
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

func (e *Engine) logQuery(query string, start time.Time, rows int) {
	e.logger.Debug("query completed", "sql", query, "rows", rows, "duration", time.Since(start))
}

// CountRows returns the number of rows in the file at location.
func (e *Engine) CountRows(ctx context.Context, location string) (int64, error) {
	query, err := sqlbuild.CountRows(location)
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	if err := e.wait(ctx); err != nil {
		return 0, err
	}

	start := time.Now()
	var n int64
	if err := e.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("execute query: %w", err)
	}
	e.logQuery(query, start, 1)
	return n, nil
}

// DescribeColumns returns the column names and types of the file at location,
// in the order DuckDB reports them.
func (e *Engine) DescribeColumns(ctx context.Context, location string) ([]domain.Column, error) {
	query, err := sqlbuild.DescribeColumns(location)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	records, err := scanAll(rows)
	if err != nil {
		return nil, err
	}

	columns := make([]domain.Column, 0, len(records))
	for _, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("describe returned %d fields, want at least 2", len(rec))
		}
		columns = append(columns, domain.Column{
			Name:    stringField(rec, 0),
			Type:    stringField(rec, 1),
			Null:    stringField(rec, 2),
			Key:     stringField(rec, 3),
			Default: stringField(rec, 4),
			Extra:   stringField(rec, 5),
		})
	}
	e.logQuery(query, start, len(columns))
	return columns, nil
}

// ScanRows returns every row of the file at location, ordered by its first column.
func (e *Engine) ScanRows(ctx context.Context, location string) ([]domain.Row, error) {
	query, err := sqlbuild.ScanAll(location)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	records, err := scanAll(rows)
	if err != nil {
		return nil, err
	}
	e.logQuery(query, start, len(records))
	return records, nil
}

// scanAll reads every remaining row into untyped values.
func scanAll(rows *sql.Rows) ([]domain.Row, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	isDate := make([]bool, len(types))
	for i, ct := range types {
		isDate[i] = strings.EqualFold(ct.DatabaseTypeName(), "DATE")
	}

	var out []domain.Row
	for rows.Next() {
		values := make([]interface{}, len(types))
		ptrs := make([]interface{}, len(types))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i := range values {
			values[i] = columnValue(values[i], isDate[i])
		}
		out = append(out, domain.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// columnValue maps driver values whose rendering depends on the column type
// onto domain types. DATE and TIMESTAMP both scan as time.Time.
func columnValue(v any, isDate bool) any {
	switch x := v.(type) {
	case time.Time:
		if isDate {
			return domain.Date{Time: x}
		}
	case duckdb.Decimal:
		return domain.Decimal{Unscaled: x.Value, Scale: int(x.Scale)}
	}
	return v
}

func stringField(rec domain.Row, i int) string {
	if i >= len(rec) || rec[i] == nil {
		return ""
	}
	switch v := rec[i].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
