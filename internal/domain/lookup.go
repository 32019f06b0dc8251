package domain

import (
	"context"
	"math/big"
	"time"
)

// Table identifies one lookup table by name.
type Table struct {
	Name string
}

// Column is one row of a DESCRIBE result.
// Only Name and Type are printed; the rest is carried for completeness.
type Column struct {
	Name    string
	Type    string
	Null    string
	Key     string
	Default string
	Extra   string
}

// Row is one record of a lookup table, in column order.
type Row []any

// Date is a value from a DATE column. Only the calendar day is meaningful.
type Date struct {
	time.Time
}

// Decimal is a fixed-point DECIMAL value equal to Unscaled * 10^-Scale.
type Decimal struct {
	Unscaled *big.Int
	Scale    int
}

// LookupSource is the analytical engine the catalog printer reads through.
// Every method takes the remote file location and is read-only.
type LookupSource interface {
	CountRows(ctx context.Context, location string) (int64, error)
	DescribeColumns(ctx context.Context, location string) ([]Column, error)
	ScanRows(ctx context.Context, location string) ([]Row, error)
}
