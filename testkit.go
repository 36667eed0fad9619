package herokupg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotMocked is returned when a TestDB method is called without a
// corresponding Func field set.
var ErrNotMocked = errors.New("herokupg.TestDB: method not mocked — set the corresponding Func field")

// TestDB is an in-memory DB double for unit tests. Each method delegates to
// its Func field when that field is set. Unset query and transaction methods
// fail with ErrNotMocked. Unset Ping and Close succeed, so health checks and
// shutdown paths work against a zero value.
type TestDB struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	BeginFunc    func(ctx context.Context) (pgx.Tx, error)
	BeginTxFunc  func(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	PingFunc     func(ctx context.Context) error
	CloseFunc    func(ctx context.Context) error
}

var _ DB = (*TestDB)(nil)

func (t *TestDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.ExecFunc != nil {
		return t.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, ErrNotMocked
}

func (t *TestDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if t.QueryFunc != nil {
		return t.QueryFunc(ctx, sql, args...)
	}
	return &ErrRows{ErrValue: ErrNotMocked}, ErrNotMocked
}

func (t *TestDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if t.QueryRowFunc != nil {
		return t.QueryRowFunc(ctx, sql, args...)
	}
	return &ErrRow{Err: ErrNotMocked}
}

func (t *TestDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if t.BeginFunc != nil {
		return t.BeginFunc(ctx)
	}
	return nil, ErrNotMocked
}

func (t *TestDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	if t.BeginTxFunc != nil {
		return t.BeginTxFunc(ctx, txOptions)
	}
	return nil, ErrNotMocked
}

func (t *TestDB) Ping(ctx context.Context) error {
	if t.PingFunc != nil {
		return t.PingFunc(ctx)
	}
	return nil
}

func (t *TestDB) Close(ctx context.Context) error {
	if t.CloseFunc != nil {
		return t.CloseFunc(ctx)
	}
	return nil
}

// ErrRow implements pgx.Row. Its Scan always returns Err.
type ErrRow struct {
	Err error
}

func (r *ErrRow) Scan(dest ...any) error {
	return r.Err
}

// NewRow returns a pgx.Row holding one row of values. Scan copies the values
// into the targets in order; it can be called any number of times.
func NewRow(values ...any) pgx.Row {
	return &singleRow{vals: values}
}

type singleRow struct {
	vals []any
}

func (r *singleRow) Scan(dest ...any) error {
	return scanRow("herokupg.NewRow", dest, r.vals)
}

// ErrRows implements pgx.Rows and always returns the configured error.
type ErrRows struct {
	// ErrValue is returned by Err(), Scan(), and Values().
	ErrValue error
}

func (r *ErrRows) Close()                                       {}
func (r *ErrRows) Err() error                                   { return r.ErrValue }
func (r *ErrRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *ErrRows) Conn() *pgx.Conn                              { return nil }
func (r *ErrRows) RawValues() [][]byte                          { return nil }
func (r *ErrRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *ErrRows) Next() bool                                   { return false }
func (r *ErrRows) Values() ([]any, error)                       { return nil, r.ErrValue }

func (r *ErrRows) Scan(dest ...any) error {
	if r.ErrValue != nil {
		return r.ErrValue
	}
	return errors.New("herokupg.ErrRows: ErrValue not set")
}

// RowsBuilder accumulates in-memory rows for a pgx.Rows cursor.
type RowsBuilder struct {
	columns []string
	rows    [][]any
}

// NewRows starts a RowsBuilder over the named columns.
func NewRows(columns []string) *RowsBuilder {
	return &RowsBuilder{columns: columns}
}

// AddRow appends one row and returns the builder for chaining. It panics when
// the value count does not match the column count.
func (b *RowsBuilder) AddRow(values ...any) *RowsBuilder {
	if len(values) != len(b.columns) {
		panic(fmt.Sprintf("herokupg.RowsBuilder: AddRow got %d values for %d columns", len(values), len(b.columns)))
	}
	b.rows = append(b.rows, values)
	return b
}

// Build returns a pgx.Rows cursor over the accumulated rows. The cursor
// starts before the first row, so Next must be called before Scan, matching
// the real driver.
func (b *RowsBuilder) Build() pgx.Rows {
	return &memRows{cols: b.columns, rows: b.rows, cur: -1}
}

type memRows struct {
	cols    []string
	rows    [][]any
	cur     int
	done    bool
	lastErr error
}

func (r *memRows) Close() {
	r.done = true
}

func (r *memRows) Err() error {
	return r.lastErr
}

func (r *memRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (r *memRows) Conn() *pgx.Conn {
	return nil
}

func (r *memRows) RawValues() [][]byte {
	return nil
}

func (r *memRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.cols))
	for i, col := range r.cols {
		fields[i] = pgconn.FieldDescription{Name: col}
	}
	return fields
}

func (r *memRows) Next() bool {
	if r.done {
		return false
	}

	r.cur++
	if r.cur >= len(r.rows) {
		r.done = true
		return false
	}
	return true
}

func (r *memRows) Scan(dest ...any) error {
	if r.cur < 0 || r.cur >= len(r.rows) {
		return pgx.ErrNoRows
	}

	if err := scanRow("herokupg.RowsBuilder", dest, r.rows[r.cur]); err != nil {
		r.lastErr = err
		return err
	}
	return nil
}

func (r *memRows) Values() ([]any, error) {
	if r.cur < 0 || r.cur >= len(r.rows) {
		return nil, pgx.ErrNoRows
	}
	return r.rows[r.cur], nil
}

// scanRow copies one row of values into the scan targets. label names the
// constructor the row came from, so mismatch errors point at the test fixture
// rather than at an internal type.
func scanRow(label string, dest, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("%s: %d scan targets for %d columns", label, len(dest), len(vals))
	}

	for i, val := range vals {
		if err := storeValue(dest[i], val); err != nil {
			return fmt.Errorf("%s: column %d: %w", label, i, err)
		}
	}

	return nil
}

// storeValue assigns a fixture value to a single scan target. The supported
// targets cover what this module's own queries scan; tests that need an exact
// driver type should use *any and convert themselves.
func storeValue(dest, val any) error {
	switch d := dest.(type) {
	case *string:
		v, ok := val.(string)
		if !ok {
			return scanMismatch(val, dest)
		}
		*d = v
	case *int:
		v, ok := val.(int)
		if !ok {
			return scanMismatch(val, dest)
		}
		*d = v
	case *int32:
		v, ok := val.(int32)
		if !ok {
			return scanMismatch(val, dest)
		}
		*d = v
	case *int64:
		v, ok := val.(int64)
		if !ok {
			return scanMismatch(val, dest)
		}
		*d = v
	case *bool:
		v, ok := val.(bool)
		if !ok {
			return scanMismatch(val, dest)
		}
		*d = v
	case *float64:
		v, ok := val.(float64)
		if !ok {
			return scanMismatch(val, dest)
		}
		*d = v
	case *time.Time:
		v, ok := val.(time.Time)
		if !ok {
			return scanMismatch(val, dest)
		}
		*d = v
	case *[]byte:
		// A nil fixture value scans as NULL, matching pgx's BYTEA behavior.
		switch v := val.(type) {
		case nil:
			*d = nil
		case []byte:
			*d = v
		default:
			return scanMismatch(val, dest)
		}
	case *any:
		*d = val
	default:
		return fmt.Errorf("unsupported scan target %T", dest)
	}

	return nil
}

func scanMismatch(val, dest any) error {
	return fmt.Errorf("cannot scan %T into %T", val, dest)
}
