package db_test

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow is a pgx.Row over fixed values
type fakeRow struct {
	values []interface{}
	err    error
}

func (r *fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

// fakeRows is a pgx.Rows over fixed records
type fakeRows struct {
	records [][]interface{}
	pos     int
	err     error
	closed  bool
}

func newFakeRows(records ...[]interface{}) *fakeRows {
	return &fakeRows{records: records, pos: -1}
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.records) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	return assign(r.records[r.pos], dest)
}

func (r *fakeRows) Values() ([]interface{}, error) {
	return r.records[r.pos], nil
}

func assign(values, dest []interface{}) error {
	if len(values) != len(dest) {
		return fmt.Errorf("expected %d destinations, got %d", len(values), len(dest))
	}

	for i, v := range values {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *int:
			*d = v.(int)
		case *string:
			*d = v.(string)
		default:
			return fmt.Errorf("unsupported destination %T", dest[i])
		}
	}

	return nil
}

func itemRecord(id int64, name string, price, quantity int) []interface{} {
	return []interface{}{id, name, price, quantity}
}
