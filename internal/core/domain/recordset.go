package domain

import "fmt"

// Record set names, used as sheet and file names by output writers.
const (
	RecordSetHeader   = "FilingData"
	RecordSetBody     = "13F-HR"
	RecordSetHoldings = "InfoTable"
)

// RecordSet is a named table with a fixed column order.
type RecordSet struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewRecordSet creates an empty record set with the given columns.
func NewRecordSet(name string, columns ...string) *RecordSet {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &RecordSet{Name: name, Columns: cols, Rows: [][]string{}}
}

// Len returns the number of rows.
func (r *RecordSet) Len() int {
	return len(r.Rows)
}

// Append adds a row. The row must have one value per column.
func (r *RecordSet) Append(row []string) error {
	if len(row) != len(r.Columns) {
		return fmt.Errorf("%w: row has %d values, %s has %d columns",
			ErrInvalidInput, len(row), r.Name, len(r.Columns))
	}
	r.Rows = append(r.Rows, row)
	return nil
}

// ColumnIndex returns the position of a column.
func (r *RecordSet) ColumnIndex(name string) (int, bool) {
	for i, c := range r.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns a copy of every value in a column.
func (r *RecordSet) Column(name string) ([]string, error) {
	idx, ok := r.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: column %q in %s", ErrNotFound, name, r.Name)
	}
	values := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// SetColumn writes values into a column, appending the column to the end of
// the column order when it does not exist yet.
func (r *RecordSet) SetColumn(name string, values []string) error {
	if len(values) != len(r.Rows) {
		return fmt.Errorf("%w: %d values for %d rows in %s",
			ErrInvalidInput, len(values), len(r.Rows), r.Name)
	}
	idx, ok := r.ColumnIndex(name)
	if !ok {
		r.Columns = append(r.Columns, name)
		for i := range r.Rows {
			r.Rows[i] = append(r.Rows[i], values[i])
		}
		return nil
	}
	for i := range r.Rows {
		r.Rows[i][idx] = values[i]
	}
	return nil
}

// Records returns the rows as column-keyed maps, for JSON output.
func (r *RecordSet) Records() []map[string]string {
	out := make([]map[string]string, len(r.Rows))
	for i, row := range r.Rows {
		m := make(map[string]string, len(r.Columns))
		for j, c := range r.Columns {
			m[c] = row[j]
		}
		out[i] = m
	}
	return out
}
