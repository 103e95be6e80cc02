package qb

import (
	"strings"

	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/schema"
)

// Row holds one INSERT row: a formatted value per declared column. Values are
// formatted by the column's type when set; setting a column twice keeps the last value.
type Row struct {
	d       *dialect.Dialect
	parent  *Insert
	columns []schema.Column
	values  map[string]value
	err     error
}

// NewRow creates a row over the given columns of table. With no names, every column of table is used.
func NewRow(d *dialect.Dialect, table Table, columns ...string) *Row {
	r := &Row{d: d, values: map[string]value{}}
	if d == nil {
		r.err = notConfigured("Row")
		return r
	}
	r.columns, r.err = resolveColumns("Row", table, columns)
	return r
}

func resolveColumns(op string, table Table, names []string) ([]schema.Column, error) {
	if isNilTable(table) {
		return nil, newError(KindNoTable, op, "nil table")
	}
	if len(names) == 0 {
		return table.Columns(), nil
	}
	seen := map[string]bool{}
	cols := make([]schema.Column, 0, len(names))
	for _, n := range names {
		c, err := lookupColumn(op, table, n)
		if err != nil {
			return nil, err
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		cols = append(cols, c)
	}
	return cols, nil
}

func (r *Row) column(name string) (schema.Column, bool) {
	for _, c := range r.columns {
		if c.Name == name {
			return c, true
		}
	}
	return schema.Column{}, false
}

// Set assigns val to column, failing with an UnknownColumn error for undeclared columns.
func (r *Row) Set(column string, val interface{}) *Row {
	const name = "Row.Set"
	if r.err != nil {
		return r
	}
	c, ok := r.column(column)
	if !ok {
		r.err = newError(KindUnknownColumn, name, "row has no column %s", column)
		return r
	}
	v, err := makeValue(r.d, name, val, c.Type)
	if err != nil {
		r.err = err
		return r
	}
	r.values[column] = v
	return r
}

// Finish returns the INSERT this row was created by, or nil for a standalone row.
func (r *Row) Finish() *Insert {
	return r.parent
}

func (r *Row) Err() error {
	return r.err
}

// Complete reports whether every declared column has a value.
func (r *Row) Complete() bool {
	return r.err == nil && len(r.missing()) == 0
}

func (r *Row) missing() []string {
	var out []string
	for _, c := range r.columns {
		if _, ok := r.values[c.Name]; !ok {
			out = append(out, c.Name)
		}
	}
	return out
}

func (r *Row) write(w writer, parens bool) error {
	if r.err != nil {
		return r.err
	}
	if missing := r.missing(); len(missing) > 0 {
		return newError(KindIncompleteRow, "Row.Render", "missing values for %s", strings.Join(missing, ", "))
	}
	if parens {
		w.text("(")
	}
	for i, c := range r.columns {
		if i > 0 {
			w.text(", ")
		}
		w.value(r.values[c.Name])
	}
	if parens {
		w.text(")")
	}
	return nil
}

// Render returns the comma separated values in declared column order, optionally in parentheses.
func (r *Row) Render(parens bool) (string, error) {
	return render(func(w writer) error { return r.write(w, parens) })
}

func (r *Row) RenderCommand(sink ParameterSink, parens bool) error {
	return renderSink(r.d, sink, func(w writer) error { return r.write(w, parens) })
}
