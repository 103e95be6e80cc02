package qb

import (
	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/schema"
)

// Insert builds `INSERT INTO table (cols) VALUES (row), ...`. The column list is fixed at construction.
type Insert struct {
	d       *dialect.Dialect
	table   Table
	columns []schema.Column
	rows    []*Row
	err     error
}

// NewInsert targets the named columns of table, or all of them when none are named.
func NewInsert(d *dialect.Dialect, table Table, columns ...string) *Insert {
	i := &Insert{d: d, table: table}
	if d == nil {
		i.err = notConfigured("Insert")
		return i
	}
	if isNilTable(table) {
		return i
	}
	i.columns, i.err = resolveColumns("Insert", table, columns)
	return i
}

func (i *Insert) columnNames() []string {
	names := make([]string, 0, len(i.columns))
	for _, c := range i.columns {
		names = append(names, c.Name)
	}
	return names
}

// Values starts a new row over the insert's columns. Call Finish on the row to continue chaining.
func (i *Insert) Values() *Row {
	r := &Row{d: i.d, parent: i, columns: i.columns, values: map[string]value{}, err: i.err}
	if r.err == nil && isNilTable(i.table) {
		r.err = newError(KindNoTable, "Insert.Values", "no target table")
	}
	i.rows = append(i.rows, r)
	return r
}

// AddValues appends a row built with NewRow. It must cover exactly the insert's columns.
func (i *Insert) AddValues(r *Row) *Insert {
	const name = "Insert.AddValues"
	if i.err != nil {
		return i
	}
	if r == nil {
		i.err = newError(KindInvalidArgument, name, "nil row")
		return i
	}
	if len(r.columns) != len(i.columns) {
		i.err = newError(KindInvalidArgument, name, "row has %d columns, insert has %d", len(r.columns), len(i.columns))
		return i
	}
	for idx, c := range r.columns {
		if c.Name != i.columns[idx].Name {
			i.err = newError(KindInvalidArgument, name, "row column %s does not match insert column %s", c.Name, i.columns[idx].Name)
			return i
		}
	}
	i.rows = append(i.rows, r)
	return i
}

// AddRow appends a row from values given in column order.
func (i *Insert) AddRow(values ...interface{}) *Insert {
	const name = "Insert.AddRow"
	if i.err != nil {
		return i
	}
	if len(values) > len(i.columns) {
		i.err = newError(KindInvalidArgument, name, "%d values for %d columns", len(values), len(i.columns))
		return i
	}
	r := i.Values()
	for idx, v := range values {
		r.Set(i.columns[idx].Name, v)
	}
	i.err = r.err
	return i
}

// AddItem appends a row read from a record of the table's type.
func (i *Insert) AddItem(item interface{}) *Insert {
	const name = "Insert.AddItem"
	if i.err != nil {
		return i
	}
	if isNilTable(i.table) {
		i.err = newError(KindNoTable, name, "no target table")
		return i
	}
	t, ok := i.table.(itemTable)
	if !ok {
		i.err = newError(KindInvalidArgument, name, "table cannot read values from records")
		return i
	}
	values, err := t.Values(item)
	if err != nil {
		i.err = newError(KindInvalidArgument, name, "%v", err)
		return i
	}
	r := i.Values()
	for _, c := range i.columns {
		r.Set(c.Name, values[c.Name])
	}
	i.err = r.err
	return i
}

func (i *Insert) Err() error {
	return i.err
}

func (i *Insert) write(w writer) error {
	const name = "Insert.Render"
	if i.err != nil {
		return i.err
	}
	if isNilTable(i.table) {
		return newError(KindNoTable, name, "no target table")
	}
	if len(i.columns) == 0 {
		return emptyError(name, ErrNoColumns, "table %s has no columns to insert", i.table.Name())
	}
	if len(i.rows) == 0 {
		return emptyError(name, ErrNoRows, "no rows to insert")
	}
	w.text("INSERT INTO " + i.d.Ident(i.table.Name()) + " (" + joinIdents(i.d, i.columnNames()) + ") VALUES ")
	for idx, r := range i.rows {
		if idx > 0 {
			w.text(", ")
		}
		if err := r.write(w, true); err != nil {
			return err
		}
	}
	return nil
}

func (i *Insert) Render() (string, error) {
	return render(i.write)
}

func (i *Insert) Command() (*Command, error) {
	return renderCommand(i.d, i.write)
}

func (i *Insert) RenderCommand(sink ParameterSink) error {
	return renderSink(i.d, sink, i.write)
}
