package qb

import (
	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/schema"
)

// M maps column names to values.
type M = map[string]interface{}

type assignment struct {
	column string
	value  value
}

// Update builds `UPDATE table SET col=val, ... [WHERE ...]`.
type Update struct {
	d           *dialect.Dialect
	table       Table
	assignments []assignment
	where       *Condition
	err         error
}

func NewUpdate(d *dialect.Dialect, table Table) *Update {
	u := &Update{d: d, table: table}
	if d == nil {
		u.err = notConfigured("Update")
	}
	return u
}

// Set assigns val to column using the column's declared type.
func (u *Update) Set(column string, val interface{}) *Update {
	const name = "Update.Set"
	if u.err != nil {
		return u
	}
	c, err := lookupColumn(name, u.table, column)
	if err != nil {
		u.err = err
		return u
	}
	return u.assign(name, column, val, c.Type)
}

// SetTyped assigns val to column formatted as typ.
func (u *Update) SetTyped(column string, val interface{}, typ schema.ColumnType) *Update {
	const name = "Update.SetTyped"
	if u.err != nil {
		return u
	}
	if _, err := lookupColumn(name, u.table, column); err != nil {
		u.err = err
		return u
	}
	return u.assign(name, column, val, typ)
}

// SetAll assigns every entry of values, in the table's declared column order.
func (u *Update) SetAll(values M) *Update {
	if u.err != nil {
		return u
	}
	if isNilTable(u.table) {
		u.err = newError(KindNoTable, "Update.SetAll", "no target table")
		return u
	}
	for column := range values {
		if _, err := lookupColumn("Update.SetAll", u.table, column); err != nil {
			u.err = err
			return u
		}
	}
	for _, c := range u.table.Columns() {
		if val, ok := values[c.Name]; ok {
			u.Set(c.Name, val)
		}
	}
	return u
}

// assign keeps the position of the first assignment of a column and the value of the last.
func (u *Update) assign(op, column string, val interface{}, typ schema.ColumnType) *Update {
	v, err := makeValue(u.d, op, val, typ)
	if err != nil {
		u.err = err
		return u
	}
	for idx := range u.assignments {
		if u.assignments[idx].column == column {
			u.assignments[idx].value = v
			return u
		}
	}
	u.assignments = append(u.assignments, assignment{column: column, value: v})
	return u
}

// Where attaches cond, replacing any earlier condition.
func (u *Update) Where(cond *Condition) *Update {
	u.where = cond
	return u
}

func (u *Update) Err() error {
	return u.err
}

func (u *Update) write(w writer) error {
	const name = "Update.Render"
	if u.err != nil {
		return u.err
	}
	if isNilTable(u.table) {
		return newError(KindNoTable, name, "no target table")
	}
	if len(u.assignments) == 0 {
		return emptyError(name, ErrNoAssignments, "call Set at least once")
	}
	if u.where != nil {
		if err := u.where.validate(); err != nil {
			return err
		}
	}
	w.text("UPDATE " + u.d.Ident(u.table.Name()) + " SET ")
	for idx, a := range u.assignments {
		if idx > 0 {
			w.text(", ")
		}
		w.text(u.d.Ident(a.column) + "=")
		w.value(a.value)
	}
	if u.where != nil {
		w.text(" ")
		return u.where.write(w)
	}
	return nil
}

func (u *Update) Render() (string, error) {
	return render(u.write)
}

func (u *Update) Command() (*Command, error) {
	return renderCommand(u.d, u.write)
}

func (u *Update) RenderCommand(sink ParameterSink) error {
	return renderSink(u.d, sink, u.write)
}
