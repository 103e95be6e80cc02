package qb

import (
	"strings"

	"github.com/golobby/sqlbuilder/dialect"
)

// ColumnOption modifies an added column definition.
type ColumnOption func(def *columnDef)

type columnDef struct {
	notNull       bool
	autoIncrement bool
}

func NotNull() ColumnOption {
	return func(def *columnDef) { def.notNull = true }
}

func AutoIncrement() ColumnOption {
	return func(def *columnDef) { def.autoIncrement = true }
}

// Alter builds `ALTER TABLE table op, op, ...`.
type Alter struct {
	d          *dialect.Dialect
	table      Table
	operations []string
	err        error
}

func NewAlter(d *dialect.Dialect, table Table) *Alter {
	a := &Alter{d: d, table: table}
	if d == nil {
		a.err = notConfigured("Alter")
	}
	return a
}

func (a *Alter) Rename(to string) *Alter {
	if a.err != nil {
		return a
	}
	if to == "" {
		a.err = newError(KindInvalidArgument, "Alter.Rename", "empty table name")
		return a
	}
	a.operations = append(a.operations, "RENAME "+a.d.Ident(to))
	return a
}

// Add adds a column of the given SQL type.
func (a *Alter) Add(column, typ string, opts ...ColumnOption) *Alter {
	if a.err != nil {
		return a
	}
	if column == "" || typ == "" {
		a.err = newError(KindInvalidArgument, "Alter.Add", "column and type are required")
		return a
	}
	var def columnDef
	for _, opt := range opts {
		opt(&def)
	}
	op := "ADD " + a.d.Ident(column) + " " + strings.ToUpper(typ)
	if def.notNull {
		op += " NOT NULL"
	}
	if def.autoIncrement {
		op += " AUTO_INCREMENT"
	}
	a.operations = append(a.operations, op)
	return a
}

// Drop drops each named column.
func (a *Alter) Drop(columns ...string) *Alter {
	if a.err != nil {
		return a
	}
	for _, c := range columns {
		a.operations = append(a.operations, "DROP COLUMN "+a.d.Ident(c))
	}
	return a
}

func (a *Alter) AddPrimaryKey(column string) *Alter {
	if a.err != nil {
		return a
	}
	a.operations = append(a.operations, "ADD PRIMARY KEY ("+a.d.Ident(column)+")")
	return a
}

// ChangeColumnType uses the provider's ALTER COLUMN syntax. It fails with an
// UnsupportedOperation error on providers that cannot alter columns.
func (a *Alter) ChangeColumnType(column, typ string) *Alter {
	const name = "Alter.ChangeColumnType"
	if a.err != nil {
		return a
	}
	if !a.d.Configured() {
		a.err = notConfigured(name)
		return a
	}
	clause, ok := a.d.AlterColumn(column, typ)
	if !ok {
		a.err = newError(KindUnsupportedOperation, name, "%s does not support altering columns", a.d.Provider())
		return a
	}
	a.operations = append(a.operations, clause)
	return a
}

func (a *Alter) Err() error {
	return a.err
}

func (a *Alter) Render() (string, error) {
	const name = "Alter.Render"
	if a.err != nil {
		return "", a.err
	}
	if isNilTable(a.table) {
		return "", newError(KindNoTable, name, "no table to alter")
	}
	if len(a.operations) == 0 {
		return "", emptyError(name, ErrNoOperations, "add at least one operation")
	}
	return "ALTER TABLE " + a.d.Ident(a.table.Name()) + " " + strings.Join(a.operations, ", "), nil
}

// Command wraps the rendered text; ALTER TABLE binds no parameters.
func (a *Alter) Command() (*Command, error) {
	s, err := a.Render()
	if err != nil {
		return nil, err
	}
	cmd := NewCommand(a.d)
	cmd.AppendText(s)
	return cmd, nil
}

func (a *Alter) RenderCommand(sink ParameterSink) error {
	if sink == nil {
		return newError(KindInvalidArgument, "RenderCommand", "nil parameter sink")
	}
	s, err := a.Render()
	if err != nil {
		return err
	}
	sink.AppendText(s)
	return nil
}
