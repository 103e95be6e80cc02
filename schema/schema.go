package schema

import (
	"fmt"

	"github.com/jedib0t/go-pretty/table"
)

type ColumnType int

const (
	Integer ColumnType = iota + 1
	String
	Date
)

func (c ColumnType) String() string {
	switch c {
	case Integer:
		return "integer"
	case String:
		return "string"
	case Date:
		return "date"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(c))
	}
}

func parseColumnType(s string) (ColumnType, error) {
	switch s {
	case "int", "integer":
		return Integer, nil
	case "string", "text":
		return String, nil
	case "date", "datetime":
		return Date, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", s)
	}
}

type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	// Field is the Go struct field backing the column, empty for hand written tables.
	Field string
}

// PK returns a copy of c marked as primary key.
func (c Column) PK() Column {
	c.PrimaryKey = true
	return c
}

func IntColumn(name string) Column    { return Column{Name: name, Type: Integer} }
func StringColumn(name string) Column { return Column{Name: name, Type: String} }
func DateColumn(name string) Column   { return Column{Name: name, Type: Date} }

// Table is the read only description of a record type: table name, ordered columns and
// the field<->column lookups. It is immutable after construction.
type Table struct {
	name          string
	columns       []Column
	byName        map[string]int
	fieldToColumn map[string]string
	columnToField map[string]string
}

// New describes a table by hand. Columns keep the given order; a repeated name replaces the earlier definition.
func New(name string, columns ...Column) *Table {
	t := &Table{
		name:          name,
		byName:        map[string]int{},
		fieldToColumn: map[string]string{},
		columnToField: map[string]string{},
	}
	for _, c := range columns {
		if idx, exists := t.byName[c.Name]; exists {
			t.columns[idx] = c
		} else {
			t.byName[c.Name] = len(t.columns)
			t.columns = append(t.columns, c)
		}
		if c.Field != "" {
			t.fieldToColumn[c.Field] = c.Name
			t.columnToField[c.Name] = c.Field
		}
	}
	return t
}

func (t *Table) Name() string { return t.name }

// Columns returns the declared columns in declaration order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, c.Name)
	}
	return names
}

func (t *Table) Column(name string) (Column, bool) {
	idx, exists := t.byName[name]
	if !exists {
		return Column{}, false
	}
	return t.columns[idx], true
}

func (t *Table) HasColumn(name string) bool {
	_, exists := t.byName[name]
	return exists
}

// PrimaryKey returns the first column flagged as primary key.
func (t *Table) PrimaryKey() (Column, bool) {
	for _, c := range t.columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}

// FieldFor returns the struct field name mapped to column.
func (t *Table) FieldFor(column string) (string, bool) {
	f, ok := t.columnToField[column]
	return f, ok
}

// ColumnFor returns the column name mapped to a struct field.
func (t *Table) ColumnFor(field string) (string, bool) {
	c, ok := t.fieldToColumn[field]
	return c, ok
}

// Schematic renders the table description as a text grid.
func (t *Table) Schematic() string {
	w := table.NewWriter()
	w.SetTitle(t.name)
	w.AppendHeader(table.Row{"SQL Name", "Type", "Is Primary Key", "Field"})
	for _, c := range t.columns {
		w.AppendRow(table.Row{c.Name, c.Type, c.PrimaryKey, c.Field})
	}
	return w.Render()
}
