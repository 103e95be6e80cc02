package qb

import (
	"strings"

	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/schema"
)

// Create builds `CREATE TABLE name(col TYPE [PRIMARY KEY], ...)` from a table description.
type Create struct {
	d          *dialect.Dialect
	table      Table
	primaryKey string
	err        error
}

// NewCreate starts from table's columns; the first column flagged as primary key becomes the key.
func NewCreate(d *dialect.Dialect, table Table) *Create {
	c := &Create{d: d, table: table}
	if d == nil {
		c.err = notConfigured("Create")
		return c
	}
	if isNilTable(table) {
		return c
	}
	for _, col := range table.Columns() {
		if col.PrimaryKey {
			c.primaryKey = col.Name
			break
		}
	}
	return c
}

// PrimaryKey marks column as the table's primary key, replacing the default.
func (c *Create) PrimaryKey(column string) *Create {
	if c.err != nil {
		return c
	}
	if _, err := lookupColumn("Create.PrimaryKey", c.table, column); err != nil {
		c.err = err
		return c
	}
	c.primaryKey = column
	return c
}

func (c *Create) Err() error {
	return c.err
}

// ColumnType maps a column type to the provider's SQL type.
func ColumnType(d *dialect.Dialect, typ schema.ColumnType) string {
	switch typ {
	case schema.Integer:
		return "INT"
	case schema.String:
		return "VARCHAR(50)"
	case schema.Date:
		return d.DateType()
	default:
		return ""
	}
}

func (c *Create) Render() (string, error) {
	const name = "Create.Render"
	if c.err != nil {
		return "", c.err
	}
	if isNilTable(c.table) {
		return "", newError(KindNoTable, name, "no table to create")
	}
	cols := c.table.Columns()
	if len(cols) == 0 {
		return "", emptyError(name, ErrNoColumns, "table %s has no columns", c.table.Name())
	}
	defs := make([]string, 0, len(cols))
	for _, col := range cols {
		typ := ColumnType(c.d, col.Type)
		if typ == "" {
			return "", newError(KindInvalidArgument, name, "column %s has unknown type %s", col.Name, col.Type)
		}
		def := c.d.Ident(col.Name) + " " + typ
		if col.Name == c.primaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return "CREATE TABLE " + c.d.Ident(c.table.Name()) + "(" + strings.Join(defs, ", ") + ")", nil
}

// Command wraps the rendered text; CREATE TABLE binds no parameters.
func (c *Create) Command() (*Command, error) {
	s, err := c.Render()
	if err != nil {
		return nil, err
	}
	cmd := NewCommand(c.d)
	cmd.AppendText(s)
	return cmd, nil
}

func (c *Create) RenderCommand(sink ParameterSink) error {
	if sink == nil {
		return newError(KindInvalidArgument, "RenderCommand", "nil parameter sink")
	}
	s, err := c.Render()
	if err != nil {
		return err
	}
	sink.AppendText(s)
	return nil
}
