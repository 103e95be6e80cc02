package qb

import "github.com/golobby/sqlbuilder/dialect"

// Delete builds `DELETE FROM table [WHERE ...]`.
type Delete struct {
	d     *dialect.Dialect
	table Table
	where *Condition
	err   error
}

func NewDelete(d *dialect.Dialect) *Delete {
	del := &Delete{d: d}
	if d == nil {
		del.err = notConfigured("Delete")
	}
	return del
}

// From sets the target table.
func (d *Delete) From(table Table) *Delete {
	d.table = table
	return d
}

// Where attaches cond, replacing any earlier condition.
func (d *Delete) Where(cond *Condition) *Delete {
	d.where = cond
	return d
}

func (d *Delete) Err() error {
	return d.err
}

func (d *Delete) write(w writer) error {
	if d.err != nil {
		return d.err
	}
	if isNilTable(d.table) {
		return newError(KindNoTable, "Delete.Render", "call From before rendering")
	}
	if d.where != nil {
		if err := d.where.validate(); err != nil {
			return err
		}
	}
	w.text("DELETE FROM " + d.d.Ident(d.table.Name()))
	if d.where != nil {
		w.text(" ")
		return d.where.write(w)
	}
	return nil
}

func (d *Delete) Render() (string, error) {
	return render(d.write)
}

func (d *Delete) Command() (*Command, error) {
	return renderCommand(d.d, d.write)
}

func (d *Delete) RenderCommand(sink ParameterSink) error {
	return renderSink(d.d, sink, d.write)
}
