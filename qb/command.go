package qb

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/schema"
)

// ParameterSink receives statement text and out of band parameter values.
type ParameterSink interface {
	AppendText(fragment string)
	AddParameter(name string, value interface{}, typ schema.ColumnType)
	ParameterCount() int
}

type Parameter struct {
	Name  string
	Value interface{}
	Type  schema.ColumnType
}

// Command is the default ParameterSink: a statement text with its bound parameters,
// ready for database/sql.
type Command struct {
	named  bool
	text   strings.Builder
	params []Parameter
}

func NewCommand(d *dialect.Dialect) *Command {
	c := &Command{}
	if d != nil {
		c.named = d.NamedParameters()
	}
	return c
}

func (c *Command) AppendText(fragment string) {
	c.text.WriteString(fragment)
}

func (c *Command) AddParameter(name string, value interface{}, typ schema.ColumnType) {
	c.params = append(c.params, Parameter{Name: name, Value: value, Type: typ})
}

func (c *Command) ParameterCount() int {
	return len(c.params)
}

func (c *Command) Text() string {
	return c.text.String()
}

func (c *Command) Parameters() []Parameter {
	out := make([]Parameter, len(c.params))
	copy(out, c.params)
	return out
}

// Args returns the parameters as database/sql arguments, wrapped in sql.Named for
// providers that refer to parameters by name.
func (c *Command) Args() []interface{} {
	args := make([]interface{}, 0, len(c.params))
	for _, p := range c.params {
		if c.named {
			args = append(args, sql.Named(p.Name, p.Value))
		} else {
			args = append(args, p.Value)
		}
	}
	return args
}

// SQL returns the text and arguments, mirroring the other builders' ToSql shape.
func (c *Command) SQL() (string, []interface{}) {
	return c.Text(), c.Args()
}

func (c *Command) String() string {
	return c.Text()
}

// value is a typed operand, formatted for literal embedding and converted for binding
// when it is created.
type value struct {
	literal string
	bound   interface{}
	typ     schema.ColumnType
}

func makeValue(d *dialect.Dialect, op string, raw interface{}, typ schema.ColumnType) (value, error) {
	v := value{typ: typ}
	raw = deref(raw)
	if raw == nil {
		v.literal = "NULL"
		return v, nil
	}
	switch typ {
	case schema.Integer:
		n, err := toInt64(raw)
		if err != nil {
			return v, newError(KindInvalidArgument, op, "%v", err)
		}
		v.literal = strconv.FormatInt(n, 10)
		v.bound = n
	case schema.String:
		s := fmt.Sprint(raw)
		v.literal = d.QuoteString(s)
		v.bound = s
	case schema.Date:
		var (
			t   time.Time
			s   string
			err error
		)
		switch x := raw.(type) {
		case time.Time:
			t, s = x, x.Format(d.DateLayout())
		case string:
			s = x
			t, err = time.Parse(d.DateLayout(), x)
			if err != nil {
				return v, newError(KindInvalidArgument, op, "date %q does not match layout %q", x, d.DateLayout())
			}
		default:
			return v, newError(KindInvalidArgument, op, "cannot use %T as a date", raw)
		}
		lit, ok := d.DateLiteral(s)
		if !ok {
			return v, notConfigured(op)
		}
		v.literal = lit
		v.bound = t
		if d.DatesAsText() {
			v.bound = t.Format(d.DateLayout())
		}
	default:
		return v, newError(KindInvalidArgument, op, "unknown column type %s", typ)
	}
	return v, nil
}

func deref(raw interface{}) interface{} {
	if raw == nil {
		return nil
	}
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

func toInt64(raw interface{}) (int64, error) {
	if s, ok := raw.(string); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", s)
		}
		return n, nil
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows a 64 bit integer", u)
		}
		return int64(u), nil
	default:
		return 0, fmt.Errorf("cannot use %T as an integer", raw)
	}
}

// writer abstracts the two render targets: literal text and a parameter sink.
type writer interface {
	text(s string)
	value(v value)
}

type textWriter struct {
	sb strings.Builder
}

func (w *textWriter) text(s string) { w.sb.WriteString(s) }

func (w *textWriter) value(v value) { w.sb.WriteString(v.literal) }

type sinkWriter struct {
	d    *dialect.Dialect
	sink ParameterSink
}

func (w *sinkWriter) text(s string) { w.sink.AppendText(s) }

func (w *sinkWriter) value(v value) {
	idx := w.sink.ParameterCount() + 1
	name := fmt.Sprintf("p%d", idx)
	w.sink.AddParameter(name, v.bound, v.typ)
	w.sink.AppendText(w.d.Placeholder(name, idx))
}

// render runs fn against a text writer.
func render(fn func(w writer) error) (string, error) {
	w := &textWriter{}
	if err := fn(w); err != nil {
		return "", err
	}
	return w.sb.String(), nil
}

// renderCommand runs fn against a fresh Command for d.
func renderCommand(d *dialect.Dialect, fn func(w writer) error) (*Command, error) {
	cmd := NewCommand(d)
	if err := fn(&sinkWriter{d: d, sink: cmd}); err != nil {
		return nil, err
	}
	return cmd, nil
}

// renderSink validates with a discarding pass so that sink only receives complete statements.
func renderSink(d *dialect.Dialect, sink ParameterSink, fn func(w writer) error) error {
	if sink == nil {
		return newError(KindInvalidArgument, "RenderCommand", "nil parameter sink")
	}
	if err := fn(discard{}); err != nil {
		return err
	}
	return fn(&sinkWriter{d: d, sink: sink})
}

type discard struct{}

func (discard) text(string) {}

func (discard) value(value) {}

// Table is the read only catalog the builders consult for names and column types.
// *schema.Table implements it.
type Table interface {
	Name() string
	Columns() []schema.Column
	Column(name string) (schema.Column, bool)
}

// itemTable is a Table able to read column values from a record.
type itemTable interface {
	Table
	Values(item interface{}) (map[string]interface{}, error)
}

// isNilTable also catches typed nil pointers such as a nil *schema.Table.
func isNilTable(t Table) bool {
	if t == nil {
		return true
	}
	rv := reflect.ValueOf(t)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func lookupColumn(op string, t Table, column string) (schema.Column, error) {
	if isNilTable(t) {
		return schema.Column{}, newError(KindNoTable, op, "nil table")
	}
	c, ok := t.Column(column)
	if !ok {
		return schema.Column{}, newError(KindUnknownColumn, op, "table %s has no column %s", t.Name(), column)
	}
	return c, nil
}

func joinIdents(d *dialect.Dialect, names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, d.Ident(n))
	}
	return strings.Join(quoted, ", ")
}
