package qb

import (
	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/schema"
)

const (
	Eq   = "="
	GT   = ">"
	LT   = "<"
	GE   = ">="
	LE   = "<="
	NE   = "!="
	Like = " LIKE "
)

type expressionKind int

const (
	compareColumns expressionKind = iota + 1
	compareValue
	isNull
	openParen
	closeParen
	and
	or
)

// expression is one token of a condition.
type expression struct {
	kind        expressionKind
	leftTable   string
	leftColumn  string
	op          string
	rightTable  string
	rightColumn string
	value       value
}

func (e expression) write(d *dialect.Dialect, w writer) {
	switch e.kind {
	case compareColumns:
		w.text(d.Qualified(e.leftTable, e.leftColumn) + e.op + d.Qualified(e.rightTable, e.rightColumn))
	case compareValue:
		w.text(d.Qualified(e.leftTable, e.leftColumn) + e.op)
		w.value(e.value)
	case isNull:
		w.text(d.Qualified(e.leftTable, e.leftColumn) + " IS NULL")
	case openParen:
		w.text("(")
	case closeParen:
		w.text(")")
	case and:
		w.text("AND")
	case or:
		w.text("OR")
	}
}

// Condition incrementally builds a boolean expression usable as a WHERE clause.
//
// Predicates (CompareColumns, Compare, IsNull) and logic operators (And, Or) must
// alternate; BeginBlock may appear wherever a predicate may and EndBlock wherever a
// logic operator may. The first call breaking these rules records a ValidationError
// which every later call, Err and Render return. A Condition is not safe for
// concurrent mutation.
type Condition struct {
	d                  *dialect.Dialect
	expressions        []expression
	depth              int
	expectingPredicate bool
	err                error
}

func NewCondition(d *dialect.Dialect) *Condition {
	c := &Condition{d: d, expectingPredicate: true}
	if d == nil {
		c.err = notConfigured("Condition")
	}
	return c
}

func (c *Condition) fail(err error) *Condition {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *Condition) predicate(op string, e expression) *Condition {
	if !c.expectingPredicate {
		return c.fail(newError(KindSequence, op, "a predicate must follow a logic operator or an opened block"))
	}
	c.expressions = append(c.expressions, e)
	c.expectingPredicate = false
	return c
}

// CompareColumns adds `left.leftColumn <op> right.rightColumn`.
func (c *Condition) CompareColumns(left Table, leftColumn, op string, right Table, rightColumn string) *Condition {
	const name = "Condition.CompareColumns"
	if c.err != nil {
		return c
	}
	if _, err := lookupColumn(name, left, leftColumn); err != nil {
		return c.fail(err)
	}
	if _, err := lookupColumn(name, right, rightColumn); err != nil {
		return c.fail(err)
	}
	return c.predicate(name, expression{
		kind:        compareColumns,
		leftTable:   left.Name(),
		leftColumn:  leftColumn,
		op:          op,
		rightTable:  right.Name(),
		rightColumn: rightColumn,
	})
}

// Compare adds `table.column <op> value`, value being formatted or bound as typ.
func (c *Condition) Compare(table Table, column, op string, val interface{}, typ schema.ColumnType) *Condition {
	const name = "Condition.Compare"
	if c.err != nil {
		return c
	}
	if _, err := lookupColumn(name, table, column); err != nil {
		return c.fail(err)
	}
	v, err := makeValue(c.d, name, val, typ)
	if err != nil {
		return c.fail(err)
	}
	return c.predicate(name, expression{
		kind:       compareValue,
		leftTable:  table.Name(),
		leftColumn: column,
		op:         op,
		value:      v,
	})
}

// Where is Compare using the column's declared type.
func (c *Condition) Where(table Table, column, op string, val interface{}) *Condition {
	if c.err != nil {
		return c
	}
	col, err := lookupColumn("Condition.Where", table, column)
	if err != nil {
		return c.fail(err)
	}
	return c.Compare(table, column, op, val, col.Type)
}

// IsNull adds `table.column IS NULL`.
func (c *Condition) IsNull(table Table, column string) *Condition {
	const name = "Condition.IsNull"
	if c.err != nil {
		return c
	}
	if _, err := lookupColumn(name, table, column); err != nil {
		return c.fail(err)
	}
	return c.predicate(name, expression{kind: isNull, leftTable: table.Name(), leftColumn: column})
}

func (c *Condition) logic(op string, kind expressionKind) *Condition {
	if c.err != nil {
		return c
	}
	if c.expectingPredicate {
		return c.fail(newError(KindSequence, op, "a logic operator must follow a predicate or a closed block"))
	}
	c.expressions = append(c.expressions, expression{kind: kind})
	c.expectingPredicate = true
	return c
}

func (c *Condition) And() *Condition { return c.logic("Condition.And", and) }

func (c *Condition) Or() *Condition { return c.logic("Condition.Or", or) }

// BeginBlock opens a parenthesis. The block must start with a predicate or another block.
func (c *Condition) BeginBlock() *Condition {
	const name = "Condition.BeginBlock"
	if c.err != nil {
		return c
	}
	if !c.expectingPredicate {
		return c.fail(newError(KindSequence, name, "a block must follow a logic operator or start the condition"))
	}
	c.expressions = append(c.expressions, expression{kind: openParen})
	c.depth++
	return c
}

// EndBlock closes the innermost open parenthesis. The closed block then behaves as a predicate.
func (c *Condition) EndBlock() *Condition {
	const name = "Condition.EndBlock"
	if c.err != nil {
		return c
	}
	if c.depth == 0 {
		return c.fail(newError(KindState, name, "no open block to end"))
	}
	if c.expectingPredicate {
		return c.fail(newError(KindSequence, name, "a block cannot end on a logic operator or be empty"))
	}
	c.depth--
	c.expressions = append(c.expressions, expression{kind: closeParen})
	return c
}

// Err returns the first recorded construction error.
func (c *Condition) Err() error {
	return c.err
}

// Depth is the number of currently open blocks.
func (c *Condition) Depth() int {
	return c.depth
}

// Len is the number of tokens added so far.
func (c *Condition) Len() int {
	return len(c.expressions)
}

func (c *Condition) validate() error {
	const name = "Condition.Render"
	if c.err != nil {
		return c.err
	}
	if len(c.expressions) == 0 {
		return emptyError(name, nil, "a WHERE clause needs at least one predicate")
	}
	if c.expectingPredicate {
		return newError(KindTrailingLogic, name, "a WHERE clause cannot end on a logic operator or an opened block")
	}
	if c.depth != 0 {
		return newError(KindUnclosedBlock, name, "%d block(s) left open", c.depth)
	}
	return nil
}

func (c *Condition) write(w writer) error {
	if err := c.validate(); err != nil {
		return err
	}
	w.text("WHERE ")
	for i, e := range c.expressions {
		e.write(c.d, w)
		if i == len(c.expressions)-1 || e.kind == openParen || c.expressions[i+1].kind == closeParen {
			continue
		}
		w.text(" ")
	}
	return nil
}

// Render returns the clause, e.g. `WHERE users.id>50 AND (users.age<40 OR users.name IS NULL)`.
func (c *Condition) Render() (string, error) {
	return render(c.write)
}

// RenderCommand appends the clause to sink, binding compared values as parameters.
func (c *Condition) RenderCommand(sink ParameterSink) error {
	return renderSink(c.d, sink, c.write)
}

func (c *Condition) String() string {
	s, err := c.Render()
	if err != nil {
		return err.Error()
	}
	return s
}
