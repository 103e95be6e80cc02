package qb

import (
	"strconv"
	"strings"

	"github.com/golobby/sqlbuilder/dialect"
)

type ClauseType string

const (
	ClauseType_Select  ClauseType = "SELECT"
	ClauseType_From    ClauseType = "FROM"
	ClauseType_Join    ClauseType = "JOIN"
	ClauseType_OrderBy ClauseType = "ORDER BY"
	ClauseType_Limit   ClauseType = "LIMIT"
)

// joinSpec renders as `JOIN right ON left.leftColumn = right.rightColumn`.
type joinSpec struct {
	left        string
	leftColumn  string
	right       string
	rightColumn string
}

func (j joinSpec) String(d *dialect.Dialect) string {
	return string(ClauseType_Join) + " " + d.Ident(j.right) + " ON " +
		d.Qualified(j.left, j.leftColumn) + " = " + d.Qualified(j.right, j.rightColumn)
}

// Select builds `SELECT cols FROM tables [JOIN ...] [WHERE ...] [ORDER BY ...] [LIMIT n]`.
type Select struct {
	d       *dialect.Dialect
	tables  []string
	columns []string
	joins   []joinSpec
	where   *Condition
	orderBy *Sort
	limit   int
	limited bool
	err     error
}

func NewSelect(d *dialect.Dialect) *Select {
	s := &Select{d: d}
	if d == nil {
		s.err = notConfigured("Select")
	}
	return s
}

// AddTable adds table to the FROM list, and all of its columns when selectAll is set.
func (s *Select) AddTable(table Table, selectAll bool) *Select {
	if s.err != nil {
		return s
	}
	if isNilTable(table) {
		s.err = newError(KindNoTable, "Select.AddTable", "nil table")
		return s
	}
	if !contains(s.tables, table.Name()) {
		s.tables = append(s.tables, table.Name())
	}
	if selectAll {
		return s.AddColumns(table)
	}
	return s
}

// AddColumns selects the named columns of table, or all of them when none are named.
func (s *Select) AddColumns(table Table, columns ...string) *Select {
	if s.err != nil {
		return s
	}
	cols, err := resolveColumns("Select.AddColumns", table, columns)
	if err != nil {
		s.err = err
		return s
	}
	for _, c := range cols {
		s.addColumn(s.d.Qualified(table.Name(), c.Name))
	}
	return s
}

// AddColumnDirect selects a raw column expression, e.g. `COUNT(*)`.
func (s *Select) AddColumnDirect(expr string) *Select {
	if s.err != nil {
		return s
	}
	if strings.TrimSpace(expr) == "" {
		s.err = newError(KindInvalidArgument, "Select.AddColumnDirect", "empty column expression")
		return s
	}
	s.addColumn(expr)
	return s
}

func (s *Select) addColumn(c string) {
	if !contains(s.columns, c) {
		s.columns = append(s.columns, c)
	}
}

// Join adds `JOIN right ON left.leftColumn = right.rightColumn`.
func (s *Select) Join(left Table, leftColumn string, right Table, rightColumn string) *Select {
	const name = "Select.Join"
	if s.err != nil {
		return s
	}
	if _, err := lookupColumn(name, left, leftColumn); err != nil {
		s.err = err
		return s
	}
	if _, err := lookupColumn(name, right, rightColumn); err != nil {
		s.err = err
		return s
	}
	s.joins = append(s.joins, joinSpec{
		left:        left.Name(),
		leftColumn:  leftColumn,
		right:       right.Name(),
		rightColumn: rightColumn,
	})
	return s
}

// Where attaches cond, replacing any earlier condition.
func (s *Select) Where(cond *Condition) *Select {
	s.where = cond
	return s
}

// OrderBy replaces the sort with a fresh one; call Finish on it to get back to the Select.
func (s *Select) OrderBy() *Sort {
	s.orderBy = NewSort(s.d)
	s.orderBy.parent = s
	return s.orderBy
}

// Limit caps the number of rows. It is ignored for providers without LIMIT support.
func (s *Select) Limit(n int) *Select {
	if s.err != nil {
		return s
	}
	if n < 0 {
		s.err = newError(KindInvalidArgument, "Select.Limit", "negative limit %d", n)
		return s
	}
	if !s.d.SupportsLimit() {
		return s
	}
	s.limit = n
	s.limited = true
	return s
}

func (s *Select) Err() error {
	return s.err
}

func (s *Select) write(w writer) error {
	if s.err != nil {
		return s.err
	}
	if len(s.tables) == 0 {
		return newError(KindNoTable, "Select.Render", "call AddTable at least once")
	}
	var orderBy string
	if s.orderBy != nil {
		var err error
		if orderBy, err = s.orderBy.Render(); err != nil {
			return err
		}
	}
	if s.where != nil {
		if err := s.where.validate(); err != nil {
			return err
		}
	}

	sections := []string{string(ClauseType_Select)}
	if len(s.columns) == 0 {
		sections = append(sections, "*")
	} else {
		sections = append(sections, strings.Join(s.columns, ", "))
	}
	sections = append(sections, string(ClauseType_From), joinIdents(s.d, s.tables))
	for _, j := range s.joins {
		sections = append(sections, j.String(s.d))
	}
	w.text(strings.Join(sections, " "))

	if s.where != nil {
		w.text(" ")
		if err := s.where.write(w); err != nil {
			return err
		}
	}
	if orderBy != "" {
		w.text(" " + orderBy)
	}
	if s.limited {
		w.text(" " + string(ClauseType_Limit) + " " + strconv.Itoa(s.limit))
	}
	return nil
}

func (s *Select) Render() (string, error) {
	return render(s.write)
}

func (s *Select) Command() (*Command, error) {
	return renderCommand(s.d, s.write)
}

func (s *Select) RenderCommand(sink ParameterSink) error {
	return renderSink(s.d, sink, s.write)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
