package qb

import (
	"strings"

	"github.com/golobby/sqlbuilder/dialect"
)

type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return "NONE"
	}
}

type sortColumn struct {
	table  string
	column string
}

// Sort collects ORDER BY columns. Ascending columns render before descending ones.
type Sort struct {
	d      *dialect.Dialect
	parent *Select
	asc    []sortColumn
	desc   []sortColumn
	err    error
}

func NewSort(d *dialect.Dialect) *Sort {
	s := &Sort{d: d}
	if d == nil {
		s.err = notConfigured("Sort")
	}
	return s
}

// By appends table.column to the group matching direction. None is rejected.
func (s *Sort) By(table Table, column string, direction Direction) *Sort {
	const name = "Sort.By"
	if s.err != nil {
		return s
	}
	if _, err := lookupColumn(name, table, column); err != nil {
		s.err = err
		return s
	}
	c := sortColumn{table: table.Name(), column: column}
	switch direction {
	case Ascending:
		s.asc = append(s.asc, c)
	case Descending:
		s.desc = append(s.desc, c)
	default:
		s.err = newError(KindInvalidArgument, name, "direction must be Ascending or Descending, got %s", direction)
	}
	return s
}

func (s *Sort) Asc(table Table, column string) *Sort {
	return s.By(table, column, Ascending)
}

func (s *Sort) Desc(table Table, column string) *Sort {
	return s.By(table, column, Descending)
}

// Finish returns the SELECT this sort was created by, or nil for a standalone sort.
func (s *Sort) Finish() *Select {
	return s.parent
}

func (s *Sort) Err() error {
	return s.err
}

func (s *Sort) qualified(cols []sortColumn) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, s.d.Qualified(c.table, c.column))
	}
	return strings.Join(parts, ", ")
}

// Render returns `ORDER BY a, b ASC, c DESC`, or an empty string when no column was added.
func (s *Sort) Render() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if len(s.asc) == 0 && len(s.desc) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("ORDER BY ")
	if len(s.asc) > 0 {
		sb.WriteString(s.qualified(s.asc))
		sb.WriteString(" ASC")
	}
	if len(s.asc) > 0 && len(s.desc) > 0 {
		sb.WriteString(", ")
	}
	if len(s.desc) > 0 {
		sb.WriteString(s.qualified(s.desc))
		sb.WriteString(" DESC")
	}
	return sb.String(), nil
}

func (s *Sort) String() string {
	str, err := s.Render()
	if err != nil {
		return err.Error()
	}
	return str
}
