// Package sqlbuilder builds SELECT, INSERT, UPDATE, DELETE, CREATE TABLE and ALTER TABLE
// statements, as text or as parameterized commands, through chained method calls
// against table descriptions.
//
// A Builder carries an immutable dialect and hands out statement builders:
//
//	b := sqlbuilder.MustNew(sqlbuilder.Options{Provider: dialect.SQLite})
//	users := schema.MustOf(&User{})
//	s, err := b.SelectFrom(users).Where(b.Condition().Where(users, "id", qb.GT, 50)).Render()
//
// Configure installs a process wide Builder once for callers preferring package level functions.
package sqlbuilder

import (
	"errors"
	"sync"

	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/qb"
)

type Options = dialect.Options

var (
	ErrNotConfigured        = qb.ErrNotConfigured
	ErrSequence             = qb.ErrSequence
	ErrState                = qb.ErrState
	ErrTrailingLogic        = qb.ErrTrailingLogic
	ErrUnclosedBlock        = qb.ErrUnclosedBlock
	ErrEmpty                = qb.ErrEmpty
	ErrUnknownColumn        = qb.ErrUnknownColumn
	ErrIncompleteRow        = qb.ErrIncompleteRow
	ErrUnsupportedOperation = qb.ErrUnsupportedOperation
	ErrNoTable              = qb.ErrNoTable
	ErrInvalidArgument      = qb.ErrInvalidArgument
	ErrNoColumns            = qb.ErrNoColumns
	ErrNoRows               = qb.ErrNoRows
	ErrNoAssignments        = qb.ErrNoAssignments
	ErrNoOperations         = qb.ErrNoOperations

	ErrAlreadyConfigured = errors.New("sqlbuilder: already configured")
)

// Builder hands out statement builders sharing one dialect. It is safe for concurrent
// use; the builders it returns are not.
type Builder struct {
	d *dialect.Dialect
}

func New(opts Options) (*Builder, error) {
	d, err := dialect.New(opts)
	if err != nil {
		return nil, err
	}
	return &Builder{d: d}, nil
}

func MustNew(opts Options) *Builder {
	b, err := New(opts)
	if err != nil {
		panic(err)
	}
	return b
}

// Dialect returns the builder's dialect, nil for a nil Builder.
func (b *Builder) Dialect() *dialect.Dialect {
	if b == nil {
		return nil
	}
	return b.d
}

func (b *Builder) Select() *qb.Select {
	return qb.NewSelect(b.Dialect())
}

// SelectFrom selects every column of table.
func (b *Builder) SelectFrom(table qb.Table) *qb.Select {
	return qb.NewSelect(b.Dialect()).AddTable(table, true)
}

// Insert targets the named columns of table, or all of them.
func (b *Builder) Insert(table qb.Table, columns ...string) *qb.Insert {
	return qb.NewInsert(b.Dialect(), table, columns...)
}

func (b *Builder) Update(table qb.Table) *qb.Update {
	return qb.NewUpdate(b.Dialect(), table)
}

func (b *Builder) Delete() *qb.Delete {
	return qb.NewDelete(b.Dialect())
}

func (b *Builder) DeleteFrom(table qb.Table) *qb.Delete {
	return qb.NewDelete(b.Dialect()).From(table)
}

func (b *Builder) CreateTable(table qb.Table) *qb.Create {
	return qb.NewCreate(b.Dialect(), table)
}

func (b *Builder) AlterTable(table qb.Table) *qb.Alter {
	return qb.NewAlter(b.Dialect(), table)
}

func (b *Builder) Condition() *qb.Condition {
	return qb.NewCondition(b.Dialect())
}

func (b *Builder) Sort() *qb.Sort {
	return qb.NewSort(b.Dialect())
}

func (b *Builder) Row(table qb.Table, columns ...string) *qb.Row {
	return qb.NewRow(b.Dialect(), table, columns...)
}

var (
	globalMu      sync.RWMutex
	globalBuilder *Builder
)

// Configure installs the process wide Builder. It succeeds once; later calls return ErrAlreadyConfigured.
func Configure(opts Options) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalBuilder != nil {
		return ErrAlreadyConfigured
	}
	b, err := New(opts)
	if err != nil {
		return err
	}
	globalBuilder = b
	return nil
}

// Default returns the Builder installed by Configure.
func Default() (*Builder, error) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalBuilder == nil {
		return nil, ErrNotConfigured
	}
	return globalBuilder, nil
}

// current may return nil, in which case every builder fails with ErrNotConfigured.
func current() *Builder {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalBuilder
}

func Select() *qb.Select { return current().Select() }

func SelectFrom(table qb.Table) *qb.Select { return current().SelectFrom(table) }

func Insert(table qb.Table, columns ...string) *qb.Insert { return current().Insert(table, columns...) }

func Update(table qb.Table) *qb.Update { return current().Update(table) }

func Delete() *qb.Delete { return current().Delete() }

func DeleteFrom(table qb.Table) *qb.Delete { return current().DeleteFrom(table) }

func CreateTable(table qb.Table) *qb.Create { return current().CreateTable(table) }

func AlterTable(table qb.Table) *qb.Alter { return current().AlterTable(table) }

func Condition() *qb.Condition { return current().Condition() }

func Sort() *qb.Sort { return current().Sort() }

func Row(table qb.Table, columns ...string) *qb.Row { return current().Row(table, columns...) }
