package sqlbuilder

import (
	"context"

	"github.com/golobby/sqlbuilder/qb"
	"github.com/golobby/sqlbuilder/schema"
)

// All loads every T matching where; a nil where loads the whole table.
// T must be a struct type describable by schema.Of.
func All[T any](ctx context.Context, c *Connection, where *qb.Condition) ([]T, error) {
	return fetch[T](ctx, c, where, 0)
}

// Fetch loads at most n records of T matching where.
func Fetch[T any](ctx context.Context, c *Connection, where *qb.Condition, n int) ([]T, error) {
	if n <= 0 {
		return []T{}, nil
	}
	return fetch[T](ctx, c, where, n)
}

// Single loads the first T matching where, or the zero T when nothing matches.
func Single[T any](ctx context.Context, c *Connection, where *qb.Condition) (T, error) {
	var zero T
	items, err := fetch[T](ctx, c, where, 1)
	if err != nil || len(items) == 0 {
		return zero, err
	}
	return items[0], nil
}

// Maps runs a query and returns each row as a column name -> value map.
func Maps(ctx context.Context, c *Connection, cmd Commander) ([]map[string]interface{}, error) {
	rows, err := c.Query(ctx, cmd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return bindToMap(rows)
}

func fetch[T any](ctx context.Context, c *Connection, where *qb.Condition, n int) ([]T, error) {
	table, err := schema.Of(new(T))
	if err != nil {
		return nil, err
	}
	sel := c.Builder().SelectFrom(table)
	if where != nil {
		sel.Where(where)
	}
	if n > 0 {
		sel.Limit(n)
	}
	rows, err := c.Query(ctx, sel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	b := newBinder(table, c.Dialect().DateLayout())
	b.limit = n
	if err := b.bind(rows, &items); err != nil {
		return nil, err
	}
	return items, nil
}
