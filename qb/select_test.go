package qb

import (
	"testing"

	"github.com/golobby/sqlbuilder/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Run("only select * from table", func(t *testing.T) {
		s, err := NewSelect(sqlite()).AddTable(users, false).Render()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM users", s)
	})

	t.Run("all columns of table", func(t *testing.T) {
		s, err := NewSelect(sqlite()).AddTable(accounts, true).Render()
		require.NoError(t, err)
		assert.Equal(t, "SELECT accounts.username, accounts.email FROM accounts", s)
	})

	t.Run("explicit columns are not repeated", func(t *testing.T) {
		s, err := NewSelect(sqlite()).
			AddTable(users, false).
			AddColumns(users, "id", "username").
			AddColumns(users, "username").
			AddColumnDirect("COUNT(*)").
			AddColumnDirect("COUNT(*)").
			Render()
		require.NoError(t, err)
		assert.Equal(t, "SELECT users.id, users.username, COUNT(*) FROM users", s)
	})

	t.Run("join where order by limit", func(t *testing.T) {
		sel := NewSelect(sqlite()).
			AddTable(users, false).
			AddColumns(users, "username").
			AddColumns(posts, "title").
			Join(users, "id", posts, "user_id").
			Where(NewCondition(sqlite()).Where(users, "age", GT, 18)).
			OrderBy().Desc(posts, "id").Asc(users, "username").Finish().
			Limit(10)
		s, err := sel.Render()
		require.NoError(t, err)
		assert.Equal(t, "SELECT users.username, posts.title FROM users JOIN posts ON users.id = posts.user_id "+
			"WHERE users.age>18 ORDER BY users.username ASC, posts.id DESC LIMIT 10", s)
	})

	t.Run("several tables", func(t *testing.T) {
		s, err := NewSelect(quoted()).AddTable(users, false).AddTable(posts, false).AddTable(users, false).Render()
		require.NoError(t, err)
		assert.Equal(t, `SELECT * FROM "users", "posts"`, s)
	})

	t.Run("limit ignored without provider support", func(t *testing.T) {
		d := provider(dialect.Oracle10GOrLater)
		s, err := NewSelect(d).AddTable(users, false).Limit(5).Render()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM users", s)
	})

	t.Run("empty order by adds nothing", func(t *testing.T) {
		s, err := NewSelect(sqlite()).AddTable(users, false).OrderBy().Finish().Render()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM users", s)
	})

	t.Run("order by replaces earlier sort", func(t *testing.T) {
		sel := NewSelect(sqlite()).AddTable(users, false)
		sel.OrderBy().Asc(users, "name")
		sel.OrderBy().Desc(users, "id")
		s, err := sel.Render()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM users ORDER BY users.id DESC", s)
	})

	t.Run("command", func(t *testing.T) {
		cmd, err := NewSelect(sqlite()).
			AddTable(users, false).
			Where(NewCondition(sqlite()).Where(users, "username", Eq, "bob").And().Where(users, "age", GE, 21)).
			Command()
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM users WHERE users.username=@p1 AND users.age>=@p2", cmd.Text())
		assert.Len(t, cmd.Args(), 2)
	})

	t.Run("render twice", func(t *testing.T) {
		sel := NewSelect(sqlite()).AddTable(users, true).Where(NewCondition(sqlite()).IsNull(users, "email"))
		first, err := sel.Render()
		require.NoError(t, err)
		second, err := sel.Render()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSelectErrors(t *testing.T) {
	t.Run("no table", func(t *testing.T) {
		_, err := NewSelect(sqlite()).AddColumns(users, "id").Render()
		assert.ErrorIs(t, err, ErrNoTable)
	})
	t.Run("unknown column", func(t *testing.T) {
		_, err := NewSelect(sqlite()).AddTable(users, false).AddColumns(users, "id", "missing").Render()
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
	t.Run("unknown join column", func(t *testing.T) {
		_, err := NewSelect(sqlite()).AddTable(users, false).Join(users, "id", posts, "owner_id").Render()
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
	t.Run("invalid sort", func(t *testing.T) {
		_, err := NewSelect(sqlite()).AddTable(users, false).OrderBy().By(users, "id", None).Finish().Render()
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("negative limit", func(t *testing.T) {
		_, err := NewSelect(sqlite()).AddTable(users, false).Limit(-1).Render()
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("unclosed where block", func(t *testing.T) {
		_, err := NewSelect(sqlite()).AddTable(users, false).
			Where(NewCondition(sqlite()).BeginBlock().IsNull(users, "email")).
			Render()
		assert.ErrorIs(t, err, ErrUnclosedBlock)
	})
	t.Run("not configured", func(t *testing.T) {
		_, err := NewSelect(nil).AddTable(users, false).Render()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}
