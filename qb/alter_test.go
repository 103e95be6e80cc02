package qb

import (
	"testing"

	"github.com/golobby/sqlbuilder/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlter(t *testing.T) {
	t.Run("operations in order", func(t *testing.T) {
		s, err := NewAlter(provider(dialect.MySQL), users).
			Add("nickname", "varchar(20)", NotNull()).
			Add("serial", "int", NotNull(), AutoIncrement()).
			Drop("age", "name").
			AddPrimaryKey("serial").
			ChangeColumnType("email", "VARCHAR(100)").
			Rename("members").
			Render()
		require.NoError(t, err)
		assert.Equal(t, "ALTER TABLE users ADD nickname VARCHAR(20) NOT NULL, ADD serial INT NOT NULL AUTO_INCREMENT, "+
			"DROP COLUMN age, DROP COLUMN name, ADD PRIMARY KEY (serial), MODIFY COLUMN email VARCHAR(100), RENAME members", s)
	})

	t.Run("quoted", func(t *testing.T) {
		d := dialect.MustNew(dialect.Options{Provider: dialect.SQLServer, QuoteIdentifiers: true})
		s, err := NewAlter(d, users).ChangeColumnType("age", "BIGINT").Render()
		require.NoError(t, err)
		assert.Equal(t, "ALTER TABLE [users] ALTER COLUMN [age] BIGINT", s)
	})

	t.Run("sqlite cannot change column types", func(t *testing.T) {
		a := NewAlter(sqlite(), users).ChangeColumnType("age", "BIGINT")
		assert.ErrorIs(t, a.Err(), ErrUnsupportedOperation)
		_, err := a.Render()
		assert.ErrorIs(t, err, ErrUnsupportedOperation)
	})

	t.Run("unknown provider is not configured", func(t *testing.T) {
		_, err := NewAlter(provider(dialect.Unknown), users).ChangeColumnType("age", "BIGINT").Render()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("no operations", func(t *testing.T) {
		_, err := NewAlter(sqlite(), users).Render()
		assert.ErrorIs(t, err, ErrNoOperations)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("sink receives text", func(t *testing.T) {
		cmd := NewCommand(sqlite())
		require.NoError(t, NewAlter(sqlite(), users).Drop("age").RenderCommand(cmd))
		assert.Equal(t, "ALTER TABLE users DROP COLUMN age", cmd.Text())
	})
}
