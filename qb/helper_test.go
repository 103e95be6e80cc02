package qb

import (
	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/schema"
)

var (
	users = schema.New("users",
		schema.IntColumn("id").PK(),
		schema.StringColumn("username"),
		schema.StringColumn("email"),
		schema.IntColumn("age"),
		schema.StringColumn("name"),
		schema.DateColumn("created_at"),
	)
	posts = schema.New("posts",
		schema.IntColumn("id").PK(),
		schema.IntColumn("user_id"),
		schema.StringColumn("title"),
	)
	accounts = schema.New("accounts",
		schema.StringColumn("username"),
		schema.StringColumn("email"),
	)
)

func sqlite() *dialect.Dialect {
	return dialect.MustNew(dialect.Options{Provider: dialect.SQLite})
}

func quoted() *dialect.Dialect {
	return dialect.MustNew(dialect.Options{Provider: dialect.SQLite, QuoteIdentifiers: true})
}

func provider(p dialect.Provider) *dialect.Dialect {
	return dialect.MustNew(dialect.Options{Provider: p})
}
