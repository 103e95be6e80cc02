package sqlbuilder_test

import (
	"fmt"

	"github.com/golobby/sqlbuilder"
	"github.com/golobby/sqlbuilder/dialect"
	"github.com/golobby/sqlbuilder/qb"
	"github.com/golobby/sqlbuilder/schema"
)

type Post struct {
	ID     int
	UserID int
	Title  string
}

func ExampleBuilder_SelectFrom() {
	b := sqlbuilder.MustNew(sqlbuilder.Options{Provider: dialect.SQLite})
	posts := schema.MustOf(&Post{})

	s, err := b.SelectFrom(posts).
		Where(b.Condition().Where(posts, "user_id", qb.Eq, 7).And().Where(posts, "title", qb.Like, "%go%")).
		OrderBy().Desc(posts, "id").Finish().
		Limit(10).
		Render()
	if err != nil {
		panic(err)
	}
	fmt.Println(s)
	// Output: SELECT posts.id, posts.user_id, posts.title FROM posts WHERE posts.user_id=7 AND posts.title LIKE '%go%' ORDER BY posts.id DESC LIMIT 10
}

func ExampleBuilder_Insert() {
	b := sqlbuilder.MustNew(sqlbuilder.Options{Provider: dialect.PostgreSQL})
	posts := schema.MustOf(&Post{})

	cmd, err := b.Insert(posts, "user_id", "title").AddRow(7, "hello").AddRow(8, "world").Command()
	if err != nil {
		panic(err)
	}
	fmt.Println(cmd.Text())
	fmt.Println(cmd.Args())
	// Output:
	// INSERT INTO posts (user_id, title) VALUES ($1, $2), ($3, $4)
	// [7 hello 8 world]
}

func ExampleCondition() {
	b := sqlbuilder.MustNew(sqlbuilder.Options{Provider: dialect.MySQL, QuoteIdentifiers: true})
	posts := schema.MustOf(&Post{})

	s, err := b.Condition().
		BeginBlock().
		Where(posts, "id", qb.Eq, 1).
		Or().
		Where(posts, "id", qb.Eq, 2).
		EndBlock().
		And().
		IsNull(posts, "title").
		Render()
	fmt.Println(s, err)

	_, err = b.Condition().Where(posts, "id", qb.Eq, 1).And().Render()
	fmt.Println(err)
	// Output:
	// WHERE (`posts`.`id`=1 OR `posts`.`id`=2) AND `posts`.`title` IS NULL <nil>
	// sqlbuilder: Condition.Render: trailing logic: a WHERE clause cannot end on a logic operator or an opened block
}
