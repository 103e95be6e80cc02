package qb

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/golobby/sqlbuilder/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondition(t *testing.T) {
	t.Run("value comparisons joined by and", func(t *testing.T) {
		c := NewCondition(sqlite()).
			Compare(users, "id", GT, "50", schema.Integer).
			And().
			Compare(users, "age", LT, "40", schema.Integer)
		s, err := c.Render()
		require.NoError(t, err)
		assert.Equal(t, "WHERE users.id>50 AND users.age<40", s)
	})

	t.Run("quoted identifiers", func(t *testing.T) {
		c := NewCondition(quoted()).
			Compare(users, "id", GT, "50", schema.Integer).
			And().
			Compare(users, "age", LT, "40", schema.Integer)
		s, err := c.Render()
		require.NoError(t, err)
		assert.Equal(t, `WHERE "users"."id">50 AND "users"."age"<40`, s)
	})

	t.Run("blocks hug their content", func(t *testing.T) {
		c := NewCondition(sqlite()).
			Compare(users, "id", GT, 50, schema.Integer).
			And().
			BeginBlock().
			BeginBlock().
			IsNull(users, "email").
			Or().
			CompareColumns(users, "id", Eq, posts, "user_id").
			EndBlock().
			Or().
			Compare(users, "name", Eq, "bob", schema.String).
			EndBlock()
		s, err := c.Render()
		require.NoError(t, err)
		assert.Equal(t, "WHERE users.id>50 AND ((users.email IS NULL OR users.id=posts.user_id) OR users.name='bob')", s)
		assert.Equal(t, 0, c.Depth())
	})

	t.Run("condition may start with a block", func(t *testing.T) {
		s, err := NewCondition(sqlite()).BeginBlock().IsNull(users, "email").EndBlock().Render()
		require.NoError(t, err)
		assert.Equal(t, "WHERE (users.email IS NULL)", s)
	})

	t.Run("where uses the declared column type", func(t *testing.T) {
		s, err := NewCondition(sqlite()).Where(users, "username", Eq, "bob").Render()
		require.NoError(t, err)
		assert.Equal(t, "WHERE users.username='bob'", s)
	})

	t.Run("date values use the provider function", func(t *testing.T) {
		s, err := NewCondition(sqlite()).Where(users, "created_at", GE, "2022-01-02 03:04:05").Render()
		require.NoError(t, err)
		assert.Equal(t, "WHERE users.created_at>=datetime('2022-01-02 03:04:05')", s)
	})

	t.Run("render is idempotent", func(t *testing.T) {
		c := NewCondition(sqlite()).IsNull(users, "email")
		first, err := c.Render()
		require.NoError(t, err)
		second, err := c.Render()
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, first, c.String())
	})
}

func TestConditionErrors(t *testing.T) {
	cases := []struct {
		name  string
		build func(c *Condition) *Condition
		want  error
		kind  Kind
	}{
		{"begin block followed by and", func(c *Condition) *Condition { return c.BeginBlock().And() }, ErrSequence, KindSequence},
		{"begin block followed by or", func(c *Condition) *Condition { return c.BeginBlock().Or() }, ErrSequence, KindSequence},
		{"starts with logic", func(c *Condition) *Condition { return c.Or() }, ErrSequence, KindSequence},
		{"two logic operators", func(c *Condition) *Condition { return c.IsNull(users, "email").And().Or() }, ErrSequence, KindSequence},
		{"two predicates", func(c *Condition) *Condition { return c.IsNull(users, "email").IsNull(users, "name") }, ErrSequence, KindSequence},
		{"block after predicate", func(c *Condition) *Condition { return c.IsNull(users, "email").BeginBlock() }, ErrSequence, KindSequence},
		{"predicate after closed block", func(c *Condition) *Condition {
			return c.BeginBlock().IsNull(users, "email").EndBlock().IsNull(users, "name")
		}, ErrSequence, KindSequence},
		{"end block at depth zero", func(c *Condition) *Condition { return c.EndBlock() }, ErrState, KindState},
		{"end block after predicate at depth zero", func(c *Condition) *Condition { return c.IsNull(users, "email").EndBlock() }, ErrState, KindState},
		{"end block on logic", func(c *Condition) *Condition { return c.BeginBlock().IsNull(users, "email").And().EndBlock() }, ErrSequence, KindSequence},
		{"empty block", func(c *Condition) *Condition { return c.BeginBlock().EndBlock() }, ErrSequence, KindSequence},
		{"trailing and", func(c *Condition) *Condition { return c.IsNull(users, "email").And() }, ErrTrailingLogic, KindTrailingLogic},
		{"trailing or", func(c *Condition) *Condition { return c.IsNull(users, "email").Or() }, ErrTrailingLogic, KindTrailingLogic},
		{"dangling block opener", func(c *Condition) *Condition { return c.BeginBlock() }, ErrTrailingLogic, KindTrailingLogic},
		{"unclosed block", func(c *Condition) *Condition { return c.BeginBlock().IsNull(users, "email") }, ErrUnclosedBlock, KindUnclosedBlock},
		{"empty", func(c *Condition) *Condition { return c }, ErrEmpty, KindEmpty},
		{"unknown column", func(c *Condition) *Condition { return c.IsNull(users, "missing") }, ErrUnknownColumn, KindUnknownColumn},
		{"unknown right column", func(c *Condition) *Condition { return c.CompareColumns(users, "id", Eq, posts, "missing") }, ErrUnknownColumn, KindUnknownColumn},
		{"non integer value", func(c *Condition) *Condition { return c.Compare(users, "id", Eq, "abc", schema.Integer) }, ErrInvalidArgument, KindInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.build(NewCondition(sqlite()))
			s, err := c.Render()
			assert.Empty(t, s)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}

	t.Run("first error sticks", func(t *testing.T) {
		c := NewCondition(sqlite()).And()
		first := c.Err()
		require.Error(t, first)
		c.IsNull(users, "email").EndBlock()
		assert.Same(t, first, c.Err())
		assert.Contains(t, first.Error(), "Condition.And")
	})

	t.Run("nil dialect", func(t *testing.T) {
		_, err := NewCondition(nil).IsNull(users, "email").Render()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("unknown provider cannot format dates", func(t *testing.T) {
		_, err := NewCondition(provider(0)).Where(users, "created_at", Eq, "2022-01-02 03:04:05").Render()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

// Valid conditions never render adjacent logic operators or a logic operator next to a parenthesis.
func TestConditionRenderShape(t *testing.T) {
	conds := []*Condition{
		NewCondition(sqlite()).BeginBlock().BeginBlock().IsNull(users, "email").EndBlock().EndBlock(),
		NewCondition(sqlite()).IsNull(users, "email").Or().BeginBlock().IsNull(users, "name").And().IsNull(users, "age").EndBlock(),
		NewCondition(sqlite()).BeginBlock().IsNull(users, "email").EndBlock().And().BeginBlock().IsNull(users, "name").EndBlock(),
	}
	for _, c := range conds {
		s, err := c.Render()
		require.NoError(t, err)
		assert.Equal(t, strings.Count(s, "("), strings.Count(s, ")"))
		for _, bad := range []string{"AND AND", "AND OR", "OR AND", "OR OR", "( AND", "(AND", "(OR", "AND)", "OR)", "( ", " )"} {
			assert.NotContains(t, s, bad)
		}
	}
}

// randomCondition builds a legal token sequence, returning it with its block and logic operator counts.
func randomCondition(rng *rand.Rand, steps int) (c *Condition, blocks, logic int) {
	c = NewCondition(sqlite())
	expecting, depth := true, 0
	predicate := func() {
		switch rng.Intn(3) {
		case 0:
			c.IsNull(users, "email")
		case 1:
			c.Where(users, "id", GT, rng.Intn(100))
		default:
			c.CompareColumns(users, "id", Eq, posts, "user_id")
		}
		expecting = false
	}
	for i := 0; i < steps; i++ {
		if expecting {
			if depth < 4 && rng.Intn(3) == 0 {
				c.BeginBlock()
				depth++
				blocks++
				continue
			}
			predicate()
			continue
		}
		switch r := rng.Intn(5); {
		case r == 0 && depth > 0:
			c.EndBlock()
			depth--
		case r%2 == 0:
			c.And()
			logic++
			expecting = true
		default:
			c.Or()
			logic++
			expecting = true
		}
	}
	if expecting {
		predicate()
	}
	for ; depth > 0; depth-- {
		c.EndBlock()
	}
	return c, blocks, logic
}

func TestConditionRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		c, blocks, logic := randomCondition(rng, 1+rng.Intn(30))
		s, err := c.Render()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(s, "WHERE "), s)
		assert.Equal(t, blocks, strings.Count(s, "("), s)
		assert.Equal(t, blocks, strings.Count(s, ")"), s)
		assert.Equal(t, logic, strings.Count(s, " AND ")+strings.Count(s, " OR "), s)

		open := 0
		for _, r := range s {
			switch r {
			case '(':
				open++
			case ')':
				open--
			}
			require.GreaterOrEqual(t, open, 0, s)
		}
		for _, bad := range []string{"AND AND", "AND OR", "OR AND", "OR OR", "(AND", "(OR", "AND)", "OR)", "( ", " )", "()", ")("} {
			assert.NotContains(t, s, bad)
		}
	}
}

func TestConditionCommand(t *testing.T) {
	c := NewCondition(sqlite()).
		Compare(users, "id", GT, "50", schema.Integer).
		And().
		Where(users, "username", Eq, "bob")
	cmd := NewCommand(sqlite())
	require.NoError(t, c.RenderCommand(cmd))

	assert.Equal(t, "WHERE users.id>@p1 AND users.username=@p2", cmd.Text())
	params := cmd.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, Parameter{Name: "p1", Value: int64(50), Type: schema.Integer}, params[0])
	assert.Equal(t, Parameter{Name: "p2", Value: "bob", Type: schema.String}, params[1])

	t.Run("invalid condition leaves sink untouched", func(t *testing.T) {
		cmd := NewCommand(sqlite())
		err := NewCondition(sqlite()).IsNull(users, "email").And().RenderCommand(cmd)
		assert.ErrorIs(t, err, ErrTrailingLogic)
		assert.Empty(t, cmd.Text())
		assert.Zero(t, cmd.ParameterCount())
	})

	t.Run("nil sink", func(t *testing.T) {
		err := NewCondition(sqlite()).IsNull(users, "email").RenderCommand(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
