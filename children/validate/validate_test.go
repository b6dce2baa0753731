package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusfrdk/clix"
)

func check(t *testing.T, child clix.Child, value any) error {
	t.Helper()
	ctx := clix.NewContext(context.Background())
	result, err := clix.Dispatch(child, value, ctx)
	if err == nil {
		// Validators never replace the value.
		assert.Equal(t, value, result)
	}
	return err
}

func TestIsPositive(t *testing.T) {
	t.Parallel()

	assert.NoError(t, check(t, IsPositive(), 3))
	assert.NoError(t, check(t, IsPositive(), 0.5))
	assert.ErrorContains(t, check(t, IsPositive(), 0), "positive")
	assert.ErrorContains(t, check(t, IsPositive(), -1.5), "positive")
	assert.NoError(t, check(t, IsPositive(), clix.Tuple{1, 2.5}))
	assert.ErrorContains(t, check(t, IsPositive(), clix.Tuple{1, -2}), "positive")
	assert.ErrorContains(t, check(t, IsPositive(), clix.Tuple{clix.Tuple{3}, clix.Tuple{-4}}), "positive")
}

func TestLength(t *testing.T) {
	t.Parallel()

	assert.NoError(t, check(t, Length(2, 4), "abc"))
	assert.ErrorContains(t, check(t, Length(2, 4), "a"), "at least 2")
	assert.ErrorContains(t, check(t, Length(2, 4), "abcde"), "at most 4")
	assert.NoError(t, check(t, Length(1, 0), []any{1, 2, 3, 4, 5, 6}))
	assert.ErrorContains(t, check(t, Length(2, 0), clix.Tuple{1}), "at least 2")
}

func TestLessThan(t *testing.T) {
	t.Parallel()

	assert.NoError(t, check(t, LessThan(10), 9))
	assert.ErrorContains(t, check(t, LessThan(10), 10), "below 10")
	assert.ErrorContains(t, check(t, LessThan(1.5), 1.5), "below 1.5")
}

func TestMatches(t *testing.T) {
	t.Parallel()

	child, err := Matches(`^[a-z]+$`)
	require.NoError(t, err)
	assert.NoError(t, check(t, child, "abc"))
	assert.ErrorContains(t, check(t, child, "Abc"), "does not match")

	_, err = Matches(`[`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustMatch(`[`) })
}

func TestNonEmpty(t *testing.T) {
	t.Parallel()

	assert.NoError(t, check(t, NonEmpty(), "x"))
	assert.ErrorContains(t, check(t, NonEmpty(), ""), "non-empty")
	assert.ErrorContains(t, check(t, NonEmpty(), []any{}), "non-empty")
	assert.ErrorContains(t, check(t, NonEmpty(), map[string]any{}), "non-empty")

	ctx := clix.NewContext(context.Background())
	_, err := clix.Dispatch(NonEmpty(), nil, ctx)
	assert.ErrorContains(t, err, "got nothing")
}

func TestRequireOne(t *testing.T) {
	t.Parallel()
	ctx := clix.NewContext(context.Background()).WithTagMode()

	dispatchTag := func(child clix.Child, values map[string]any) error {
		_, err := clix.Dispatch(child, values, ctx)
		return err
	}

	t.Run("considers every aggregated parent by default", func(t *testing.T) {
		assert.NoError(t, dispatchTag(RequireOne(), map[string]any{"a": 1, "b": nil}))
		assert.ErrorContains(t,
			dispatchTag(RequireOne(), map[string]any{"a": nil, "b": nil}),
			"got none")
		assert.ErrorContains(t,
			dispatchTag(RequireOne(), map[string]any{"a": 1, "b": 2}),
			"a and b")
	})

	t.Run("explicit names narrow the check", func(t *testing.T) {
		values := map[string]any{"a": 1, "b": 2, "c": nil}
		assert.ErrorContains(t, dispatchTag(RequireOne("a", "b"), values), "exactly one")
		assert.NoError(t, dispatchTag(RequireOne("a", "c"), values))
	})
}
