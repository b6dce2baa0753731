package clix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForSlotShapes(t *testing.T) {
	t.Parallel()

	t.Run("nested tuple rejected by FlatTuple", func(t *testing.T) {
		err := validateForSlot("FlatTuple", Tuple{Tuple{1}}, Handlers{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "NestedTuple handler slot")
	})

	t.Run("mixed tuple rejected by FlatTuple", func(t *testing.T) {
		err := validateForSlot("FlatTuple", Tuple{1, Tuple{2}}, Handlers{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "generic Tuple handler slot")
	})

	t.Run("flat tuple rejected by NestedTuple", func(t *testing.T) {
		err := validateForSlot("NestedTuple", Tuple{1, 2}, Handlers{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "FlatTuple handler slot")
	})

	t.Run("matching shapes pass", func(t *testing.T) {
		assert.NoError(t, validateForSlot("FlatTuple", Tuple{1, "a"}, Handlers{}))
		assert.NoError(t, validateForSlot("NestedTuple", Tuple{Tuple{1}}, Handlers{}))
	})
}

func TestValidateForSlotElemKinds(t *testing.T) {
	t.Parallel()

	t.Run("flat tuple element constraint", func(t *testing.T) {
		h := Handlers{FlatTupleElem: []Kind{KindInt, KindFloat}}
		assert.NoError(t, validateForSlot("FlatTuple", Tuple{1, 2.5}, h))

		err := validateForSlot("FlatTuple", Tuple{1, "a", "b"}, h)
		require.Error(t, err)
		assert.ErrorContains(t, err, "float | int")
		assert.ErrorContains(t, err, `"a" (string)`)
	})

	t.Run("at most three offenders are spelled out", func(t *testing.T) {
		h := Handlers{FlatTupleElem: []Kind{KindInt}}
		err := validateForSlot("FlatTuple", Tuple{"a", "b", "c", "d", "e"}, h)
		require.Error(t, err)
		assert.ErrorContains(t, err, "5 element(s)")
		assert.ErrorContains(t, err, `"c"`)
		assert.NotContains(t, err.Error(), `"d"`)
	})

	t.Run("string elements with numeric constraint get a tip", func(t *testing.T) {
		h := Handlers{ListElem: []Kind{KindInt}}
		err := validateForSlot("List", []any{"7"}, h)
		require.Error(t, err)
		assert.ErrorContains(t, err, "Tip:")
	})

	t.Run("nested tuple inner elements validated one level deep", func(t *testing.T) {
		h := Handlers{NestedTupleElem: []Kind{KindInt}}
		assert.NoError(t, validateForSlot("NestedTuple", Tuple{Tuple{1, 2}, []any{3}}, h))

		err := validateForSlot("NestedTuple", Tuple{Tuple{1}, Tuple{"x"}}, h)
		require.Error(t, err)
		assert.ErrorContains(t, err, `"x" (string)`)
	})

	t.Run("no declared constraint accepts anything", func(t *testing.T) {
		assert.NoError(t, validateForSlot("List", []any{1, "a", true}, Handlers{}))
	})
}
