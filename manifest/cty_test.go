package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestCtyToGo(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		v, err := ctyToGo(cty.StringVal("s"))
		require.NoError(t, err)
		assert.Equal(t, "s", v)

		v, err = ctyToGo(cty.NumberIntVal(7))
		require.NoError(t, err)
		assert.Equal(t, 7, v)

		v, err = ctyToGo(cty.NumberFloatVal(2.5))
		require.NoError(t, err)
		assert.Equal(t, 2.5, v)

		v, err = ctyToGo(cty.True)
		require.NoError(t, err)
		assert.Equal(t, true, v)

		v, err = ctyToGo(cty.NullVal(cty.String))
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("collections", func(t *testing.T) {
		v, err := ctyToGo(cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}))
		require.NoError(t, err)
		assert.Equal(t, []any{"a", 1}, v)

		v, err = ctyToGo(cty.ObjectVal(map[string]cty.Value{"k": cty.NumberIntVal(3)}))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"k": 3}, v)
	})
}
