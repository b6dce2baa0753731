package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusfrdk/clix"
)

func dispatch(t *testing.T, child clix.Child, value any) any {
	t.Helper()
	ctx := clix.NewContext(context.Background())
	result, err := clix.Dispatch(child, value, ctx)
	require.NoError(t, err)
	return result
}

func TestStringTransforms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pre-x", dispatch(t, AddPrefix("pre-"), "x"))
	assert.Equal(t, "x-post", dispatch(t, AddSuffix("-post"), "x"))
	assert.Equal(t, "LOUD", dispatch(t, ToUpper(), "loud"))
	assert.Equal(t, "quiet", dispatch(t, ToLower(), "QUIET"))
	assert.Equal(t, "mid", dispatch(t, Trim(""), "  mid  "))
	assert.Equal(t, "mid", dispatch(t, Trim("_"), "__mid__"))
}

func TestPathTransforms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, clix.Path("/srv/app"), dispatch(t, AddPrefix("/srv"), clix.Path("/app")))
	assert.Equal(t, clix.Path("/a/c"), dispatch(t, AsPath(), "/a/b/../c"))
	assert.Equal(t, clix.Path("/a/c"), dispatch(t, AsPath(), clix.Path("/a/./c")))
}

func TestToCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "api_key", dispatch(t, MustToCase("snake"), "apiKey"))
	assert.Equal(t, "ApiKey", dispatch(t, MustToCase("pascal"), "api_key"))
	assert.Equal(t, "API_KEY", dispatch(t, MustToCase("screaming_snake"), "api-key"))
	assert.Equal(t, "api.key", dispatch(t, MustToCase("dot"), "api-key"))

	_, err := ToCase("shouting")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown case style")
}

func TestMultiply(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 6, dispatch(t, Multiply(3), 2))
	assert.Equal(t, 5.0, dispatch(t, Multiply(2), 2.5))
	assert.Equal(t, clix.Tuple{4, 5.0}, dispatch(t, Multiply(2), clix.Tuple{2, 2.5}))
}
