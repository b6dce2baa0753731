package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		fn    func(string) string
		input string
		want  string
	}{
		{"snake from kebab", Snake, "api-key", "api_key"},
		{"snake from camel", Snake, "apiKey", "api_key"},
		{"snake from pascal", Snake, "APIKey", "api_key"},
		{"screaming snake", ScreamingSnake, "api-key", "API_KEY"},
		{"kebab from snake", Kebab, "api_key", "api-key"},
		{"pascal", Pascal, "api_key", "ApiKey"},
		{"camel", Camel, "api_key", "apiKey"},
		{"train", Train, "api_key", "Api-Key"},
		{"flat", Flat, "api_key", "apikey"},
		{"dot", Dot, "api_key", "api.key"},
		{"title", Title, "api_key", "Api Key"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.fn(tc.input))
		})
	}
}

func TestFlagPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsShortFlag("-a"))
	assert.False(t, IsShortFlag("--api-key"))
	assert.True(t, IsSnake("api_key"))
	assert.False(t, IsSnake("api-key"))
}

func TestParamName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "api_key", ParamName("--api-key"))
	assert.Equal(t, "api_key", ParamName("api-key"))
	assert.Equal(t, "api_key", ParamName("api_key"))
	assert.Equal(t, "v", ParamName("-v"))
}
