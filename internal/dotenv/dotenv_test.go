package dotenv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("pairs comments and quoting", func(t *testing.T) {
		input := strings.Join([]string{
			"# a comment",
			"",
			"PLAIN=value",
			"export EXPORTED=yes",
			`DOUBLE="quoted value"`,
			"SINGLE='single quoted'",
			"SPACED =  padded  ",
		}, "\n")

		values, err := Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"PLAIN":    "value",
			"EXPORTED": "yes",
			"DOUBLE":   "quoted value",
			"SINGLE":   "single quoted",
			"SPACED":   "padded",
		}, values)
	})

	t.Run("missing equals sign", func(t *testing.T) {
		_, err := Parse(strings.NewReader("NOT A PAIR"))
		assert.ErrorContains(t, err, "missing '='")
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := Parse(strings.NewReader("=value"))
		assert.ErrorContains(t, err, "empty key")
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("KEY=val\n"), 0o600))

		values, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "val", values["KEY"])
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		values, err := Load(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		assert.Empty(t, values)
	})
}
