package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/children/transform"
	"github.com/marcusfrdk/clix/children/validate"
	"github.com/marcusfrdk/clix/registry"
)

func testRegistry() *registry.Registry {
	r := registry.New()
	r.Install(transform.Module{}, validate.Module{})
	return r
}

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileBuildsCommands(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "greet.hcl", `
command "greet" {
  summary = "Greet someone."

  option "greeting" {
    default = "hello"
    short   = "g"

    child "trim" {}
    child "to_upper" {}
  }

  argument "name" {
    required = true

    child "non_empty" {}
  }
}
`)

	loader := NewLoader(testRegistry())
	var got clix.Values
	loader.Bind("greet", func(ctx *clix.Context, values clix.Values) error {
		got = values
		return nil
	})

	commands, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, commands, 1)

	command := commands[0]
	assert.Equal(t, "greet", command.Root().Name())
	require.NotNil(t, command.Root().Parent("greeting"))
	assert.Len(t, command.Root().Parent("greeting").ChildNodes(), 2)

	command.Cobra().SetArgs([]string{"--greeting", "  hey  ", "marcus"})
	require.NoError(t, command.Execute())
	assert.Equal(t, "HEY", got.String("greeting"))
	assert.Equal(t, "marcus", got.String("name"))
}

func TestLoadFileChildArguments(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "scale.hcl", `
command "scale" {
  option "factor" {
    type    = "int"
    default = 2

    child "multiply" {
      factor = 10
    }
    child "less_than" {
      limit = 1000
    }
  }
}
`)

	loader := NewLoader(testRegistry())
	var got clix.Values
	loader.Bind("scale", func(ctx *clix.Context, values clix.Values) error {
		got = values
		return nil
	})

	commands, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, commands, 1)

	commands[0].Cobra().SetArgs([]string{"--factor", "7"})
	require.NoError(t, commands[0].Execute())
	assert.Equal(t, 70, got.Int("factor"))
}

func TestLoadFileTags(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "signup.hcl", `
command "signup" {
  option "email" {
    tags = ["contact"]
  }
  option "phone" {
    tags = ["contact"]
  }

  tag "contact" {
    child "require_one" {}
  }
}
`)

	loader := NewLoader(testRegistry())
	loader.Bind("signup", func(*clix.Context, clix.Values) error { return nil })

	commands, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, commands, 1)

	commands[0].Cobra().SetArgs([]string{"--email", "a@b.c"})
	assert.NoError(t, commands[0].Execute())

	commands[0].Cobra().SetArgs([]string{})
	err = commands[0].Execute()
	require.Error(t, err)
	assert.Equal(t, 2, clix.ExitCode(err))
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	loader := NewLoader(testRegistry())

	t.Run("unknown child", func(t *testing.T) {
		path := writeManifest(t, "bad.hcl", `
command "x" {
  option "y" {
    child "does_not_exist" {}
  }
}
`)
		_, err := loader.LoadFile(context.Background(), path)
		assert.ErrorContains(t, err, "unknown child")
	})

	t.Run("unknown kind", func(t *testing.T) {
		path := writeManifest(t, "kind.hcl", `
command "x" {
  option "y" {
    type = "whatever"
  }
}
`)
		_, err := loader.LoadFile(context.Background(), path)
		assert.ErrorContains(t, err, "unknown kind")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeManifest(t, "broken.hcl", `command "x" {`)
		_, err := loader.LoadFile(context.Background(), path)
		assert.ErrorContains(t, err, "parse")
	})
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
command "alpha" {}
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
group "tools" {
  command "beta" {
    option "flag" {}
  }
}
`), 0o600))

	loader := NewLoader(testRegistry())
	commands, err := loader.LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, commands, 2)
	assert.Equal(t, "alpha", commands[0].Root().Name())
	assert.Equal(t, "tools", commands[1].Root().Name())
}
