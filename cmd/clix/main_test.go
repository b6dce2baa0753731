package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusfrdk/clix"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// The "-h" flag should print usage and exit cleanly.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_NoManifest(t *testing.T) {
	t.Parallel()

	// No manifest path prints usage and exits cleanly.
	out := &bytes.Buffer{}
	err := run(out, []string{})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ExecutesCommand(t *testing.T) {
	path := writeManifest(t, `
command "echo" {
  option "word" {
    default = "hi"

    child "to_upper" {}
  }
}
`)

	out := &bytes.Buffer{}
	err := run(out, []string{"-manifest", path, "echo", "--word", "yo"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "word = YO")
}

func TestRun_UnknownCommand(t *testing.T) {
	path := writeManifest(t, `
command "echo" {}
`)

	out := &bytes.Buffer{}
	err := run(out, []string{"-manifest", path, "missing"})
	require.Error(t, err)
	assert.Equal(t, 2, clix.ExitCode(err))
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRun_Visualize(t *testing.T) {
	path := writeManifest(t, `
command "echo" {
  option "word" {
    child "to_upper" {}
  }
}
`)

	out := &bytes.Buffer{}
	err := run(out, []string{"-manifest", path, "-visualize", "echo"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "command echo")
	assert.Contains(t, out.String(), "option word")
	assert.Contains(t, out.String(), "to_upper")
}

func TestRun_BadManifestPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-manifest", filepath.Join(t.TempDir(), "absent.hcl"), "x"})
	require.Error(t, err)
	assert.Equal(t, 2, clix.ExitCode(err))
}
