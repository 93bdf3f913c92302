package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runInDir(t *testing.T, args ...string) error {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	app := newApp(dir)
	// Keep exit-coded errors as plain errors instead of exiting the
	// test process.
	app.ExitErrHandler = func(*cli.Context, error) {}

	return app.Run(append([]string{"icontool", "--db", filepath.Join(dir, "icontool.db")}, args...))
}

func TestTemplateAll(t *testing.T) {
	require.NoError(t, runInDir(t, "template", "all", "--rows", "2"))

	for _, out := range []string{"sheet_template.png", "egg_template.png", "sprite_reference.png"} {
		_, err := os.Stat(out)
		assert.NoError(t, err, out)
	}
}

func TestTemplateSingle(t *testing.T) {
	require.NoError(t, runInDir(t, "template", "regular", "--rows", "2", "--out", "custom.png"))

	_, err := os.Stat("custom.png")
	assert.NoError(t, err)
}

func TestTemplateUnknownType(t *testing.T) {
	assert.Error(t, runInDir(t, "template", "nope"))
}
