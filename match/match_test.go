package match

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
templates:
  - name: repeated-param
    params:
      x:
        name: java.lang.String
    pattern:
      kind: call
      text: bar
      children:
        - kind: identifier
          text: bar
        - kind: identifier
          text: x
        - kind: identifier
          text: x
`

const matchingTree = `
kind: call
text: bar
children:
  - kind: identifier
    text: bar
  - kind: identifier
    text: a
    type: {name: java.lang.String}
  - kind: identifier
    text: a
    type: {name: java.lang.String}
`

const nonMatchingTree = `
kind: call
text: bar
children:
  - kind: identifier
    text: bar
  - kind: identifier
    text: a
    type: {name: java.lang.String}
  - kind: identifier
    text: b
    type: {name: java.lang.String}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewAndProcessFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "templates.yaml", testCatalog)
	treePath := writeFile(t, dir, "candidate.yaml", matchingTree)

	reg, err := New(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	results, err := ProcessFile(reg, treePath)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, treePath, results[0].Filename)
	assert.Equal(t, "repeated-param", results[0].Template)
	assert.Equal(t, "a", results[0].Params["x"].Text)
}

func TestNewMissingCatalog(t *testing.T) {
	t.Parallel()
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestProcessFilesOverDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "templates.yaml", testCatalog)

	trees := filepath.Join(dir, "trees")
	require.NoError(t, os.Mkdir(trees, 0o755))
	writeFile(t, trees, "hit.yaml", matchingTree)
	writeFile(t, trees, "miss.yaml", nonMatchingTree)
	writeFile(t, trees, "ignored.txt", "not a tree")

	reg, err := New(catalogPath)
	require.NoError(t, err)

	results, err := ProcessFiles(context.Background(), nil, reg, []string{trees})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(trees, "hit.yaml"), results[0].Filename)
}

func TestProcessPathBadTreeFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "templates.yaml", testCatalog)
	bad := writeFile(t, dir, "bad.yaml", "kind: no-such-kind")

	reg, err := New(catalogPath)
	require.NoError(t, err)

	_, err = ProcessFile(reg, bad)
	assert.ErrorContains(t, err, "unknown node kind")
}

func TestProcessFilesCancelledContext(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "templates.yaml", testCatalog)
	trees := filepath.Join(dir, "trees")
	require.NoError(t, os.Mkdir(trees, 0o755))
	writeFile(t, trees, "hit.yaml", matchingTree)

	reg, err := New(catalogPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ProcessFiles(ctx, nil, reg, []string{trees})
	assert.ErrorIs(t, err, context.Canceled)
}
