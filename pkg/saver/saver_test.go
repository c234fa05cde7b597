package saver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSave(t *testing.T) {
	root := filepath.Join(t.TempDir(), "downloads")
	d := NewDir(root, nil)

	path, err := d.Save("lyric-42.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lyric-42.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed into place")
}

func TestDirSave_StaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root, nil)

	path, err := d.Save("../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, root, filepath.Dir(path))

	path, err = d.Save(`Hello: "World"?.pdf`, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "Hello World.pdf", filepath.Base(path))
}

func TestDirSave_InvalidName(t *testing.T) {
	d := NewDir(t.TempDir(), nil)
	for _, name := range []string{"", "..", "."} {
		_, err := d.Save(name, strings.NewReader("x"))
		assert.Error(t, err, "name %q", name)
	}
}
