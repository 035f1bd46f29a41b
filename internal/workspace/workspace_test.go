package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoRoots)
	_, err = New("", "")
	assert.ErrorIs(t, err, ErrNoRoots)

	a, b := t.TempDir(), t.TempDir()
	d, err := New(a, b, a)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, d.Roots())

	// Roots returns a copy.
	d.Roots()[0] = "mutated"
	assert.Equal(t, a, d.Roots()[0])
}

func TestNew_Relative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	d, err := New(".")
	require.NoError(t, err)
	assert.Equal(t, []string{wd}, d.Roots())
}

func TestContains(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	d, err := New(root)
	require.NoError(t, err)

	assert.True(t, d.Contains(root))
	assert.True(t, d.Contains(filepath.Join(root, "src")))
	assert.True(t, d.Contains(filepath.Join(root, "not", "yet", "created")))
	assert.False(t, d.Contains(other))
	assert.False(t, d.Contains(filepath.Dir(root)))
	assert.False(t, d.Contains(root+"-sibling"))
	assert.False(t, d.Contains("relative/path"))
}

func TestContains_Symlink(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(root, "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	inner := filepath.Join(root, "inner")
	require.NoError(t, os.Mkdir(inner, 0755))
	require.NoError(t, os.Symlink(inner, filepath.Join(root, "alias")))

	d, err := New(root)
	require.NoError(t, err)
	assert.False(t, d.Contains(link), "link pointing outside the root")
	assert.True(t, d.Contains(filepath.Join(root, "alias")), "link pointing inside the root")
}

func TestContains_MultipleRoots(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	d, err := New(a, b)
	require.NoError(t, err)
	assert.True(t, d.Contains(a))
	assert.True(t, d.Contains(filepath.Join(b, "x")))
}
