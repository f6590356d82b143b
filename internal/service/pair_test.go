package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestResolveTwoArgs(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "left.JPG")
	b := touch(t, dir, "right.png")

	p, err := NewPairService().Resolve([]string{a, b}, ".")
	require.NoError(t, err)
	assert.Equal(t, Pair{Before: a, After: b}, p)
}

func TestResolveRejectsUnsupported(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "left.png")
	b := touch(t, dir, "right.tiff")

	_, err := NewPairService().Resolve([]string{a, b}, ".")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NewPairService().Resolve([]string{a, filepath.Join(dir, "missing.png")}, ".")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewPairService().Resolve([]string{a, a, a}, ".")
	assert.Error(t, err)
}

func TestFindInDirByName(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_first.png")
	after := touch(t, dir, "kitchen-after.jpg")
	before := touch(t, dir, "kitchen-before.jpg")
	touch(t, dir, "readme.txt")

	p, err := NewPairService().Resolve(nil, dir)
	require.NoError(t, err)
	assert.Equal(t, Pair{Before: before, After: after}, p)
}

func TestFindInDirFallsBackToNameOrder(t *testing.T) {
	dir := t.TempDir()
	second := touch(t, dir, "b.png")
	first := touch(t, dir, "a.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.png"), 0o755))

	p, err := NewPairService().Resolve([]string{dir}, "ignored")
	require.NoError(t, err)
	assert.Equal(t, Pair{Before: first, After: second}, p)
}

func TestFindInDirNotEnoughImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "only.png")

	_, err := NewPairService().FindInDir(dir)
	assert.ErrorIs(t, err, ErrPairNotFound)
}
