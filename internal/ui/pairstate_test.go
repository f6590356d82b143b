package ui

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicky-ayoub/ebitcompare/internal/service"
)

func loadedImage(w, h int) *service.LoadedImage {
	return &service.LoadedImage{
		Info:  &service.ImageInfo{Width: w, Height: h},
		Image: image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

func TestPairStateLoading(t *testing.T) {
	ps := NewPairState(service.Pair{Before: "b.png", After: "a.png"})
	assert.False(t, ps.Ready())
	assert.Equal(t, 0.0, ps.AspectRatio())

	ps.SetLoaded(After, loadedImage(100, 100))
	assert.False(t, ps.Ready())
	assert.Equal(t, 1.0, ps.AspectRatio())

	ps.SetLoaded(Before, loadedImage(200, 100))
	assert.True(t, ps.Ready())
	assert.Equal(t, 2.0, ps.AspectRatio())

	img, version := ps.Layer(Before)
	require.NotNil(t, img)
	assert.Equal(t, 1, version)

	ps.SetLoaded(Before, loadedImage(300, 100))
	_, version = ps.Layer(Before)
	assert.Equal(t, 2, version)
}

func TestPairStateErrorKeepsImage(t *testing.T) {
	ps := NewPairState(service.Pair{Before: "b.png", After: "a.png"})
	ps.SetLoaded(Before, loadedImage(10, 10))
	ps.SetError(Before, errors.New("truncated"))

	img, _ := ps.Layer(Before)
	assert.NotNil(t, img)
	assert.EqualError(t, ps.Err(Before), "truncated")
	assert.Contains(t, ps.Dump(), "before: b.png (error: truncated)")
	assert.Contains(t, ps.Dump(), "after: a.png (loading)")

	ps.SetLoaded(Before, loadedImage(10, 10))
	assert.NoError(t, ps.Err(Before))
}

func TestPairStateSideForPath(t *testing.T) {
	dir := t.TempDir()
	before := filepath.Join(dir, "x.png")
	after := filepath.Join(dir, "y.png")
	ps := NewPairState(service.Pair{Before: before, After: after})

	side, ok := ps.SideForPath(filepath.Join(dir, ".", "y.png"))
	assert.True(t, ok)
	assert.Equal(t, After, side)
	assert.Equal(t, "after", side.String())

	_, ok = ps.SideForPath(filepath.Join(dir, "z.png"))
	assert.False(t, ok)
}
