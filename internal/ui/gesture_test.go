package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicky-ayoub/ebitcompare/internal/compare"
)

func newTestRig(t *testing.T) (*GestureDispatcher, *compare.Controller, *Surface) {
	t.Helper()
	s := NewSurface(20)
	s.SetBounds(compare.Bounds{Width: 400, Height: 300})
	c := compare.NewController(s, compare.DefaultOptions())
	c.SetAspectRatio(400.0 / 300.0)
	return NewGestureDispatcher(c, s, 100), c, s
}

func mouse(x, y float64, down bool) InputState {
	return InputState{MouseX: x, MouseY: y, MouseDown: down}
}

func touches(ts ...Touch) InputState {
	return InputState{Touches: ts}
}

func TestMousePressOnHandleDragsSlider(t *testing.T) {
	d, c, s := newTestRig(t)

	d.Dispatch(mouse(205, 150, true))
	require.Equal(t, compare.DraggingSlider, c.Mode())

	d.Dispatch(mouse(100, 150, true))
	assert.Equal(t, 25.0, c.State().SliderPercent)
	assert.Equal(t, 25.0, s.Percent())

	d.Dispatch(mouse(100, 150, false))
	assert.Equal(t, compare.Idle, c.Mode())
}

func TestMousePressOffHandlePans(t *testing.T) {
	d, c, s := newTestRig(t)
	c.ApplyWheelZoom(-1000)

	d.Dispatch(mouse(50, 50, true))
	require.Equal(t, compare.PanningView, c.Mode())

	d.Dispatch(mouse(80, 70, true))
	assert.Equal(t, compare.Offset{X: 30, Y: 20}, c.State().PanOffset)
	assert.Less(t, s.Position().X, 50.0)
	assert.Equal(t, 50.0, c.State().SliderPercent)

	d.Dispatch(mouse(80, 70, false))
	assert.Equal(t, compare.Idle, c.Mode())
}

func TestMousePressOutsideContainerIgnored(t *testing.T) {
	d, c, _ := newTestRig(t)
	d.Dispatch(mouse(500, 500, true))
	assert.Equal(t, compare.Idle, c.Mode())
}

func TestWheelZoomsIn(t *testing.T) {
	d, c, s := newTestRig(t)

	d.Dispatch(InputState{WheelY: 1})
	assert.InDelta(t, 1.15, c.State().Scale, 1e-9)
	assert.InDelta(t, 1.15, s.Scale(), 1e-9)

	d.Dispatch(InputState{WheelY: -1})
	assert.InDelta(t, 1.0, c.State().Scale, 1e-9)
}

func TestTouchPanThenPinch(t *testing.T) {
	d, c, _ := newTestRig(t)

	d.Dispatch(touches(Touch{ID: 1, X: 50, Y: 50}))
	require.Equal(t, compare.PanningView, c.Mode())

	d.Dispatch(touches(Touch{ID: 1, X: 50, Y: 50}, Touch{ID: 2, X: 150, Y: 50}))
	require.Equal(t, compare.PinchZooming, c.Mode())

	d.Dispatch(touches(Touch{ID: 1, X: 50, Y: 50}, Touch{ID: 2, X: 250, Y: 50}))
	assert.Equal(t, 2.0, c.State().Scale)

	d.Dispatch(touches(Touch{ID: 1, X: 50, Y: 50}))
	assert.Equal(t, compare.Idle, c.Mode())

	d.Dispatch(touches(Touch{ID: 1, X: 90, Y: 90}))
	assert.Equal(t, compare.Offset{}, c.State().PanOffset)

	d.Dispatch(touches())
	assert.Equal(t, compare.Idle, c.Mode())
}

func TestTouchPinchNewPairRestartsGesture(t *testing.T) {
	d, c, _ := newTestRig(t)

	d.Dispatch(touches(Touch{ID: 1, X: 0, Y: 0}, Touch{ID: 2, X: 100, Y: 0}))
	d.Dispatch(touches(Touch{ID: 1, X: 0, Y: 0}, Touch{ID: 2, X: 300, Y: 0}))
	require.Equal(t, 3.0, c.State().Scale)

	d.Dispatch(touches(Touch{ID: 1, X: 0, Y: 0}, Touch{ID: 3, X: 50, Y: 0}))
	assert.Equal(t, 50.0, c.State().PinchAnchor.StartDistance)
	assert.Equal(t, 3.0, c.State().PinchAnchor.StartScale)
}

func TestTouchSliderIgnoresSecondFinger(t *testing.T) {
	d, c, _ := newTestRig(t)

	d.Dispatch(touches(Touch{ID: 1, X: 200, Y: 150}))
	require.Equal(t, compare.DraggingSlider, c.Mode())

	d.Dispatch(touches(Touch{ID: 1, X: 300, Y: 150}, Touch{ID: 2, X: 10, Y: 10}))
	assert.Equal(t, compare.DraggingSlider, c.Mode())
	assert.Equal(t, 75.0, c.State().SliderPercent)
	assert.Equal(t, 1.0, c.State().Scale)

	d.Dispatch(touches())
	assert.Equal(t, compare.Idle, c.Mode())
}

func TestMouseIgnoredWhileTouching(t *testing.T) {
	d, c, _ := newTestRig(t)

	in := touches(Touch{ID: 4, X: 50, Y: 50})
	in.MouseDown = true
	in.MouseX, in.MouseY = 200, 150
	d.Dispatch(in)
	assert.Equal(t, compare.PanningView, c.Mode())
}

func TestTouchSliderEndsWhenOwnerLifts(t *testing.T) {
	d, c, s := newTestRig(t)

	d.Dispatch(touches(Touch{ID: 1, X: 200, Y: 150}))
	require.Equal(t, compare.DraggingSlider, c.Mode())

	d.Dispatch(touches(Touch{ID: 1, X: 220, Y: 150}, Touch{ID: 2, X: 20, Y: 150}))
	require.Equal(t, 55.0, c.State().SliderPercent)

	d.Dispatch(touches(Touch{ID: 2, X: 20, Y: 150}))
	assert.Equal(t, compare.Idle, c.Mode())
	assert.Equal(t, 55.0, c.State().SliderPercent)
	assert.Equal(t, 55.0, s.Percent())

	d.Dispatch(touches(Touch{ID: 2, X: 100, Y: 150}))
	assert.Equal(t, compare.Idle, c.Mode())
	assert.Equal(t, 55.0, c.State().SliderPercent)
}

func TestTouchPanSwappedFingerReanchors(t *testing.T) {
	d, c, _ := newTestRig(t)
	c.ApplyWheelZoom(-1000)

	d.Dispatch(touches(Touch{ID: 1, X: 50, Y: 50}))
	d.Dispatch(touches(Touch{ID: 1, X: 60, Y: 60}))
	require.Equal(t, compare.Offset{X: 10, Y: 10}, c.State().PanOffset)

	d.Dispatch(touches(Touch{ID: 7, X: 300, Y: 250}))
	assert.Equal(t, compare.PanningView, c.Mode())
	assert.Equal(t, compare.Offset{X: 10, Y: 10}, c.State().PanOffset)

	d.Dispatch(touches(Touch{ID: 7, X: 310, Y: 250}))
	assert.Equal(t, compare.Offset{X: 20, Y: 10}, c.State().PanOffset)
}
