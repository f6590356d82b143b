package ui

import (
	"github.com/nicky-ayoub/ebitcompare/internal/compare"
)

// GestureTarget receives the interaction calls derived from input.
// *compare.Controller implements it.
type GestureTarget interface {
	Mode() compare.Mode
	BeginSliderDrag()
	UpdateSliderDrag(pointerX float64)
	EndSliderDrag()
	BeginPan(pointerX, pointerY float64)
	UpdatePan(pointerX, pointerY float64)
	EndPan()
	ApplyWheelZoom(deltaY float64)
	BeginPinch(a, b compare.Point)
	UpdatePinch(a, b compare.Point)
	EndPinch(remainingTouches int)
	ReleaseAll()
}

// HitTester locates presses on the viewer.
type HitTester interface {
	ContainerBounds() compare.Bounds
	HandleContains(x, y float64) bool
}

// GestureDispatcher turns consecutive InputState frames into GestureTarget
// calls. Touch input takes precedence over the mouse: while any finger is
// down the mouse is ignored.
type GestureDispatcher struct {
	target GestureTarget
	hits   HitTester

	// WheelLineHeight converts ebiten wheel lines into pixel deltas.
	WheelLineHeight float64

	prev     InputState
	pinchIDs [2]int
	// touchID owns a one-finger slider drag or pan.
	touchID int
}

// NewGestureDispatcher creates a dispatcher.
func NewGestureDispatcher(target GestureTarget, hits HitTester, wheelLineHeight float64) *GestureDispatcher {
	if wheelLineHeight <= 0 {
		wheelLineHeight = 100
	}
	return &GestureDispatcher{
		target:          target,
		hits:            hits,
		WheelLineHeight: wheelLineHeight,
	}
}

// Dispatch processes one frame of input.
func (d *GestureDispatcher) Dispatch(in InputState) {
	if in.WheelY != 0 {
		d.target.ApplyWheelZoom(-in.WheelY * d.WheelLineHeight)
	}

	if len(in.Touches) > 0 || len(d.prev.Touches) > 0 {
		d.dispatchTouches(in)
	} else {
		d.dispatchMouse(in)
	}

	d.prev = in
	d.prev.Touches = append([]Touch(nil), in.Touches...)
}

func (d *GestureDispatcher) dispatchMouse(in InputState) {
	switch {
	case in.MouseDown && !d.prev.MouseDown:
		d.press(in.MouseX, in.MouseY)
	case in.MouseDown:
		d.move(in.MouseX, in.MouseY)
	case d.prev.MouseDown:
		d.release()
	}
}

func (d *GestureDispatcher) dispatchTouches(in InputState) {
	n := len(in.Touches)

	if n >= 2 {
		if d.target.Mode() == compare.DraggingSlider {
			// The slider stays with the finger that grabbed it; others do not zoom.
			if t, ok := findTouch(in.Touches, d.touchID); ok {
				d.target.UpdateSliderDrag(t.X)
			} else {
				d.target.EndSliderDrag()
			}
			return
		}
		a, b := in.Touches[0], in.Touches[1]
		if d.target.Mode() == compare.PinchZooming && d.pinchIDs == [2]int{a.ID, b.ID} {
			d.target.UpdatePinch(point(a), point(b))
			return
		}
		d.pinchIDs = [2]int{a.ID, b.ID}
		d.target.BeginPinch(point(a), point(b))
		return
	}

	if d.target.Mode() == compare.PinchZooming {
		d.target.EndPinch(n)
	}
	if n == 0 {
		d.release()
		return
	}

	t := in.Touches[0]
	switch d.target.Mode() {
	case compare.DraggingSlider, compare.PanningView:
		if t.ID == d.touchID {
			d.move(t.X, t.Y)
			return
		}
		// The owning finger lifted.
		d.release()
	}
	// Only a finger that just landed starts a gesture; one left over from a
	// pinch or a lifted drag does not.
	if _, held := findTouch(d.prev.Touches, t.ID); !held {
		d.touchID = t.ID
		d.press(t.X, t.Y)
	}
}

func findTouch(ts []Touch, id int) (Touch, bool) {
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}

// press hands a new contact to exactly one mode. The slider handle wins
// over the container beneath it.
func (d *GestureDispatcher) press(x, y float64) {
	if d.hits.HandleContains(x, y) {
		d.target.BeginSliderDrag()
		return
	}
	if d.hits.ContainerBounds().Contains(x, y) {
		d.target.BeginPan(x, y)
	}
}

func (d *GestureDispatcher) move(x, y float64) {
	switch d.target.Mode() {
	case compare.DraggingSlider:
		d.target.UpdateSliderDrag(x)
	case compare.PanningView:
		d.target.UpdatePan(x, y)
	}
}

func (d *GestureDispatcher) release() {
	switch d.target.Mode() {
	case compare.DraggingSlider:
		d.target.EndSliderDrag()
	case compare.PanningView:
		d.target.EndPan()
	default:
		d.target.ReleaseAll()
	}
}

func point(t Touch) compare.Point {
	return compare.Point{X: t.X, Y: t.Y}
}
