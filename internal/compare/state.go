// Package compare holds the interaction logic of the before/after viewer:
// the reveal slider and the pan/zoom shared by both image layers.
//
// Nothing in this package touches ebiten. Host code translates input events
// into Controller calls and receives results through the Surface interface.
package compare

import "fmt"

// Mode is the exclusive interaction mode of the viewer.
type Mode int

const (
	Idle Mode = iota
	DraggingSlider
	PanningView
	PinchZooming
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case DraggingSlider:
		return "dragging-slider"
	case PanningView:
		return "panning-view"
	case PinchZooming:
		return "pinch-zooming"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Point is a position in screen coordinates.
type Point struct {
	X, Y float64
}

// Offset is a pan translation, in the units of the rendered background size.
type Offset struct {
	X, Y float64
}

// Position is a background position in percent per axis. 50 is centered.
type Position struct {
	X, Y float64
}

// Bounds describes the container rectangle in screen coordinates.
type Bounds struct {
	Left, Top     float64
	Width, Height float64
}

// Contains reports whether (x, y) lies inside the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Left+b.Width &&
		y >= b.Top && y < b.Top+b.Height
}

// DragAnchor is the snapshot taken when a single-pointer pan begins.
type DragAnchor struct {
	StartX, StartY           float64
	BaseOffsetX, BaseOffsetY float64
}

// PinchAnchor is the snapshot taken when a two-finger gesture begins.
type PinchAnchor struct {
	StartDistance float64
	StartScale    float64
}

// ViewState is all mutable state of one viewer instance.
type ViewState struct {
	SliderPercent float64
	Scale         float64
	PanOffset     Offset
	Mode          Mode
	DragAnchor    DragAnchor
	PinchAnchor   PinchAnchor
}

// NewViewState returns the state of a freshly opened viewer: slider
// centered, no zoom, no pan.
func NewViewState(minScale float64) ViewState {
	return ViewState{
		SliderPercent: 50,
		Scale:         minScale,
	}
}
