package compare

import (
	"math"

	"go.uber.org/zap"
)

// Surface is the rendering side of the viewer. The controller queries the
// container bounds on every update and pushes its two derived outputs back.
// Implementations must not call back into the Controller.
type Surface interface {
	ContainerBounds() Bounds
	RenderSlider(percent float64)
	RenderBackground(scale float64, pos Position)
}

// Options tunes zoom limits and input sensitivity.
type Options struct {
	MinScale         float64
	MaxScale         float64
	WheelSensitivity float64
	Policy           ClampPolicy
	Logger           *zap.Logger
}

// DefaultOptions returns scale bounds [1, 5] and a wheel sensitivity of
// 0.0015 scale units per wheel delta unit.
func DefaultOptions() Options {
	return Options{
		MinScale:         1,
		MaxScale:         5,
		WheelSensitivity: 0.0015,
		Policy:           PolicyCoverage,
	}
}

// Controller turns pointer, wheel and touch input into ViewState updates.
// It is not safe for concurrent use; all calls are expected from the game
// loop goroutine.
type Controller struct {
	surface Surface
	opts    Options
	log     *zap.Logger

	state  ViewState
	aspect float64
}

// NewController creates a controller in its initial state. Missing or
// inconsistent options are replaced by their defaults.
func NewController(surface Surface, opts Options) *Controller {
	def := DefaultOptions()
	if opts.MinScale <= 0 || math.IsNaN(opts.MinScale) {
		opts.MinScale = def.MinScale
	}
	if opts.MaxScale < opts.MinScale || math.IsNaN(opts.MaxScale) {
		opts.MaxScale = math.Max(def.MaxScale, opts.MinScale)
	}
	if opts.WheelSensitivity <= 0 || math.IsNaN(opts.WheelSensitivity) {
		opts.WheelSensitivity = def.WheelSensitivity
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		surface: surface,
		opts:    opts,
		log:     log.Named("compare"),
		state:   NewViewState(opts.MinScale),
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState {
	return c.state
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// Options returns the effective options.
func (c *Controller) Options() Options {
	return c.opts
}

// SetAspectRatio sets the intrinsic width/height ratio of the displayed
// images and re-renders. Values <= 0 fall back to the container's ratio.
func (c *Controller) SetAspectRatio(aspect float64) {
	c.aspect = aspect
	c.Refresh()
}

// Placement returns the current clamped background placement for the
// container as it is now.
func (c *Controller) Placement() Placement {
	b := c.surface.ContainerBounds()
	return c.opts.Policy.Place(b.Width, b.Height, c.state.Scale, c.aspect, c.state.PanOffset)
}

// BeginSliderDrag starts dragging the reveal boundary. An active pan is
// ended first; a running pinch keeps precedence.
func (c *Controller) BeginSliderDrag() {
	switch c.state.Mode {
	case PinchZooming, DraggingSlider:
		return
	case PanningView:
		c.syncDragAnchor()
	}
	c.setMode(DraggingSlider)
}

// UpdateSliderDrag moves the reveal boundary to pointerX, clamped to the
// container. Ignored unless a slider drag is active.
func (c *Controller) UpdateSliderDrag(pointerX float64) {
	if c.state.Mode != DraggingSlider {
		return
	}
	b := c.surface.ContainerBounds()
	if b.Width > 0 && !math.IsInf(b.Width, 0) && !math.IsNaN(pointerX) {
		offsetX := clamp(pointerX-b.Left, 0, b.Width)
		c.state.SliderPercent = offsetX / b.Width * 100
	}
	c.surface.RenderSlider(c.state.SliderPercent)
}

// EndSliderDrag releases the pointer and always leaves the controller
// Idle. An active pan has its anchor synced to the current offset so the
// next pan starts without a jump; an active pinch drops its anchor.
func (c *Controller) EndSliderDrag() {
	switch c.state.Mode {
	case PanningView:
		c.syncDragAnchor()
	case PinchZooming:
		c.state.PinchAnchor = PinchAnchor{}
	}
	c.setMode(Idle)
}

// BeginPan starts panning from the given pointer position. Ignored while
// the slider is dragged or a pinch is running.
func (c *Controller) BeginPan(pointerX, pointerY float64) {
	if c.state.Mode == DraggingSlider || c.state.Mode == PinchZooming {
		return
	}
	c.state.DragAnchor = DragAnchor{
		StartX:      pointerX,
		StartY:      pointerY,
		BaseOffsetX: c.state.PanOffset.X,
		BaseOffsetY: c.state.PanOffset.Y,
	}
	c.setMode(PanningView)
}

// UpdatePan moves the view by the pointer delta since BeginPan.
func (c *Controller) UpdatePan(pointerX, pointerY float64) {
	if c.state.Mode != PanningView {
		return
	}
	a := c.state.DragAnchor
	c.state.PanOffset = Offset{
		X: a.BaseOffsetX + (pointerX - a.StartX),
		Y: a.BaseOffsetY + (pointerY - a.StartY),
	}
	c.renderBackground()
}

// EndPan ends a pan.
func (c *Controller) EndPan() {
	if c.state.Mode != PanningView {
		return
	}
	c.syncDragAnchor()
	c.setMode(Idle)
}

// ApplyWheelZoom zooms by a wheel delta. Negative deltas (scrolling up)
// zoom in.
func (c *Controller) ApplyWheelZoom(deltaY float64) {
	if deltaY == 0 || math.IsNaN(deltaY) || math.IsInf(deltaY, 0) {
		return
	}
	c.state.Scale = c.clampScale(c.state.Scale - deltaY*c.opts.WheelSensitivity)
	c.renderBackground()
}

// BeginPinch starts a two-finger zoom. A running pan is ended.
func (c *Controller) BeginPinch(a, b Point) {
	switch c.state.Mode {
	case DraggingSlider:
		return
	case PanningView:
		c.syncDragAnchor()
	}
	c.state.PinchAnchor = PinchAnchor{
		StartDistance: Distance(a, b),
		StartScale:    c.state.Scale,
	}
	c.setMode(PinchZooming)
}

// UpdatePinch scales relative to the distance recorded by BeginPinch.
// A zero start distance leaves the scale at its starting value.
func (c *Controller) UpdatePinch(a, b Point) {
	if c.state.Mode != PinchZooming {
		return
	}
	factor := 1.0
	if start := c.state.PinchAnchor.StartDistance; start > 0 {
		if d := Distance(a, b); !math.IsNaN(d) && !math.IsInf(d, 0) {
			factor = d / start
		}
	}
	c.state.Scale = c.clampScale(c.state.PinchAnchor.StartScale * factor)
	c.renderBackground()
}

// EndPinch is called when a touch point lifts during a pinch. The pinch
// ends once fewer than two contacts remain.
func (c *Controller) EndPinch(remainingTouches int) {
	if c.state.Mode != PinchZooming || remainingTouches >= 2 {
		return
	}
	c.state.PinchAnchor = PinchAnchor{}
	c.setMode(Idle)
}

// ReleaseAll returns to Idle regardless of the current mode. It is the
// handler for "no contact left".
func (c *Controller) ReleaseAll() {
	if c.state.Mode == Idle {
		return
	}
	c.syncDragAnchor()
	c.state.PinchAnchor = PinchAnchor{}
	c.setMode(Idle)
}

// Refresh re-clamps the pan offset against the current container and
// renders both outputs.
func (c *Controller) Refresh() {
	c.surface.RenderSlider(c.state.SliderPercent)
	c.renderBackground()
}

// Reset restores the initial view: slider centered, minimum zoom, no pan.
func (c *Controller) Reset() {
	c.state = NewViewState(c.opts.MinScale)
	c.log.Debug("view reset")
	c.Refresh()
}

func (c *Controller) renderBackground() {
	pl := c.Placement()
	c.state.PanOffset = pl.Offset
	c.surface.RenderBackground(c.state.Scale, pl.Position)
}

func (c *Controller) clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return c.state.Scale
	}
	return clamp(s, c.opts.MinScale, c.opts.MaxScale)
}

func (c *Controller) syncDragAnchor() {
	c.state.DragAnchor.BaseOffsetX = c.state.PanOffset.X
	c.state.DragAnchor.BaseOffsetY = c.state.PanOffset.Y
}

func (c *Controller) setMode(m Mode) {
	if c.state.Mode == m {
		return
	}
	c.log.Debug("mode change",
		zap.Stringer("from", c.state.Mode),
		zap.Stringer("to", m),
	)
	c.state.Mode = m
}
