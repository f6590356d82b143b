package compare

import (
	"fmt"
	"math"
	"strings"
)

// ClampPolicy selects how the pan offset is bounded against the zoomed
// background.
type ClampPolicy int

const (
	// PolicyCoverage keeps the offset in [0, maxShift] with maxShift derived
	// from the image aspect ratio, so the zoomed image always covers the
	// container.
	PolicyCoverage ClampPolicy = iota
	// PolicyCentered bounds the offset symmetrically around the center and
	// sizes the background from the container on both axes.
	PolicyCentered
)

func (p ClampPolicy) String() string {
	switch p {
	case PolicyCoverage:
		return "coverage"
	case PolicyCentered:
		return "centered"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseClampPolicy maps a config value to a ClampPolicy. The empty string
// selects PolicyCoverage.
func ParseClampPolicy(s string) (ClampPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "coverage":
		return PolicyCoverage, nil
	case "centered":
		return PolicyCentered, nil
	default:
		return PolicyCoverage, fmt.Errorf("unknown clamp policy %q", s)
	}
}

// Placement is the result of clamping a pan offset for one container size
// and zoom level.
type Placement struct {
	BackgroundWidth  float64
	BackgroundHeight float64
	MaxShiftX        float64
	MaxShiftY        float64
	Offset           Offset
	Position         Position
}

// Place clamps off for a w x h container showing an image of the given
// aspect ratio (width/height) at scale, and derives the background
// position percentages.
func (p ClampPolicy) Place(w, h, scale, aspect float64, off Offset) Placement {
	w = nonNegative(w)
	h = nonNegative(h)
	aspect = effectiveAspect(aspect, w, h)

	pl := Placement{BackgroundWidth: w * scale}
	var lowX, lowY float64
	switch p {
	case PolicyCentered:
		pl.BackgroundHeight = h * scale
		pl.MaxShiftX = math.Max(0, (pl.BackgroundWidth-w)/2)
		pl.MaxShiftY = math.Max(0, (pl.BackgroundHeight-h)/2)
		lowX, lowY = -pl.MaxShiftX, -pl.MaxShiftY
	default:
		pl.BackgroundHeight = pl.BackgroundWidth / aspect
		pl.MaxShiftX = math.Max(0, pl.BackgroundWidth-w)
		pl.MaxShiftY = math.Max(0, pl.BackgroundHeight-h)
	}

	pl.Offset = Offset{
		X: clamp(finiteOr(off.X, 0), lowX, pl.MaxShiftX),
		Y: clamp(finiteOr(off.Y, 0), lowY, pl.MaxShiftY),
	}
	pl.Position = Position{
		X: positionPercent(pl.Offset.X, pl.MaxShiftX),
		Y: positionPercent(pl.Offset.Y, pl.MaxShiftY),
	}
	return pl
}

// Origin returns where the top-left corner of the background lands
// relative to the container's top-left corner, following CSS
// background-position percentage semantics.
func (pl Placement) Origin(w, h float64) (x, y float64) {
	x = (w - pl.BackgroundWidth) * pl.Position.X / 100
	y = (h - pl.BackgroundHeight) * pl.Position.Y / 100
	return x, y
}

func positionPercent(offset, maxShift float64) float64 {
	if maxShift == 0 {
		return 50
	}
	return 50 - (offset/maxShift)*50
}

// effectiveAspect falls back to the container's own ratio, and then to 1,
// when the image aspect is unusable.
func effectiveAspect(aspect, w, h float64) float64 {
	if aspect > 0 && !math.IsInf(aspect, 0) {
		return aspect
	}
	if w > 0 && h > 0 {
		return w / h
	}
	return 1
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
