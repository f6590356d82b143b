package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nicky-ayoub/ebitcompare/internal/compare"
)

var (
	handleLineColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe0}
	handleKnobColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
)

// Surface draws the two image layers, the reveal boundary and the slider
// handle. It implements compare.Surface: the controller pushes the slider
// percent and background placement, Draw uses the latest values.
type Surface struct {
	bounds      compare.Bounds
	handleWidth float64

	percent  float64
	scale    float64
	position compare.Position

	textures [2]*ebiten.Image
	versions [2]int
	retired  []*ebiten.Image
}

// NewSurface creates a surface with the slider centered and no zoom.
func NewSurface(handleWidth float64) *Surface {
	if handleWidth <= 0 {
		handleWidth = 24
	}
	return &Surface{
		handleWidth: handleWidth,
		percent:     50,
		scale:       1,
		position:    compare.Position{X: 50, Y: 50},
	}
}

// SetBounds places the container on screen.
func (s *Surface) SetBounds(b compare.Bounds) {
	s.bounds = b
}

// ContainerBounds implements compare.Surface.
func (s *Surface) ContainerBounds() compare.Bounds {
	return s.bounds
}

// RenderSlider implements compare.Surface.
func (s *Surface) RenderSlider(percent float64) {
	s.percent = percent
}

// RenderBackground implements compare.Surface.
func (s *Surface) RenderBackground(scale float64, pos compare.Position) {
	s.scale = scale
	s.position = pos
}

// Percent returns the last rendered slider position.
func (s *Surface) Percent() float64 { return s.percent }

// Scale returns the last rendered zoom.
func (s *Surface) Scale() float64 { return s.scale }

// Position returns the last rendered background position.
func (s *Surface) Position() compare.Position { return s.position }

// SliderX returns the screen x of the reveal boundary.
func (s *Surface) SliderX() float64 {
	return s.bounds.Left + s.bounds.Width*s.percent/100
}

// HandleContains reports whether (x, y) hits the slider handle, a vertical
// band handleWidth wide centered on the boundary.
func (s *Surface) HandleContains(x, y float64) bool {
	if y < s.bounds.Top || y >= s.bounds.Top+s.bounds.Height {
		return false
	}
	return math.Abs(x-s.SliderX()) <= s.handleWidth/2
}

// LayerRect returns where an image of the given pixel size is drawn: its
// width follows the zoom, its height keeps the image's own aspect ratio and
// the position percentages align it inside the container.
func (s *Surface) LayerRect(imgW, imgH int) (x, y, w, h float64) {
	b := s.bounds
	w = b.Width * s.scale
	if imgW > 0 {
		h = w * float64(imgH) / float64(imgW)
	}
	x = b.Left + (b.Width-w)*s.position.X/100
	y = b.Top + (b.Height-h)*s.position.Y/100
	return x, y, w, h
}

// Sync uploads images that changed in ps since the last call. It must run
// on the game loop goroutine. Textures replaced in the previous call are
// deallocated first, so Draw never sees a released image.
func (s *Surface) Sync(ps *PairState) bool {
	for _, img := range s.retired {
		img.Deallocate()
	}
	s.retired = s.retired[:0]

	changed := false
	for _, side := range []Side{Before, After} {
		loaded, version := ps.Layer(side)
		if loaded == nil || version == s.versions[side] {
			continue
		}
		if old := s.textures[side]; old != nil {
			s.retired = append(s.retired, old)
		}
		s.textures[side] = ebiten.NewImageFromImage(loaded.Image)
		s.versions[side] = version
		changed = true
	}
	return changed
}

// Draw renders both layers clipped to the container, the overlay only
// right of the boundary, then the handle.
func (s *Surface) Draw(screen *ebiten.Image) {
	b := s.bounds
	area := image.Rect(
		int(math.Floor(b.Left)), int(math.Floor(b.Top)),
		int(math.Ceil(b.Left+b.Width)), int(math.Ceil(b.Top+b.Height)),
	)
	if area.Empty() {
		return
	}

	s.drawLayer(screen.SubImage(area).(*ebiten.Image), Before)

	sx := s.SliderX()
	overlayArea := area
	overlayArea.Min.X = int(math.Round(sx))
	if !overlayArea.Empty() {
		s.drawLayer(screen.SubImage(overlayArea).(*ebiten.Image), After)
	}

	s.drawHandle(screen, sx)
}

func (s *Surface) drawLayer(dst *ebiten.Image, side Side) {
	tex := s.textures[side]
	if tex == nil {
		return
	}
	tb := tex.Bounds()
	x, y, w, h := s.LayerRect(tb.Dx(), tb.Dy())
	if w <= 0 || h <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(tb.Dx()), h/float64(tb.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(tex, op)
}

func (s *Surface) drawHandle(screen *ebiten.Image, sx float64) {
	b := s.bounds
	x := float32(sx)
	vector.StrokeLine(screen, x, float32(b.Top), x, float32(b.Top+b.Height), 2, handleLineColor, true)

	knobW := float32(s.handleWidth)
	knobH := knobW * 2
	knobY := float32(b.Top+b.Height/2) - knobH/2
	vector.DrawFilledRect(screen, x-knobW/2, knobY, knobW, knobH, handleKnobColor, true)
	vector.StrokeRect(screen, x-knobW/2, knobY, knobW, knobH, 2, handleLineColor, true)
}
