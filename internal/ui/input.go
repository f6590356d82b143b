package ui

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Touch is one active contact point.
type Touch struct {
	ID   int
	X, Y float64
}

// InputState holds the polled state of inputs for a single frame.
// This separates input polling from input handling logic.
type InputState struct {
	Quit             bool
	ToggleFullscreen bool
	ToggleInfo       bool
	ResetView        bool

	// Mouse state
	WheelY         float64 // Positive when scrolling up, in lines
	MouseDown      bool    // Left mouse button is being held down
	MouseX, MouseY float64

	// Active touches, ordered by ID
	Touches []Touch
}

// PollInput gathers all raw input events for the current frame.
func PollInput() InputState {
	_, wheelY := ebiten.Wheel()
	mx, my := ebiten.CursorPosition()

	ids := ebiten.AppendTouchIDs(nil)
	touches := make([]Touch, 0, len(ids))
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, Touch{ID: int(id), X: float64(x), Y: float64(y)})
	}
	sort.Slice(touches, func(i, j int) bool { return touches[i].ID < touches[j].ID })

	return InputState{
		Quit:             inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleFullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
		ToggleInfo:       inpututil.IsKeyJustPressed(ebiten.KeyI),
		ResetView:        inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsKeyJustPressed(ebiten.Key0),

		WheelY:    wheelY,
		MouseDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		MouseX:    float64(mx),
		MouseY:    float64(my),
		Touches:   touches,
	}
}
