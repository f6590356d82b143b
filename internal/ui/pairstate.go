package ui

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/nicky-ayoub/ebitcompare/internal/service"
)

// Side identifies one of the two compared layers.
type Side int

const (
	Before Side = iota // base layer, visible left of the slider
	After              // overlay layer, visible right of the slider
)

func (s Side) String() string {
	if s == After {
		return "after"
	}
	return "before"
}

// layerState is the load status of one side.
type layerState struct {
	path    string
	loaded  *service.LoadedImage
	err     error
	version int
}

// PairState tracks the two images being compared. Loader goroutines write
// to it; the game loop reads it. All methods are safe for concurrent use.
type PairState struct {
	mu     sync.RWMutex
	layers [2]layerState
}

// NewPairState creates a PairState for the given files, with nothing loaded.
func NewPairState(pair service.Pair) *PairState {
	ps := &PairState{}
	ps.layers[Before].path = pair.Before
	ps.layers[After].path = pair.After
	return ps
}

// Path returns the file shown on a side.
func (ps *PairState) Path(side Side) string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.layers[side].path
}

// SideForPath reports which side shows path. Paths are compared after
// resolving them to absolute form.
func (ps *PairState) SideForPath(path string) (Side, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	want := absPath(path)
	for i := range ps.layers {
		if absPath(ps.layers[i].path) == want {
			return Side(i), true
		}
	}
	return Before, false
}

// SetLoaded stores a freshly decoded image and bumps the side's version so
// the surface re-uploads it.
func (ps *PairState) SetLoaded(side Side, img *service.LoadedImage) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	l := &ps.layers[side]
	l.loaded = img
	l.err = nil
	l.version++
}

// SetError records a load failure. A previously loaded image is kept.
func (ps *PairState) SetError(side Side, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.layers[side].err = err
}

// Layer returns the loaded image of a side and its version. The image is
// nil until the first successful load.
func (ps *PairState) Layer(side Side) (*service.LoadedImage, int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	l := ps.layers[side]
	return l.loaded, l.version
}

// Err returns the last load error of a side.
func (ps *PairState) Err(side Side) error {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.layers[side].err
}

// Ready reports whether both sides have an image.
func (ps *PairState) Ready() bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.layers[Before].loaded != nil && ps.layers[After].loaded != nil
}

// AspectRatio returns the width/height ratio that drives the pan clamp:
// the base layer's, or the overlay's while the base is missing.
func (ps *PairState) AspectRatio() float64 {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	for _, side := range []Side{Before, After} {
		if l := ps.layers[side].loaded; l != nil {
			if a := l.Info.AspectRatio(); a > 0 {
				return a
			}
		}
	}
	return 0
}

// Dump renders a short status for the info overlay.
func (ps *PairState) Dump() string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	s := ""
	for i, l := range ps.layers {
		status := "loading"
		switch {
		case l.err != nil:
			status = "error: " + l.err.Error()
		case l.loaded != nil:
			status = fmt.Sprintf("%dx%d", l.loaded.Info.Width, l.loaded.Info.Height)
		}
		s += fmt.Sprintf("%s: %s (%s)\n", Side(i), filepath.Base(l.path), status)
	}
	return s
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
