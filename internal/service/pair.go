package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrPairNotFound is returned when a directory does not hold a
// before/after pair.
var ErrPairNotFound = errors.New("no before/after image pair found")

// Pair names the two images being compared.
type Pair struct {
	Before string
	After  string
}

// PairService resolves which two files to compare.
type PairService struct {
	Extensions map[string]bool // Supported image extensions
}

// NewPairService constructs a PairService with the default extensions.
func NewPairService() *PairService {
	return &PairService{
		Extensions: map[string]bool{
			".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
			".bmp": true, ".webp": true,
		},
	}
}

// Supported reports whether path has a supported image extension.
func (ps *PairService) Supported(path string) bool {
	return ps.Extensions[strings.ToLower(filepath.Ext(path))]
}

// Resolve picks the pair from positional arguments. Two arguments are taken
// as before and after files. A single argument, or none, names a directory
// (defaulting to dir) searched with FindInDir.
func (ps *PairService) Resolve(args []string, dir string) (Pair, error) {
	switch len(args) {
	case 0:
		return ps.FindInDir(dir)
	case 1:
		return ps.FindInDir(args[0])
	case 2:
		p := Pair{Before: args[0], After: args[1]}
		for _, path := range []string{p.Before, p.After} {
			if !ps.Supported(path) {
				return Pair{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
			}
			if _, err := os.Stat(path); err != nil {
				return Pair{}, fmt.Errorf("checking %s: %w", path, err)
			}
		}
		return p, nil
	default:
		return Pair{}, fmt.Errorf("expected at most two images, got %d arguments", len(args))
	}
}

// FindInDir looks in dir for one image whose name contains "before" and one
// whose name contains "after". Without such names it falls back to the
// first two supported images in name order.
func (ps *PairService) FindInDir(dir string) (Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Pair{}, fmt.Errorf("reading directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || !ps.Supported(entry.Name()) {
			continue
		}
		images = append(images, entry.Name())
	}
	sort.Strings(images)

	var p Pair
	for _, name := range images {
		lower := strings.ToLower(name)
		if p.Before == "" && strings.Contains(lower, "before") {
			p.Before = filepath.Join(dir, name)
		} else if p.After == "" && strings.Contains(lower, "after") {
			p.After = filepath.Join(dir, name)
		}
	}
	if p.Before != "" && p.After != "" {
		return p, nil
	}

	if len(images) >= 2 {
		return Pair{
			Before: filepath.Join(dir, images[0]),
			After:  filepath.Join(dir, images[1]),
		}, nil
	}
	return Pair{}, fmt.Errorf("%s: %w", dir, ErrPairNotFound)
}
