// Package assets resolves asset paths and caches JSON material definitions.
// GPU uploads happen in the renderer.
package assets

import (
	"errors"
	"fmt"
	"os"

	"terrainsim/internal/engine"
)

// ErrTextureNotFound is returned when a texture path is missing or fails to decode.
var ErrTextureNotFound = errors.New("assets: texture not found")

var manager *Manager

type Manager struct {
	materials map[string]*engine.Material
}

func Init() {
	manager = &Manager{
		materials: make(map[string]*engine.Material),
	}
}

// CheckTexture reports ErrTextureNotFound unless path names a readable file.
func CheckTexture(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrTextureNotFound)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTextureNotFound, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrTextureNotFound, path)
	}
	return nil
}

func Unload() {
	if manager == nil {
		return
	}
	manager.materials = make(map[string]*engine.Material)
}
