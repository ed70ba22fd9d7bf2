package world

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"terrainsim/internal/assets"
)

// textureCache owns every texture uploaded for the scene, keyed by path.
type textureCache struct {
	textures map[string]rl.Texture2D
}

func newTextureCache() *textureCache {
	return &textureCache{textures: make(map[string]rl.Texture2D)}
}

// load returns the cached texture for path, uploading it with repeat wrapping
// and mipmaps on first use. Requires an open window.
func (c *textureCache) load(path string) (rl.Texture2D, error) {
	if texture, exists := c.textures[path]; exists {
		return texture, nil
	}
	if err := assets.CheckTexture(path); err != nil {
		return rl.Texture2D{}, err
	}

	texture := rl.LoadTexture(path)
	if texture.ID == 0 {
		return rl.Texture2D{}, fmt.Errorf("%w: %s failed to decode", assets.ErrTextureNotFound, path)
	}
	rl.GenTextureMipmaps(&texture)
	rl.SetTextureFilter(texture, rl.FilterTrilinear)
	rl.SetTextureWrap(texture, rl.WrapRepeat)

	c.textures[path] = texture
	return texture, nil
}

func (c *textureCache) unload() {
	for _, texture := range c.textures {
		rl.UnloadTexture(texture)
	}
	c.textures = make(map[string]rl.Texture2D)
}
