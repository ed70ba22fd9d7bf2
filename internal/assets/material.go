package assets

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"terrainsim/internal/config"
	"terrainsim/internal/engine"
)

// materialDef is the JSON format for material files
type materialDef struct {
	Name               string   `json:"name"`
	Color              string   `json:"color"`
	Transmission       *float32 `json:"transmission"`
	Opacity            *float32 `json:"opacity"`
	Roughness          *float32 `json:"roughness"`
	Metalness          *float32 `json:"metalness"`
	Clearcoat          *float32 `json:"clearcoat"`
	ClearcoatRoughness *float32 `json:"clearcoatRoughness"`
	IOR                *float32 `json:"ior"`
	Thickness          *float32 `json:"thickness"`
	Texture            string   `json:"texture"`
}

// Color name mapping for materials
var colorByName = map[string]color.RGBA{
	"Red":       rgb(230, 41, 55),
	"Blue":      rgb(0, 121, 241),
	"Green":     rgb(0, 228, 48),
	"Purple":    rgb(200, 122, 255),
	"Orange":    rgb(255, 161, 0),
	"Yellow":    rgb(253, 249, 0),
	"Gold":      rgb(255, 203, 0),
	"White":     rgb(255, 255, 255),
	"Gray":      rgb(130, 130, 130),
	"LightGray": rgb(200, 200, 200),
	"DarkGray":  rgb(80, 80, 80),
	"Black":     rgb(0, 0, 0),
	"Pink":      rgb(255, 109, 194),
	"Maroon":    rgb(190, 33, 55),
	"SkyBlue":   rgb(102, 191, 255),
	"DarkBlue":  rgb(0, 82, 172),
	"Lime":      rgb(0, 158, 47),
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// LookupColor resolves a colour name or a hex string. Unknown values are white.
func LookupColor(name string) color.RGBA {
	if c, ok := colorByName[name]; ok {
		return c
	}
	if c, err := config.ParseColor(name); err == nil {
		return c
	}
	return rgb(255, 255, 255)
}

// LoadMaterial reads a material JSON file over base, caching the result.
// Fields absent from the file keep base's value.
func LoadMaterial(path string, base engine.Material) (*engine.Material, error) {
	if manager == nil {
		Init()
	}

	if material, exists := manager.materials[path]; exists {
		return material.Clone(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read material: %w", err)
	}

	var def materialDef
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("assets: parse material %s: %w", path, err)
	}

	material := base.Clone()
	if def.Color != "" {
		material.Color = LookupColor(def.Color)
	}
	if def.Texture != "" {
		material.Texture = def.Texture
	}
	for _, f := range []struct {
		src *float32
		dst *float32
	}{
		{def.Transmission, &material.Transmission},
		{def.Opacity, &material.Opacity},
		{def.Roughness, &material.Roughness},
		{def.Metalness, &material.Metalness},
		{def.Clearcoat, &material.Clearcoat},
		{def.ClearcoatRoughness, &material.ClearcoatRoughness},
		{def.IOR, &material.IOR},
		{def.Thickness, &material.Thickness},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	manager.materials[path] = material
	return material.Clone(), nil
}
