package engine

import "image/color"

// Material holds the physically based parameters a renderer may honour.
// Renderers that cannot express a property ignore it.
type Material struct {
	Color              color.RGBA
	Opacity            float32
	Transmission       float32
	Roughness          float32
	Metalness          float32
	Clearcoat          float32
	ClearcoatRoughness float32
	IOR                float32
	Thickness          float32
	Wireframe          bool

	// Texture is a path resolved by the asset layer; empty means untextured.
	Texture string
	RepeatU float32
	RepeatV float32
}

func NewMaterial(c color.RGBA) *Material {
	return &Material{
		Color:     c,
		Opacity:   1,
		Roughness: 1,
		IOR:       1.5,
		RepeatU:   1,
		RepeatV:   1,
	}
}

func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Transparent reports whether the material needs blending.
func (m *Material) Transparent() bool {
	return m.Opacity < 1 || m.Transmission > 0
}

// EffectiveColor folds opacity and transmission into the alpha channel.
func (m *Material) EffectiveColor() color.RGBA {
	c := m.Color
	alpha := m.Opacity * (1 - 0.5*m.Transmission)
	c.A = uint8(max(0, min(1, alpha)) * 255)
	return c
}
