// Package config loads the settings document and supplies defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"terrainsim/internal/engine"
	"terrainsim/internal/terrain"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "terrainsim.json"

var ErrInvalid = errors.New("config: invalid settings")

type WindowSettings struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	TargetFPS int    `json:"targetFPS"`
}

type PhysicsSettings struct {
	Gravity       float32 `json:"gravity"`
	FixedTimeStep float32 `json:"fixedTimeStep"`
	MaxSubSteps   int     `json:"maxSubSteps"`
	Margin        float32 `json:"margin"`
}

type ObjectSettings struct {
	InitialCount int     `json:"initialCount"`
	MaxSize      int     `json:"maxSize"`
	MassPerSize  float32 `json:"massPerSize"`
	SpawnHeight  float32 `json:"spawnHeight"` // above maxHeight for "add object"
}

type ProjectileSettings struct {
	Radius float32 `json:"radius"`
	Mass   float32 `json:"mass"`
	Speed  float32 `json:"speed"`
}

type MaterialSettings struct {
	Color              string  `json:"color"`
	Transmission       float32 `json:"transmission"`
	Opacity            float32 `json:"opacity"`
	Roughness          float32 `json:"roughness"`
	Metalness          float32 `json:"metalness"`
	Clearcoat          float32 `json:"clearcoat"`
	ClearcoatRoughness float32 `json:"clearcoatRoughness"`
	IOR                float32 `json:"ior"`
	Thickness          float32 `json:"thickness"`
}

type AudioSettings struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

type Settings struct {
	Window       WindowSettings     `json:"window"`
	Terrain      terrain.Descriptor `json:"terrain"`
	GridTexture  string             `json:"gridTexture"`
	GridSize     float32            `json:"gridSize"`
	Background   string             `json:"background"`
	ShowAxes     bool               `json:"showAxes"`
	Wireframe    bool               `json:"wireframe"`
	Physics      PhysicsSettings    `json:"physics"`
	Objects      ObjectSettings     `json:"objects"`
	Projectile   ProjectileSettings `json:"projectile"`
	BallMaterial MaterialSettings   `json:"ballMaterial"`
	MaterialFile string             `json:"materialFile,omitempty"` // JSON material layered over BallMaterial
	Audio        AudioSettings      `json:"audio"`
	LogLevel     string             `json:"logLevel"`
	Seed         int64              `json:"seed"` // 0 picks a time-based seed
}

func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:     1280,
			Height:    720,
			Title:     "terrainsim",
			TargetFPS: 60,
		},
		Terrain:     terrain.DefaultDescriptor(),
		GridTexture: "assets/textures/grid.png",
		GridSize:    1,
		Background:  "#bfd1e5",
		Physics: PhysicsSettings{
			Gravity:       -9.8,
			FixedTimeStep: 1.0 / 60.0,
			MaxSubSteps:   1,
			Margin:        0.05,
		},
		Objects: ObjectSettings{
			InitialCount: 30,
			MaxSize:      3,
			MassPerSize:  5,
			SpawnHeight:  5,
		},
		Projectile: ProjectileSettings{
			Radius: 0.4,
			Mass:   35,
			Speed:  24,
		},
		BallMaterial: MaterialSettings{
			Color:              "#ff0000",
			Transmission:       0.8,
			Opacity:            0.8,
			Roughness:          0.1,
			Metalness:          0,
			Clearcoat:          0.25,
			ClearcoatRoughness: 0.1,
			IOR:                1.5,
			Thickness:          2.0,
		},
		Audio: AudioSettings{
			Enabled: true,
			Volume:  0.3,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes s as indented JSON.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s Settings) Validate() error {
	if err := s.Terrain.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.Physics.FixedTimeStep <= 0 || s.Physics.MaxSubSteps < 1 {
		return fmt.Errorf("%w: time step %v with %d substeps", ErrInvalid, s.Physics.FixedTimeStep, s.Physics.MaxSubSteps)
	}
	if s.Physics.Margin < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalid)
	}
	if s.Objects.InitialCount < 0 || s.Objects.MaxSize < 1 || s.Objects.MassPerSize <= 0 {
		return fmt.Errorf("%w: objects %+v", ErrInvalid, s.Objects)
	}
	if s.Projectile.Radius <= 0 || s.Projectile.Mass <= 0 {
		return fmt.Errorf("%w: projectile %+v", ErrInvalid, s.Projectile)
	}
	if s.GridSize <= 0 {
		return fmt.Errorf("%w: grid size %v", ErrInvalid, s.GridSize)
	}
	if _, err := ParseColor(s.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if _, err := ParseColor(s.BallMaterial.Color); err != nil {
		return fmt.Errorf("%w: ball color: %w", ErrInvalid, err)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (s Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("config: color %q is not rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Material builds the engine material. Colors are validated by Validate.
func (m MaterialSettings) Material() *engine.Material {
	c, err := ParseColor(m.Color)
	if err != nil {
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	mat := engine.NewMaterial(c)
	mat.Transmission = m.Transmission
	mat.Opacity = m.Opacity
	mat.Roughness = m.Roughness
	mat.Metalness = m.Metalness
	mat.Clearcoat = m.Clearcoat
	mat.ClearcoatRoughness = m.ClearcoatRoughness
	mat.IOR = m.IOR
	mat.Thickness = m.Thickness
	return mat
}
