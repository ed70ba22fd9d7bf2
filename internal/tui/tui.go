// Package tui draws a top-down terminal view of a simulation and maps keys to
// simulation commands.
package tui

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"terrainsim/internal/physics"
	"terrainsim/internal/shapes"
	"terrainsim/internal/sim"
)

// heightRamp runs from the lowest to the highest sample.
const heightRamp = " .:-=+*%@"

var (
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleBody       = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Glyph is the character a body of kind k is drawn with.
func Glyph(k physics.ShapeType) rune {
	switch k {
	case physics.SphereShapeType:
		return 'o'
	case physics.BoxShapeType:
		return '#'
	case physics.CylinderShapeType:
		return '0'
	case physics.ConeShapeType:
		return '^'
	}
	return '?'
}

type View struct {
	ctx    *sim.Context
	screen tcell.Screen
	rng    *rand.Rand
	logger *log.Logger
	last   sim.StepStats
}

func New(ctx *sim.Context, screen tcell.Screen, logger *log.Logger) *View {
	if logger == nil {
		logger = log.Default()
	}
	return &View{
		ctx:    ctx,
		screen: screen,
		rng:    rand.New(rand.NewSource(ctx.Settings().Seed + 1)),
		logger: logger.WithPrefix("tui"),
	}
}

// HandleKey queues the command bound to a key. It returns false on quit.
func (v *View) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	objects := v.ctx.Settings().Objects
	switch r {
	case 'q':
		return false
	case ' ':
		// The context camera looks at the terrain centre
		v.ctx.Push(sim.Launch{})
	case 'a':
		size := float32(1 + v.rng.Intn(objects.MaxSize))
		v.ctx.Push(sim.AddObject{Kind: shapes.Random(v.rng), SizeFactor: size, Mass: size * objects.MassPerSize})
	case 'r':
		v.ctx.Push(sim.RebuildTerrain{})
	case '+', '=':
		v.ctx.Push(sim.SetParam{Name: "terrain.maxHeight", Value: v.ctx.Params.Terrain.MaxHeight + 1})
	case '-', '_':
		v.ctx.Push(sim.SetParam{Name: "terrain.maxHeight", Value: v.ctx.Params.Terrain.MaxHeight - 1})
	}
	return true
}

// Tick advances the simulation and redraws.
func (v *View) Tick(dt float32) {
	v.last = v.ctx.Tick(dt)
	v.Draw()
}

// Draw paints the height field with bodies on top and a status line at the
// bottom.
func (v *View) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		v.screen.Show()
		return
	}

	t := v.ctx.Terrain
	d := t.Descriptor
	lo, hi := t.Sample.Range()
	for cy := 0; cy < rows; cy++ {
		row := gridIndex(cy, rows, d.Depth)
		for cx := 0; cx < w; cx++ {
			col := gridIndex(cx, w, d.Width)
			hgt := t.Sample.At(row, col)
			v.screen.SetContent(cx, cy, rampRune(hgt, lo, hi), nil, heightStyle(hgt, lo, hi))
		}
	}

	for _, b := range v.ctx.Registry.Bodies() {
		if b.Mass == 0 {
			continue
		}
		pos, ok := v.ctx.BodyPosition(b.ID)
		if !ok {
			continue
		}
		cx := int((pos.X() + d.WidthExtents/2) / d.WidthExtents * float32(w))
		cy := int((pos.Z() + d.DepthExtents/2) / d.DepthExtents * float32(rows))
		if cx < 0 || cx >= w || cy < 0 || cy >= rows {
			continue
		}
		style := styleBody
		if uid, ok := v.ctx.Registry.Visual(b.ID); ok {
			if n := v.ctx.Scene.FindByUID(uid); n != nil && n.HasTag(sim.TagProjectile) {
				style = styleProjectile
			}
		}
		if b.ID == v.ctx.Selected {
			style = style.Reverse(true)
		}
		v.screen.SetContent(cx, cy, Glyph(b.Kind), nil, style)
	}

	status := fmt.Sprintf(" bodies %d  max %.0f  steps %d | space launch  a add  r rebuild  +/- height  q quit ",
		v.ctx.Registry.Len(), d.MaxHeight, v.last.SubSteps)
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, rows, r, nil, styleStatus)
	}
	v.screen.Show()
}

// gridIndex maps screen cell i of n onto the nearest of size samples.
func gridIndex(i, n, size int) int {
	idx := int(math.Round((float64(i) + 0.5) / float64(n) * float64(size-1)))
	return max(0, min(size-1, idx))
}

func rampLevel(h, lo, hi float32) int {
	if hi <= lo {
		return 0
	}
	t := (h - lo) / (hi - lo)
	return max(0, min(len(heightRamp)-1, int(t*float32(len(heightRamp)-1)+0.5)))
}

func rampRune(h, lo, hi float32) rune {
	return rune(heightRamp[rampLevel(h, lo, hi)])
}

// heightStyle shades from dark green valleys to pale peaks.
func heightStyle(h, lo, hi float32) tcell.Style {
	var t float32
	if hi > lo {
		t = (h - lo) / (hi - lo)
	}
	r := int32(40 + 160*t)
	g := int32(90 + 130*t)
	b := int32(40 + 140*t)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b))
}

// Run polls input and ticks at frame until a quit key.
func (v *View) Run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	dt := float32(frame.Seconds())
	v.Draw()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.HandleKey(ev.Key(), ev.Rune()) {
					v.logger.Info("quit")
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			v.Tick(dt)
		}
	}
}
