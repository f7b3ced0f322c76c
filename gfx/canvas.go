// Package gfx declares the draw primitives the simulation hands to a
// rendering backend. Nothing here reads pixels back.
package gfx

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Canvas is the render surface consumed by bosses, projectiles and the HUD.
type Canvas interface {
	FillCircle(c cp.Vector, r float64, clr color.Color)
	StrokeCircle(c cp.Vector, r, width float64, clr color.Color)
	FillEllipse(c cp.Vector, rx, ry float64, clr color.Color)
	FillRect(bb cp.BB, clr color.Color)
	FillPolygon(points []cp.Vector, clr color.Color)
	StrokeLine(a, b cp.Vector, width float64, clr color.Color)
	Text(s string, x, y float64, clr color.Color)
	// Fade covers the whole screen with clr at the given alpha in [0, 1].
	Fade(clr color.Color, alpha float64)
}

// Recorder is a Canvas that counts calls. Tests and headless runs use it.
type Recorder struct {
	Calls map[string]int
	Texts []string
}

func NewRecorder() *Recorder {
	return &Recorder{Calls: map[string]int{}}
}

func (r *Recorder) FillCircle(cp.Vector, float64, color.Color)            { r.Calls["circle"]++ }
func (r *Recorder) StrokeCircle(cp.Vector, float64, float64, color.Color) { r.Calls["ring"]++ }
func (r *Recorder) FillEllipse(cp.Vector, float64, float64, color.Color)  { r.Calls["ellipse"]++ }
func (r *Recorder) FillRect(cp.BB, color.Color)                           { r.Calls["rect"]++ }
func (r *Recorder) FillPolygon([]cp.Vector, color.Color)                  { r.Calls["polygon"]++ }
func (r *Recorder) StrokeLine(cp.Vector, cp.Vector, float64, color.Color) { r.Calls["line"]++ }
func (r *Recorder) Fade(color.Color, float64)                             { r.Calls["fade"]++ }

func (r *Recorder) Text(s string, _, _ float64, _ color.Color) {
	r.Calls["text"]++
	r.Texts = append(r.Texts, s)
}
