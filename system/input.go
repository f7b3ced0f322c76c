package system

import (
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
)

// InputSystem derives the effective controls from the raw snapshot.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(e *encounter.Encounter) {
	if e == nil {
		return
	}
	e.Controls = e.Input
	if e.InvertTimer > 0 {
		e.Controls = Invert(e.Input)
	}
}

// Invert swaps opposite directions in both the held and pressed sets.
func Invert(in component.Input) component.Input {
	return component.Input{Held: invertSet(in.Held), Pressed: invertSet(in.Pressed)}
}

func invertSet(s component.KeySet) component.KeySet {
	out := s
	swap := func(a, b component.Key) {
		out &^= 1<<uint(a) | 1<<uint(b)
		if s.Has(a) {
			out.Set(b)
		}
		if s.Has(b) {
			out.Set(a)
		}
	}
	swap(component.KeyLeft, component.KeyRight)
	swap(component.KeyUp, component.KeyDown)
	return out
}
