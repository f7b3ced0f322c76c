package system

import "github.com/milk9111/bossrush/encounter"

// OutcomeSystem counts down the frame-scoped timers and resolves the result.
type OutcomeSystem struct{}

func NewOutcomeSystem() *OutcomeSystem {
	return &OutcomeSystem{}
}

func (o *OutcomeSystem) Update(e *encounter.Encounter) {
	if e == nil {
		return
	}

	markers := e.Markers[:0]
	for _, m := range e.Markers {
		m.Timer++
		if m.Timer < m.Frames {
			markers = append(markers, m)
		}
	}
	e.Markers = markers

	if e.Shake > 0 {
		e.Shake--
	}
	if e.InvertTimer > 0 {
		e.InvertTimer--
	}

	if e.Result == encounter.Pending {
		e.Result = Resolve(e)
	}
	e.Frame++
}

// Resolve reports the result the encounter has reached this frame. Running
// out of lives wins over a boss that is still exploding.
func Resolve(e *encounter.Encounter) encounter.Result {
	switch {
	case e.Player.Lives <= 0:
		return encounter.Lost
	case e.Boss == nil, e.Boss.Defeated():
		return encounter.Won
	}
	return encounter.Pending
}
