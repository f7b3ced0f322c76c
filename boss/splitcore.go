package boss

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
)

type gapPhase int

const (
	gapClosed gapPhase = iota
	gapOpening
	gapOpen
	gapClosing
)

type podPhase int

const (
	podIdle podPhase = iota
	podTelegraph
	podFiring
	podCooldown
)

const (
	coreHalfRX        = 34.0
	coreHalfRY        = 60.0
	coreOpenGap       = 64.0
	coreOpenStep      = 2.0
	coreCloseStep     = 4.0
	coreVulnerableGap = 36.0
	coreInnerRadius   = 30.0
	coreClosedFrames  = 150
	coreOpenFrames    = 120

	podOffsetX        = 260.0
	podOffsetY        = 20.0
	podRX             = 28.0
	podRY             = 18.0
	podIdleFrames     = 40
	podStagger        = 80
	podTelegraphFrame = 50
	podFiringFrames   = 36
	podCooldownFrames = 110
	podBeamWidth      = 18.0
)

// coreBurst is the five-layer ring volley fired when the core opens.
var coreBurst = [5]struct {
	Count int
	Speed float64
	Phase float64
}{
	{Count: 10, Speed: 1.6, Phase: 0},
	{Count: 14, Speed: 2.1, Phase: math.Pi / 14},
	{Count: 18, Speed: 2.6, Phase: 0},
	{Count: 22, Speed: 3.1, Phase: math.Pi / 22},
	{Count: 26, Speed: 3.6, Phase: math.Pi / 52},
}

var (
	colorPod  = color.RGBA{R: 0x60, G: 0x70, B: 0x90, A: 0xff}
	colorCore = color.RGBA{R: 0xff, G: 0x60, B: 0xa0, A: 0xff}
)

// Pod is a side turret with its own beam cycle.
type Pod struct {
	Phase  podPhase
	Timer  int
	Offset cp.Vector
	// Aim is the player position captured when the telegraph started.
	Aim  cp.Vector
	Wait int
}

// SplitCoreState is a core that opens and closes between two reflecting
// halves, flanked by two beam pods.
type SplitCoreState struct {
	Gap        float64
	GapPhase   gapPhase
	Timer      int
	BurstFired bool
	Pods       [2]Pod
}

func newSplitCoreState(b *Boss) *SplitCoreState {
	s := &SplitCoreState{}
	for i := range s.Pods {
		sign := float64(2*i - 1)
		s.Pods[i] = Pod{
			Offset: cp.Vector{X: sign * podOffsetX, Y: podOffsetY},
			Wait:   podIdleFrames + i*podStagger,
		}
	}
	return s
}

// Halves returns the centers of the left and right core halves.
func (s *SplitCoreState) Halves(b *Boss) (cp.Vector, cp.Vector) {
	dx := s.Gap/2 + coreHalfRX
	return cp.Vector{X: b.Pos.X - dx, Y: b.Pos.Y}, cp.Vector{X: b.Pos.X + dx, Y: b.Pos.Y}
}

// Vulnerable reports whether the core can be damaged through the gap.
func (s *SplitCoreState) Vulnerable() bool {
	return s.Gap >= coreVulnerableGap
}

func (s *SplitCoreState) Tick(b *Boss, in *Input, out *Output) {
	s.tickGap(b, out)
	for i := range s.Pods {
		s.tickPod(b, &s.Pods[i], in, out)
	}
}

func (s *SplitCoreState) tickGap(b *Boss, out *Output) {
	s.Timer++
	switch s.GapPhase {
	case gapClosed:
		s.Gap = 0
		if s.Timer >= coreClosedFrames {
			s.GapPhase = gapOpening
			s.Timer = 0
			s.BurstFired = false
		}
	case gapOpening:
		s.Gap = math.Min(s.Gap+coreOpenStep, coreOpenGap)
		if s.Gap >= coreOpenGap {
			s.GapPhase = gapOpen
			s.Timer = 0
			if !s.BurstFired {
				s.BurstFired = true
				for _, layer := range coreBurst {
					out.Fire(ring(b.Pos, layer.Count, layer.Speed, layer.Phase, component.ShapeStar, colorCore)...)
				}
				out.Cue(component.CueBurst)
			}
		}
	case gapOpen:
		if s.Timer >= coreOpenFrames {
			s.GapPhase = gapClosing
			s.Timer = 0
		}
	case gapClosing:
		s.Gap = math.Max(s.Gap-coreCloseStep, 0)
		if s.Gap <= 0 {
			s.GapPhase = gapClosed
			s.Timer = 0
		}
	default:
		s.GapPhase = gapClosed
		s.Gap = 0
		s.Timer = 0
	}
}

func (s *SplitCoreState) tickPod(b *Boss, p *Pod, in *Input, out *Output) {
	p.Timer++
	switch p.Phase {
	case podIdle:
		if p.Timer >= p.Wait {
			p.Phase = podTelegraph
			p.Timer = 0
			p.Aim = in.nearestPlayer(b.Pos.Add(p.Offset))
			out.Cue(component.CueBeamCharge)
		}
	case podTelegraph:
		if p.Timer >= podTelegraphFrame {
			p.Phase = podFiring
			p.Timer = 0
			out.Cue(component.CueBeam)
		}
	case podFiring:
		if p.Timer >= podFiringFrames {
			p.Phase = podCooldown
			p.Timer = 0
		}
	case podCooldown:
		if p.Timer >= podCooldownFrames {
			p.Phase = podIdle
			p.Timer = 0
			p.Wait = podIdleFrames
		}
	default:
		p.Phase = podIdle
		p.Timer = 0
		p.Wait = podIdleFrames
	}
}

// beam returns the segment a firing pod sweeps; the aim is fixed at
// telegraph start.
func (s *SplitCoreState) beam(b *Boss, p *Pod) (cp.Vector, cp.Vector) {
	origin := b.Pos.Add(p.Offset)
	return origin, common.RayToEdge(origin, p.Aim.Sub(origin), common.OffscreenMargin)
}

// HitTest treats ellipse boundaries as exterior: a point exactly on a seam
// belongs to neither half and falls through to the core test.
func (s *SplitCoreState) HitTest(b *Boss, p *component.Projectile) Hit {
	left, right := s.Halves(b)
	if common.InsideEllipse(p.Pos, left, coreHalfRX, coreHalfRY) {
		return Hit{Kind: HitReflect, Part: 1, Center: left}
	}
	if common.InsideEllipse(p.Pos, right, coreHalfRX, coreHalfRY) {
		return Hit{Kind: HitReflect, Part: 2, Center: right}
	}
	for i := range s.Pods {
		pod := b.Pos.Add(s.Pods[i].Offset)
		if common.InsideEllipse(p.Pos, pod, podRX, podRY) {
			return Hit{Kind: HitAbsorb, Part: 3 + i, Center: pod}
		}
	}
	if circleHit(b.Pos, p.Pos, coreInnerRadius) {
		if s.Vulnerable() {
			return Hit{Kind: HitDamage, Center: b.Pos}
		}
		return Hit{Kind: HitReflect, Center: b.Pos}
	}
	return Hit{}
}

func (s *SplitCoreState) Damage(b *Boss, hit Hit, amount float64, out *Output) {
	if hit.Part != 0 || !s.Vulnerable() {
		return
	}
	b.damage(amount, out)
}

func (s *SplitCoreState) Hazards(b *Boss) []Hazard {
	left, right := s.Halves(b)
	hs := []Hazard{
		EllipseHazard(left, coreHalfRX, coreHalfRY),
		EllipseHazard(right, coreHalfRX, coreHalfRY),
	}
	for i := range s.Pods {
		p := &s.Pods[i]
		hs = append(hs, EllipseHazard(b.Pos.Add(p.Offset), podRX, podRY))
		if p.Phase == podFiring {
			a, e := s.beam(b, p)
			hs = append(hs, BeamHazard(a, e, podBeamWidth))
		}
	}
	return hs
}

// ClearHazards cancels pending and active beams.
func (s *SplitCoreState) ClearHazards(*Boss) {
	for i := range s.Pods {
		p := &s.Pods[i]
		switch p.Phase {
		case podTelegraph:
			p.Phase = podIdle
			p.Timer = 0
			p.Wait = podIdleFrames
		case podFiring:
			p.Phase = podCooldown
			p.Timer = 0
		}
	}
}

func (s *SplitCoreState) Target(b *Boss) (cp.Vector, bool) {
	return b.Pos, true
}

func (s *SplitCoreState) Draw(b *Boss, c gfx.Canvas) {
	for i := range s.Pods {
		p := &s.Pods[i]
		pos := b.Pos.Add(p.Offset)
		switch p.Phase {
		case podTelegraph:
			a, e := s.beam(b, p)
			c.StrokeLine(a, e, 2, colorWarning)
		case podFiring:
			a, e := s.beam(b, p)
			c.StrokeLine(a, e, podBeamWidth, colorBeam)
		}
		c.FillEllipse(pos, podRX, podRY, colorPod)
	}
	coreColor := colorHollow
	if s.Vulnerable() {
		coreColor = colorCore
	}
	c.FillCircle(b.Pos, coreInnerRadius, coreColor)
	left, right := s.Halves(b)
	c.FillEllipse(left, coreHalfRX, coreHalfRY, b.tint())
	c.FillEllipse(right, coreHalfRX, coreHalfRY, b.tint())
}
