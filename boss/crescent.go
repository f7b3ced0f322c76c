package boss

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
)

type crescentStep int

const (
	crescentIdle crescentStep = iota
	crescentTelegraph
	crescentAct
	crescentRecover
)

type crescentPattern int

const (
	patStarBurst crescentPattern = iota
	patSpiralSwarm
	patOrbitRing
	patLaserSweep
	patConstellation
)

var crescentPatternNames = [...]string{
	patStarBurst:     "star_burst",
	patSpiralSwarm:   "spiral_swarm",
	patOrbitRing:     "orbit_ring",
	patLaserSweep:    "laser_sweep",
	patConstellation: "constellation",
}

var (
	wholePatterns = []crescentPattern{patStarBurst, patSpiralSwarm, patOrbitRing, patLaserSweep, patConstellation}
	splitPatterns = []crescentPattern{patStarBurst, patSpiralSwarm, patOrbitRing, patConstellation}
)

const (
	crescentInnerRatio      = 0.78
	crescentBiteOffset      = 0.4
	crescentIdleFrames      = 70
	crescentTelegraphFrames = 30
	crescentRecoverFrames   = 40
	// crescentTimeout forces a stuck attack back to idle.
	crescentTimeout      = 400
	crescentPhase2At     = 0.5
	crescentInvertFrames = 300
	crescentGraceFrames  = 90
	crescentCancelWhole  = 4.0
	crescentCancelSplit  = -3.0

	laserWidth        = 16.0
	laserFrames       = 90
	laserSweepSpeed   = 1.5
	constellationTTL  = 240
	constellationDots = 5
	constellationLine = 5.0
	constellationFall = 0.6

	halfOffset  = 110.0
	halfRadius  = 0.7
	halfSpeedX  = 1.8
	halfSpeedY  = 0.9
	halfMinY    = 60.0
	halfMaxY    = 280.0
	halfStagger = 35
)

// Laser is a screen-wide horizontal beam drifting downward.
type Laser struct {
	Y     float64
	Timer int
}

// Constellation is a chain of hazard lines with its own lifetime.
type Constellation struct {
	Points []cp.Vector
	TTL    int
}

// attack is one pattern cycle. The whole boss and each split half run their
// own.
type attack struct {
	Step    crescentStep
	Timer   int
	Elapsed int
	Pattern crescentPattern
	Prev    int
	Spin    float64
}

func newAttack(delay int) attack {
	return attack{Prev: -1, Timer: -delay}
}

// Half is one body of the split crescent with its own HP pool.
type Half struct {
	Pos    cp.Vector
	Vel    cp.Vector
	Radius float64
	Health component.Health
	Mirror bool
	Attack attack
}

// CrescentState is the multi-phase crescent boss. Phase 2 splits it into two
// halves that must both be destroyed.
type CrescentState struct {
	Attack attack
	Bob    int
	Home   cp.Vector

	// LaserAim is the player height captured when a laser telegraph starts.
	LaserAim     float64
	LaserPending bool

	Lasers         []Laser
	Constellations []Constellation

	Split  bool
	Halves [2]Half
}

func newCrescentState(b *Boss) *CrescentState {
	return &CrescentState{Attack: newAttack(0), Home: b.Pos}
}

func (s *CrescentState) Move(b *Boss, _ *Input) {
	if s.Split {
		for i := range s.Halves {
			s.moveHalf(&s.Halves[i])
		}
		s.syncCenter(b)
	} else {
		s.Bob++
		t := float64(s.Bob)
		b.Pos = cp.Vector{X: s.Home.X + 120*math.Sin(t*0.02), Y: s.Home.Y + 10*math.Sin(t*0.05)}
	}
	s.updateTransients()
}

func (s *CrescentState) Tick(b *Boss, in *Input, out *Output) {
	s.Move(b, in)
	if !s.Split {
		s.runAttack(b, &s.Attack, b.Pos, wholePatterns, in, out)
		return
	}
	for i := range s.Halves {
		h := &s.Halves[i]
		if h.Health.IsAlive() {
			s.runAttack(b, &h.Attack, h.Pos, splitPatterns, in, out)
		}
	}
}

func (s *CrescentState) runAttack(b *Boss, a *attack, origin cp.Vector, patterns []crescentPattern, in *Input, out *Output) {
	a.Timer++
	if a.Step != crescentIdle {
		a.Elapsed++
		if a.Elapsed > crescentTimeout {
			s.abort(a)
			return
		}
	}

	switch a.Step {
	case crescentIdle:
		if a.Timer < crescentIdleFrames {
			return
		}
		names := make([]string, len(patterns))
		for i, p := range patterns {
			names[i] = crescentPatternNames[p]
		}
		idx := pickPattern(b, in, names, a.Prev)
		if idx < 0 {
			a.Timer = 0
			return
		}
		a.Prev = idx
		a.Pattern = patterns[idx]
		a.Step = crescentTelegraph
		a.Timer = 0
		a.Elapsed = 0
		if a.Pattern == patLaserSweep {
			s.LaserAim = in.nearestPlayer(origin).Y
			s.LaserPending = true
		}
	case crescentTelegraph:
		if a.Timer >= crescentTelegraphFrames {
			a.Step = crescentAct
			a.Timer = 0
		}
	case crescentAct:
		if s.act(a, origin, in, out) {
			a.Step = crescentRecover
			a.Timer = 0
		}
	case crescentRecover:
		if a.Timer >= crescentRecoverFrames {
			a.Step = crescentIdle
			a.Timer = 0
		}
	default:
		s.abort(a)
	}
}

// act runs one frame of the current pattern and reports whether it finished.
func (s *CrescentState) act(a *attack, origin cp.Vector, in *Input, out *Output) bool {
	t := a.Timer
	switch a.Pattern {
	case patStarBurst:
		if t == 1 || t == 21 || t == 41 {
			out.Fire(ring(origin, 16, 3, a.Spin, component.ShapeStar, colorStar)...)
			out.Cue(component.CueBurst)
			a.Spin += 0.2
		}
		return t >= 60
	case patSpiralSwarm:
		if t%6 == 1 {
			out.Fire(
				spiralShot(origin, cp.Vector{X: 0, Y: 1.4}, a.Spin, 0.05, 1.1),
				spiralShot(origin, cp.Vector{X: 0, Y: 1.4}, a.Spin+math.Pi, 0.05, 1.1),
			)
			a.Spin += 0.7
		}
		return t >= 90
	case patOrbitRing:
		if t == 1 {
			out.Fire(orbitRing(origin, 12, 20, 0.04, 1.2, 150, 3.5)...)
		}
		if t == 31 {
			out.Fire(orbitRing(origin, 12, 20, -0.04, 1.2, 150, 3.5)...)
		}
		return t >= 60
	case patLaserSweep:
		if t == 1 && s.LaserPending {
			s.Lasers = append(s.Lasers, Laser{Y: s.LaserAim})
			s.LaserPending = false
			out.Cue(component.CueBeam)
		}
		return t >= 45
	case patConstellation:
		if t == 1 {
			for i := 0; i < 3; i++ {
				pts := make([]cp.Vector, constellationDots)
				for j := range pts {
					pts[j] = cp.Vector{X: in.between(60, common.ScreenWidth-60), Y: in.between(60, 300)}
				}
				s.Constellations = append(s.Constellations, Constellation{Points: pts, TTL: constellationTTL})
			}
			out.Cue(component.CueShapeTransform)
		}
		return t >= 30
	}
	return true
}

func (s *CrescentState) abort(a *attack) {
	if a.Pattern == patLaserSweep {
		s.LaserPending = false
	}
	a.Step = crescentIdle
	a.Timer = 0
	a.Elapsed = 0
}

func (s *CrescentState) updateTransients() {
	lasers := s.Lasers[:0]
	for _, l := range s.Lasers {
		l.Timer++
		l.Y += laserSweepSpeed
		if l.Timer < laserFrames && l.Y < common.ScreenHeight {
			lasers = append(lasers, l)
		}
	}
	s.Lasers = lasers

	cs := s.Constellations[:0]
	for _, c := range s.Constellations {
		c.TTL--
		if c.TTL <= 0 {
			continue
		}
		for j := range c.Points {
			c.Points[j].Y += constellationFall
		}
		cs = append(cs, c)
	}
	s.Constellations = cs
}

func (s *CrescentState) moveHalf(h *Half) {
	if !h.Health.IsAlive() {
		return
	}
	h.Pos = h.Pos.Add(h.Vel)
	if h.Pos.X-h.Radius < 0 || h.Pos.X+h.Radius > common.ScreenWidth {
		h.Vel.X = -h.Vel.X
		h.Pos.X = common.Clamp(h.Pos.X, h.Radius, common.ScreenWidth-h.Radius)
	}
	if h.Pos.Y < halfMinY || h.Pos.Y > halfMaxY {
		h.Vel.Y = -h.Vel.Y
		h.Pos.Y = common.Clamp(h.Pos.Y, halfMinY, halfMaxY)
	}
}

// syncCenter keeps the boss position at the midpoint of the living halves.
func (s *CrescentState) syncCenter(b *Boss) {
	sum := cp.Vector{}
	n := 0
	for i := range s.Halves {
		if s.Halves[i].Health.IsAlive() {
			sum = sum.Add(s.Halves[i].Pos)
			n++
		}
	}
	if n > 0 {
		b.Pos = sum.Mult(1 / float64(n))
	}
}

// split enters phase 2. Every phase-1 timer, aim and transient is dropped so
// nothing stale fires after the transition.
func (s *CrescentState) split(b *Boss, out *Output) {
	s.Attack = newAttack(0)
	s.LaserPending = false
	s.LaserAim = 0
	s.Lasers = nil
	s.Constellations = nil

	each := b.Health.Current / 2
	for i := range s.Halves {
		sign := float64(2*i - 1)
		s.Halves[i] = Half{
			Pos:    cp.Vector{X: b.Pos.X + sign*halfOffset, Y: b.Pos.Y},
			Vel:    cp.Vector{X: sign * halfSpeedX, Y: halfSpeedY},
			Radius: b.Radius * halfRadius,
			Health: component.Health{Max: each, Current: each},
			Mirror: i == 1,
			Attack: newAttack(i * halfStagger),
		}
	}
	s.Split = true

	b.enterPhase(2, crescentGraceFrames, out)
	out.InvertControls = crescentInvertFrames
	out.SpawnPlayer2 = true
	out.Cue(component.CueShapeTransform)
}

func crescentInner(center cp.Vector, r float64, mirror bool) cp.Vector {
	dx := r * crescentBiteOffset
	if mirror {
		dx = -dx
	}
	return cp.Vector{X: center.X + dx, Y: center.Y - r*0.15}
}

// crescentHit tests the ring between the outer disc and the bite. The bite is
// hollow for every bullet except homing shots.
func crescentHit(center cp.Vector, r float64, mirror bool, p *component.Projectile) bool {
	if !circleHit(center, p.Pos, r) {
		return false
	}
	if circleHit(crescentInner(center, r, mirror), p.Pos, r*crescentInnerRatio) {
		return p.Weapon == component.WeaponHoming && !p.Reflected
	}
	return true
}

func (s *CrescentState) HitTest(b *Boss, p *component.Projectile) Hit {
	if !s.Split {
		if crescentHit(b.Pos, b.Radius, false, p) {
			return Hit{Kind: HitDamage, Center: b.Pos}
		}
		return Hit{}
	}
	for i := range s.Halves {
		h := &s.Halves[i]
		if h.Health.IsAlive() && crescentHit(h.Pos, h.Radius, h.Mirror, p) {
			return Hit{Kind: HitDamage, Part: i + 1, Center: h.Pos}
		}
	}
	return Hit{}
}

func (s *CrescentState) Damage(b *Boss, hit Hit, amount float64, out *Output) {
	if !s.Split {
		if !b.damage(amount, out) || !b.Alive {
			return
		}
		if b.Phase == 1 && b.Health.Fraction() <= crescentPhase2At {
			s.split(b, out)
		}
		return
	}

	if hit.Part < 1 || hit.Part > len(s.Halves) {
		return
	}
	h := &s.Halves[hit.Part-1]
	if !h.Health.ApplyDamage(amount) {
		return
	}
	b.Flash = hitFlashFrames
	out.Cue(component.CueEnemyHit)
	if !h.Health.IsAlive() {
		out.Explode(h.Pos, h.Radius*1.5)
		out.Cue(component.CueExplosion)
	}

	total := 0.0
	alive := false
	for i := range s.Halves {
		total += s.Halves[i].Health.Current
		alive = alive || s.Halves[i].Health.IsAlive()
	}
	if total < b.Health.Current {
		b.Health.Current = total
	}
	if !alive {
		out.DespawnPlayer2 = true
		b.die(out)
	}
}

func (s *CrescentState) Hazards(b *Boss) []Hazard {
	var hs []Hazard
	if !s.Split {
		hs = append(hs, CircleHazard(b.Pos, b.Radius*0.85))
	} else {
		for i := range s.Halves {
			if h := &s.Halves[i]; h.Health.IsAlive() {
				hs = append(hs, CircleHazard(h.Pos, h.Radius*0.85))
			}
		}
	}
	for _, l := range s.Lasers {
		hs = append(hs, BeamHazard(cp.Vector{X: 0, Y: l.Y}, cp.Vector{X: common.ScreenWidth, Y: l.Y}, laserWidth))
	}
	for _, c := range s.Constellations {
		for j := 1; j < len(c.Points); j++ {
			hs = append(hs, BeamHazard(c.Points[j-1], c.Points[j], constellationLine))
		}
	}
	return hs
}

// ClearHazards drops lasers, constellations and any pending laser aim.
func (s *CrescentState) ClearHazards(*Boss) {
	s.Lasers = nil
	s.Constellations = nil
	if s.LaserPending {
		s.LaserPending = false
		if s.Attack.Pattern == patLaserSweep && s.Attack.Step == crescentTelegraph {
			s.abort(&s.Attack)
		}
	}
}

func (s *CrescentState) CancelMargin(b *Boss) float64 {
	if s.Split {
		return crescentCancelSplit
	}
	return crescentCancelWhole
}

func (s *CrescentState) Target(b *Boss) (cp.Vector, bool) {
	if !s.Split {
		return b.Pos, true
	}
	for i := range s.Halves {
		if s.Halves[i].Health.IsAlive() {
			return s.Halves[i].Pos, true
		}
	}
	return cp.Vector{}, false
}

func (s *CrescentState) Draw(b *Boss, c gfx.Canvas) {
	if s.LaserPending && s.Attack.Step == crescentTelegraph {
		c.StrokeLine(cp.Vector{X: 0, Y: s.LaserAim}, cp.Vector{X: common.ScreenWidth, Y: s.LaserAim}, 2, colorWarning)
	}
	for _, l := range s.Lasers {
		c.StrokeLine(cp.Vector{X: 0, Y: l.Y}, cp.Vector{X: common.ScreenWidth, Y: l.Y}, laserWidth, colorBeam)
	}
	for _, cn := range s.Constellations {
		for j, p := range cn.Points {
			if j > 0 {
				c.StrokeLine(cn.Points[j-1], p, constellationLine, colorStar)
			}
			c.FillCircle(p, 4, colorBeam)
		}
	}

	if !s.Split {
		drawCrescent(c, b.Pos, b.Radius, false, b.tint())
		return
	}
	for i := range s.Halves {
		if h := &s.Halves[i]; h.Health.IsAlive() {
			drawCrescent(c, h.Pos, h.Radius, h.Mirror, b.tint())
		}
	}
}

func drawCrescent(c gfx.Canvas, center cp.Vector, r float64, mirror bool, clr color.RGBA) {
	c.FillCircle(center, r, clr)
	c.FillCircle(crescentInner(center, r, mirror), r*crescentInnerRatio, colorHollow)
}
