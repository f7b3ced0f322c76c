package boss

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
)

type grandStage int

const (
	grandPhase1 grandStage = iota
	grandTransition
	grandPhase2
	grandStarRain
)

type barrage int

const (
	barrageFalling barrage = iota
	barrageWall
)

type volleyStep int

const (
	volleyIdle volleyStep = iota
	volleyTelegraph
	volleyDrop
	volleyCooldown
)

type revealStep int

const (
	revealExplode revealStep = iota
	revealFade
	revealSilhouette
)

type form int

const (
	formCircle form = iota
	formEllipse
	formTrapezoid
	formStar
)

var formCycle = [...]form{formCircle, formEllipse, formTrapezoid, formStar}

type formStep int

const (
	formTelegraph formStep = iota
	formCharge
	formAct
	formReturn
)

const (
	grandOrbitRadius = 60.0
	grandOrbitSpeed  = 0.015
	grandBobAmp      = 12.0
	grandBobFreq     = 0.05

	volleyIdleFrames      = 90
	volleyTelegraphFrames = 45
	volleyCooldownFrames  = 60
	volleyMaxFrames       = 240

	// SpearW and SpearH are the falling spear hitbox.
	SpearW = 14.0
	SpearH = 60.0

	spearFallSpeed = 7.0
	spearWallSpeed = 3.0
	spearSpacing   = 34.0
	fallingColumns = 5
	// WallGap is the width of the safe lane left in a spear wall.
	WallGap = 130.0

	grandPhase2At    = 0.6
	grandStarRainAt  = 0.2
	grandGraceFrames = 60

	revealExplodeFrames    = 70
	revealFadeFrames       = 60
	revealSilhouetteFrames = 60

	formTelegraphFrames = 30
	formChargeFrames    = 40
	formReturnMax       = 90
	formReturnSpeed     = 5.0

	ballFrames   = 240
	ballSpeed    = 6.0
	ballRing     = 8
	dropFrames   = 150
	dropEvery    = 10
	trapezEvery  = 14
	dropSpeed    = 3.2
	moonFrames   = 180
	moonRadius   = 110.0
	moonSpin     = 0.02
	moonSize     = 16.0
	moonBeam     = 14.0
	rainEvery    = 4
	rainRingEach = 60
)

var (
	colorSpear      = color.RGBA{R: 0xd0, G: 0xd8, B: 0xe8, A: 0xff}
	colorMoon       = color.RGBA{R: 0xe8, G: 0xe8, B: 0xc0, A: 0xff}
	colorBlackout   = color.RGBA{A: 0xff}
	colorSilhouette = color.RGBA{R: 0x30, G: 0x10, B: 0x40, A: 0xff}
)

// Spear is a falling hazard. It is part of the boss, not a projectile, so it
// cannot be cancelled or reflected.
type Spear struct {
	Pos cp.Vector
	Vel cp.Vector
}

func (sp Spear) Bounds() cp.BB {
	return common.BoxAt(sp.Pos, SpearW, SpearH)
}

// GrandState is the final boss: a spear-throwing phase, a staged reveal, then
// a shape-shifting phase that ends in a star rain.
type GrandState struct {
	Stage grandStage
	Home  cp.Vector
	Orbit float64
	Bob   int

	Volley      volleyStep
	VolleyTimer int
	Barrage     barrage
	Barrages    int
	Columns     []float64
	GapX        float64
	Spears      []Spear

	Reveal      revealStep
	RevealTimer int
	Blackout    float64

	Form      form
	Cursor    int
	Step      formStep
	StepTimer int
	BallVel   cp.Vector
	MoonAngle float64
	Moons     bool
	Drops     int

	RainTimer int
}

func newGrandState(b *Boss, checkpoint bool) *GrandState {
	s := &GrandState{Home: b.Pos}
	if checkpoint {
		b.Health.Current = b.Health.Max * grandPhase2At
		b.Phase = 2
		b.Grace = grandGraceFrames
		s.Stage = grandPhase2
	}
	return s
}

func (s *GrandState) Move(b *Boss, _ *Input) {
	switch s.Stage {
	case grandPhase1:
		s.hover(b)
		s.updateSpears()
	case grandStarRain:
		s.hover(b)
	}
}

// hover circles loosely around home with a vertical bob.
func (s *GrandState) hover(b *Boss) {
	s.Orbit = common.WrapAngle(s.Orbit + grandOrbitSpeed)
	s.Bob++
	bob := grandBobAmp * math.Sin(float64(s.Bob)*grandBobFreq)
	target := s.Home.Add(cp.Vector{
		X: math.Cos(s.Orbit) * grandOrbitRadius,
		Y: math.Sin(s.Orbit)*grandOrbitRadius*0.3 + bob,
	})
	b.Pos = common.ApproachVec(b.Pos, target, formReturnSpeed)
}

func (s *GrandState) Tick(b *Boss, in *Input, out *Output) {
	switch s.Stage {
	case grandPhase1:
		s.hover(b)
		s.updateSpears()
		s.tickVolley(in, out)
	case grandTransition:
		s.tickReveal(b, in, out)
	case grandPhase2:
		s.tickForm(b, in, out)
	case grandStarRain:
		s.hover(b)
		s.tickRain(b, in, out)
	default:
		s.reset()
	}
}

// reset is the fail-safe for an unrecognized stage.
func (s *GrandState) reset() {
	s.Stage = grandPhase1
	s.Spears = nil
	s.Columns = nil
	s.enterVolley(volleyIdle)
	s.Reveal = revealExplode
	s.RevealTimer = 0
	s.Blackout = 0
	s.Moons = false
	s.enterStep(formTelegraph)
	s.RainTimer = 0
}

func (s *GrandState) updateSpears() {
	alive := s.Spears[:0]
	for _, sp := range s.Spears {
		sp.Pos = sp.Pos.Add(sp.Vel)
		if sp.Pos.Y-SpearH/2 > common.ScreenHeight {
			continue
		}
		alive = append(alive, sp)
	}
	s.Spears = alive
}

func (s *GrandState) tickVolley(in *Input, out *Output) {
	s.VolleyTimer++
	switch s.Volley {
	case volleyIdle:
		if s.VolleyTimer < volleyIdleFrames {
			return
		}
		s.Barrage = barrage(s.Barrages % 2)
		s.Barrages++
		if s.Barrage == barrageFalling {
			s.Columns = s.Columns[:0]
			for i := 0; i < fallingColumns; i++ {
				s.Columns = append(s.Columns, in.between(SpearW, common.ScreenWidth-SpearW))
			}
		} else {
			s.GapX = in.between(WallGap/2+20, common.ScreenWidth-WallGap/2-20)
		}
		s.enterVolley(volleyTelegraph)
		out.Cue(component.CueBeamCharge)
	case volleyTelegraph:
		if s.VolleyTimer < volleyTelegraphFrames {
			return
		}
		if s.Barrage == barrageFalling {
			for _, x := range s.Columns {
				s.Spears = append(s.Spears, Spear{
					Pos: cp.Vector{X: x, Y: -SpearH / 2},
					Vel: cp.Vector{Y: spearFallSpeed},
				})
			}
		} else {
			s.Spears = append(s.Spears, spearWall(s.GapX)...)
		}
		s.enterVolley(volleyDrop)
		out.Cue(component.CueSpear)
	case volleyDrop:
		if len(s.Spears) == 0 || s.VolleyTimer >= volleyMaxFrames {
			s.Columns = nil
			s.enterVolley(volleyCooldown)
		}
	case volleyCooldown:
		if s.VolleyTimer >= volleyCooldownFrames {
			s.enterVolley(volleyIdle)
		}
	default:
		s.enterVolley(volleyIdle)
	}
}

func (s *GrandState) enterVolley(v volleyStep) {
	s.Volley = v
	s.VolleyTimer = 0
}

// spearWall fills the top edge with spears except for a lane of WallGap
// centered on gapX.
func spearWall(gapX float64) []Spear {
	var out []Spear
	for x := spearSpacing / 2; x < common.ScreenWidth; x += spearSpacing {
		if math.Abs(x-gapX) < WallGap/2+SpearW/2 {
			continue
		}
		out = append(out, Spear{
			Pos: cp.Vector{X: x, Y: -SpearH / 2},
			Vel: cp.Vector{Y: spearWallSpeed},
		})
	}
	return out
}

func (s *GrandState) startReveal(out *Output) {
	s.Stage = grandTransition
	s.Reveal = revealExplode
	s.RevealTimer = 0
	s.Spears = nil
	s.Columns = nil
	s.enterVolley(volleyIdle)
	out.Cue(component.CuePhase)
	out.Shake(30)
}

func (s *GrandState) tickReveal(b *Boss, in *Input, out *Output) {
	s.RevealTimer++
	switch s.Reveal {
	case revealExplode:
		if s.RevealTimer%8 == 0 {
			off := cp.Vector{X: in.between(-b.Radius, b.Radius), Y: in.between(-b.Radius, b.Radius)}
			out.Explode(b.Pos.Add(off), b.Radius*0.7)
			out.Cue(component.CueExplosion)
		}
		if s.RevealTimer >= revealExplodeFrames {
			s.Reveal = revealFade
			s.RevealTimer = 0
		}
	case revealFade:
		s.Blackout = math.Min(1, float64(s.RevealTimer)/revealFadeFrames)
		if s.RevealTimer >= revealFadeFrames {
			s.Reveal = revealSilhouette
			s.RevealTimer = 0
			b.Pos = s.Home
		}
	case revealSilhouette:
		s.Blackout = math.Max(0, 1-float64(s.RevealTimer)/revealSilhouetteFrames)
		if s.RevealTimer >= revealSilhouetteFrames {
			s.enterPhase2(b, out)
		}
	default:
		s.Reveal = revealExplode
		s.RevealTimer = 0
	}
}

func (s *GrandState) enterPhase2(b *Boss, out *Output) {
	s.Stage = grandPhase2
	s.Blackout = 0
	s.Form = formCircle
	s.Cursor = 0
	s.enterStep(formTelegraph)
	b.Pos = s.Home
	b.enterPhase(2, grandGraceFrames, out)
	out.Checkpoint = true
	out.Cue(component.CueShapeTransform)
}

func (s *GrandState) enterStep(f formStep) {
	s.Step = f
	s.StepTimer = 0
}

func (s *GrandState) tickForm(b *Boss, in *Input, out *Output) {
	s.StepTimer++
	switch s.Step {
	case formTelegraph:
		if s.StepTimer >= formTelegraphFrames {
			s.enterStep(formCharge)
			if s.Form == formStar {
				s.Moons = true
				s.MoonAngle = 0
			}
			out.Cue(component.CueBeamCharge)
		}
	case formCharge:
		if s.StepTimer >= formChargeFrames {
			s.enterStep(formAct)
			if s.Form == formCircle {
				s.BallVel = in.nearestPlayer(b.Pos).Sub(b.Pos).Normalize().Mult(ballSpeed)
				if s.BallVel.LengthSq() == 0 {
					s.BallVel = cp.Vector{X: ballSpeed * 0.6, Y: ballSpeed * 0.8}
				}
			}
			if s.Form == formStar {
				out.Cue(component.CueBeam)
			}
		}
	case formAct:
		if s.act(b, in, out) {
			s.Moons = false
			s.enterStep(formReturn)
		}
	case formReturn:
		b.Pos = common.ApproachVec(b.Pos, s.Home, formReturnSpeed)
		if b.Pos == s.Home || s.StepTimer >= formReturnMax {
			b.Pos = s.Home
			s.Cursor++
			s.Form = formCycle[s.Cursor%len(formCycle)]
			s.enterStep(formTelegraph)
			out.Cue(component.CueShapeTransform)
		}
	default:
		s.enterStep(formTelegraph)
	}
}

// act runs one frame of the current form's attack and reports when it is over.
func (s *GrandState) act(b *Boss, in *Input, out *Output) bool {
	switch s.Form {
	case formCircle:
		b.Pos = b.Pos.Add(s.BallVel)
		r := b.Radius
		bounced := false
		if b.Pos.X-r < 0 || b.Pos.X+r > common.ScreenWidth {
			s.BallVel.X = -s.BallVel.X
			b.Pos.X = common.Clamp(b.Pos.X, r, common.ScreenWidth-r)
			bounced = true
		}
		if b.Pos.Y-r < 0 || b.Pos.Y+r > common.ScreenHeight {
			s.BallVel.Y = -s.BallVel.Y
			b.Pos.Y = common.Clamp(b.Pos.Y, r, common.ScreenHeight-r)
			bounced = true
		}
		if bounced {
			out.Fire(ring(b.Pos, ballRing, 2.4, float64(s.StepTimer)*0.1, component.ShapeCircle, colorEnemyShot)...)
			out.Cue(component.CueStomp)
			out.Shake(6)
		}
		return s.StepTimer >= ballFrames
	case formEllipse:
		if s.StepTimer%dropEvery == 0 {
			out.Fire(s.drop(in, false))
		}
		return s.StepTimer >= dropFrames
	case formTrapezoid:
		if s.StepTimer%trapezEvery == 0 {
			out.Fire(s.drop(in, true), s.drop(in, true))
		}
		return s.StepTimer >= dropFrames
	case formStar:
		s.MoonAngle = common.WrapAngle(s.MoonAngle + moonSpin)
		return s.StepTimer >= moonFrames
	}
	return true
}

// drop spawns one rainbow bullet at the top edge. weave makes it a sine shot.
func (s *GrandState) drop(in *Input, weave bool) component.Projectile {
	clr := rainbow[s.Drops%len(rainbow)]
	s.Drops++
	pos := cp.Vector{X: in.between(10, common.ScreenWidth-10), Y: -10}
	p := enemyShot(pos, cp.Vector{Y: dropSpeed}, defaultBulletSize, component.ShapeCircle, clr)
	if weave {
		p.Mode = component.MoveSine
		p.Sine = component.SineMotion{Base: pos, Amp: 24, Freq: 0.06, Phase: in.between(0, 2*math.Pi)}
		p.Shape = component.ShapeDiamond
	}
	return p
}

func (s *GrandState) tickRain(b *Boss, in *Input, out *Output) {
	s.RainTimer++
	if s.RainTimer%rainEvery == 0 {
		pos := cp.Vector{X: in.between(0, common.ScreenWidth), Y: -8}
		vel := cp.Vector{X: in.between(-0.6, 0.6), Y: in.between(2.5, 4)}
		clr := rainbow[s.Drops%len(rainbow)]
		s.Drops++
		out.Fire(enemyShot(pos, vel, 9, component.ShapeStar, clr))
	}
	if s.RainTimer%rainRingEach == 0 {
		out.Fire(ring(b.Pos, 12, 2.2, float64(s.RainTimer)*0.05, component.ShapeStar, colorStar)...)
		out.Cue(component.CueBurst)
	}
}

// MoonPositions returns the two moons circling the star form.
func (s *GrandState) MoonPositions(b *Boss) [2]cp.Vector {
	return [2]cp.Vector{
		b.Pos.Add(cp.ForAngle(s.MoonAngle).Mult(moonRadius)),
		b.Pos.Add(cp.ForAngle(s.MoonAngle + math.Pi).Mult(moonRadius)),
	}
}

func (s *GrandState) moonBeam(b *Boss, moon cp.Vector) (cp.Vector, cp.Vector) {
	return moon, common.RayToEdge(moon, moon.Sub(b.Pos), common.OffscreenMargin)
}

// formPolygon returns the trapezoid outline used for both drawing and hits.
func formPolygon(b *Boss) []cp.Vector {
	return gfx.Trapezoid(b.Pos, b.Radius, b.Radius*2.2, b.Radius*1.4)
}

func (s *GrandState) HitTest(b *Boss, p *component.Projectile) Hit {
	switch s.Stage {
	case grandTransition:
		if circleHit(b.Pos, p.Pos, b.Radius) {
			return Hit{Kind: HitAbsorb, Center: b.Pos}
		}
		return Hit{}
	case grandPhase2:
		return s.formHit(b, p)
	}
	if circleHit(b.Pos, p.Pos, b.Radius) {
		return Hit{Kind: HitDamage, Center: b.Pos}
	}
	return Hit{}
}

func (s *GrandState) formHit(b *Boss, p *component.Projectile) Hit {
	switch s.Form {
	case formEllipse:
		if common.InsideEllipse(p.Pos, b.Pos, b.Radius*1.4, b.Radius*0.8) {
			return Hit{Kind: HitDamage, Center: b.Pos}
		}
	case formTrapezoid:
		if common.InsidePolygon(p.Pos, formPolygon(b)) {
			return Hit{Kind: HitDamage, Center: b.Pos}
		}
	case formStar:
		if circleHit(b.Pos, p.Pos, b.Radius*0.5) {
			return Hit{Kind: HitDamage, Center: b.Pos}
		}
		if circleHit(b.Pos, p.Pos, b.Radius) {
			return Hit{Kind: HitReflect, Part: 1, Center: b.Pos}
		}
	default:
		if circleHit(b.Pos, p.Pos, b.Radius) {
			return Hit{Kind: HitDamage, Center: b.Pos}
		}
	}
	return Hit{}
}

func (s *GrandState) Damage(b *Boss, hit Hit, amount float64, out *Output) {
	if s.Stage == grandTransition || hit.Part != 0 {
		return
	}
	if !b.damage(amount, out) || !b.Alive {
		return
	}
	switch {
	case s.Stage == grandPhase1 && b.Health.Fraction() <= grandPhase2At:
		s.startReveal(out)
	case s.Stage == grandPhase2 && b.Health.Fraction() <= grandStarRainAt:
		s.Stage = grandStarRain
		s.Moons = false
		s.BallVel = cp.Vector{}
		s.RainTimer = 0
		b.enterPhase(3, grandGraceFrames, out)
		out.Cue(component.CueShapeTransform)
	}
}

func (s *GrandState) Hazards(b *Boss) []Hazard {
	hs := []Hazard{CircleHazard(b.Pos, b.Radius*0.85)}
	for _, sp := range s.Spears {
		hs = append(hs, BoxHazard(sp.Bounds()))
	}
	if s.Moons {
		for _, m := range s.MoonPositions(b) {
			hs = append(hs, CircleHazard(m, moonSize))
			if s.Step == formAct {
				a, e := s.moonBeam(b, m)
				hs = append(hs, BeamHazard(a, e, moonBeam))
			}
		}
	}
	return hs
}

// ClearHazards drops spears, pending columns and the moon lasers.
func (s *GrandState) ClearHazards(*Boss) {
	s.Spears = nil
	s.Columns = nil
	if s.Volley == volleyTelegraph || s.Volley == volleyDrop {
		s.enterVolley(volleyCooldown)
	}
	if s.Moons {
		s.Moons = false
		if s.Step == formCharge || s.Step == formAct {
			s.enterStep(formReturn)
		}
	}
}

func (s *GrandState) Target(b *Boss) (cp.Vector, bool) {
	return b.Pos, true
}

func (s *GrandState) Draw(b *Boss, c gfx.Canvas) {
	for _, x := range s.Columns {
		if s.Volley == volleyTelegraph {
			c.StrokeLine(cp.Vector{X: x, Y: 0}, cp.Vector{X: x, Y: common.ScreenHeight}, 2, colorWarning)
		}
	}
	if s.Volley == volleyTelegraph && s.Barrage == barrageWall {
		c.FillRect(cp.BB{L: s.GapX - WallGap/2, B: 0, R: s.GapX + WallGap/2, T: 8}, colorWarning)
	}
	for _, sp := range s.Spears {
		c.FillPolygon(gfx.Diamond(sp.Pos, SpearW/2, SpearH/2), colorSpear)
	}

	switch s.Stage {
	case grandPhase2:
		s.drawForm(b, c)
	case grandStarRain:
		c.FillPolygon(gfx.Star(b.Pos, b.Radius, b.Radius*0.5, float64(s.RainTimer)*0.03, 5), b.tint())
	default:
		c.FillCircle(b.Pos, b.Radius, b.tint())
		c.StrokeCircle(b.Pos, b.Radius*0.6, 3, colorHollow)
	}
}

func (s *GrandState) drawForm(b *Boss, c gfx.Canvas) {
	clr := b.tint()
	if s.Step == formTelegraph && (s.StepTimer/5)%2 == 0 {
		clr = colorWarning
	}
	switch s.Form {
	case formEllipse:
		c.FillEllipse(b.Pos, b.Radius*1.4, b.Radius*0.8, clr)
	case formTrapezoid:
		c.FillPolygon(formPolygon(b), clr)
	case formStar:
		c.FillPolygon(gfx.Star(b.Pos, b.Radius, b.Radius*0.5, s.MoonAngle, 5), clr)
		c.FillCircle(b.Pos, b.Radius*0.5, colorStar)
	default:
		c.FillCircle(b.Pos, b.Radius, clr)
	}
	if !s.Moons {
		return
	}
	for _, m := range s.MoonPositions(b) {
		a, e := s.moonBeam(b, m)
		if s.Step == formAct {
			c.StrokeLine(a, e, moonBeam, colorBeam)
		} else {
			c.StrokeLine(a, e, 2, colorWarning)
		}
		c.FillCircle(m, moonSize, colorMoon)
	}
}

// DrawOverlay renders the blackout and the silhouette that rises out of it.
func (s *GrandState) DrawOverlay(b *Boss, c gfx.Canvas) {
	if s.Stage != grandTransition || s.Blackout <= 0 {
		return
	}
	c.Fade(colorBlackout, s.Blackout)
	if s.Reveal == revealSilhouette {
		c.FillPolygon(gfx.Star(b.Pos, b.Radius*1.2, b.Radius*0.6, 0, 5), colorSilhouette)
	}
}
