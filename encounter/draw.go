package encounter

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
	"golang.org/x/image/colornames"
)

var (
	playerColor   = colornames.Lightskyblue
	mirrorColor   = colornames.Plum
	shieldColor   = colornames.Aquamarine
	reflectColor  = colornames.Orange
	markerColor   = colornames.Gold
	markerCore    = colornames.White
	playerBullets = colornames.Lightyellow
)

// Draw renders the fight: boss, bullets, ships, explosion markers and any
// boss overlay, in that order.
func (e *Encounter) Draw(c gfx.Canvas) {
	if e == nil || c == nil {
		return
	}
	if e.Boss != nil {
		e.Boss.Draw(c)
	}
	for i := range e.Bullets {
		drawProjectile(c, &e.Bullets[i])
	}
	for _, p := range e.Players() {
		drawPlayer(c, p, e.Frame)
	}
	for _, m := range e.Markers {
		t := float64(m.Timer) / float64(max(m.Frames, 1))
		r := m.Radius * (0.4 + 0.6*t)
		c.FillCircle(m.Pos, r, fade(markerColor, 1-t))
		c.FillCircle(m.Pos, r*0.5, fade(markerCore, 1-t))
	}
	if e.Boss != nil {
		e.Boss.DrawOverlay(c)
	}
}

func drawProjectile(c gfx.Canvas, p *component.Projectile) {
	clr := p.Color
	switch {
	case p.Reflected:
		clr = reflectColor
	case p.Owner == component.OwnerPlayer:
		clr = playerBullets
	}
	switch p.Shape {
	case component.ShapeRect, component.ShapeSpear:
		c.FillRect(p.Bounds(), clr)
	case component.ShapeStar:
		c.FillPolygon(gfx.Star(p.Pos, p.W/2, p.W/4, p.Rotation, 5), clr)
	case component.ShapeDiamond:
		c.FillPolygon(gfx.Diamond(p.Pos, p.W/2, p.H/2), clr)
	default:
		c.FillEllipse(p.Pos, p.W/2, p.H/2, clr)
	}
}

func drawPlayer(c gfx.Canvas, p *component.Player, frame int) {
	// Blink while invincible.
	if (p.Invincible || p.Dash.InvTimer > 0) && frame/4%2 == 1 {
		return
	}
	clr := playerColor
	if p.Mirror {
		clr = mirrorColor
	}
	hw, hh := p.W/2, p.H/2
	c.FillPolygon([]cp.Vector{
		{X: p.Pos.X, Y: p.Pos.Y - hh},
		{X: p.Pos.X + hw, Y: p.Pos.Y + hh},
		{X: p.Pos.X - hw, Y: p.Pos.Y + hh},
	}, clr)
	if p.Shield {
		c.StrokeCircle(p.Pos, max(hw, hh)+6, 2, shieldColor)
	}
}

func fade(clr color.RGBA, alpha float64) color.RGBA {
	alpha = max(0, min(1, alpha))
	return color.RGBA{
		R: uint8(float64(clr.R) * alpha),
		G: uint8(float64(clr.G) * alpha),
		B: uint8(float64(clr.B) * alpha),
		A: uint8(float64(clr.A) * alpha),
	}
}
