// Package render draws gfx primitives onto an ebiten image.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/gfx"
	"golang.org/x/image/font/basicfont"
)

const ellipseSegments = 32

// Canvas implements gfx.Canvas on an ebiten image. Offset shifts every
// primitive and is used for screen shake.
type Canvas struct {
	Dst    *ebiten.Image
	Offset cp.Vector

	face  text.Face
	white *ebiten.Image
	path  vector.Path
	verts []ebiten.Vertex
	idx   []uint16
}

var _ gfx.Canvas = (*Canvas)(nil)

func NewCanvas() *Canvas {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Canvas{
		face:  text.NewGoXFace(basicfont.Face7x13),
		white: white,
	}
}

// Begin targets dst for the coming frame.
func (c *Canvas) Begin(dst *ebiten.Image, offset cp.Vector) {
	c.Dst = dst
	c.Offset = offset
}

func (c *Canvas) xy(p cp.Vector) (float32, float32) {
	return float32(p.X + c.Offset.X), float32(p.Y + c.Offset.Y)
}

func (c *Canvas) FillCircle(center cp.Vector, r float64, clr color.Color) {
	x, y := c.xy(center)
	vector.FillCircle(c.Dst, x, y, float32(r), clr, true)
}

func (c *Canvas) StrokeCircle(center cp.Vector, r, width float64, clr color.Color) {
	x, y := c.xy(center)
	vector.StrokeCircle(c.Dst, x, y, float32(r), float32(width), clr, true)
}

func (c *Canvas) FillEllipse(center cp.Vector, rx, ry float64, clr color.Color) {
	if rx == ry {
		c.FillCircle(center, rx, clr)
		return
	}
	pts := make([]cp.Vector, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = cp.Vector{X: center.X + rx*math.Cos(a), Y: center.Y + ry*math.Sin(a)}
	}
	c.FillPolygon(pts, clr)
}

// FillRect draws bb, whose B edge is the top of the box on screen.
func (c *Canvas) FillRect(bb cp.BB, clr color.Color) {
	x, y := c.xy(cp.Vector{X: bb.L, Y: bb.B})
	vector.FillRect(c.Dst, x, y, float32(bb.R-bb.L), float32(bb.T-bb.B), clr, false)
}

func (c *Canvas) FillPolygon(points []cp.Vector, clr color.Color) {
	if len(points) < 3 {
		return
	}
	c.path.Reset()
	x, y := c.xy(points[0])
	c.path.MoveTo(x, y)
	for _, p := range points[1:] {
		x, y = c.xy(p)
		c.path.LineTo(x, y)
	}
	c.path.Close()

	c.verts, c.idx = c.path.AppendVerticesAndIndicesForFilling(c.verts[:0], c.idx[:0])
	r, g, b, a := clr.RGBA()
	for i := range c.verts {
		c.verts[i].SrcX, c.verts[i].SrcY = 1, 1
		c.verts[i].ColorR = float32(r) / 0xffff
		c.verts[i].ColorG = float32(g) / 0xffff
		c.verts[i].ColorB = float32(b) / 0xffff
		c.verts[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero}
	c.Dst.DrawTriangles(c.verts, c.idx, c.white, op)
}

func (c *Canvas) StrokeLine(a, b cp.Vector, width float64, clr color.Color) {
	ax, ay := c.xy(a)
	bx, by := c.xy(b)
	vector.StrokeLine(c.Dst, ax, ay, bx, by, float32(width), clr, true)
}

func (c *Canvas) Text(s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+c.Offset.X, y+c.Offset.Y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.Dst, s, c.face, op)
}

func (c *Canvas) Fade(clr color.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	alpha = math.Min(alpha, 1)
	r, g, b, _ := clr.RGBA()
	faded := color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(0xffff * alpha),
	}
	w, h := c.Dst.Bounds().Dx(), c.Dst.Bounds().Dy()
	vector.FillRect(c.Dst, 0, 0, float32(w), float32(h), faded, false)
}
