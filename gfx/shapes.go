package gfx

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Star returns the outline of an n-pointed star.
func Star(c cp.Vector, outer, inner, rotation float64, points int) []cp.Vector {
	if points < 2 {
		points = 5
	}
	out := make([]cp.Vector, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := rotation - math.Pi/2 + float64(i)*math.Pi/float64(points)
		out = append(out, c.Add(cp.ForAngle(a).Mult(r)))
	}
	return out
}

// Trapezoid returns a trapezoid with the wide edge at the bottom.
func Trapezoid(c cp.Vector, top, bottom, height float64) []cp.Vector {
	h := height / 2
	return []cp.Vector{
		{X: c.X - top/2, Y: c.Y - h},
		{X: c.X + top/2, Y: c.Y - h},
		{X: c.X + bottom/2, Y: c.Y + h},
		{X: c.X - bottom/2, Y: c.Y + h},
	}
}

// Diamond returns a rhombus of the given half extents.
func Diamond(c cp.Vector, hw, hh float64) []cp.Vector {
	return []cp.Vector{
		{X: c.X, Y: c.Y - hh},
		{X: c.X + hw, Y: c.Y},
		{X: c.X, Y: c.Y + hh},
		{X: c.X - hw, Y: c.Y},
	}
}
