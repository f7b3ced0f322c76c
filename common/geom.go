package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Playfield returns the screen rectangle grown by margin on every side.
func Playfield(margin float64) cp.BB {
	return cp.BB{L: -margin, B: -margin, R: ScreenWidth + margin, T: ScreenHeight + margin}
}

// BoxAt returns the axis-aligned box of size w x h centered on c.
func BoxAt(c cp.Vector, w, h float64) cp.BB {
	return cp.NewBBForExtents(c, w/2, h/2)
}

func BoxCenter(bb cp.BB) cp.Vector {
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}

// Overlaps reports whether two boxes share any area. Touching edges do not count.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}

// Outside reports whether bb lies entirely outside bounds.
func Outside(bb, bounds cp.BB) bool {
	return bb.R < bounds.L || bb.L > bounds.R || bb.T < bounds.B || bb.B > bounds.T
}

func ClampPoint(p cp.Vector, bb cp.BB) cp.Vector {
	return cp.Vector{X: Clamp(p.X, bb.L, bb.R), Y: Clamp(p.Y, bb.B, bb.T)}
}

// CircleOverlapsBox tests a circle against an axis-aligned box.
func CircleOverlapsBox(c cp.Vector, r float64, bb cp.BB) bool {
	q := ClampPoint(c, bb)
	return c.DistanceSq(q) < r*r
}

// InsideEllipse reports whether p lies strictly inside the axis-aligned ellipse
// centered on c. Points on the boundary are outside.
func InsideEllipse(p, c cp.Vector, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return dx*dx+dy*dy < 1
}

// EllipseOverlapsBox approximates the test by checking the box point nearest to
// the ellipse center.
func EllipseOverlapsBox(c cp.Vector, rx, ry float64, bb cp.BB) bool {
	return InsideEllipse(ClampPoint(c, bb), c, rx, ry)
}

// ClosestOnSegment returns the point of segment ab nearest to p.
func ClosestOnSegment(p, a, b cp.Vector) cp.Vector {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 == 0 {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Mult(t))
}

// BeamOverlapsBox tests a capsule of the given width along ab against a box.
func BeamOverlapsBox(a, b cp.Vector, width float64, bb cp.BB) bool {
	center := BoxCenter(bb)
	q := ClosestOnSegment(center, a, b)
	return CircleOverlapsBox(q, width/2, bb)
}

// RayToEdge returns the point where a ray from origin along dir leaves the
// playfield grown by margin.
func RayToEdge(origin, dir cp.Vector, margin float64) cp.Vector {
	d := dir.Normalize()
	if d.LengthSq() == 0 {
		return origin
	}
	bounds := Playfield(margin)
	t := math.Inf(1)
	if d.X > 0 {
		t = math.Min(t, (bounds.R-origin.X)/d.X)
	} else if d.X < 0 {
		t = math.Min(t, (bounds.L-origin.X)/d.X)
	}
	if d.Y > 0 {
		t = math.Min(t, (bounds.T-origin.Y)/d.Y)
	} else if d.Y < 0 {
		t = math.Min(t, (bounds.B-origin.Y)/d.Y)
	}
	if math.IsInf(t, 1) || t < 0 {
		return origin
	}
	return origin.Add(d.Mult(t))
}

// InsidePolygon reports whether p lies inside the simple polygon poly.
func InsidePolygon(p cp.Vector, poly []cp.Vector) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// ApproachVec moves p toward target by at most step.
func ApproachVec(p, target cp.Vector, step float64) cp.Vector {
	d := target.Sub(p)
	if d.Length() <= step {
		return target
	}
	return p.Add(d.Normalize().Mult(step))
}
