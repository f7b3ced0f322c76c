package boss

// Picker supplies relative weights for a boss's pattern library. A nil Picker,
// or one returning an unusable slice, means uniform weights.
type Picker interface {
	Weights(a Archetype, phase int, hpFraction float64, patterns []string) []float64
}

// pickPattern draws a weighted pattern index, never repeating prev when another
// pattern is available. Only the immediately previous pattern is excluded.
func pickPattern(b *Boss, in *Input, patterns []string, prev int) int {
	n := len(patterns)
	if n == 0 {
		return -1
	}
	if n == 1 {
		return 0
	}

	var weights []float64
	if in != nil && in.Picker != nil {
		weights = in.Picker.Weights(b.Archetype, b.Phase, b.Health.Fraction(), patterns)
	}
	if len(weights) != n {
		weights = nil
	}

	total := 0.0
	for i := 0; i < n; i++ {
		if i == prev {
			continue
		}
		total += weightAt(weights, i)
	}
	if total <= 0 {
		weights = nil
		total = float64(n - 1)
		if prev < 0 || prev >= n {
			total = float64(n)
		}
	}

	r := in.float() * total
	last := -1
	for i := 0; i < n; i++ {
		if i == prev {
			continue
		}
		w := weightAt(weights, i)
		if w <= 0 {
			continue
		}
		last = i
		if r < w {
			return i
		}
		r -= w
	}
	return last
}

func weightAt(weights []float64, i int) float64 {
	if weights == nil {
		return 1
	}
	if w := weights[i]; w > 0 {
		return w
	}
	return 0
}
