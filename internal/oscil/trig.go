package oscil

import "math"

// TrigTable provides precomputed sin/cos values with linear interpolation,
// for sampling dense output grids where phase evaluation dominates.
type TrigTable struct {
	sin []float64
	cos []float64
	n   int
}

// DefaultTrigTable backs the FastTrig option (4096 entries, ~0.0015 rad).
var DefaultTrigTable = NewTrigTable(4096)

// NewTrigTable creates a lookup table with n entries over one period.
func NewTrigTable(n int) *TrigTable {
	t := &TrigTable{
		sin: make([]float64, n),
		cos: make([]float64, n),
		n:   n,
	}
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		t.sin[i] = math.Sin(angle)
		t.cos[i] = math.Cos(angle)
	}
	return t
}

// SinCos returns interpolated sin and cos of x.
func (t *TrigTable) SinCos(x float64) (sin, cos float64) {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	sin = t.sin[i0]*(1-frac) + t.sin[i1]*frac
	cos = t.cos[i0]*(1-frac) + t.cos[i1]*frac
	return
}

// Sin returns interpolated sin of x.
func (t *TrigTable) Sin(x float64) float64 {
	s, _ := t.SinCos(x)
	return s
}

// Cos returns interpolated cos of x.
func (t *TrigTable) Cos(x float64) float64 {
	_, c := t.SinCos(x)
	return c
}
