package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBjtNPNCurrentsSatisfyKCL(t *testing.T) {
	// ib+ic+ie must sum to zero at the junction for any bias point.
	b := NewNPN(1e-12, 26e-3, 1, 1, 100)
	b.Precompute(0.7, 5.0, 0.0)
	sum := b.Current(0) + b.Current(1) + b.Current(2)
	assert.InDelta(t, 0, sum, 1e-18)
}

func TestBjtPNPCurrentsSatisfyKCL(t *testing.T) {
	b := NewPNP(1e-12, 26e-3, 1, 1, 100)
	b.Precompute(-0.7, -5.0, 0.0)
	sum := b.Current(0) + b.Current(1) + b.Current(2)
	assert.InDelta(t, 0, sum, 1e-18)
}

// Gradients are identical for NPN and PNP at the same bias magnitude: the
// polarity sign embedded in ib/ic cancels out of its own derivative because
// Sign^2 == 1 (the original Ebers-Moll StaticNPN/StaticPNP gradient formulas
// carry no polarity sign at all).
func TestBjtGradientsAreSignIndependentOfPolarity(t *testing.T) {
	npn := NewNPN(1e-12, 26e-3, 1, 1, 100)
	npn.Precompute(0.7, 5.0, 0.0)

	pnp := NewPNP(1e-12, 26e-3, 1, 1, 100)
	pnp.Precompute(-0.7, -5.0, 0.0)

	for ref := 0; ref < 3; ref++ {
		for pin := 0; pin < 3; pin++ {
			assert.InDelta(t, npn.Gradient(ref, pin), pnp.Gradient(ref, pin), 1e-15,
				"gradient(%d,%d) should match between NPN and PNP", ref, pin)
		}
	}
}

func TestBjtGradientMatchesFiniteDifference(t *testing.T) {
	b := NewNPN(1e-12, 26e-3, 1, 1, 100)
	const h = 1e-7
	vb, vc, ve := 0.65, 5.0, 0.0

	for pin := 0; pin < 3; pin++ {
		v := [3]float64{vb, vc, ve}
		v[pin] -= h
		b.Precompute(v[0], v[1], v[2])
		below := [3]float64{b.Current(0), b.Current(1), b.Current(2)}

		v[pin] += 2 * h
		b.Precompute(v[0], v[1], v[2])
		above := [3]float64{b.Current(0), b.Current(1), b.Current(2)}

		for ref := 0; ref < 3; ref++ {
			numeric := (above[ref] - below[ref]) / (2 * h)
			b.Precompute(vb, vc, ve)
			analytic := b.Gradient(ref, pin)
			assert.InDelta(t, numeric, analytic, 1e-6, "d(I%d)/d(V%d)", ref, pin)
		}
	}
}
