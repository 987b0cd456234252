// Package solver implements the damped Newton-Raphson core (spec §4.4):
// per-sample residual/Jacobian assembly over the netlist's dynamic pins,
// a dense QR solve, and an infinity-norm-damped update.
package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dspcircuits/nodal/pkg/netlist"
)

// Solver holds the Newton-Raphson tuning constants (spec §4.4) and the
// pre-sized scratch buffers reused across samples to keep the hot path
// allocation-free.
type Solver struct {
	MaxIteration int
	Eps          float64
	MaxDelta     float64

	f     *mat.VecDense
	j     *mat.Dense
	delta *mat.VecDense
}

// New builds a solver with the spec's default constants, pre-sized for a
// netlist with n dynamic pins.
func New(n int) *Solver {
	return &Solver{
		MaxIteration: 200,
		Eps:          1e-8,
		MaxDelta:     1e-1,
		f:            mat.NewVecDense(n, nil),
		j:            mat.NewDense(n, n, nil),
		delta:        mat.NewVecDense(n, nil),
	}
}

// Solve iterates up to MaxIteration times. Non-convergence is not an
// error: the last iterate is kept and the caller proceeds (spec §7).
func (s *Solver) Solve(nl *netlist.Netlist, steadyState bool) {
	for iter := 0; iter < s.MaxIteration; iter++ {
		if s.iterate(nl, steadyState) {
			return
		}
	}
}

func (s *Solver) iterate(nl *netlist.Netlist, steadyState bool) bool {
	for _, dev := range nl.Components() {
		dev.Precompute(steadyState)
	}

	nd := nl.NumDynamicPins()
	s.f.Zero()
	s.j.Zero()

	for i := 0; i < nd; i++ {
		if dev, eq, ok := nl.CustomEquationAt(i); ok {
			s.f.SetVec(i, eq.Residual())
			for localPin, ref := range dev.Pins() {
				if ref.Class == netlist.Dynamic {
					s.j.Set(i, ref.Index, s.j.At(i, ref.Index)+eq.GradientAt(localPin))
				}
			}
			continue
		}

		sum := 0.0
		for _, e := range nl.Adjacency(i) {
			sum += e.Dev.Current(e.LocalPin, steadyState)
			for k, ref := range e.Dev.Pins() {
				if ref.Class == netlist.Dynamic {
					s.j.Set(i, ref.Index, s.j.At(i, ref.Index)+e.Dev.Gradient(e.LocalPin, k, steadyState))
				}
			}
		}
		s.f.SetVec(i, sum)
	}

	if infNormVec(s.f) < s.Eps {
		return true
	}

	var qr mat.QR
	qr.Factorize(s.j)
	if err := qr.SolveVecTo(s.delta, false, s.f); err != nil {
		// Singular or ill-conditioned Jacobian: QR's least-squares fallback
		// still returns a best-effort step, which MaxDelta damping absorbs.
		_ = err
	}

	if infNormVec(s.delta) < s.Eps {
		return true
	}

	clampDelta(s.delta, s.MaxDelta)

	vd := nl.GetDynamicState()
	for i := 0; i < nd; i++ {
		vd[i] -= s.delta.AtVec(i)
	}

	return false
}

func infNormVec(v *mat.VecDense) float64 {
	max := 0.0
	n := v.Len()
	for i := 0; i < n; i++ {
		if a := math.Abs(v.AtVec(i)); a > max {
			max = a
		}
	}
	return max
}

// clampDelta scales delta down if its infinity norm exceeds maxDelta,
// preventing a catastrophic jump across an exponential non-linearity.
func clampDelta(delta *mat.VecDense, maxDelta float64) {
	norm := infNormVec(delta)
	if norm <= maxDelta || norm == 0 {
		return
	}
	delta.ScaleVec(maxDelta/norm, delta)
}
