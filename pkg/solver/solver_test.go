package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dspcircuits/nodal/pkg/component"
	"github.com/dspcircuits/nodal/pkg/netlist"
)

// resistorDivider builds static(0)=ground, static(1)=Vin; dynamic(0)=mid,
// with r1 between Vin and mid, r2 between mid and ground.
func resistorDivider(vin, r1ohm, r2ohm float64) *netlist.Netlist {
	nl := netlist.New(2, 0, 1)
	nl.SetStaticState([]float64{0, vin})
	vinRef := netlist.PinRef{Class: netlist.Static, Index: 1}
	gndRef := netlist.PinRef{Class: netlist.Static, Index: 0}
	midRef := netlist.PinRef{Class: netlist.Dynamic, Index: 0}

	r1 := component.NewResistor(nl, []netlist.PinRef{vinRef, midRef}, r1ohm)
	r2 := component.NewResistor(nl, []netlist.PinRef{midRef, gndRef}, r2ohm)
	_ = nl.AddComponent(r1)
	_ = nl.AddComponent(r2)
	return nl
}

func TestResistorDividerConvergesToExpectedVoltage(t *testing.T) {
	nl := resistorDivider(5.0, 1000, 1000)
	s := New(nl.NumDynamicPins())
	s.Solve(nl, false)

	assert.InDelta(t, 2.5, nl.GetDynamicState()[0], 1e-6)
}

func TestResistorDividerConvergesWithinTwoIterations(t *testing.T) {
	nl := resistorDivider(5.0, 1000, 1000)
	s := New(nl.NumDynamicPins())

	iters := 0
	for iters < s.MaxIteration {
		iters++
		if s.iterate(nl, false) {
			break
		}
	}
	// Linear resistive network: Newton's linearization is exact, so
	// convergence from V=0 happens in a single corrective step (plus the
	// residual check that confirms it).
	assert.LessOrEqual(t, iters, 2)
	assert.InDelta(t, 2.5, nl.GetDynamicState()[0], 1e-9)
}

// parallelResistors: Vin -- mid -- (r1 to ground) -- (r2 to ground), with a
// series resistor from Vin to mid, giving V(mid) = Vin * Rpar/(Rseries+Rpar).
func TestParallelResistorsAtMidpoint(t *testing.T) {
	nl := netlist.New(2, 0, 1)
	nl.SetStaticState([]float64{0, 9.0})
	vinRef := netlist.PinRef{Class: netlist.Static, Index: 1}
	gndRef := netlist.PinRef{Class: netlist.Static, Index: 0}
	midRef := netlist.PinRef{Class: netlist.Dynamic, Index: 0}

	rseries := component.NewResistor(nl, []netlist.PinRef{vinRef, midRef}, 1000)
	rp1 := component.NewResistor(nl, []netlist.PinRef{midRef, gndRef}, 1000)
	rp2 := component.NewResistor(nl, []netlist.PinRef{midRef, gndRef}, 1000)
	_ = nl.AddComponent(rseries)
	_ = nl.AddComponent(rp1)
	_ = nl.AddComponent(rp2)

	s := New(nl.NumDynamicPins())
	s.Solve(nl, false)

	// Rpar = 500, Vin=9 -> V(mid) = 9 * 500/1500 = 3.0
	assert.InDelta(t, 3.0, nl.GetDynamicState()[0], 1e-6)
}

func TestDiodeForwardBiasSettlesNearKneeVoltage(t *testing.T) {
	nl := netlist.New(2, 0, 1)
	nl.SetStaticState([]float64{0, 5.0})
	vinRef := netlist.PinRef{Class: netlist.Static, Index: 1}
	gndRef := netlist.PinRef{Class: netlist.Static, Index: 0}
	anodeRef := netlist.PinRef{Class: netlist.Dynamic, Index: 0}

	r := component.NewResistor(nl, []netlist.PinRef{vinRef, anodeRef}, 1000)
	d := component.NewDiode(nl, []netlist.PinRef{anodeRef, gndRef}, 1e-14, 1.24, 26e-3)
	_ = nl.AddComponent(r)
	_ = nl.AddComponent(d)

	s := New(nl.NumDynamicPins())
	s.Solve(nl, false)

	v := nl.GetDynamicState()[0]
	assert.Greater(t, v, 0.5)
	assert.Less(t, v, 1.0)
}

func TestSolveSatisfiesKCLAtConvergence(t *testing.T) {
	nl := resistorDivider(12.0, 2200, 3300)
	s := New(nl.NumDynamicPins())
	s.Solve(nl, false)

	// Sum of currents leaving node "mid" must be ~0 post-solve.
	sum := 0.0
	for _, e := range nl.Adjacency(0) {
		sum += e.Dev.Current(e.LocalPin, false)
	}
	assert.InDelta(t, 0.0, sum, 1e-6)
}

func TestSolveNeverStepsPastMaxDelta(t *testing.T) {
	// Start a forward-biased diode circuit far above its operating point and
	// check that no iteration moves the node by more than MaxDelta.
	nl := netlist.New(2, 0, 1)
	nl.SetStaticState([]float64{0, 20.0})
	vinRef := netlist.PinRef{Class: netlist.Static, Index: 1}
	gndRef := netlist.PinRef{Class: netlist.Static, Index: 0}
	anodeRef := netlist.PinRef{Class: netlist.Dynamic, Index: 0}

	r := component.NewResistor(nl, []netlist.PinRef{vinRef, anodeRef}, 100)
	d := component.NewDiode(nl, []netlist.PinRef{anodeRef, gndRef}, 1e-14, 1.24, 26e-3)
	_ = nl.AddComponent(r)
	_ = nl.AddComponent(d)

	s := New(nl.NumDynamicPins())
	nl.GetDynamicState()[0] = 20.0 // pathological starting guess

	prev := nl.GetDynamicState()[0]
	for i := 0; i < s.MaxIteration; i++ {
		done := s.iterate(nl, false)
		cur := nl.GetDynamicState()[0]
		assert.LessOrEqual(t, math.Abs(cur-prev), s.MaxDelta+1e-9)
		prev = cur
		if done {
			break
		}
	}
}

func TestSolveDoesNotPanicWhenNonConvergent(t *testing.T) {
	// A single-iteration solver on a nonlinear circuit is very unlikely to
	// converge; this just verifies the documented silent non-convergence
	// policy (no error, no panic, last iterate kept).
	nl := netlist.New(2, 0, 1)
	nl.SetStaticState([]float64{0, 5.0})
	vinRef := netlist.PinRef{Class: netlist.Static, Index: 1}
	gndRef := netlist.PinRef{Class: netlist.Static, Index: 0}
	anodeRef := netlist.PinRef{Class: netlist.Dynamic, Index: 0}

	r := component.NewResistor(nl, []netlist.PinRef{vinRef, anodeRef}, 1000)
	d := component.NewDiode(nl, []netlist.PinRef{anodeRef, gndRef}, 1e-14, 1.24, 26e-3)
	_ = nl.AddComponent(r)
	_ = nl.AddComponent(d)

	s := New(nl.NumDynamicPins())
	s.MaxIteration = 1
	assert.NotPanics(t, func() {
		s.Solve(nl, false)
	})
}
