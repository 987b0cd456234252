// Package driver implements the per-sample orchestration and startup
// warm-up ramp (spec §4.5): the thin layer a host audio framework calls
// into, sitting directly on top of pkg/netlist and pkg/solver.
package driver

import (
	"fmt"

	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/solver"
)

// InitWarmup is the number of steady-state ramp steps run on first Setup.
const InitWarmup = 10

// Model drives a frozen netlist sample by sample, owning the solver and
// the startup ramp state.
type Model struct {
	nl     *netlist.Netlist
	solver *solver.Solver
	nOut   int

	dt          float64
	initialized bool
}

// New wires a driver around nl, solving for its dynamic pins and emitting
// the first nOut dynamic pins as outputs (spec §4.5 step 4).
func New(nl *netlist.Netlist, nOut int) *Model {
	return &Model{
		nl:     nl,
		solver: solver.New(nl.NumDynamicPins()),
		nOut:   nOut,
	}
}

// Setup freezes the netlist and, on the first call only, runs the
// steady-state warm-up ramp from a scaled-down static state up to the
// nominal one (spec §4.5 "Setup").
func (m *Model) Setup(inputRate, outputRate float64) error {
	if inputRate != outputRate {
		return fmt.Errorf("driver setup: %w", &netlist.Error{
			Kind: netlist.ConfigErr,
			Op:   "Setup",
			Msg:  fmt.Sprintf("input rate %g != output rate %g", inputRate, outputRate),
		})
	}
	m.dt = 1.0 / inputRate
	m.nl.Freeze()

	if m.initialized {
		return nil
	}

	nominal := append([]float64(nil), m.nl.GetStaticState()...)
	scaled := make([]float64, len(nominal))

	for k := 0; k < InitWarmup; k++ {
		frac := float64(k+1) / float64(InitWarmup)
		for i, v := range nominal {
			scaled[i] = v * frac
		}
		m.nl.SetStaticState(scaled)

		for _, dev := range m.nl.Components() {
			dev.UpdateSteadyState(m.dt)
		}
		m.solver.Solve(m.nl, true)
		for _, dev := range m.nl.Components() {
			dev.UpdateSteadyState(m.dt)
		}
	}

	m.nl.SetStaticState(nominal)
	m.initialized = true
	return nil
}

// ProcessSample runs one sample: loads the input vector, solves, commits
// companion state, and returns the output vector (spec §4.5
// "Per-sample processing").
func (m *Model) ProcessSample(inputs []float64) []float64 {
	copy(m.nl.GetInputState(), inputs)

	m.solver.Solve(m.nl, false)

	for _, dev := range m.nl.Components() {
		dev.UpdateState()
	}

	vd := m.nl.GetDynamicState()
	out := make([]float64, m.nOut)
	copy(out, vd[:m.nOut])
	return out
}

// ProcessBlock runs ProcessSample size times, where inputs[n] is the
// per-port input vector for sample n. Returns outputs[n] in the same
// shape.
func (m *Model) ProcessBlock(inputs [][]float64) [][]float64 {
	out := make([][]float64, len(inputs))
	for n, in := range inputs {
		out[n] = m.ProcessSample(in)
	}
	return out
}

// Netlist exposes the underlying model for introspection callers.
func (m *Model) Netlist() *netlist.Netlist { return m.nl }
