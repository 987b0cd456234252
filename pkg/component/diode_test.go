package component

import (
	"testing"

	"github.com/dspcircuits/nodal/pkg/netlist"
)

func TestDiodeAdapterCurrentAndGradient(t *testing.T) {
	nl := twoDynamicPinNetlist()
	pins := []netlist.PinRef{{Class: netlist.Dynamic, Index: 0}, {Class: netlist.Dynamic, Index: 1}}
	d := NewDiode(nl, pins, 1e-14, 1.24, 26e-3)
	nl.GetDynamicState()[0] = 0
	nl.GetDynamicState()[1] = 0.6
	d.Precompute(false)

	gradientMatchesFiniteDifference(t, nl, d, pins, false)
}

func TestAntiParallelDiodeAdapterGradient(t *testing.T) {
	nl := twoDynamicPinNetlist()
	pins := []netlist.PinRef{{Class: netlist.Dynamic, Index: 0}, {Class: netlist.Dynamic, Index: 1}}
	d := NewAntiParallelDiode(nl, pins, 1e-14, 1.24, 26e-3)
	nl.GetDynamicState()[0] = 0
	nl.GetDynamicState()[1] = 0.3
	d.Precompute(false)

	gradientMatchesFiniteDifference(t, nl, d, pins, false)
}
