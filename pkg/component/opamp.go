package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// OpAmp is the three-pin (in+, in-, out) ideal-operational-amplifier
// adapter. It injects no current of its own; instead it claims the out
// pin's dynamic row with a custom equation on placement.
type OpAmp struct {
	base
	prim *primitive.OpAmp
}

func NewOpAmp(nl *netlist.Netlist, pins []netlist.PinRef) *OpAmp {
	return &OpAmp{base: base{pins: pins, nl: nl}, prim: primitive.NewOpAmp()}
}

func (o *OpAmp) Precompute(steadyState bool) {}

// Current and Gradient are always zero: an ideal op-amp injects no current
// of its own. Its out row is claimed by its custom equation; the KCL rows of
// dynamic in+/in- pins still visit it and get zero from these methods.
func (o *OpAmp) Current(localPin int, steadyState bool) float64 { return 0 }
func (o *OpAmp) Gradient(pinRef, pin int, steadyState bool) float64 { return 0 }

func (o *OpAmp) UpdateSteadyState(dt float64) {}
func (o *OpAmp) UpdateState()                 {}

// UpdateModel claims the out pin's dynamic row for this op-amp's
// constraint equation.
func (o *OpAmp) UpdateModel(n *netlist.Netlist) error {
	out := o.pins[2]
	if out.Class != netlist.Dynamic {
		return nil
	}
	return n.SetCustomEquation(out.Index, o)
}

// Residual implements netlist.CustomEquation.
func (o *OpAmp) Residual() float64 {
	return o.prim.Residual(o.voltage(0), o.voltage(1), o.voltage(2))
}

// GradientAt implements netlist.CustomEquation.
func (o *OpAmp) GradientAt(localPin int) float64 {
	return o.prim.Gradient(localPin)
}
