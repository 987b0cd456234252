package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// Resistor is the two-pin linear resistor adapter.
type Resistor struct {
	base
	prim *primitive.Resistor
}

func NewResistor(nl *netlist.Netlist, pins []netlist.PinRef, ohms float64) *Resistor {
	return &Resistor{base: base{pins: pins, nl: nl}, prim: primitive.NewResistor(ohms)}
}

func (r *Resistor) Precompute(steadyState bool) {}

func (r *Resistor) Current(localPin int, steadyState bool) float64 {
	i := r.prim.Current(r.voltage(0), r.voltage(1))
	if localPin == 0 {
		return i
	}
	return -i
}

// Gradient: diagonal entries are -G, off-diagonal +G (matches original
// Resistor::get_gradient's (ref==0?1:-1)*(pin==1?1:-1) sign product).
func (r *Resistor) Gradient(pinRef, pin int, steadyState bool) float64 {
	g := r.prim.Gradient()
	if pinRef == pin {
		return -g
	}
	return g
}

func (r *Resistor) UpdateSteadyState(dt float64) {}
func (r *Resistor) UpdateState()                 {}

// SetResistance retunes the resistor, e.g. for a potentiometer sweep.
func (r *Resistor) SetResistance(ohms float64) { r.prim.SetResistance(ohms) }

func (r *Resistor) NumParameters() int            { return 1 }
func (r *Resistor) ParameterName(int) string      { return "R" }
func (r *Resistor) Parameter(int) float64         { return r.prim.R }
func (r *Resistor) SetParameter(_ int, v float64) error {
	r.prim.SetResistance(v)
	return nil
}
