package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// Vcvs is the four-pin (in+, in-, out+, out-) voltage-controlled-voltage-
// source adapter. Like OpAmp, it carries no KCL current of its own; it
// claims the out+ pin's dynamic row with a linear constraint equation.
type Vcvs struct {
	base
	prim *primitive.Vcvs
}

func NewVcvs(nl *netlist.Netlist, pins []netlist.PinRef, gain float64) *Vcvs {
	return &Vcvs{base: base{pins: pins, nl: nl}, prim: primitive.NewVcvs(gain)}
}

func (v *Vcvs) Precompute(steadyState bool) {}

func (v *Vcvs) Current(localPin int, steadyState bool) float64     { return 0 }
func (v *Vcvs) Gradient(pinRef, pin int, steadyState bool) float64 { return 0 }

func (v *Vcvs) UpdateSteadyState(dt float64) {}
func (v *Vcvs) UpdateState()                 {}

func (v *Vcvs) UpdateModel(n *netlist.Netlist) error {
	out := v.pins[2]
	if out.Class != netlist.Dynamic {
		return nil
	}
	return n.SetCustomEquation(out.Index, v)
}

func (v *Vcvs) Residual() float64 {
	return v.prim.Residual(v.voltage(0), v.voltage(1), v.voltage(2), v.voltage(3))
}

func (v *Vcvs) GradientAt(localPin int) float64 {
	return v.prim.Gradient(localPin)
}

func (v *Vcvs) NumParameters() int       { return 1 }
func (v *Vcvs) ParameterName(int) string { return "Gain" }
func (v *Vcvs) Parameter(int) float64    { return v.prim.Gain }
func (v *Vcvs) SetParameter(_ int, g float64) error {
	v.prim.Gain = g
	return nil
}
