package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// Bjt is the three-pin (base, collector, emitter) bipolar-transistor
// adapter over the simplified Ebers-Moll companion model.
type Bjt struct {
	base
	prim *primitive.Bjt
}

func NewNPN(nl *netlist.Netlist, pins []netlist.PinRef, is, vt, ne, br, bf float64) *Bjt {
	return &Bjt{base: base{pins: pins, nl: nl}, prim: primitive.NewNPN(is, vt, ne, br, bf)}
}

func NewPNP(nl *netlist.Netlist, pins []netlist.PinRef, is, vt, ne, br, bf float64) *Bjt {
	return &Bjt{base: base{pins: pins, nl: nl}, prim: primitive.NewPNP(is, vt, ne, br, bf)}
}

func (b *Bjt) Precompute(steadyState bool) {
	b.prim.Precompute(b.voltage(0), b.voltage(1), b.voltage(2))
}

func (b *Bjt) Current(localPin int, steadyState bool) float64 {
	return b.prim.Current(localPin)
}

func (b *Bjt) Gradient(pinRef, pin int, steadyState bool) float64 {
	return b.prim.Gradient(pinRef, pin)
}

func (b *Bjt) UpdateSteadyState(dt float64) {}
func (b *Bjt) UpdateState()                 {}

func (b *Bjt) NumParameters() int { return 5 }

var bjtParamNames = [...]string{"Is", "Vt", "Ne", "Br", "Bf"}

func (b *Bjt) ParameterName(k int) string { return bjtParamNames[k] }

func (b *Bjt) Parameter(k int) float64 {
	switch k {
	case 0:
		return b.prim.Is
	case 1:
		return b.prim.Vt
	case 2:
		return b.prim.Ne
	case 3:
		return b.prim.Br
	default:
		return b.prim.Bf
	}
}

func (b *Bjt) SetParameter(k int, v float64) error {
	switch k {
	case 0:
		b.prim.Is = v
	case 1:
		b.prim.Vt = v
	case 2:
		b.prim.Ne = v
	case 3:
		b.prim.Br = v
	default:
		b.prim.Bf = v
	}
	return nil
}
