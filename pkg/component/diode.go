package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// Diode is the two-pin exponential-junction adapter. AntiParallel selects
// the anti-parallel-pair companion model sharing one junction.
type Diode struct {
	base
	prim *primitive.Diode
}

func NewDiode(nl *netlist.Netlist, pins []netlist.PinRef, is, n, vt float64) *Diode {
	return &Diode{base: base{pins: pins, nl: nl}, prim: primitive.NewDiode(is, n, vt)}
}

func NewAntiParallelDiode(nl *netlist.Netlist, pins []netlist.PinRef, is, n, vt float64) *Diode {
	return &Diode{base: base{pins: pins, nl: nl}, prim: primitive.NewAntiParallelDiode(is, n, vt)}
}

// Precompute passes the cathode (pin 1) voltage first and the anode (pin 0)
// voltage second, so the primitive's forward current flows from pin 0 to
// pin 1.
func (d *Diode) Precompute(steadyState bool) {
	d.prim.Precompute(d.voltage(1), d.voltage(0))
}

func (d *Diode) Current(localPin int, steadyState bool) float64 {
	i := d.prim.Current()
	if localPin == 0 {
		return -i
	}
	return i
}

// Gradient: diagonal entries are -g, off-diagonal +g (matches original
// Diode::get_gradient's (ref==0?1:-1)*(pin==1?1:-1) sign product).
func (d *Diode) Gradient(pinRef, pin int, steadyState bool) float64 {
	g := d.prim.Gradient()
	if pinRef == pin {
		return -g
	}
	return g
}

func (d *Diode) UpdateSteadyState(dt float64) {}
func (d *Diode) UpdateState()                 {}

func (d *Diode) NumParameters() int { return 2 }
func (d *Diode) ParameterName(k int) string {
	if k == 0 {
		return "Is"
	}
	return "N"
}
func (d *Diode) Parameter(k int) float64 {
	if k == 0 {
		return d.prim.Is
	}
	return d.prim.N
}
func (d *Diode) SetParameter(k int, v float64) error {
	if k == 0 {
		d.prim.Is = v
	} else {
		d.prim.N = v
	}
	return nil
}
