package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// Capacitor is the two-pin trapezoidal-companion capacitor adapter.
type Capacitor struct {
	base
	prim *primitive.Capacitor
}

func NewCapacitor(nl *netlist.Netlist, pins []netlist.PinRef, farads float64) *Capacitor {
	return &Capacitor{base: base{pins: pins, nl: nl}, prim: primitive.NewCapacitor(farads)}
}

func (c *Capacitor) Precompute(steadyState bool) {}

func (c *Capacitor) Current(localPin int, steadyState bool) float64 {
	i := c.prim.Current(c.voltage(0), c.voltage(1), steadyState)
	if localPin == 0 {
		return i
	}
	return -i
}

// Gradient differentiates Current(0) = (V1-V0)*c2t - iceq and
// Current(1) = -Current(0) against V(pin): the diagonal entries are -c2t,
// the off-diagonal entries +c2t (matches the original Capacitor::get_gradient
// sign product, (pin_index_ref==0?1:-1)*(pin_index==1?1:-1)).
func (c *Capacitor) Gradient(pinRef, pin int, steadyState bool) float64 {
	g := c.prim.Gradient(steadyState)
	if pinRef == pin {
		return -g
	}
	return g
}

func (c *Capacitor) UpdateSteadyState(dt float64) {
	c.prim.UpdateSteadyState(dt, c.voltage(0), c.voltage(1))
}

func (c *Capacitor) UpdateState() {
	c.prim.UpdateState(c.voltage(0), c.voltage(1))
}

func (c *Capacitor) NumParameters() int       { return 1 }
func (c *Capacitor) ParameterName(int) string { return "C" }
func (c *Capacitor) Parameter(int) float64    { return c.prim.C }
func (c *Capacitor) SetParameter(_ int, v float64) error {
	c.prim.C = v
	return nil
}
