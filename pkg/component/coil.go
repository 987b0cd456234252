package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// Coil is the two-pin trapezoidal-companion inductor adapter.
type Coil struct {
	base
	prim *primitive.Coil
}

func NewCoil(nl *netlist.Netlist, pins []netlist.PinRef, henries float64) *Coil {
	return &Coil{base: base{pins: pins, nl: nl}, prim: primitive.NewCoil(henries)}
}

func (c *Coil) Precompute(steadyState bool) {
	c.prim.Precompute(c.voltage(0), c.voltage(1), steadyState)
}

func (c *Coil) Current(localPin int, steadyState bool) float64 {
	i := c.prim.Current()
	if localPin == 0 {
		return i
	}
	return -i
}

// Gradient mirrors Capacitor's: diagonal entries are -g, off-diagonal +g
// (matches original Coil::get_gradient's (ref==0?1:-1)*(pin==1?1:-1)).
func (c *Coil) Gradient(pinRef, pin int, steadyState bool) float64 {
	g := c.prim.Gradient(steadyState)
	if pinRef == pin {
		return -g
	}
	return g
}

func (c *Coil) UpdateSteadyState(dt float64) { c.prim.UpdateSteadyState(dt) }
func (c *Coil) UpdateState()                 { c.prim.UpdateState() }

func (c *Coil) NumParameters() int       { return 1 }
func (c *Coil) ParameterName(int) string { return "L" }
func (c *Coil) Parameter(int) float64    { return c.prim.L }
func (c *Coil) SetParameter(_ int, v float64) error {
	c.prim.L = v
	return nil
}
