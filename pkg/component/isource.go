package component

import (
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/primitive"
)

// CurrentSource is the two-pin ideal independent current source adapter.
type CurrentSource struct {
	base
	prim *primitive.CurrentSource
}

func NewCurrentSource(nl *netlist.Netlist, pins []netlist.PinRef, amps float64) *CurrentSource {
	return &CurrentSource{base: base{pins: pins, nl: nl}, prim: primitive.NewCurrentSource(amps)}
}

func (s *CurrentSource) Precompute(steadyState bool) {}

func (s *CurrentSource) Current(localPin int, steadyState bool) float64 {
	if localPin == 0 {
		return -s.prim.Current()
	}
	return s.prim.Current()
}

func (s *CurrentSource) Gradient(pinRef, pin int, steadyState bool) float64 { return 0 }

func (s *CurrentSource) UpdateSteadyState(dt float64) {}
func (s *CurrentSource) UpdateState()                 {}

func (s *CurrentSource) NumParameters() int       { return 1 }
func (s *CurrentSource) ParameterName(int) string { return "I" }
func (s *CurrentSource) Parameter(int) float64    { return s.prim.Amps }
func (s *CurrentSource) SetParameter(_ int, v float64) error {
	s.prim.SetCurrent(v)
	return nil
}
