// Package component adapts pkg/primitive's closed-form device math onto
// ordered pin references into a pkg/netlist model (spec §4.2). One adapter
// per placed device; adapters hold a non-owning back-reference to the
// netlist, used only to fetch voltages and to register custom-equation
// claims.
package component

import "github.com/dspcircuits/nodal/pkg/netlist"

type base struct {
	pins []netlist.PinRef
	nl   *netlist.Netlist
}

func (b *base) Pins() []netlist.PinRef { return b.pins }
func (b *base) NumPins() int           { return len(b.pins) }

func (b *base) voltage(localPin int) float64 {
	return b.nl.RetrieveVoltage(b.pins[localPin])
}
