// Package lower implements the netlist-to-model lowering contract (spec
// §6): ground registration, voltage-source resolution into static/input
// pins, first-seen dynamic-pin discovery, and component instantiation.
package lower

import (
	"fmt"
	"strings"

	"github.com/dspcircuits/nodal/internal/physconst"
	"github.com/dspcircuits/nodal/pkg/ast"
	"github.com/dspcircuits/nodal/pkg/component"
	"github.com/dspcircuits/nodal/pkg/netlist"
)

type classSpec struct {
	pins  int
	value bool // trailing arg is a SPICE-number value (r, c, l, i, e)
	model bool // trailing arg is a model-name reference (d, q)
}

var classSpecs = map[byte]classSpec{
	'r': {pins: 2, value: true},
	'c': {pins: 2, value: true},
	'l': {pins: 2, value: true},
	'i': {pins: 2, value: true},
	'e': {pins: 4, value: true},
	'd': {pins: 2, model: true},
	'q': {pins: 3, model: true},
}

func isGround(name string) bool {
	l := strings.ToLower(name)
	return l == "0" || l == "gnd"
}

// Lower turns a parsed netlist into a frozen-ready netlist.Netlist plus the
// instantiated component adapters, in the ordering spec §6 prescribes.
// outputs names the pins that must land at the first len(outputs) dynamic
// indices (spec §4.5 step 4: "outputs are the first N_out dynamic pins").
func Lower(n *ast.Netlist, outputs []string) (*netlist.Netlist, []netlist.Device, error) {
	pins := map[string]netlist.PinRef{"0": {Class: netlist.Static, Index: 0}}
	staticVoltage := []float64{0}
	var inputNames []string
	var dynamicNames []string

	for _, name := range outputs {
		key := strings.ToLower(name)
		if _, ok := pins[key]; ok {
			continue
		}
		pins[key] = netlist.PinRef{Class: netlist.Dynamic, Index: len(dynamicNames)}
		dynamicNames = append(dynamicNames, name)
	}

	resolve := func(name string) (netlist.PinRef, bool) {
		if isGround(name) {
			return netlist.PinRef{Class: netlist.Static, Index: 0}, true
		}
		ref, ok := pins[strings.ToLower(name)]
		return ref, ok
	}

	// Pass 1: resolve every voltage-source entry into a static or input pin.
	for _, c := range n.Components {
		if len(c.Name) == 0 || strings.ToLower(c.Name[:1]) != "v" {
			continue
		}
		if err := resolveVoltageSource(c, pins, &staticVoltage, &inputNames, resolve); err != nil {
			return nil, nil, err
		}
	}

	// Pass 2: remaining non-static, non-input pins become dynamic pins in
	// first-seen order among the non-voltage-source components.
	for _, c := range n.Components {
		class := deviceClass(c.Name)
		if class == 'v' {
			continue
		}
		spec, ok := classSpecs[class]
		if !ok {
			return nil, nil, &netlist.Error{Kind: netlist.ShapeErr, Op: "Lower", Msg: fmt.Sprintf("%s: unknown device class", c.Name)}
		}
		if err := checkArity(c, spec); err != nil {
			return nil, nil, err
		}
		for i := 0; i < spec.pins; i++ {
			pinName := c.Args[i].Pin
			if isGround(pinName) {
				continue
			}
			key := strings.ToLower(pinName)
			if _, ok := pins[key]; ok {
				continue
			}
			pins[key] = netlist.PinRef{Class: netlist.Dynamic, Index: len(dynamicNames)}
			dynamicNames = append(dynamicNames, pinName)
		}
	}

	nl := netlist.New(len(staticVoltage), len(inputNames), len(dynamicNames))
	nl.SetStaticState(staticVoltage)
	for name, ref := range pins {
		nl.SetPinName(ref, name)
	}
	for i, name := range inputNames {
		nl.SetPinName(netlist.PinRef{Class: netlist.Input, Index: i}, name)
	}

	// Pass 3: instantiate every non-voltage-source component.
	var devices []netlist.Device
	for _, c := range n.Components {
		class := deviceClass(c.Name)
		if class == 'v' {
			continue
		}
		spec := classSpecs[class]
		pinRefs := make([]netlist.PinRef, spec.pins)
		for i := 0; i < spec.pins; i++ {
			ref, _ := resolve(c.Args[i].Pin)
			pinRefs[i] = ref
		}
		if class == 'q' {
			// Netlist args are conventional SPICE order (collector, base,
			// emitter); the companion primitive's local pins are (base,
			// collector, emitter) per spec §4.1. Permute to match.
			pinRefs[0], pinRefs[1] = pinRefs[1], pinRefs[0]
		}
		if class == 'e' {
			// Netlist args are conventional SPICE order (out+, out-, in+,
			// in-); the companion primitive's local pins are (in+, in-,
			// out+, out-) per spec §4.1. Permute to match.
			pinRefs[0], pinRefs[1], pinRefs[2], pinRefs[3] = pinRefs[2], pinRefs[3], pinRefs[0], pinRefs[1]
		}

		dev, err := instantiate(nl, class, c, pinRefs, n.Models)
		if err != nil {
			return nil, nil, err
		}
		if err := nl.AddComponent(dev); err != nil {
			return nil, nil, err
		}
		devices = append(devices, dev)
	}

	return nl, devices, nil
}

func deviceClass(name string) byte {
	if name == "" {
		return 0
	}
	return strings.ToLower(name)[0]
}

func checkArity(c ast.Component, spec classSpec) error {
	want := spec.pins + 1
	if len(c.Args) != want {
		return &netlist.Error{Kind: netlist.ShapeErr, Op: "Lower", Msg: fmt.Sprintf("%s: expected %d arguments, got %d", c.Name, want, len(c.Args))}
	}
	return nil
}

func resolveVoltageSource(c ast.Component, pins map[string]netlist.PinRef, staticVoltage *[]float64, inputNames *[]string, resolve func(string) (netlist.PinRef, bool)) error {
	if len(c.Args) < 3 || c.Args[0].Kind != ast.PinArg || c.Args[1].Kind != ast.PinArg {
		return &netlist.Error{Kind: netlist.ShapeErr, Op: "Lower", Msg: fmt.Sprintf("%s: malformed voltage source", c.Name)}
	}
	nPlus, nMinus := c.Args[0].Pin, c.Args[1].Pin

	plusRef, plusKnown := resolve(nPlus)
	minusRef, minusKnown := resolve(nMinus)
	if !plusKnown && !minusKnown {
		return &netlist.Error{Kind: netlist.GroundingErr, Op: "Lower", Msg: fmt.Sprintf("%s: neither terminal %s nor %s is grounded or known", c.Name, nPlus, nMinus)}
	}

	isAC := false
	rest := c.Args[2:]
	if len(rest) > 0 && rest[0].Kind == ast.PinArg && strings.ToLower(rest[0].Pin) == "ac" {
		isAC = true
	}
	if len(rest) > 0 && rest[0].Kind == ast.PinArg && strings.ToLower(rest[0].Pin) == "dc" {
		rest = rest[1:]
		for _, a := range rest {
			if a.Kind == ast.PinArg && strings.ToLower(a.Pin) == "ac" {
				isAC = true
			}
		}
	}

	if isAC {
		newName, _ := pickNewTerminal(nPlus, nMinus, plusKnown, minusKnown)
		if newName == "" {
			return nil
		}
		pins[strings.ToLower(newName)] = netlist.PinRef{Class: netlist.Input, Index: len(*inputNames)}
		*inputNames = append(*inputNames, newName)
		return nil
	}

	value := 0.0
	if len(rest) > 0 && rest[0].Kind == ast.NumberArg {
		value = rest[0].Number
	}

	newName, fromPlus := pickNewTerminal(nPlus, nMinus, plusKnown, minusKnown)
	if newName == "" {
		return nil
	}

	var refVoltage float64
	if fromPlus {
		refVoltage = terminalVoltage(minusRef, *staticVoltage)
	} else {
		refVoltage = terminalVoltage(plusRef, *staticVoltage)
	}

	var newVoltage float64
	if fromPlus {
		newVoltage = refVoltage + value
	} else {
		newVoltage = refVoltage - value
	}

	pins[strings.ToLower(newName)] = netlist.PinRef{Class: netlist.Static, Index: len(*staticVoltage)}
	*staticVoltage = append(*staticVoltage, newVoltage)
	return nil
}

func terminalVoltage(ref netlist.PinRef, staticVoltage []float64) float64 {
	if ref.Class == netlist.Static {
		return staticVoltage[ref.Index]
	}
	return 0
}

// pickNewTerminal returns the not-yet-known terminal name, and whether it
// is the "+" terminal. Returns "" if both are already known (nothing new
// to register).
func pickNewTerminal(nPlus, nMinus string, plusKnown, minusKnown bool) (string, bool) {
	if !plusKnown {
		return nPlus, true
	}
	if !minusKnown {
		return nMinus, false
	}
	return "", false
}

func instantiate(nl *netlist.Netlist, class byte, c ast.Component, pinRefs []netlist.PinRef, models map[string]ast.Model) (netlist.Device, error) {
	roomVt := physconst.ThermalVoltage(physconst.RoomTemp)

	switch class {
	case 'r':
		return component.NewResistor(nl, pinRefs, c.Args[2].Number), nil
	case 'c':
		return component.NewCapacitor(nl, pinRefs, c.Args[2].Number), nil
	case 'l':
		return component.NewCoil(nl, pinRefs, c.Args[2].Number), nil
	case 'i':
		return component.NewCurrentSource(nl, pinRefs, c.Args[2].Number), nil
	case 'e':
		return component.NewVcvs(nl, pinRefs, c.Args[4].Number), nil
	case 'd':
		is, dN := 1e-14, 1.0
		vt := roomVt
		modelName := c.Args[2].Pin
		if m, ok := models[modelName]; ok && m.Kind == ast.ModelDiode {
			if v, ok := m.Params["is"]; ok {
				is = v
			}
			if v, ok := m.Params["n"]; ok {
				dN = v
			}
			if v, ok := m.Params["vt"]; ok {
				vt = v
			}
		} else if !ok && strings.ToLower(modelName) != string(ast.ModelDiode) {
			return nil, &netlist.Error{Kind: netlist.ShapeErr, Op: "Lower", Msg: fmt.Sprintf("%s: unknown model %q", c.Name, modelName)}
		}
		return component.NewDiode(nl, pinRefs, is, dN, vt), nil
	case 'q':
		is, vt, ne, br, bf := 1e-16, roomVt, 1.5, 1.0, 100.0
		modelName := c.Args[3].Pin
		kind := ast.ModelKind(strings.ToLower(modelName))
		m, ok := models[modelName]
		if ok {
			kind = m.Kind
			if v, ok := m.Params["is"]; ok {
				is = v
			}
			if v, ok := m.Params["vt"]; ok {
				vt = v
			}
			if v, ok := m.Params["ne"]; ok {
				ne = v
			}
			if v, ok := m.Params["br"]; ok {
				br = v
			}
			if v, ok := m.Params["bf"]; ok {
				bf = v
			}
		} else if kind != ast.ModelNPN && kind != ast.ModelPNP {
			return nil, &netlist.Error{Kind: netlist.ShapeErr, Op: "Lower", Msg: fmt.Sprintf("%s: unknown model %q", c.Name, modelName)}
		}
		switch kind {
		case ast.ModelNPN:
			return component.NewNPN(nl, pinRefs, is, vt, ne, br, bf), nil
		case ast.ModelPNP:
			return component.NewPNP(nl, pinRefs, is, vt, ne, br, bf), nil
		default:
			return nil, &netlist.Error{Kind: netlist.ShapeErr, Op: "Lower", Msg: fmt.Sprintf("%s: model %q is not a transistor model", c.Name, modelName)}
		}
	default:
		return nil, &netlist.Error{Kind: netlist.ShapeErr, Op: "Lower", Msg: fmt.Sprintf("%s: unsupported device class %q", c.Name, string(class))}
	}
}
