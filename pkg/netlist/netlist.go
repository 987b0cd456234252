// Package netlist holds the frozen-after-setup model of a circuit: the
// typed pin vectors, the set of components placed on them, the dynamic-pin
// adjacency used for KCL residual assembly, and any custom-equation claims
// that replace a KCL row outright (op-amp, VCVS).
package netlist

// PinClass distinguishes the three pin kinds (spec §3).
type PinClass int

const (
	Static PinClass = iota
	Input
	Dynamic
)

func (c PinClass) String() string {
	switch c {
	case Static:
		return "static"
	case Input:
		return "input"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// PinRef names a pin by class and index within that class's vector.
type PinRef struct {
	Class PinClass
	Index int
}

// Device is a placed component: a companion-model primitive plus an
// ordered pin-reference list (spec §4.2). Pin 0 of NumPins() always means
// the same thing the primitive assigns it locally (anode, base, +, ...).
type Device interface {
	Pins() []PinRef
	NumPins() int
	Precompute(steadyState bool)
	Current(localPin int, steadyState bool) float64
	Gradient(localPinRef, localPin int, steadyState bool) float64
	UpdateSteadyState(dt float64)
	UpdateState()
}

// CustomEquation is implemented by devices that impose a constraint
// instead of injecting current (op-amp, VCVS). The claimed row's residual
// and gradient entries come from these methods rather than KCL summation.
type CustomEquation interface {
	Residual() float64
	GradientAt(localPin int) float64
}

// ModelRegistrar lets a device claim a custom-equation row at placement
// time, mirroring the original `update_model(netlist)` hook.
type ModelRegistrar interface {
	UpdateModel(n *Netlist) error
}

// ParameterSource exposes a device's tunable parameters for the netlist's
// flattened parameter introspection.
type ParameterSource interface {
	NumParameters() int
	ParameterName(k int) string
	Parameter(k int) float64
	SetParameter(k int, v float64) error
}

// AdjEntry names one (device, local pin) pair touching a dynamic pin, used
// for KCL residual/Jacobian assembly (spec §3 "Dynamic-pin index").
type AdjEntry struct {
	Dev      Device
	LocalPin int
}

type claim struct {
	dev Device
	eq  CustomEquation
}

// Netlist is the owning collection of placed components and the pin
// vectors they reference (spec §4.3).
type Netlist struct {
	VStatic  []float64
	VInput   []float64
	VDynamic []float64

	staticNames  []string
	inputNames   []string
	dynamicNames []string

	components []Device
	adjacency  [][]AdjEntry // indexed by dynamic pin index
	customEq   map[int]claim

	frozen bool
}

// New builds an empty netlist sized for the given pin-class counts.
// Static pin 0 is reserved for ground and pre-named "0".
func New(nStatic, nInput, nDynamic int) *Netlist {
	n := &Netlist{
		VStatic:      make([]float64, nStatic),
		VInput:       make([]float64, nInput),
		VDynamic:     make([]float64, nDynamic),
		staticNames:  make([]string, nStatic),
		inputNames:   make([]string, nInput),
		dynamicNames: make([]string, nDynamic),
		adjacency:    make([][]AdjEntry, nDynamic),
		customEq:     make(map[int]claim),
	}
	if nStatic > 0 {
		n.staticNames[0] = "0"
	}
	return n
}

// SetPinName records a human-readable name for a pin, used by introspection
// and error messages. Safe to call during lowering, before setup.
func (n *Netlist) SetPinName(ref PinRef, name string) {
	switch ref.Class {
	case Static:
		n.staticNames[ref.Index] = name
	case Input:
		n.inputNames[ref.Index] = name
	case Dynamic:
		n.dynamicNames[ref.Index] = name
	}
}

// AddComponent places a device on the netlist, wiring its dynamic pins into
// the KCL adjacency and invoking its ModelRegistrar hook, if any. Must be
// called before the model is frozen (first Setup), and fails with
// ShapeError if a pin index exceeds its class's declared size.
func (n *Netlist) AddComponent(dev Device) error {
	if n.frozen {
		return newErr(ShapeErr, "AddComponent", "netlist is frozen after setup")
	}
	for localPin, ref := range dev.Pins() {
		switch ref.Class {
		case Static:
			if ref.Index < 0 || ref.Index >= len(n.VStatic) {
				return newErr(ShapeErr, "AddComponent", "static pin %d out of range", ref.Index)
			}
		case Input:
			if ref.Index < 0 || ref.Index >= len(n.VInput) {
				return newErr(ShapeErr, "AddComponent", "input pin %d out of range", ref.Index)
			}
		case Dynamic:
			if ref.Index < 0 || ref.Index >= len(n.VDynamic) {
				return newErr(ShapeErr, "AddComponent", "dynamic pin %d out of range", ref.Index)
			}
			n.adjacency[ref.Index] = append(n.adjacency[ref.Index], AdjEntry{Dev: dev, LocalPin: localPin})
		}
	}
	n.components = append(n.components, dev)
	if reg, ok := dev.(ModelRegistrar); ok {
		if err := reg.UpdateModel(n); err != nil {
			return err
		}
	}
	return nil
}

// SetCustomEquation claims dynamic row i for dev, replacing its KCL
// residual with dev's CustomEquation implementation. May only be called
// from within a device's UpdateModel hook. Fails with DuplicateClaim if
// the row is already claimed.
func (n *Netlist) SetCustomEquation(row int, dev Device) error {
	eq, ok := dev.(CustomEquation)
	if !ok {
		return newErr(ShapeErr, "SetCustomEquation", "device does not implement CustomEquation")
	}
	if row < 0 || row >= len(n.VDynamic) {
		return newErr(ShapeErr, "SetCustomEquation", "dynamic row %d out of range", row)
	}
	if _, claimed := n.customEq[row]; claimed {
		return newErr(DuplicateClaimErr, "SetCustomEquation", "dynamic row %d already claimed", row)
	}
	n.customEq[row] = claim{dev: dev, eq: eq}
	return nil
}

// Freeze marks the netlist closed to further AddComponent calls. Called by
// the driver on first Setup.
func (n *Netlist) Freeze() { n.frozen = true }

// RetrieveVoltage returns the present voltage at the named pin.
func (n *Netlist) RetrieveVoltage(ref PinRef) float64 {
	switch ref.Class {
	case Static:
		return n.VStatic[ref.Index]
	case Input:
		return n.VInput[ref.Index]
	default:
		return n.VDynamic[ref.Index]
	}
}

// SetStaticState overwrites V_static wholesale. Index 0 (ground) is always
// forced back to zero, preserving the Ground invariant.
func (n *Netlist) SetStaticState(v []float64) {
	copy(n.VStatic, v)
	if len(n.VStatic) > 0 {
		n.VStatic[0] = 0
	}
}

func (n *Netlist) GetStaticState() []float64  { return n.VStatic }
func (n *Netlist) GetInputState() []float64   { return n.VInput }
func (n *Netlist) GetDynamicState() []float64 { return n.VDynamic }

func (n *Netlist) NumStaticPins() int  { return len(n.VStatic) }
func (n *Netlist) NumInputPins() int   { return len(n.VInput) }
func (n *Netlist) NumDynamicPins() int { return len(n.VDynamic) }
func (n *Netlist) NumComponents() int  { return len(n.components) }

func (n *Netlist) StaticPinName(i int) string  { return n.staticNames[i] }
func (n *Netlist) DynamicPinName(i int) string { return n.dynamicNames[i] }

// Components returns the placed devices in insertion order.
func (n *Netlist) Components() []Device { return n.components }

// Adjacency returns the (device, local pin) pairs touching dynamic pin i,
// in the stable insertion order used for KCL summation. The returned slice
// aliases netlist-owned storage (no per-call allocation, per spec §5's
// allocation-free hot path); callers must not retain or mutate it.
func (n *Netlist) Adjacency(i int) []AdjEntry { return n.adjacency[i] }

// CustomEquationAt returns the device claiming row i, if any.
func (n *Netlist) CustomEquationAt(i int) (dev Device, eq CustomEquation, ok bool) {
	c, ok := n.customEq[i]
	if !ok {
		return nil, nil, false
	}
	return c.dev, c.eq, true
}

// NumParameters sums the tunable-parameter counts across every component
// that implements ParameterSource.
func (n *Netlist) NumParameters() int {
	total := 0
	for _, d := range n.components {
		if ps, ok := d.(ParameterSource); ok {
			total += ps.NumParameters()
		}
	}
	return total
}

func (n *Netlist) resolveParameter(k int) (ParameterSource, int, error) {
	offset := 0
	for _, d := range n.components {
		ps, ok := d.(ParameterSource)
		if !ok {
			continue
		}
		count := ps.NumParameters()
		if k < offset+count {
			return ps, k - offset, nil
		}
		offset += count
	}
	return nil, 0, newErr(ParameterErr, "Parameter", "index %d out of range", k)
}

func (n *Netlist) ParameterName(k int) (string, error) {
	ps, local, err := n.resolveParameter(k)
	if err != nil {
		return "", err
	}
	return ps.ParameterName(local), nil
}

func (n *Netlist) Parameter(k int) (float64, error) {
	ps, local, err := n.resolveParameter(k)
	if err != nil {
		return 0, err
	}
	return ps.Parameter(local), nil
}

func (n *Netlist) SetParameter(k int, v float64) error {
	ps, local, err := n.resolveParameter(k)
	if err != nil {
		return err
	}
	return ps.SetParameter(local, v)
}
