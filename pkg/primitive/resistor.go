package primitive

// Resistor is the companion model for an ideal linear resistor (spec §4.1).
// Current into local pin 0 is (V1-V0)*G; the gradient is the constant G.
type Resistor struct {
	R float64 // Ohms, must be > 0
	G float64 // cached conductance, 1/R
}

// NewResistor builds a resistor primitive for the given resistance in Ohms.
func NewResistor(r float64) *Resistor {
	return &Resistor{R: r, G: 1.0 / r}
}

func (r *Resistor) Precompute(v0, v1 float64) {}

func (r *Resistor) Current(v0, v1 float64) float64 {
	return (v1 - v0) * r.G
}

func (r *Resistor) Gradient() float64 {
	return r.G
}

// SetResistance updates R (and the cached conductance) for runtime-tunable
// uses such as a potentiometer.
func (r *Resistor) SetResistance(v float64) {
	r.R = v
	r.G = 1.0 / v
}
