package primitive

import "math"

// Diode is the companion model for an ideal exponential diode junction
// (spec §4.1). Direct and Indirect select polarity and let the same
// primitive represent an anti-parallel diode pair (design note §9: a
// runtime int8 pair rather than a compile-time template parameter).
type Diode struct {
	Is       float64
	N        float64
	Vt       float64
	Direct   int8
	Indirect int8

	e float64 // cached exp((V1-V0)/(N*Vt))
}

// NewDiode builds a single-diode primitive (Direct=1, Indirect=0). Its
// current is forward when v1 > v0 in Precompute, i.e. v1 is the anode
// voltage and v0 the cathode voltage. Use NewAntiParallelDiode for a pair
// sharing one junction.
func NewDiode(is, n, vt float64) *Diode {
	return &Diode{Is: is, N: n, Vt: vt, Direct: 1, Indirect: 0}
}

// NewAntiParallelDiode builds the companion model for two diodes wired
// back to back across the same pins.
func NewAntiParallelDiode(is, n, vt float64) *Diode {
	return &Diode{Is: is, N: n, Vt: vt, Direct: 1, Indirect: 1}
}

func (d *Diode) Precompute(v0, v1 float64) {
	d.e = math.Exp((v1 - v0) / (d.N * d.Vt))
}

func (d *Diode) Current() float64 {
	direct := float64(d.Direct) * (d.e - 1)
	indirect := float64(d.Indirect) * (1/d.e - 1)
	return d.Is * (direct - indirect)
}

func (d *Diode) Gradient() float64 {
	return d.Is / (d.N * d.Vt) * (float64(d.Direct)*d.e + float64(d.Indirect)/d.e)
}
