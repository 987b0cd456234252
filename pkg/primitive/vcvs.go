package primitive

// Vcvs is the voltage-controlled-voltage-source companion model (spec
// §4.1): a linear dependent source that claims the custom-equation row of
// its out+ pin and enforces
// Gain*(V(in+) - V(in-)) - (V(out+) - V(out-)) == 0.
type Vcvs struct {
	Gain float64
}

func NewVcvs(gain float64) *Vcvs { return &Vcvs{Gain: gain} }

// Residual returns the custom-equation residual for pins ordered
// (inPlus, inMinus, outPlus, outMinus).
func (v *Vcvs) Residual(vInPlus, vInMinus, vOutPlus, vOutMinus float64) float64 {
	return v.Gain*(vInPlus-vInMinus) - (vOutPlus - vOutMinus)
}

// Gradient returns d(residual)/d(voltage at localPin), localPin ordered
// (inPlus=0, inMinus=1, outPlus=2, outMinus=3).
func (v *Vcvs) Gradient(localPin int) float64 {
	switch localPin {
	case 0:
		return v.Gain
	case 1:
		return -v.Gain
	case 2:
		return -1
	default:
		return 1
	}
}
