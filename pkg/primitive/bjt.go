package primitive

import "math"

// Bjt is the simplified (non-Gummel-Poon) Ebers-Moll companion model for a
// bipolar junction transistor (spec §4.1). Pins are local-numbered
// base=0, collector=1, emitter=2. Sign is +1 for NPN, -1 for PNP.
type Bjt struct {
	Is   float64
	Vt   float64
	Ne   float64
	Br   float64
	Bf   float64
	Sign float64

	eBE float64 // cached exp(sign*(Vb-Ve)/(Ne*Vt))
	eBC float64 // cached exp(sign*(Vb-Vc)/(Ne*Vt))
}

func newBjt(sign, is, vt, ne, br, bf float64) *Bjt {
	return &Bjt{Is: is, Vt: vt, Ne: ne, Br: br, Bf: bf, Sign: sign}
}

// NewNPN builds an NPN companion model with the given SPICE-style parameters.
func NewNPN(is, vt, ne, br, bf float64) *Bjt { return newBjt(1, is, vt, ne, br, bf) }

// NewPNP builds a PNP companion model with the given SPICE-style parameters.
func NewPNP(is, vt, ne, br, bf float64) *Bjt { return newBjt(-1, is, vt, ne, br, bf) }

func (b *Bjt) Precompute(vb, vc, ve float64) {
	vt := b.Ne * b.Vt
	b.eBE = math.Exp(b.Sign * (vb - ve) / vt)
	b.eBC = math.Exp(b.Sign * (vb - vc) / vt)
}

// ib, ic are the sign-carrying base and collector Ebers-Moll currents from
// spec §4.1; the Sign factor inside them is the only polarity flip, so the
// pin currents below use them as they are for both NPN and PNP.
func (b *Bjt) ib() float64 {
	return b.Sign * b.Is * ((b.eBE-1)/b.Bf + (b.eBC-1)/b.Br)
}

func (b *Bjt) ic() float64 {
	return b.Sign * b.Is * ((b.eBE - b.eBC) - (b.eBC-1)/b.Br)
}

func (b *Bjt) ibVbc() float64 { return b.Is * b.eBC / (b.Ne * b.Vt) / b.Br }
func (b *Bjt) ibVbe() float64 { return b.Is * b.eBE / (b.Ne * b.Vt) / b.Bf }
func (b *Bjt) icVbc() float64 { return b.Is * (-b.eBC - b.eBC/b.Br) / (b.Ne * b.Vt) }
func (b *Bjt) icVbe() float64 { return b.Is * b.eBE / (b.Ne * b.Vt) }

// Current returns the current flowing into local pin 0 (base), 1 (collector)
// or 2 (emitter).
func (b *Bjt) Current(localPin int) float64 {
	switch localPin {
	case 0:
		return -b.ib()
	case 1:
		return -b.ic()
	default:
		return b.ib() + b.ic()
	}
}

// Gradient returns d(current at localPinRef)/d(voltage at localPin). The
// sign embedded in ib/ic cancels out of its own derivative (Sign^2 == 1),
// so these entries are identical for NPN and PNP — matching the original
// Ebers-Moll StaticNPN/StaticPNP gradient formulas, which carry no polarity
// sign at all.
func (b *Bjt) Gradient(localPinRef, localPin int) float64 {
	switch localPinRef {
	case 0: // base
		switch localPin {
		case 0:
			return -(b.ibVbe() + b.ibVbc())
		case 1:
			return b.ibVbc()
		default:
			return b.ibVbe()
		}
	case 1: // collector
		switch localPin {
		case 0:
			return -(b.icVbe() + b.icVbc())
		case 1:
			return b.icVbc()
		default:
			return b.icVbe()
		}
	default: // emitter
		switch localPin {
		case 0:
			return b.ibVbe() + b.ibVbc() + b.icVbe() + b.icVbc()
		case 1:
			return -(b.ibVbc() + b.icVbc())
		default:
			return -(b.ibVbe() + b.icVbe())
		}
	}
}
