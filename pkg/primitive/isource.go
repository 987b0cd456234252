package primitive

// CurrentSource is an ideal independent current source: a fixed current
// flows from pin 1 to pin 0, independent of the voltage across it, so its
// Jacobian contribution is always zero.
type CurrentSource struct {
	Amps float64
}

func NewCurrentSource(amps float64) *CurrentSource {
	return &CurrentSource{Amps: amps}
}

func (s *CurrentSource) Current() float64 { return s.Amps }

func (s *CurrentSource) Gradient() float64 { return 0 }

// SetCurrent updates the source's fixed current for runtime-tunable uses.
func (s *CurrentSource) SetCurrent(amps float64) { s.Amps = amps }
