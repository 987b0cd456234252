package primitive

// Capacitor is the trapezoidal companion model for an ideal capacitor
// (spec §4.1). It carries the companion admittance c2t = 2C/dt and the
// equivalent current source iceq across samples.
type Capacitor struct {
	C    float64
	c2t  float64
	iceq float64
}

func NewCapacitor(c float64) *Capacitor {
	return &Capacitor{C: c}
}

// UpdateSteadyState sets c2t from the new timestep and primes iceq from the
// voltages presently across the capacitor (DC warm-up, or first setup).
func (c *Capacitor) UpdateSteadyState(dt, v0, v1 float64) {
	c.c2t = 2 * c.C / dt
	c.iceq = c.c2t * (v1 - v0)
}

// UpdateState advances the trapezoidal history by one converged sample.
func (c *Capacitor) UpdateState(v0, v1 float64) {
	c.iceq = 2*c.c2t*(v1-v0) - c.iceq
}

// Current returns the current into local pin 0. In steady state the
// capacitor behaves as an open circuit (current forced to zero).
func (c *Capacitor) Current(v0, v1 float64, steadyState bool) float64 {
	if steadyState {
		return 0
	}
	return (v1-v0)*c.c2t - c.iceq
}

func (c *Capacitor) Gradient(steadyState bool) float64 {
	if steadyState {
		return 0
	}
	return c.c2t
}

// Iceq exposes the equivalent source for companion-consistency checks.
func (c *Capacitor) Iceq() float64 { return c.iceq }

// C2t exposes the companion admittance for companion-consistency checks.
func (c *Capacitor) C2t() float64 { return c.c2t }
