package primitive

// Ginf is the large-but-finite conductance substituted for a coil's ideal DC
// short during steady-state warm-up (spec §4.1).
const Ginf = 1e6

// Coil is the trapezoidal companion model for an ideal inductor.
type Coil struct {
	L       float64
	l2t     float64
	invl2t  float64
	veq     float64
	current float64
}

func NewCoil(l float64) *Coil {
	return &Coil{L: l}
}

// UpdateSteadyState sets l2t/invl2t from the new timestep and primes veq
// from the current present state of the branch current.
func (c *Coil) UpdateSteadyState(dt float64) {
	c.l2t = 2 * c.L / dt
	c.invl2t = 1 / c.l2t
	c.veq = c.l2t * c.current
}

// Precompute refreshes the cached branch current ahead of Current/Gradient.
func (c *Coil) Precompute(v0, v1 float64, steadyState bool) {
	if steadyState {
		c.current = (v1 - v0) * Ginf
		return
	}
	c.current = (v1 - v0 + c.veq) * c.invl2t
}

func (c *Coil) UpdateState() {
	c.veq = 2*c.l2t*c.current - c.veq
}

func (c *Coil) Current() float64 { return c.current }

func (c *Coil) Gradient(steadyState bool) float64 {
	if steadyState {
		return Ginf
	}
	return c.invl2t
}

// Veq exposes the companion source for diagnostics/tests.
func (c *Coil) Veq() float64 { return c.veq }
