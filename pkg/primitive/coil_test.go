package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoilSteadyStateActsAsLargeFiniteConductance(t *testing.T) {
	c := NewCoil(1e-3)
	c.UpdateSteadyState(1.0 / 48000)
	c.Precompute(0, 2, true)
	assert.InDelta(t, 2*Ginf, c.Current(), 1e-6)
	assert.Equal(t, Ginf, c.Gradient(true))
}

func TestCoilDynamicUsesTrapezoidalCompanion(t *testing.T) {
	c := NewCoil(1e-3)
	dt := 1.0 / 48000
	c.UpdateSteadyState(dt)
	c.Precompute(0, 1, false)
	wantInvL2t := dt / (2 * 1e-3)
	assert.InDelta(t, wantInvL2t, c.Gradient(false), 1e-12)
	assert.InDelta(t, 1*wantInvL2t, c.Current(), 1e-12)
}

func TestCoilUpdateStateAdvancesVeq(t *testing.T) {
	c := NewCoil(1e-3)
	dt := 1.0 / 48000
	c.UpdateSteadyState(dt)
	c.Precompute(0, 1, false)
	before := c.Veq()
	c.UpdateState()
	assert.InDelta(t, 2*c.l2t*c.current-before, c.Veq(), 1e-12)
}
