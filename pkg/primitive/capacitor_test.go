package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacitorUpdateSteadyStatePrimesIceq(t *testing.T) {
	c := NewCapacitor(1e-6)
	c.UpdateSteadyState(1.0/48000, 0, 5)
	wantC2t := 2 * 1e-6 * 48000
	assert.InDelta(t, wantC2t, c.C2t(), 1e-9)
	assert.InDelta(t, wantC2t*5, c.Iceq(), 1e-9)
}

func TestCapacitorCurrentIsZeroInSteadyState(t *testing.T) {
	c := NewCapacitor(1e-6)
	c.UpdateSteadyState(1.0/48000, 0, 5)
	assert.Equal(t, 0.0, c.Current(0, 5, true))
	assert.Equal(t, 0.0, c.Gradient(true))
}

func TestCapacitorConstantVoltageSettlesIceqConsistency(t *testing.T) {
	// Companion-consistency invariant (spec §8): once settled at a constant
	// applied voltage, iceq == c2t*(V1-V0).
	c := NewCapacitor(1e-6)
	dt := 1.0 / 48000
	v0, v1 := 0.0, 2.5

	c.UpdateSteadyState(dt, v0, v1)
	for i := 0; i < 50; i++ {
		c.UpdateState(v0, v1)
	}
	assert.InDelta(t, c.C2t()*(v1-v0), c.Iceq(), 1e-8)
}

func TestCapacitorGradientEqualsC2tOutsideSteadyState(t *testing.T) {
	c := NewCapacitor(4.7e-9)
	c.UpdateSteadyState(1.0/48000, 0, 0)
	assert.InDelta(t, c.C2t(), c.Gradient(false), 1e-15)
}
