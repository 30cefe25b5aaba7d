package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_ZeroValue_AdvanceIsNoOp(t *testing.T) {
	var c Countdown
	for i := 0; i < 100; i++ {
		assert.False(t, c.Advance())
	}
	left, running := c.Remaining()
	assert.Zero(t, left)
	assert.False(t, running)
}

func TestCountdown_FiresExactlyOnce(t *testing.T) {
	// GIVEN a countdown started at 3
	var c Countdown
	c.Start(3)

	// WHEN it is advanced five times
	fired := make([]bool, 5)
	for i := range fired {
		fired[i] = c.Advance()
	}

	// THEN it fires on the third advance only and is unset afterwards
	assert.Equal(t, []bool{false, false, true, false, false}, fired)
	assert.False(t, c.Running())
}

func TestCountdown_StartOne_FiresOnNextAdvance(t *testing.T) {
	var c Countdown
	c.Start(1)
	assert.True(t, c.Running())
	assert.True(t, c.Advance())
}

func TestCountdown_Remaining(t *testing.T) {
	var c Countdown
	c.Start(5)
	c.Advance()
	left, running := c.Remaining()
	assert.Equal(t, 4, left)
	assert.True(t, running)
}

func TestCountdown_Reset(t *testing.T) {
	var c Countdown
	c.Start(2)
	c.Reset()
	assert.False(t, c.Running())
	assert.False(t, c.Advance())
	assert.False(t, c.Advance())
}

func TestCountdown_StartNonPositive_Panics(t *testing.T) {
	var c Countdown
	requirePanicsWith(t, ErrInvalidState, func() { c.Start(0) })
	requirePanicsWith(t, ErrInvalidState, func() { c.Start(-3) })
}
