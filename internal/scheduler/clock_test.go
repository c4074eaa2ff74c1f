package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnlyWhenDue(t *testing.T) {
	c := New()
	fired := false
	c.After(50*time.Millisecond, func() { fired = true })

	c.Advance(49 * time.Millisecond)
	assert.False(t, fired)
	assert.Equal(t, 1, c.Pending())

	c.Advance(time.Millisecond)
	assert.True(t, fired)
	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, 50*time.Millisecond, c.Now())
}

func TestTiesFireInSchedulingOrder(t *testing.T) {
	c := New()
	var order []int
	for i := 0; i < 5; i++ {
		c.After(10*time.Millisecond, func() { order = append(order, i) })
	}
	c.After(5*time.Millisecond, func() { order = append(order, -1) })

	n := c.Advance(10 * time.Millisecond)
	assert.Equal(t, 6, n)
	assert.Equal(t, []int{-1, 0, 1, 2, 3, 4}, order)
}

func TestCallbacksScheduledInsideWindowFire(t *testing.T) {
	c := New()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		c.After(50*time.Millisecond, tick)
	}
	c.After(0, tick)

	c.Advance(time.Second)
	// t=0, 50, ..., 1000
	assert.Equal(t, 21, ticks)
	assert.Equal(t, 1, c.Pending())
}

func TestClockTimeDuringCallback(t *testing.T) {
	c := New()
	var seen []time.Duration
	c.After(30*time.Millisecond, func() { seen = append(seen, c.Now()) })
	c.After(10*time.Millisecond, func() { seen = append(seen, c.Now()) })

	c.Advance(100 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 30 * time.Millisecond}, seen)
	assert.Equal(t, 100*time.Millisecond, c.Now())
}

func TestNegativeDelayAndNilCallback(t *testing.T) {
	c := New()
	c.After(time.Second, nil)
	assert.Equal(t, 0, c.Pending())

	fired := false
	c.After(-time.Second, func() { fired = true })
	c.Advance(0)
	assert.True(t, fired)
}

func TestNext(t *testing.T) {
	c := New()
	require.False(t, c.Next())

	fired := 0
	c.After(5*time.Second, func() { fired++ })
	c.After(time.Second, func() { fired++ })

	require.True(t, c.Next())
	assert.Equal(t, 1, fired)
	assert.Equal(t, time.Second, c.Now())

	require.True(t, c.Next())
	assert.Equal(t, 2, fired)
	assert.Equal(t, 5*time.Second, c.Now())
}
