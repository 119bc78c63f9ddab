// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockClockStartsAtZero(t *testing.T) {
	c := NewMockClock()
	assert.Equal(t, Time(0), c.Now())
}

func TestMockClockSetAndIncrement(t *testing.T) {
	c := NewMockClock()
	c.Set(Time(100))
	assert.Equal(t, Time(100), c.Now())

	c.Increment(Duration(50))
	assert.Equal(t, Time(150), c.Now())

	c.Increment(Duration(-200))
	assert.Equal(t, Time(-50), c.Now())
}

func TestTimeSubAndAdd(t *testing.T) {
	a := Time(100)
	b := Time(40)
	assert.Equal(t, Duration(60), a.Sub(b))
	assert.Equal(t, Time(160), a.Add(Duration(60)))
}

func TestDurationSeconds(t *testing.T) {
	d := Duration(1_500_000_000) // 1.5s in nanoseconds
	assert.InDelta(t, 1.5, d.Seconds(), 1e-9)
}

func TestRealClockIsMonotonicNonNegative(t *testing.T) {
	c := NewRealClock()
	first := c.Now()
	second := c.Now()
	assert.GreaterOrEqual(t, int64(first), int64(0))
	assert.GreaterOrEqual(t, int64(second), int64(first))
}
