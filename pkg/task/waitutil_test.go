// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestBoundedWaitAdmitsWithinBurst(t *testing.T) {
	lim := rate.NewLimiter(rate.Inf, 1)
	err := BoundedWait(context.Background(), lim)
	assert.NoError(t, err)
}

func TestBoundedWaitRespectsContextDeadline(t *testing.T) {
	lim := rate.NewLimiter(rate.Limit(0.001), 1)
	lim.Allow() // consume the single burst token

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := BoundedWait(ctx, lim)
	assert.Error(t, err)
}
