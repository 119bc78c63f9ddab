// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"context"

	"golang.org/x/time/rate"
)

// BoundedWait blocks until lim admits an event or ctx is done, whichever
// comes first. Drivers that must wait on external hardware or transports
// (a V4L2 poll, a transport recv) use this instead of an unbounded
// channel receive, so a slow or silent peer never blocks the sweep
// indefinitely — the wait is bounded by ctx's deadline and throttled by
// lim so a driver can't busy-poll faster than its configured rate.
func BoundedWait(ctx context.Context, lim *rate.Limiter) error {
	return lim.Wait(ctx)
}
