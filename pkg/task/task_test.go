// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperdag/copperdag/pkg/clock"
)

type stubTask struct {
	Base
	StatelessFreeze
}

func TestBaseLifecycleHooksAreNoOps(t *testing.T) {
	var b Base
	clk := clock.NewMockClock()
	require.NoError(t, b.Start(clk))
	require.NoError(t, b.Stop(clk))
	require.NoError(t, b.Preprocess(clk))
	require.NoError(t, b.Postprocess(clk))
}

func TestStatelessFreezeReportsNoSnapshot(t *testing.T) {
	var f StatelessFreeze
	data, ok := f.Freeze()
	assert.Nil(t, data)
	assert.True(t, ok)
}

func TestEmbeddingBaseAndStatelessFreezeSatisfiesBothContracts(t *testing.T) {
	var s stubTask
	var _ Lifecycle = s
	var _ Freezable = s
}
