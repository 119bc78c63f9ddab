// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package runtime

import (
	"sync"

	"github.com/copperdag/copperdag/internal/graph"
	"github.com/copperdag/copperdag/pkg/msg"
	"github.com/copperdag/copperdag/pkg/rlog"
)

type logRecord struct {
	edge graph.EdgeID
	meta msg.Metadata
}

// logSink drains logged edge records on its own goroutine so a tick's
// logging never blocks the next node's process. Backpressure (consumer
// slower than producer) drops the record rather than blocking the sweep;
// a dropped record is logged once at warn level.
type logSink struct {
	ch       chan logRecord
	wg       sync.WaitGroup
	dropOnce sync.Once
}

func newLogSink(bufSize int) *logSink {
	s := &logSink{ch: make(chan logRecord, bufSize)}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *logSink) submit(edge graph.EdgeID, meta msg.Metadata) {
	select {
	case s.ch <- logRecord{edge: edge, meta: meta}:
	default:
		s.dropOnce.Do(func() {
			rlog.Warn("log sink backpressure: dropping records, downstream logger is falling behind")
		})
	}
}

func (s *logSink) run() {
	defer s.wg.Done()
	for rec := range s.ch {
		rlog.Debugf("edge %d: seq=%d status=%v", rec.edge, rec.meta.Seq, rec.meta.Status)
	}
}

func (s *logSink) close() {
	close(s.ch)
	s.wg.Wait()
}
