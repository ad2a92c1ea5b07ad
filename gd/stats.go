// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package gd

import (
	"fmt"
	"sync/atomic"
)

// Stats is a point-in-time snapshot of an Engine's counters, shaped
// after kcp.Snmp's Header/ToSlice pair so a caller can feed it straight
// into an encoding/csv.Writer the way std/snmp.go dumps kcp.DefaultSnmp.
type Stats struct {
	DedupCalls      uint64
	DupCalls        uint64
	ChunksProcessed uint64
	DictHits        uint64
	DictMisses      uint64
	BytesIn         uint64
	BytesOut        uint64
}

// Snapshot atomically reads the engine's running counters.
func (e *Engine) Snapshot() Stats {
	return Stats{
		DedupCalls:      atomic.LoadUint64(&e.dedupCalls),
		DupCalls:        atomic.LoadUint64(&e.dupCalls),
		ChunksProcessed: atomic.LoadUint64(&e.chunksProcessed),
		DictHits:        atomic.LoadUint64(&e.dictHits),
		DictMisses:      atomic.LoadUint64(&e.dictMisses),
		BytesIn:         atomic.LoadUint64(&e.bytesIn),
		BytesOut:        atomic.LoadUint64(&e.bytesOut),
	}
}

// Header returns the CSV column names for ToSlice, in matching order.
func (s Stats) Header() []string {
	return []string{
		"DedupCalls", "DupCalls", "ChunksProcessed",
		"DictHits", "DictMisses", "BytesIn", "BytesOut",
	}
}

// ToSlice renders the snapshot as CSV field values.
func (s Stats) ToSlice() []string {
	return []string{
		fmt.Sprint(s.DedupCalls),
		fmt.Sprint(s.DupCalls),
		fmt.Sprint(s.ChunksProcessed),
		fmt.Sprint(s.DictHits),
		fmt.Sprint(s.DictMisses),
		fmt.Sprint(s.BytesIn),
		fmt.Sprint(s.BytesOut),
	}
}
