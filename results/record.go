// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package results reads tables of benchmark measurements produced by
// the server load tests.
//
// Each row of a results table describes one benchmark run: the
// scheduling policy, worker thread count and queue size the server
// was started with, and the throughput and latency metrics that were
// measured. Latency and wall-time values are recorded in seconds.
package results

import (
	"github.com/pkg/errors"

	"github.com/mohamed-arabi16/multi-thread-server/benchunit"
)

// Column names of a results table.
const (
	Policy     = "policy"
	Threads    = "threads"
	QueueSize  = "queue_size"
	Throughput = "throughput"
	AvgLatency = "avg_latency"
	MinLatency = "min_latency"
	MaxLatency = "max_latency"
	WallTime   = "wall_time"
)

// Columns lists the columns every results table must have, in
// canonical order.
var Columns = []string{
	Policy, Threads, QueueSize,
	Throughput, AvgLatency, MinLatency, MaxLatency, WallTime,
}

// TimeColumns lists the columns that hold durations.
var TimeColumns = []string{AvgLatency, MinLatency, MaxLatency, WallTime}

// A Record is one benchmark run.
type Record struct {
	Policy    string
	Threads   int
	QueueSize int

	Throughput float64 // requests/sec
	AvgLatency float64
	MinLatency float64
	MaxLatency float64
	WallTime   float64
}

// A Table is an in-memory results table.
type Table struct {
	// FileName is the name the table was read from. It is purely
	// diagnostic.
	FileName string

	// TimeUnit is the unit of the time columns. Tables are read
	// in benchunit.Seconds.
	TimeUnit string

	Records []Record
}

// Rescale converts the time columns of every record in t to unit, in
// place, and records the new unit in t.TimeUnit. The other columns
// are not modified.
//
// Rescaling to the unit t is already in leaves the values unchanged,
// so calling Rescale(benchunit.Milliseconds) twice converts only
// once. A table that was converted in place by other code must have
// its TimeUnit updated to match.
func (t *Table) Rescale(unit string) error {
	from := t.TimeUnit
	if from == "" {
		from = benchunit.Seconds
	}
	f, err := benchunit.Factor(from, unit)
	if err != nil {
		return errors.Wrapf(err, "rescaling %s", t.FileName)
	}
	if f != 1 {
		for i := range t.Records {
			r := &t.Records[i]
			r.AvgLatency *= f
			r.MinLatency *= f
			r.MaxLatency *= f
			r.WallTime *= f
		}
	}
	t.TimeUnit = unit
	return nil
}
