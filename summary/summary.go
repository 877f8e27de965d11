// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package summary reduces a results table to per-policy means along
// one sweep dimension.
//
// A summary is computed over a slice of the results table: the rows
// where one dimension (threads or queue size) is pinned to a fixed
// value. The remaining rows are grouped by policy and by the other
// dimension, and every metric is replaced by its arithmetic mean over
// the group.
package summary

import (
	"fmt"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"

	"github.com/mohamed-arabi16/multi-thread-server/results"
)

// Metrics lists the columns that are averaged, in output order.
var Metrics = []string{
	results.Throughput,
	results.AvgLatency,
	results.MinLatency,
	results.MaxLatency,
	results.WallTime,
}

// ErrBadColumns is returned by Summarize when the filter and group
// columns are not threads and queue_size.
var ErrBadColumns = errors.New("filter and group columns must be threads and queue_size")

// runsColumn is the name of the per-group row count produced during
// aggregation.
const runsColumn = "runs"

// A Row is the mean of all runs of one policy at one sweep value.
type Row struct {
	Policy string
	Sweep  int // Value of the group column

	Throughput float64
	AvgLatency float64
	MinLatency float64
	MaxLatency float64
	WallTime   float64

	// Runs is the number of results rows averaged into this row.
	Runs int
}

// Value returns the metric named col.
func (r *Row) Value(col string) (float64, bool) {
	switch col {
	case results.Throughput:
		return r.Throughput, true
	case results.AvgLatency:
		return r.AvgLatency, true
	case results.MinLatency:
		return r.MinLatency, true
	case results.MaxLatency:
		return r.MaxLatency, true
	case results.WallTime:
		return r.WallTime, true
	}
	return 0, false
}

// A Summary is a table of Rows computed from one slice of a results
// table.
type Summary struct {
	// FilterColumn and FilterValue identify the slice: only
	// results rows with FilterColumn == FilterValue contribute.
	FilterColumn string
	FilterValue  int

	// GroupColumn is the sweep dimension, the column stored in
	// Row.Sweep.
	GroupColumn string

	// TimeUnit is the unit of the time metrics.
	TimeUnit string

	Rows []Row

	// Warnings is a list of problems with the input that did not
	// prevent summarizing, such as an empty slice. These should
	// be presented to the user along with the summary.
	Warnings []error
}

// An EmptySliceWarning reports that no results rows matched the
// fixed value of a slice.
type EmptySliceWarning struct {
	Column    string
	Value     int
	Available []int // Distinct values of Column in the table, sorted
}

func (w *EmptySliceWarning) Error() string {
	return fmt.Sprintf("no rows for %s=%d; available: %v", w.Column, w.Value, w.Available)
}

// Summarize computes the summary of the slice of t where filterColumn
// equals filterValue, grouped by policy and groupColumn.
//
// filterColumn and groupColumn must be results.QueueSize and
// results.Threads, in either order. If no rows match filterValue,
// Summarize returns a summary with no rows and an EmptySliceWarning
// rather than an error.
//
// The rows of the result are in no particular order; see Sort.
func Summarize(t *results.Table, filterColumn string, filterValue int, groupColumn string) (*Summary, error) {
	if !isDimPair(filterColumn, groupColumn) {
		return nil, errors.Wrapf(ErrBadColumns, "filter %q, group %q", filterColumn, groupColumn)
	}
	s := &Summary{
		FilterColumn: filterColumn,
		FilterValue:  filterValue,
		GroupColumn:  groupColumn,
		TimeUnit:     t.TimeUnit,
	}

	all := toGGTable(t)
	sl := table.Flatten(table.FilterEq(all, filterColumn, filterValue))
	if sl.Len() == 0 {
		s.Warnings = append(s.Warnings, &EmptySliceWarning{
			Column:    filterColumn,
			Value:     filterValue,
			Available: distinct(all, filterColumn),
		})
		return s, nil
	}

	agg := ggstat.Agg(results.Policy, groupColumn)(ggstat.AggCount(runsColumn), ggstat.AggMean(Metrics...))
	out := table.Flatten(agg.F(sl))

	policies := out.MustColumn(results.Policy).([]string)
	sweeps := out.MustColumn(groupColumn).([]int)
	runs := out.MustColumn(runsColumn).([]int)
	means := make(map[string][]float64, len(Metrics))
	for _, m := range Metrics {
		means[m] = out.MustColumn("mean " + m).([]float64)
	}

	s.Rows = make([]Row, out.Len())
	for i := range s.Rows {
		s.Rows[i] = Row{
			Policy:     policies[i],
			Sweep:      sweeps[i],
			Throughput: means[results.Throughput][i],
			AvgLatency: means[results.AvgLatency][i],
			MinLatency: means[results.MinLatency][i],
			MaxLatency: means[results.MaxLatency][i],
			WallTime:   means[results.WallTime][i],
			Runs:       runs[i],
		}
	}
	return s, nil
}

func isDimPair(a, b string) bool {
	return (a == results.Threads && b == results.QueueSize) ||
		(a == results.QueueSize && b == results.Threads)
}

// toGGTable converts t into a columnar table with one column per
// results column.
func toGGTable(t *results.Table) *table.Table {
	n := len(t.Records)
	var (
		policy  = make([]string, n)
		threads = make([]int, n)
		queue   = make([]int, n)
		thr     = make([]float64, n)
		avg     = make([]float64, n)
		lo      = make([]float64, n)
		hi      = make([]float64, n)
		wall    = make([]float64, n)
	)
	for i, r := range t.Records {
		policy[i] = r.Policy
		threads[i] = r.Threads
		queue[i] = r.QueueSize
		thr[i] = r.Throughput
		avg[i] = r.AvgLatency
		lo[i] = r.MinLatency
		hi[i] = r.MaxLatency
		wall[i] = r.WallTime
	}
	return new(table.Builder).
		Add(results.Policy, policy).
		Add(results.Threads, threads).
		Add(results.QueueSize, queue).
		Add(results.Throughput, thr).
		Add(results.AvgLatency, avg).
		Add(results.MinLatency, lo).
		Add(results.MaxLatency, hi).
		Add(results.WallTime, wall).
		Done()
}

// distinct returns the sorted distinct values of integer column col.
func distinct(t *table.Table, col string) []int {
	vals := slice.Nub(t.MustColumn(col)).([]int)
	sort.Ints(vals)
	return vals
}

// Sort orders the rows of s by policy, then by sweep value.
func (s *Summary) Sort() {
	sort.SliceStable(s.Rows, func(i, j int) bool {
		a, b := &s.Rows[i], &s.Rows[j]
		if a.Policy != b.Policy {
			return a.Policy < b.Policy
		}
		return a.Sweep < b.Sweep
	})
}

// Policies returns the distinct policies in s, sorted.
func (s *Summary) Policies() []string {
	var ps []string
	seen := make(map[string]bool)
	for _, r := range s.Rows {
		if !seen[r.Policy] {
			seen[r.Policy] = true
			ps = append(ps, r.Policy)
		}
	}
	sort.Strings(ps)
	return ps
}

// Sweeps returns the distinct sweep values in s, sorted.
func (s *Summary) Sweeps() []int {
	var xs []int
	seen := make(map[int]bool)
	for _, r := range s.Rows {
		if !seen[r.Sweep] {
			seen[r.Sweep] = true
			xs = append(xs, r.Sweep)
		}
	}
	sort.Ints(xs)
	return xs
}

// Lookup returns the row for policy at sweep value sweep.
func (s *Summary) Lookup(policy string, sweep int) (Row, bool) {
	for _, r := range s.Rows {
		if r.Policy == policy && r.Sweep == sweep {
			return r, true
		}
	}
	return Row{}, false
}
