// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mohamed-arabi16/multi-thread-server/results"
	. "github.com/mohamed-arabi16/multi-thread-server/storage/db"
	"github.com/mohamed-arabi16/multi-thread-server/storage/db/dbtest"
	"github.com/mohamed-arabi16/multi-thread-server/summary"
)

func threadSummary() *summary.Summary {
	return &summary.Summary{
		FilterColumn: results.QueueSize,
		FilterValue:  50,
		GroupColumn:  results.Threads,
		TimeUnit:     "ms",
		Rows: []summary.Row{
			{Policy: "sff", Sweep: 4, Throughput: 90, AvgLatency: 11, MinLatency: 5.5, MaxLatency: 22, WallTime: 1, Runs: 1},
			{Policy: "fifo", Sweep: 8, Throughput: 180, AvgLatency: 8, MinLatency: 4, MaxLatency: 16, WallTime: 1, Runs: 1},
			{Policy: "fifo", Sweep: 4, Throughput: 105, AvgLatency: 11, MinLatency: 5.5, MaxLatency: 22, WallTime: 1.25, Runs: 2},
		},
	}
}

// TestNewRun verifies that NewRun assigns increasing IDs and records
// the run configuration.
func TestNewRun(t *testing.T) {
	ctx := context.Background()
	SetNow(time.Unix(86400, 0))
	defer SetNow(time.Time{})

	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	info := RunInfo{Source: "results.csv", QueueFixed: 50, ThreadsFixed: 8, TimeUnit: "ms"}
	var last int64
	for i := 0; i < 3; i++ {
		r, err := db.NewRun(ctx, info)
		if err != nil {
			t.Fatalf("NewRun: %v", err)
		}
		if r.ID <= last {
			t.Errorf("run ID %d after %d, want increasing", r.ID, last)
		}
		last = r.ID
		if !r.Created.Equal(time.Unix(86400, 0)) {
			t.Errorf("Created = %v", r.Created)
		}
	}

	n, err := db.CountRuns(ctx)
	if err != nil {
		t.Fatalf("CountRuns: %v", err)
	}
	if n != 3 {
		t.Errorf("CountRuns = %d, want 3", n)
	}

	var got RunInfo
	var created int64
	err = DBSQL(db).QueryRow("SELECT Source, QueueFixed, ThreadsFixed, TimeUnit, Created FROM Runs WHERE RunID = ?", last).
		Scan(&got.Source, &got.QueueFixed, &got.ThreadsFixed, &got.TimeUnit, &created)
	if err != nil {
		t.Fatalf("sql.QueryRow: %v", err)
	}
	if got != info {
		t.Errorf("stored run = %+v, want %+v", got, info)
	}
	if created != 86400 {
		t.Errorf("Created = %d, want 86400", created)
	}
}

// TestInsertSummary verifies that summaries are stored per view and
// read back in policy and sweep order.
func TestInsertSummary(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	run, err := db.NewRun(ctx, RunInfo{Source: "x", QueueFixed: 50, ThreadsFixed: 8, TimeUnit: "ms"})
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	s := threadSummary()
	if err := run.InsertSummary(ctx, "threads", s); err != nil {
		t.Fatalf("InsertSummary: %v", err)
	}
	queue := &summary.Summary{Rows: []summary.Row{{Policy: "fifo", Sweep: 100, Throughput: 1, Runs: 1}}}
	if err := run.InsertSummary(ctx, "queue", queue); err != nil {
		t.Fatalf("InsertSummary: %v", err)
	}

	got, err := db.Summaries(ctx, run.ID, "threads")
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	s.Sort()
	if diff := cmp.Diff(s.Rows, got); diff != "" {
		t.Errorf("threads view mismatch (-want +got):\n%s", diff)
	}

	got, err = db.Summaries(ctx, run.ID, "queue")
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if diff := cmp.Diff(queue.Rows, got); diff != "" {
		t.Errorf("queue view mismatch (-want +got):\n%s", diff)
	}

	got, err = db.Summaries(ctx, run.ID+1, "threads")
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown run has %d rows", len(got))
	}
}

// TestInsertSummaryAtomic verifies that a failed insert stores no rows.
func TestInsertSummaryAtomic(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	run, err := db.NewRun(ctx, RunInfo{})
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	s := threadSummary()
	s.Rows = append(s.Rows, s.Rows[0])
	if err := run.InsertSummary(ctx, "threads", s); err == nil {
		t.Fatalf("InsertSummary with a duplicate row succeeded")
	}
	got, err := db.Summaries(ctx, run.ID, "threads")
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("failed insert left %d rows", len(got))
	}
}

// TestForeignKeys verifies that summaries must belong to a run.
func TestForeignKeys(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	_, err := DBSQL(db).Exec("INSERT INTO Summaries(RunID, ViewName, Policy, Sweep) VALUES (?, ?, ?, ?)", 42, "threads", "fifo", 4)
	if err == nil {
		t.Errorf("insert into missing run succeeded")
	}
}
