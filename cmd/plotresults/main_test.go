// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const results = `policy,threads,queue_size,throughput,avg_latency,min_latency,max_latency,wall_time
fifo,4,50,100,0.01,0.005,0.02,1.0
fifo,8,50,180,0.008,0.004,0.016,1.0
sff,4,50,90,0.011,0.006,0.022,1.0
sff,8,50,150,0.009,0.005,0.018,1.0
fifo,8,10,120,0.02,0.01,0.04,1.0
sff,8,10,110,0.021,0.011,0.041,1.0
`

func writeResults(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(results), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	t.Logf("plotresults %s", strings.Join(args, " "))
	err = plotresults(&out, &errOut, args)
	return out.String(), errOut.String(), err
}

func TestPlotresults(t *testing.T) {
	in := writeResults(t)
	dir := filepath.Join(t.TempDir(), "out")
	stdout, stderr, err := run(t, in, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stderr)
	}
	want := "Done.\n" +
		"Figures: " + filepath.Join(dir, "figures") + "\n" +
		"Tables:  " + filepath.Join(dir, "tables") + "\n"
	if stdout != want {
		t.Errorf("stdout:\nwant:\n%sgot:\n%s", want, stdout)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
	for _, f := range []string{
		"figures/throughput_vs_threads_q50.png",
		"figures/avg_latency_vs_threads_q50.png",
		"figures/throughput_vs_queue_t8.png",
		"figures/avg_latency_vs_queue_t8.png",
		"tables/summary_threads_q50.csv",
		"tables/summary_threads_q50.md",
		"tables/summary_queue_t8.csv",
		"tables/summary_queue_t8.md",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Error(err)
		}
	}

	got, err := os.ReadFile(filepath.Join(dir, "tables", "summary_queue_t8.csv"))
	if err != nil {
		t.Fatal(err)
	}
	wantCSV := "policy,queue_size,throughput,avg_latency,min_latency,max_latency,wall_time\n" +
		"fifo,10,120,20,10,40,1000\n" +
		"fifo,50,180,8,4,16,1000\n" +
		"sff,10,110,21,11,41,1000\n" +
		"sff,50,150,9,5,18,1000\n"
	if string(got) != wantCSV {
		t.Errorf("queue table:\nwant:\n%sgot:\n%s", wantCSV, got)
	}
}

func TestPlotresultsFixedValues(t *testing.T) {
	in := writeResults(t)
	dir := t.TempDir()
	if _, stderr, err := run(t, "--seconds", in, dir, "10", "4"); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stderr)
	}
	for _, f := range []string{
		"figures/throughput_vs_threads_q10.png",
		"figures/avg_latency_vs_queue_t4.png",
		"tables/summary_threads_q10.md",
		"tables/summary_queue_t4.csv",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Error(err)
		}
	}
	got, err := os.ReadFile(filepath.Join(dir, "tables", "summary_threads_q10.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "fifo,8,120,0.02,0.01,0.04,1\n") {
		t.Errorf("seconds table:\n%s", got)
	}
}

func TestPlotresultsEmptySlice(t *testing.T) {
	in := writeResults(t)
	_, stderr, err := run(t, in, t.TempDir(), "999")
	if err != nil {
		t.Fatalf("empty slice should not fail: %v", err)
	}
	for _, want := range []string{"level=warning", "column=queue_size", "value=999", `available="[10 50]"`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestPlotresultsUsage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"results.csv"},
		{"results.csv", "out", "many"},
		{"--log-level=loud", "results.csv", "out"},
	} {
		stdout, stderr, err := run(t, args...)
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Errorf("%v: got error %v, want *UsageError", args, err)
		}
		if stdout != "" {
			t.Errorf("%v: unexpected stdout:\n%s", args, stdout)
		}
		if !strings.Contains(stderr, "usage: plotresults") {
			t.Errorf("%v: stderr has no usage:\n%s", args, stderr)
		}
	}
}

func TestPlotresultsMissingColumns(t *testing.T) {
	in := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(in, []byte("policy,threads\nfifo,4\n"), 0666); err != nil {
		t.Fatal(err)
	}
	stdout, stderr, err := run(t, in, t.TempDir())
	if err == nil {
		t.Fatalf("missing columns succeeded")
	}
	if stdout != "" {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
	if !strings.Contains(stderr, "level=error") || !strings.Contains(stderr, "missing columns") {
		t.Errorf("stderr:\n%s", stderr)
	}
}

func TestPlotresultsExport(t *testing.T) {
	in := writeResults(t)
	dbPath := filepath.Join(t.TempDir(), "summaries.db")
	if _, stderr, err := run(t, "--db-driver=sqlite3", "--db="+dbPath, in, t.TempDir()); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Error(err)
	}

	_, _, err := run(t, "--db-driver=sqlite3", in, t.TempDir())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Errorf("--db-driver without --db: got %v, want *UsageError", err)
	}
}
