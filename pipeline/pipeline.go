// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline turns a benchmark results file into summary tables
// and comparison charts.
//
// Run loads the results file, converts its time metrics to
// milliseconds, and computes two views of the data: a thread sweep at
// a fixed queue size and a queue-size sweep at a fixed thread count.
// Each view is written as two line charts (throughput and average
// latency against the sweep dimension, one line per policy) and a
// CSV and Markdown summary table.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mohamed-arabi16/multi-thread-server/benchunit"
	"github.com/mohamed-arabi16/multi-thread-server/report"
	"github.com/mohamed-arabi16/multi-thread-server/results"
	"github.com/mohamed-arabi16/multi-thread-server/storage/db"
	"github.com/mohamed-arabi16/multi-thread-server/summary"
)

// View names used when exporting summaries.
const (
	ViewThreads = "threads"
	ViewQueue   = "queue"
)

// Config configures one pipeline run.
type Config struct {
	// ResultsFile is the path of the results CSV, or "-" for
	// standard input.
	ResultsFile string
	// OutputDir receives the tables and figures subdirectories.
	OutputDir string

	// QueueFixed is the queue size of the thread sweep.
	QueueFixed int
	// ThreadsFixed is the thread count of the queue-size sweep.
	ThreadsFixed int

	// ConvertToMilliseconds converts the time metrics from
	// seconds to milliseconds before summarizing.
	ConvertToMilliseconds bool

	// DBDriver and DBSource select an optional database that
	// receives the summaries. Export is disabled if DBDriver is
	// empty.
	DBDriver string
	DBSource string
}

// DefaultConfig returns the configuration used when no fixed values
// are given.
func DefaultConfig() Config {
	return Config{
		QueueFixed:            50,
		ThreadsFixed:          8,
		ConvertToMilliseconds: true,
	}
}

// Result describes the output of a successful run.
type Result struct {
	TablesDir  string
	FiguresDir string

	// Artifacts lists every file written, in order.
	Artifacts []string

	Threads *summary.Summary // Thread sweep at Config.QueueFixed
	Queue   *summary.Summary // Queue-size sweep at Config.ThreadsFixed

	// RunID is the database ID of the exported run, or 0.
	RunID int64
}

// A view is one sweep of the results table.
type view struct {
	name   string
	filter string // Pinned column
	fixed  int
	group  string // Sweep column
	label  string // Sweep column in titles
	suffix string // File name suffix
}

func views(cfg Config) []view {
	return []view{
		{ViewThreads, results.QueueSize, cfg.QueueFixed, results.Threads, "Threads", fmt.Sprintf("q%d", cfg.QueueFixed)},
		{ViewQueue, results.Threads, cfg.ThreadsFixed, results.QueueSize, "Queue Size", fmt.Sprintf("t%d", cfg.ThreadsFixed)},
	}
}

// Run executes the pipeline described by cfg. Warnings about the
// input, such as a fixed value that matches no rows, are logged to log
// and do not stop the run.
//
// Run stops at the first error. Files written before the error are
// left in place.
func Run(cfg Config, log logrus.FieldLogger) (*Result, error) {
	if cfg.ResultsFile == "" || cfg.OutputDir == "" {
		return nil, errors.New("results file and output directory are required")
	}
	res := &Result{
		TablesDir:  filepath.Join(cfg.OutputDir, "tables"),
		FiguresDir: filepath.Join(cfg.OutputDir, "figures"),
	}
	for _, dir := range []string{res.TablesDir, res.FiguresDir} {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, err
		}
	}

	t, err := results.ReadFile(cfg.ResultsFile)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": t.FileName, "rows": len(t.Records)}).Debug("loaded results")
	if cfg.ConvertToMilliseconds {
		if err := t.Rescale(benchunit.Milliseconds); err != nil {
			return nil, err
		}
	}

	for _, v := range views(cfg) {
		s, err := summarize(t, v, log)
		if err != nil {
			return nil, err
		}
		if v.name == ViewThreads {
			res.Threads = s
		} else {
			res.Queue = s
		}
		if err := res.render(v, s); err != nil {
			return nil, err
		}
	}

	if cfg.DBDriver != "" {
		id, err := export(cfg, t, res)
		if err != nil {
			return nil, errors.Wrap(err, "exporting summaries")
		}
		res.RunID = id
		log.WithFields(logrus.Fields{"driver": cfg.DBDriver, "run": id}).Info("exported summaries")
	}
	return res, nil
}

func summarize(t *results.Table, v view, log logrus.FieldLogger) (*summary.Summary, error) {
	s, err := summary.Summarize(t, v.filter, v.fixed, v.group)
	if err != nil {
		return nil, err
	}
	for _, w := range s.Warnings {
		var ew *summary.EmptySliceWarning
		if errors.As(w, &ew) {
			log.WithFields(logrus.Fields{
				"column":    ew.Column,
				"value":     ew.Value,
				"available": ew.Available,
			}).Warn("no rows for fixed value")
			continue
		}
		log.Warn(w)
	}
	s.Sort()
	log.WithFields(logrus.Fields{"view": v.name, "rows": len(s.Rows)}).Debug("summarized")
	return s, nil
}

// render writes the charts and then the tables of one view.
func (res *Result) render(v view, s *summary.Summary) error {
	slice := fmt.Sprintf("(%s=%d)", v.filter, v.fixed)
	charts := []struct {
		metric, title, file string
	}{
		{
			results.Throughput,
			fmt.Sprintf("Throughput vs %s %s", v.label, slice),
			fmt.Sprintf("throughput_vs_%s_%s.png", v.name, v.suffix),
		},
		{
			results.AvgLatency,
			fmt.Sprintf("Avg Latency vs %s %s %s", v.label, slice, benchunit.Label(s.TimeUnit)),
			fmt.Sprintf("avg_latency_vs_%s_%s.png", v.name, v.suffix),
		},
	}
	for _, c := range charts {
		path := filepath.Join(res.FiguresDir, c.file)
		if err := report.LineChart(s, c.metric, c.title, path); err != nil {
			return errors.Wrapf(err, "rendering %s", path)
		}
		res.Artifacts = append(res.Artifacts, path)
	}

	base := filepath.Join(res.TablesDir, fmt.Sprintf("summary_%s_%s", v.name, v.suffix))
	csvPath, mdPath := base+".csv", base+".md"
	if err := report.WriteTable(s, csvPath, mdPath); err != nil {
		return err
	}
	res.Artifacts = append(res.Artifacts, csvPath, mdPath)
	return nil
}

func export(cfg Config, t *results.Table, res *Result) (int64, error) {
	d, err := db.OpenSQL(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return 0, err
	}
	defer d.Close()

	ctx := context.Background()
	run, err := d.NewRun(ctx, db.RunInfo{
		Source:       t.FileName,
		QueueFixed:   cfg.QueueFixed,
		ThreadsFixed: cfg.ThreadsFixed,
		TimeUnit:     t.TimeUnit,
	})
	if err != nil {
		return 0, err
	}
	if err := run.InsertSummary(ctx, ViewThreads, res.Threads); err != nil {
		return 0, err
	}
	if err := run.InsertSummary(ctx, ViewQueue, res.Queue); err != nil {
		return 0, err
	}
	return run.ID, nil
}
