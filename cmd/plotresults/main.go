// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Plotresults summarizes the results of server benchmark runs and
// plots the scheduling policies against each other.
//
// Usage:
//
//	plotresults [flags] results.csv out-dir [queue_size_fixed] [threads_fixed]
//
// The results file is a CSV file with one row per benchmark run and at
// least the columns policy, threads, queue_size, throughput,
// avg_latency, min_latency, max_latency, and wall_time. Latencies and
// wall time are in seconds. A results file of "-" reads standard
// input.
//
// Plotresults computes two views of the results. The thread view
// keeps the rows with queue_size equal to queue_size_fixed (default
// 50) and averages every metric per policy and thread count. The queue
// view keeps the rows with threads equal to threads_fixed (default 8)
// and averages per policy and queue size. For each view it writes a
// throughput chart and an average latency chart to out-dir/figures
// and a CSV and Markdown summary table to out-dir/tables:
//
//	figures/throughput_vs_threads_q50.png
//	figures/avg_latency_vs_threads_q50.png
//	figures/throughput_vs_queue_t8.png
//	figures/avg_latency_vs_queue_t8.png
//	tables/summary_threads_q50.csv
//	tables/summary_threads_q50.md
//	tables/summary_queue_t8.csv
//	tables/summary_queue_t8.md
//
// Time metrics are reported in milliseconds unless --seconds is given.
// If a fixed value matches no rows, plotresults logs a warning listing
// the values that do occur and writes empty charts and tables for that
// view.
//
// The --db-driver and --db flags additionally store both summaries in a
// sqlite3 or mysql database. For example:
//
//	plotresults --db-driver=sqlite3 --db=summaries.db results.csv out
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/mohamed-arabi16/multi-thread-server/pipeline"
	_ "github.com/mohamed-arabi16/multi-thread-server/storage/db/sqlite3"
)

// A UsageError reports bad command-line arguments. The usage message
// has already been printed.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func main() {
	if err := plotresults(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func plotresults(stdout, stderr io.Writer, args []string) error {
	def := pipeline.DefaultConfig()

	app := kingpin.New("plotresults", "Summarize and plot server benchmark results.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	var (
		resultsFile  = app.Arg("results_file", "Results CSV file, or - for standard input.").Required().String()
		outputDir    = app.Arg("output_directory", "Directory that receives figures/ and tables/.").Required().String()
		queueFixed   = app.Arg("queue_size_fixed", "Queue size of the thread sweep.").Default(strconv.Itoa(def.QueueFixed)).Int()
		threadsFixed = app.Arg("threads_fixed", "Thread count of the queue-size sweep.").Default(strconv.Itoa(def.ThreadsFixed)).Int()

		seconds  = app.Flag("seconds", "Report time metrics in seconds instead of milliseconds.").Bool()
		logLevel = app.Flag("log-level", "Minimum level of log messages.").Default("info").Enum("debug", "info", "warn", "error")
		dbDriver = app.Flag("db-driver", "Store summaries in a database using this driver.").Enum("sqlite3", "mysql")
		dbSource = app.Flag("db", "Data source name of the summary database.").String()
	)
	if _, err := app.Parse(args); err != nil {
		app.Errorf("%s", err)
		app.Usage(args)
		return &UsageError{err}
	}
	if *dbDriver != "" && *dbSource == "" {
		err := errors.Errorf("--db-driver=%s requires --db", *dbDriver)
		app.Errorf("%s", err)
		return &UsageError{err}
	}

	log := logrus.New()
	log.Out = stderr
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	cfg := def
	cfg.ResultsFile = *resultsFile
	cfg.OutputDir = *outputDir
	cfg.QueueFixed = *queueFixed
	cfg.ThreadsFixed = *threadsFixed
	cfg.ConvertToMilliseconds = !*seconds
	cfg.DBDriver = *dbDriver
	cfg.DBSource = *dbSource

	res, err := pipeline.Run(cfg, log)
	if err != nil {
		log.Error(err)
		return err
	}
	fmt.Fprintln(stdout, "Done.")
	fmt.Fprintf(stdout, "Figures: %s\n", res.FiguresDir)
	fmt.Fprintf(stdout, "Tables:  %s\n", res.TablesDir)
	return nil
}
