// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores summaries of benchmark runs in a SQL database.
//
// Each invocation of the reporting pipeline is recorded as a run. A run
// holds one or more views, each of which is the set of summary rows
// computed for one sweep dimension.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/mohamed-arabi16/multi-thread-server/summary"
)

// DB is a high-level interface to a summary database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun     *sql.Stmt
	insertSummary *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Source VARCHAR(1024),
	QueueFixed INT,
	ThreadsFixed INT,
	TimeUnit VARCHAR(16),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Summaries (
	RunID BIGINT UNSIGNED,
	ViewName VARCHAR(32),
	Policy VARCHAR(255),
	Sweep INT,
	Throughput DOUBLE,
	AvgLatency DOUBLE,
	MinLatency DOUBLE,
	MaxLatency DOUBLE,
	WallTime DOUBLE,
	Runs INT,
	PRIMARY KEY (RunID, ViewName, Policy, Sweep),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return errors.Wrap(err, "create table")
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Source, QueueFixed, ThreadsFixed, TimeUnit, Created) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertSummary, err = db.sql.Prepare("INSERT INTO Summaries(RunID, ViewName, Policy, Sweep, Throughput, AvgLatency, MinLatency, MaxLatency, WallTime, Runs) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	return err
}

// now is a hook for testing
var now = time.Now

// RunInfo describes the configuration of one pipeline run.
type RunInfo struct {
	Source       string // Results file name
	QueueFixed   int
	ThreadsFixed int
	TimeUnit     string
}

// A Run is a set of summaries stored together.
type Run struct {
	ID      int64
	Info    RunInfo
	Created time.Time

	db *DB
}

// NewRun records a new run and returns it for storing summaries.
func (db *DB) NewRun(ctx context.Context, info RunInfo) (*Run, error) {
	created := now().UTC().Truncate(time.Second)
	res, err := db.insertRun.ExecContext(ctx, info.Source, info.QueueFixed, info.ThreadsFixed, info.TimeUnit, created.Unix())
	if err != nil {
		return nil, errors.Wrap(err, "insert run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{ID: id, Info: info, Created: created, db: db}, nil
}

// InsertSummary stores the rows of s under view in a single
// transaction. Either all rows are stored or none are.
func (r *Run) InsertSummary(ctx context.Context, view string, s *summary.Summary) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertSummary)
	for _, row := range s.Rows {
		_, err = stmt.ExecContext(ctx, r.ID, view, row.Policy, row.Sweep,
			row.Throughput, row.AvgLatency, row.MinLatency, row.MaxLatency, row.WallTime, row.Runs)
		if err != nil {
			return errors.Wrapf(err, "insert %s row (%s, %d)", view, row.Policy, row.Sweep)
		}
	}
	return nil
}

// Summaries returns the rows stored for view in run runID, ordered by
// policy and sweep value.
func (db *DB) Summaries(ctx context.Context, runID int64, view string) ([]summary.Row, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Policy, Sweep, Throughput, AvgLatency, MinLatency, MaxLatency, WallTime, Runs FROM Summaries WHERE RunID = ? AND ViewName = ? ORDER BY Policy, Sweep", runID, view)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []summary.Row
	for rows.Next() {
		var r summary.Row
		if err := rows.Scan(&r.Policy, &r.Sweep, &r.Throughput, &r.AvgLatency, &r.MinLatency, &r.MaxLatency, &r.WallTime, &r.Runs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountRuns returns the number of runs stored in the database.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertSummary} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
