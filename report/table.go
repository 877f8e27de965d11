// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders summaries as PNG line charts and as CSV and
// Markdown tables.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mohamed-arabi16/multi-thread-server/benchunit"
	"github.com/mohamed-arabi16/multi-thread-server/internal/texttab"
	"github.com/mohamed-arabi16/multi-thread-server/results"
	"github.com/mohamed-arabi16/multi-thread-server/summary"
)

// header returns the table header for a summary swept along col.
func header(col string) []string {
	return append([]string{results.Policy, col}, summary.Metrics...)
}

func cells(r *summary.Row, sc benchunit.Scaler) []string {
	row := []string{r.Policy, strconv.Itoa(r.Sweep)}
	for _, m := range summary.Metrics {
		v, _ := r.Value(m)
		row = append(row, sc.Format(v))
	}
	return row
}

// WriteTable writes the rows of s, ordered by policy and sweep value,
// as a CSV file at csvPath and as a Markdown table at textPath. Parent
// directories are created and existing files are replaced. A summary
// with no rows produces header-only files.
//
// WriteTable sorts s in place.
func WriteTable(s *summary.Summary, csvPath, textPath string) error {
	s.Sort()
	if err := writeFile(csvPath, func(w io.Writer) error { return writeCSV(w, s) }); err != nil {
		return err
	}
	return writeFile(textPath, func(w io.Writer) error { return writeMarkdown(w, s) })
}

func writeFile(path string, write func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}

func writeCSV(w io.Writer, s *summary.Summary) error {
	cw := csv.NewWriter(w)
	cw.Write(header(s.GroupColumn))
	for i := range s.Rows {
		cw.Write(cells(&s.Rows[i], benchunit.NoOpScaler))
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, s *summary.Summary) error {
	var tab texttab.Table
	tab.Row()
	for i, h := range header(s.GroupColumn) {
		if i == 0 {
			tab.Cell(h)
		} else {
			tab.Cell(h, texttab.Right)
		}
	}
	for i := range s.Rows {
		tab.Row()
		for _, c := range cells(&s.Rows[i], benchunit.ShortScaler) {
			tab.Cell(c)
		}
	}
	return tab.FormatMarkdown(w)
}

// ReadCSV parses a table written by WriteTable. The sweep column is
// the second column, whatever its name. Runs is left zero.
func ReadCSV(r io.Reader) ([]summary.Row, error) {
	cr := csv.NewReader(r)
	hdr, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header")
	} else if err != nil {
		return nil, err
	}
	if len(hdr) < 2 {
		return nil, errors.Errorf("header has %d columns", len(hdr))
	}
	want := header(hdr[1])
	if len(hdr) != len(want) {
		return nil, errors.Errorf("header has %d columns, want %d", len(hdr), len(want))
	}
	for i := range want {
		if hdr[i] != want[i] {
			return nil, errors.Errorf("header column %d is %q, want %q", i+1, hdr[i], want[i])
		}
	}

	var rows []summary.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		row := summary.Row{Policy: rec[0]}
		if row.Sweep, err = strconv.Atoi(rec[1]); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		vals := make([]float64, len(summary.Metrics))
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(rec[2+i], 64); err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
		}
		row.Throughput, row.AvgLatency, row.MinLatency, row.MaxLatency, row.WallTime =
			vals[0], vals[1], vals[2], vals[3], vals[4]
		rows = append(rows, row)
	}
	return rows, nil
}
