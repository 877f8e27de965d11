// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mohamed-arabi16/multi-thread-server/benchunit"
)

// A SchemaError reports required columns missing from the header of
// a results table.
type SchemaError struct {
	FileName string
	Missing  []string // Sorted
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns in %s: [%s]", e.FileName, strings.Join(e.Missing, " "))
}

// A ParseError represents a value that could not be parsed on a
// particular line of a results table.
type ParseError struct {
	FileName string
	Line     int
	Column   string // Empty if the row itself is malformed
	Value    string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.FileName, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %s: cannot parse %q", e.FileName, e.Line, e.Column, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadFile reads the results table at path. The path "-" means
// standard input.
func ReadFile(path string) (*Table, error) {
	if path == "-" {
		return Read(os.Stdin, "<stdin>")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a comma-separated results table from r. The first row
// is the header. Columns may appear in any order and columns other
// than Columns are ignored. fileName is used in error messages; it is
// purely diagnostic.
//
// If any of Columns is missing from the header, Read returns a
// *SchemaError. If a value in a numeric column cannot be parsed, Read
// returns a *ParseError. NaN and infinite values are parse errors.
func Read(r io.Reader, fileName string) (*Table, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{fileName, sortedCopy(Columns)}
	} else if err != nil {
		return nil, syntaxError(fileName, err)
	}
	idx, err := columnIndex(fileName, header)
	if err != nil {
		return nil, err
	}

	t := &Table{FileName: fileName, TimeUnit: benchunit.Seconds}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, syntaxError(fileName, err)
		}
		line, _ := cr.FieldPos(0)
		rec, perr := parseRecord(row, idx)
		if perr != nil {
			perr.FileName, perr.Line = fileName, line
			return nil, perr
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// byteOrderMark may start files saved by spreadsheet programs.
const byteOrderMark = "\ufeff"

// columnIndex maps each required column to its position in header.
func columnIndex(fileName string, header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		name = strings.TrimSpace(name)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	var missing []string
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{fileName, missing}
	}
	return idx, nil
}

func parseRecord(row []string, idx map[string]int) (Record, *ParseError) {
	var rec Record
	var perr *ParseError
	field := func(col string) string {
		return strings.TrimSpace(row[idx[col]])
	}
	intField := func(col string) int {
		if perr != nil {
			return 0
		}
		s := field(col)
		v, err := parseInt(s)
		if err != nil {
			perr = &ParseError{Column: col, Value: s, Err: err}
		}
		return v
	}
	floatField := func(col string) float64 {
		if perr != nil {
			return 0
		}
		s := field(col)
		v, err := strconv.ParseFloat(s, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = errors.Errorf("%q is not a finite number", s)
		}
		if err != nil {
			perr = &ParseError{Column: col, Value: s, Err: err}
		}
		return v
	}

	rec.Policy = field(Policy)
	rec.Threads = intField(Threads)
	rec.QueueSize = intField(QueueSize)
	rec.Throughput = floatField(Throughput)
	rec.AvgLatency = floatField(AvgLatency)
	rec.MinLatency = floatField(MinLatency)
	rec.MaxLatency = floatField(MaxLatency)
	rec.WallTime = floatField(WallTime)
	return rec, perr
}

// parseInt parses s as an integer. Integral floating-point spellings
// such as "8.0" are accepted.
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errors.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

// syntaxError converts an error from encoding/csv into a *ParseError.
func syntaxError(fileName string, err error) error {
	var cerr *csv.ParseError
	if errors.As(err, &cerr) {
		return &ParseError{FileName: fileName, Line: cerr.Line, Err: cerr.Err}
	}
	return errors.Wrapf(err, "reading %s", fileName)
}

func sortedCopy(xs []string) []string {
	out := append([]string(nil), xs...)
	sort.Strings(out)
	return out
}
