// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out text tables as Markdown pipe tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once. The first row is the header.
// Columns are left-aligned unless a cell in them is added with Right.
type Table struct {
	rows   [][]string
	aligns []align // Per column
}

type align int

const (
	alignLeft align = iota
	alignRight
)

// CellOption configures the column of the cell it is applied to.
type CellOption func(t *Table, col int)

// Right right-aligns the cell's column.
func Right(t *Table, col int) { t.setAlign(col, alignRight) }

func (t *Table) setAlign(col int, a align) {
	for len(t.aligns) <= col {
		t.aligns = append(t.aligns, alignLeft)
	}
	t.aligns[col] = a
}

func (t *Table) alignOf(col int) align {
	if col < len(t.aligns) {
		return t.aligns[col]
	}
	return alignLeft
}

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	r := len(t.rows) - 1
	t.rows[r] = append(t.rows[r], value)
	for _, o := range opts {
		o(t, len(t.rows[r])-1)
	}
	return t
}

// Cols returns the number of columns in t.
func (t *Table) Cols() int {
	n := 0
	for _, r := range t.rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

func (t *Table) widths(min int) []int {
	ws := make([]int, t.Cols())
	for i := range ws {
		ws[i] = min
	}
	for r, row := range t.rows {
		for c := range row {
			if w := utf8.RuneCountInString(t.cell(r, c)); w > ws[c] {
				ws[c] = w
			}
		}
	}
	return ws
}

var pipeEscaper = strings.NewReplacer("|", `\|`)

// cell returns the escaped text of a cell, or "" past the end of the
// row.
func (t *Table) cell(row, col int) string {
	if col < len(t.rows[row]) {
		return pipeEscaper.Replace(t.rows[row][col])
	}
	return ""
}

// FormatMarkdown lays out table t as a Markdown pipe table and writes
// it to w. The first row is the header; the delimiter row encodes each
// column's alignment. A "|" in a cell is written as "\|".
func (t *Table) FormatMarkdown(w io.Writer) error {
	if len(t.rows) == 0 {
		return nil
	}
	// The delimiter row needs at least ":--" or "--:".
	ws := t.widths(3)
	line := func(cells func(c int) string) error {
		var b strings.Builder
		b.WriteString("|")
		for c := range ws {
			b.WriteString(" ")
			b.WriteString(cells(c))
			b.WriteString(" |")
		}
		_, err := fmt.Fprintln(w, b.String())
		return err
	}

	if err := line(func(c int) string { return t.alignOf(c).pad(t.cell(0, c), ws[c]) }); err != nil {
		return err
	}
	err := line(func(c int) string {
		if t.alignOf(c) == alignRight {
			return strings.Repeat("-", ws[c]-1) + ":"
		}
		return ":" + strings.Repeat("-", ws[c]-1)
	})
	if err != nil {
		return err
	}
	for r := 1; r < len(t.rows); r++ {
		r := r
		if err := line(func(c int) string { return t.alignOf(c).pad(t.cell(r, c), ws[c]) }); err != nil {
			return err
		}
	}
	return nil
}
