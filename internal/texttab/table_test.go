// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	check := func(s string, a align, w int, want string) {
		t.Helper()
		got := a.pad(s, w)
		if got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}

	check("abc", alignLeft, 6, "abc   ")
	check("abc", alignRight, 6, "   abc")
	check("abc", alignRight, 2, "abc")
	check("☃", alignRight, 4, "   ☃")
}

func TestFormatMarkdown(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var gotBuf strings.Builder
		if err := tab.FormatMarkdown(&gotBuf); err != nil {
			t.Fatal(err)
		}
		got := gotBuf.String()
		if want != got {
			t.Errorf("want:\n%sgot:\n%s", want, got)
		}
		tab = Table{}
	}

	tab.Row().Cell("policy").Cell("threads", Right).Cell("throughput", Right)
	tab.Row().Cell("A").Cell("4").Cell("100")
	tab.Row().Cell("B").Cell("16").Cell("150.5")
	check("" +
		"| policy | threads | throughput |\n" +
		"| :----- | ------: | ---------: |\n" +
		"| A      |       4 |        100 |\n" +
		"| B      |      16 |      150.5 |\n")

	// Header only; narrow columns are widened to fit the
	// delimiter row.
	tab.Row().Cell("a").Cell("b", Right)
	check("" +
		"| a   |   b |\n" +
		"| :-- | --: |\n")

	// Pipes in cells are escaped and counted in the column width.
	tab.Row().Cell("policy").Cell("runs", Right)
	tab.Row().Cell("a|b").Cell("2")
	check("" +
		"| policy | runs |\n" +
		"| :----- | ---: |\n" +
		"| a\\|b   |    2 |\n")

	// Short rows are padded with empty cells.
	tab.Row().Cell("a").Cell("b")
	tab.Row().Cell("c")
	check("" +
		"| a   | b   |\n" +
		"| :-- | :-- |\n" +
		"| c   |     |\n")

	// Empty table.
	check("")
}
