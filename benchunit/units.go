// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit manipulates benchmark units and formats numbers
// in those units.
package benchunit

import (
	"fmt"
	"math"
)

// Common time units. Latency and wall-time columns of a results
// table are recorded in Seconds.
const (
	Nanoseconds  = "ns"
	Microseconds = "us"
	Milliseconds = "ms"
	Seconds      = "s"
)

// timeExp maps a time unit to its power-of-ten exponent relative to
// seconds.
var timeExp = map[string]int{
	"ns":  -9,
	"us":  -6,
	"µs":  -6,
	"ms":  -3,
	"s":   0,
	"sec": 0,
}

// Factor returns the multiplicative factor that converts a value in
// unit from into unit to. For example, Factor("s", "ms") is 1000.
//
// The factor is an exact power of ten, so converting between
// adjacent units is exact for integral values.
func Factor(from, to string) (float64, error) {
	fe, ok := timeExp[from]
	if !ok {
		return 0, fmt.Errorf("unknown time unit %q", from)
	}
	te, ok := timeExp[to]
	if !ok {
		return 0, fmt.Errorf("unknown time unit %q", to)
	}
	return math.Pow10(fe - te), nil
}

// Label returns the bracketed unit suffix used in chart titles, such
// as "[ms]".
func Label(unit string) string {
	if unit == "sec" {
		unit = Seconds
	}
	return "[" + unit + "]"
}
