// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "strconv"

// A Scaler formats numbers for a particular kind of output.
type Scaler struct {
	Fmt  byte // strconv format verb ('f', 'g', ...)
	Prec int  // Digits of precision, or -1 for the exact value
}

// Format formats val according to s.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 24)
	buf = strconv.AppendFloat(buf, val, s.Fmt, s.Prec, 64)
	return string(buf)
}

// NoOpScaler is a Scaler that formats numbers with the smallest
// number of digits necessary to capture the exact value and never
// uses an exponent. This is intended for when the output will be
// consumed by another program, such as when producing CSV format.
var NoOpScaler = Scaler{'f', -1}

// ShortScaler formats numbers with six significant digits, switching
// to exponent notation for very large or small magnitudes. This is
// intended for tables read by people.
var ShortScaler = Scaler{'g', 6}
