// SPDX-License-Identifier: MIT

package core

import (
	"math"
	"time"
)

// DType tags how the float64 storage of an array is interpreted.
type DType int

const (
	// Float64 is the default storage interpretation.
	Float64 DType = iota
	// Int64 truncates toward zero on cast.
	Int64
	// Bool maps non-zero to 1.
	Bool
	// Timedelta stores nanoseconds; NaN stands for NaT.
	Timedelta
)

// String returns the dtype name.
func (d DType) String() string {
	switch d {
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	case Timedelta:
		return "timedelta64[ns]"
	}

	return "float64"
}

// Cast converts x into the canonical storage value of d.
func (d DType) Cast(x float64) float64 {
	switch d {
	case Int64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return math.Trunc(x)
	case Bool:
		if x != 0 && !math.IsNaN(x) {
			return 1
		}
		return 0
	case Timedelta:
		if math.IsNaN(x) {
			return x
		}
		return math.Round(x)
	}

	return x
}

// Value returns x as the Go value d represents (float64, int64, bool or
// time.Duration). A NaN timedelta (NaT) is returned as nil.
func (d DType) Value(x float64) any {
	switch d {
	case Int64:
		return int64(d.Cast(x))
	case Bool:
		return d.Cast(x) == 1
	case Timedelta:
		if math.IsNaN(x) {
			return nil
		}
		return time.Duration(d.Cast(x))
	}

	return x
}
