// SPDX-License-Identifier: MIT
// Package core: label values, tuples and their canonical keys.
//
// Purpose:
//   - Give every label value (ints, floats, strings, times, tuples) a single
//     canonical key so hashing and equality agree across numeric kinds.
//   - Provide the total order used wherever sorted-unique values are needed.
//
// Determinism:
//   - KeyOf/Compare never depend on map iteration or pointer identity.

package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Tuple is a multi-level key or a tuple-valued level name.
type Tuple []any

// String renders the tuple the way labels are printed: (a, b, c).
func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, v := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Format(v))
	}
	sb.WriteString(")")

	return sb.String()
}

// type class order used by Compare: nil < bool < numeric < time < duration < string < tuple < other.
const (
	classNil = iota
	classBool
	classNumber
	classTime
	classDuration
	classString
	classTuple
	classOther
)

// AsFloat reports the numeric value of v when v is a Go integer or float kind.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}

	return 0, false
}

// AsInt reports the integer value of v when v is an integer kind or an
// integral float.
func AsInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float32, float64:
		f, _ := AsFloat(x)
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	}
	if f, ok := AsFloat(v); ok {
		return int(f), true
	}

	return 0, false
}

func classOf(v any) int {
	switch v.(type) {
	case nil:
		return classNil
	case bool:
		return classBool
	case time.Time:
		return classTime
	case time.Duration:
		return classDuration
	case string:
		return classString
	case Tuple:
		return classTuple
	}
	if _, ok := AsFloat(v); ok {
		return classNumber
	}

	return classOther
}

// KeyOf returns the canonical hash key of a label value.
// Integers and integral floats of equal value share a key; NaN equals NaN.
func KeyOf(v any) string {
	switch x := v.(type) {
	case nil:
		return "n:"
	case bool:
		return "b:" + strconv.FormatBool(x)
	case string:
		return "s:" + x
	case time.Time:
		return "t:" + strconv.FormatInt(x.UnixNano(), 10)
	case time.Duration:
		return "d:" + strconv.FormatInt(int64(x), 10)
	case Tuple:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = KeyOf(e)
		}
		return "(" + strings.Join(parts, "\x1f") + ")"
	}
	if f, ok := AsFloat(v); ok {
		if math.IsNaN(f) {
			return "f:NaN"
		}
		if f == math.Trunc(f) && math.Abs(f) < 1<<62 {
			return "i:" + strconv.FormatInt(int64(f), 10)
		}
		return "f:" + strconv.FormatFloat(f, 'g', -1, 64)
	}

	return fmt.Sprintf("%T:%v", v, v)
}

// Equal reports whether two label values are the same label.
func Equal(a, b any) bool {
	return KeyOf(a) == KeyOf(b)
}

// EqualSlices reports element-wise label equality of two value sequences.
func EqualSlices(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// Compare orders label values: -1, 0 or +1.
// Values of different classes are ordered by class; tuples lexicographically.
func Compare(a, b any) int {
	ca, cb := classOf(a), classOf(b)
	if ca != cb {
		return cmpInt(ca, cb)
	}
	switch ca {
	case classNil:
		return 0
	case classBool:
		ba, bb := a.(bool), b.(bool)
		if ba == bb {
			return 0
		}
		if !ba {
			return -1
		}
		return 1
	case classNumber:
		fa, _ := AsFloat(a)
		fb, _ := AsFloat(b)
		switch {
		case math.IsNaN(fa) && math.IsNaN(fb):
			return 0
		case math.IsNaN(fa): // NaN sorts last
			return 1
		case math.IsNaN(fb):
			return -1
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case classTime:
		ta, tb := a.(time.Time), b.(time.Time)
		return ta.Compare(tb)
	case classDuration:
		return cmpInt(int(a.(time.Duration)), int(b.(time.Duration)))
	case classString:
		return strings.Compare(a.(string), b.(string))
	case classTuple:
		ta, tb := a.(Tuple), b.(Tuple)
		for i := 0; i < len(ta) && i < len(tb); i++ {
			if c := Compare(ta[i], tb[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(ta), len(tb))
	}

	return strings.Compare(KeyOf(a), KeyOf(b))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Format renders a label value for messages and String methods.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case Tuple:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	return fmt.Sprint(v)
}
