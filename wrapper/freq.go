// SPDX-License-Identifier: MIT

package wrapper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
)

const day = 24 * time.Hour

// freqUnits maps offset aliases and spelled-out units to their duration.
var freqUnits = map[string]time.Duration{
	"W": 7 * day, "w": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"D": day, "d": day, "day": day, "days": day,
	"H": time.Hour, "h": time.Hour, "hr": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"T": time.Minute, "min": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"S": time.Second, "s": time.Second, "sec": time.Second, "second": time.Second, "seconds": time.Second,
	"L": time.Millisecond, "ms": time.Millisecond, "millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"U": time.Microsecond, "us": time.Microsecond, "microsecond": time.Microsecond, "microseconds": time.Microsecond,
	"N": time.Nanosecond, "ns": time.Nanosecond, "nanosecond": time.Nanosecond, "nanoseconds": time.Nanosecond,
}

var freqPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)?\s*([A-Za-z]+)$`)

// ParseFreq turns a frequency string into a positive duration.
//
// Accepted forms:
//
//	"D", "1D", "2D", "1 days", "12H", "5T", "15min", "30S", "100ms", "W"
//	"1h30m" (any time.ParseDuration string)
func ParseFreq(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseDuration(s)
	if err != nil {
		m := freqPattern.FindStringSubmatch(s)
		if m == nil {
			return 0, core.Errorf("ParseFreq", core.ErrInvalidArgument, "cannot parse %q", s)
		}
		unit, ok := freqUnits[m[2]]
		if !ok {
			return 0, core.Errorf("ParseFreq", core.ErrInvalidArgument, "unknown unit %q", m[2])
		}
		mult := 1.0
		if m[1] != "" {
			if mult, err = strconv.ParseFloat(m[1], 64); err != nil {
				return 0, core.Errorf("ParseFreq", core.ErrInvalidArgument, "count %q", m[1])
			}
		}
		d = time.Duration(math.Round(mult * float64(unit)))
	}
	if d <= 0 {
		return 0, core.Errorf("ParseFreq", core.ErrInvalidArgument, "non-positive frequency %q", s)
	}

	return d, nil
}

// ToTimeUnits multiplies every element by freq and tags the result as a
// timedelta array (nanoseconds). NaN stays NaN and reads back as NaT.
func ToTimeUnits(a *array.Array, freq time.Duration) *array.Array {
	ns := float64(freq)

	return a.Map(func(v float64) float64 { return v * ns }).AsType(core.Timedelta)
}
