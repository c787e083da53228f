// SPDX-License-Identifier: MIT

// Package core holds the vocabulary shared by every vectra package.
//
// It owns three things and nothing else:
//
//   - Label values: Tuple, the canonical KeyOf used for hashing, Equal and
//     the total order Compare (nil < bool < numeric < time < duration <
//     string < tuple). Numeric kinds compare by value, so 1, int64(1) and
//     1.0 address the same label.
//   - DType: the interpretation tag attached to float64 storage (Float64,
//     Int64, Bool, Timedelta). Timedelta stores nanoseconds and uses NaN for
//     NaT.
//   - Sentinel errors: ErrShapeMismatch, ErrTypeMismatch, ErrUnalignable,
//     ErrAmbiguousLevels, ErrMissingFrequency, ErrUnsorted, ErrOutOfRange,
//     ErrKeyNotFound, ErrLevelNotFound, ErrReadOnly, ErrInvalidArgument.
//     Packages wrap them with Errorf; callers match with errors.Is.
//
// Example:
//
//	err := core.Errorf("Stack", core.ErrShapeMismatch, "lengths %d and %d", 3, 4)
//	errors.Is(err, core.ErrShapeMismatch) // true
//	err.Error() // "Stack: lengths 3 and 4: vectra: shape mismatch"
package core
