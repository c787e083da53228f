// SPDX-License-Identifier: MIT
// Package core: sentinel error set shared by every vectra package.
//
// Every message is prefixed with "vectra: ..." so failures are easy to grep
// in logs. Packages wrap these sentinels at the detection site with
// fmt.Errorf("<Op>: <context>: %w", ..., ErrX); callers match with errors.Is.
// No package panics on user-triggered conditions. Panics are reserved for
// nonsensical option values (programmer error).

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch signals incompatible dimensions during broadcasting or a
	// label/array length check.
	ErrShapeMismatch = errors.New("vectra: shape mismatch")

	// ErrTypeMismatch signals an unrecognized input category, a reference to a
	// non-labeled input where labels are required, or a violated strict
	// label policy.
	ErrTypeMismatch = errors.New("vectra: type mismatch")

	// ErrUnalignable signals that no consistent position mapping exists between
	// two label collections, or that the source holds duplicate rows.
	ErrUnalignable = errors.New("vectra: labels cannot be aligned")

	// ErrAmbiguousLevels signals contradictory required/optional level specs.
	ErrAmbiguousLevels = errors.New("vectra: ambiguous levels")

	// ErrMissingFrequency signals a time-unit conversion without a known frequency.
	ErrMissingFrequency = errors.New("vectra: missing frequency")

	// ErrUnsorted signals that group members are not contiguous.
	ErrUnsorted = errors.New("vectra: groups are not sorted")

	// ErrOutOfRange signals a position outside valid bounds.
	ErrOutOfRange = errors.New("vectra: index out of range")

	// ErrKeyNotFound signals a label lookup that matched nothing.
	ErrKeyNotFound = errors.New("vectra: key not found")

	// ErrLevelNotFound signals a level name or position that does not exist.
	ErrLevelNotFound = errors.New("vectra: level not found")

	// ErrReadOnly signals a write into a read-only (broadcast) view.
	ErrReadOnly = errors.New("vectra: array is read-only")

	// ErrInvalidArgument signals a malformed argument (negative counts, nil inputs...).
	ErrInvalidArgument = errors.New("vectra: invalid argument")
)

// Errorf wraps err with an operation tag and optional formatted context.
// The result always preserves err for errors.Is.
//
//	core.Errorf("Stack", core.ErrShapeMismatch, "lengths %d and %d", 3, 4)
//	// Stack: lengths 3 and 4: vectra: shape mismatch
func Errorf(op string, err error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
