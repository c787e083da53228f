// SPDX-License-Identifier: MIT
// Package: array
//
// Purpose:
//  - Single source of truth for shape, axis and position checks.
//  - Return plain sentinels so call sites wrap them uniformly.

package array

import "github.com/katalvlaran/vectra/core"

// validateShape rejects negative dimensions.
func validateShape(shape []int) error {
	for _, d := range shape {
		if d < 0 {
			return core.ErrInvalidArgument
		}
	}

	return nil
}

// normalizeAxis maps a possibly negative axis into [0, ndim).
func normalizeAxis(ndim, axis int) (int, error) {
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		return 0, core.ErrOutOfRange
	}

	return axis, nil
}

// normalizePos maps a possibly negative position into [0, n).
func normalizePos(n, p int) (int, bool) {
	if p < 0 {
		p += n
	}

	return p, p >= 0 && p < n
}

// NormalizePos is the exported form used by label-aware packages.
func NormalizePos(n, p int) (int, bool) { return normalizePos(n, p) }
