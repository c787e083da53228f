// SPDX-License-Identifier: MIT

package reshape

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
)

// FlexChooseIAndCol returns the fixed row and column to read from a raw-kept
// operand. -1 means "use the requested position"; an axis of size 1 is
// pinned to 0. In a 2-D context a 1-D operand is a row vector.
func FlexChooseIAndCol(a *array.Array, is2D bool) (defI, defCol int) {
	switch a.Ndim() {
	case 0:
		return 0, 0
	case 1:
		if a.Dim(0) == 1 {
			return 0, 0
		}
		if is2D {
			return 0, -1
		}
		return -1, 0
	}
	defI, defCol = -1, -1
	if a.Dim(0) == 1 {
		defI = 0
	}
	if a.Dim(1) == 1 {
		defCol = 0
	}

	return defI, defCol
}

// FlexSelect reads logical element (i, col) of a raw-kept operand using the
// defaults from FlexChooseIAndCol.
func FlexSelect(i, col int, a *array.Array, defI, defCol int, is2D bool) (float64, error) {
	if defI == -1 {
		defI = i
	}
	if defCol == -1 {
		defCol = col
	}
	switch a.Ndim() {
	case 0:
		return a.Item()
	case 1:
		if is2D {
			return a.At(defCol)
		}
		return a.At(defI)
	case 2:
		return a.At(defI, defCol)
	}

	return 0, core.Errorf("FlexSelect", core.ErrTypeMismatch, "unsupported %d-d operand", a.Ndim())
}

// BroadcastToArrayOf stacks one target-shaped block per value:
// the result has shape (len(values), target.shape...). An input that already
// has one more leading dimension over target's shape is returned unchanged.
func BroadcastToArrayOf(values, target Arg) (*array.Array, error) {
	v, t := values.Array(), target.Array()
	if v.Ndim() == t.Ndim()+1 && array.SameShape(v.Shape()[1:], t.Shape()) {
		return v, nil
	}
	if v.Ndim() > 1 {
		return nil, core.Errorf("BroadcastToArrayOf", core.ErrShapeMismatch, "values of shape %v for target %v", v.Shape(), t.Shape())
	}
	flat := v.Flat()
	block := t.Size()
	data := make([]float64, 0, len(flat)*block)
	for _, x := range flat {
		for j := 0; j < block; j++ {
			data = append(data, x)
		}
	}

	return array.FromSlice(data, append([]int{len(flat)}, t.Shape()...)...)
}

// BroadcastToAxisOf fills the length of target's axis with v, or returns v
// itself when target has no such axis.
func BroadcastToAxisOf(v float64, target Arg, axis int) Arg {
	sh := target.Shape()
	if axis < 0 || axis >= len(sh) {
		return Scalar(v)
	}

	return Raw(array.Full(v, sh[axis]))
}
