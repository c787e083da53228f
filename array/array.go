// SPDX-License-Identifier: MIT

// Package array - N-dimensional strided float64 storage & safe accessors.
//
// Purpose:
//   - Provide a flat buffer addressed through (shape, strides, offset) so that
//     broadcast views (zero strides), transposes and sub-arrays share memory.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed C-order walks, no map iteration).
//   - Tag storage with a core.DType so int/bool/timedelta results survive wrapping.
//
// Notes:
//   - Broadcast views are read-only; Copy or Writeable materializes them.
//   - Scalars are 0-d arrays (empty shape, one element).
//
// Complexity quicksheet:
//   - Zeros/Copy/Take: O(size); At/Set: O(ndim); BroadcastTo/Transpose/Select/Reshape(contiguous): O(ndim).
package array

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/vectra/core"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxFromSlice = "FromSlice"
	ctxFromRows  = "FromRows"
	ctxReshape   = "Reshape"
	ctxBroadcast = "BroadcastTo"
	ctxTake      = "Take"
	ctxSelect    = "Select"
	ctxConcat    = "Concat"
	ctxItem      = "Item"
)

// Order is a memory layout for copies.
type Order byte

const (
	// C is row-major order (last axis varies fastest).
	C Order = 'C'
	// F is column-major order (first axis varies fastest).
	F Order = 'F'
)

// arrayErrorf wraps a sentinel with the method tag, e.g. "Array.At: ...: %w".
func arrayErrorf(method string, err error, format string, args ...any) error {
	return core.Errorf("Array."+method, err, format, args...)
}

// Array is an N-dimensional view over a flat float64 buffer.
//   - element idx lives at data[offset + Σ idx[k]*strides[k]].
//   - readonly marks broadcast views (and anything derived from them without a copy).
type Array struct {
	shape    []int
	strides  []int
	offset   int
	data     []float64
	dtype    core.DType
	readonly bool
}

var _ fmt.Stringer = (*Array)(nil)

// Zeros allocates a C-contiguous zero array. A negative dimension is a
// programmer error and panics, like make.
func Zeros(shape ...int) *Array {
	for _, n := range shape {
		if n < 0 {
			panic(fmt.Sprintf("array: Zeros: negative dimension in %v", shape))
		}
	}
	sh := append([]int(nil), shape...)

	return &Array{
		shape:   sh,
		strides: contiguousStrides(sh, C),
		data:    make([]float64, sizeOf(sh)),
	}
}

// Full allocates a C-contiguous array filled with v.
func Full(v float64, shape ...int) *Array {
	a := Zeros(shape...)
	for i := range a.data {
		a.data[i] = v
	}

	return a
}

// NaNs allocates a C-contiguous array filled with NaN.
func NaNs(shape ...int) *Array { return Full(math.NaN(), shape...) }

// Scalar returns a 0-d array holding v.
func Scalar(v float64) *Array {
	return &Array{shape: []int{}, strides: []int{}, data: []float64{v}}
}

// Vector returns a 1-D array holding a copy of vals.
func Vector(vals ...float64) *Array {
	data := append([]float64(nil), vals...)

	return &Array{shape: []int{len(data)}, strides: []int{1}, data: data}
}

// FromSlice copies data into an array of the given shape (C order).
// Without a shape the result is 1-D.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	if len(shape) == 0 {
		return Vector(data...), nil
	}
	if err := validateShape(shape); err != nil {
		return nil, arrayErrorf(ctxFromSlice, err, "shape %v", shape)
	}
	if sizeOf(shape) != len(data) {
		return nil, arrayErrorf(ctxFromSlice, core.ErrShapeMismatch, "cannot place %d values into shape %v", len(data), shape)
	}
	a := Zeros(shape...)
	copy(a.data, data)

	return a, nil
}

// FromRows builds a 2-D array from equal-length rows.
func FromRows(rows [][]float64) (*Array, error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	a := Zeros(r, c)
	for i, row := range rows {
		if len(row) != c {
			return nil, arrayErrorf(ctxFromRows, core.ErrShapeMismatch, "row %d has %d values, want %d", i, len(row), c)
		}
		copy(a.data[i*c:], row)
	}

	return a, nil
}

// Ndim returns the number of axes.
func (a *Array) Ndim() int { return len(a.shape) }

// Shape returns a copy of the shape.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Dim returns the size of one axis (negative axes count from the end).
func (a *Array) Dim(axis int) int {
	if axis < 0 {
		axis += len(a.shape)
	}

	return a.shape[axis]
}

// Size returns the number of elements.
func (a *Array) Size() int { return sizeOf(a.shape) }

// DType returns the storage interpretation tag.
func (a *Array) DType() core.DType { return a.dtype }

// IsReadOnly reports whether writes are rejected (broadcast views).
func (a *Array) IsReadOnly() bool { return a.readonly }

// offsetOf maps a multi-index to a data offset without bounds checks.
func (a *Array) offsetOf(idx []int) int {
	off := a.offset
	for k, i := range idx {
		off += i * a.strides[k]
	}

	return off
}

// checkIndex validates a full multi-index.
func (a *Array) checkIndex(method string, idx []int) error {
	if len(idx) != len(a.shape) {
		return arrayErrorf(method, core.ErrInvalidArgument, "got %d indices for %d-d array", len(idx), len(a.shape))
	}
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return arrayErrorf(method, core.ErrOutOfRange, "index %d on axis %d of size %d", i, k, a.shape[k])
		}
	}

	return nil
}

// At returns the element at idx.
func (a *Array) At(idx ...int) (float64, error) {
	if err := a.checkIndex(ctxAt, idx); err != nil {
		return 0, err
	}

	return a.data[a.offsetOf(idx)], nil
}

// Set writes v at idx. Read-only views return core.ErrReadOnly.
func (a *Array) Set(v float64, idx ...int) error {
	if a.readonly {
		return arrayErrorf(ctxSet, core.ErrReadOnly, "")
	}
	if err := a.checkIndex(ctxSet, idx); err != nil {
		return err
	}
	a.data[a.offsetOf(idx)] = a.dtype.Cast(v)

	return nil
}

// Item returns the only element of a size-1 array.
func (a *Array) Item() (float64, error) {
	if a.Size() != 1 {
		return 0, arrayErrorf(ctxItem, core.ErrShapeMismatch, "array of shape %v has %d elements", a.shape, a.Size())
	}

	return a.data[a.offset], nil
}

// Flat returns the elements in C order as a fresh slice.
func (a *Array) Flat() []float64 {
	out := make([]float64, 0, a.Size())
	walk(a.shape, func(offs []int) {
		out = append(out, a.data[offs[0]])
	}, view{a.strides, a.offset})

	return out
}

// Do calls fn for every element in C order. idx is reused between calls.
func (a *Array) Do(fn func(idx []int, v float64)) {
	idx := make([]int, len(a.shape))
	walkIndex(a.shape, idx, func(off []int) {
		fn(idx, a.data[off[0]])
	}, view{a.strides, a.offset})
}

// Map returns a new C-contiguous array with fn applied to every element.
func (a *Array) Map(fn func(v float64) float64) *Array {
	out := Zeros(a.shape...)
	out.dtype = a.dtype
	i := 0
	walk(a.shape, func(offs []int) {
		out.data[i] = a.dtype.Cast(fn(a.data[offs[0]]))
		i++
	}, view{a.strides, a.offset})

	return out
}

// AsType returns a copy cast to d.
func (a *Array) AsType(d core.DType) *Array {
	out := a.Copy(C)
	out.dtype = d
	for i, v := range out.data {
		out.data[i] = d.Cast(v)
	}

	return out
}

// Value returns element idx as its dtype's Go value (see core.DType.Value).
func (a *Array) Value(idx ...int) (any, error) {
	v, err := a.At(idx...)
	if err != nil {
		return nil, err
	}

	return a.dtype.Value(v), nil
}

// String renders nested brackets in C order.
func (a *Array) String() string {
	var sb strings.Builder
	if len(a.shape) == 0 {
		sb.WriteString(core.Format(a.data[a.offset]))
		return sb.String()
	}
	a.format(&sb, 0, a.offset)

	return sb.String()
}

func (a *Array) format(sb *strings.Builder, axis, off int) {
	sb.WriteString("[")
	for i := 0; i < a.shape[axis]; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		o := off + i*a.strides[axis]
		if axis == len(a.shape)-1 {
			sb.WriteString(core.Format(a.data[o]))
		} else {
			a.format(sb, axis+1, o)
		}
	}
	sb.WriteString("]")
}

// Equal reports equal shape, dtype and elements; NaN equals NaN.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.dtype != b.dtype || !SameShape(a.shape, b.shape) {
		return false
	}
	eq := true
	walk(a.shape, func(offs []int) {
		x, y := a.data[offs[0]], b.data[offs[1]]
		if x != y && !(math.IsNaN(x) && math.IsNaN(y)) {
			eq = false
		}
	}, view{a.strides, a.offset}, view{b.strides, b.offset})

	return eq
}

// SameShape reports whether two shapes are identical.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
