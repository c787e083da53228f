// SPDX-License-Identifier: MIT

package array

import (
	"github.com/katalvlaran/vectra/core"
)

// view is one operand of a strided walk.
type view struct {
	strides []int
	offset  int
}

// walkIndex visits every multi-index of shape in C order, keeping idx current
// and passing the data offset of each view. Deterministic, no allocation per step.
func walkIndex(shape []int, idx []int, fn func(offs []int), views ...view) {
	n := sizeOf(shape)
	if n == 0 {
		return
	}
	for k := range idx {
		idx[k] = 0
	}
	offs := make([]int, len(views))
	for v := range views {
		offs[v] = views[v].offset
	}
	nd := len(shape)
	for c := 0; c < n; c++ {
		fn(offs)
		for ax := nd - 1; ax >= 0; ax-- {
			idx[ax]++
			for v := range views {
				offs[v] += views[v].strides[ax]
			}
			if idx[ax] < shape[ax] {
				break
			}
			for v := range views {
				offs[v] -= views[v].strides[ax] * shape[ax]
			}
			idx[ax] = 0
		}
	}
}

// walk is walkIndex with a scratch index.
func walk(shape []int, fn func(offs []int), views ...view) {
	walkIndex(shape, make([]int, len(shape)), fn, views...)
}

// contiguousStrides returns element strides of a packed layout.
func contiguousStrides(shape []int, order Order) []int {
	st := make([]int, len(shape))
	acc := 1
	if order == F {
		for i := 0; i < len(shape); i++ {
			st[i] = acc
			acc *= max(shape[i], 1)
		}
		return st
	}
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= max(shape[i], 1)
	}

	return st
}

func sizeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}

// IsContiguous reports whether the array is packed in the given order.
// Axes of size 1 are ignored, as their strides are never used.
func (a *Array) IsContiguous(order Order) bool {
	want := contiguousStrides(a.shape, order)
	for k, d := range a.shape {
		if d > 1 && a.strides[k] != want[k] {
			return false
		}
	}

	return true
}

// Copy returns a writeable packed copy in the given order.
func (a *Array) Copy(order Order) *Array {
	out := &Array{
		shape:   a.Shape(),
		strides: contiguousStrides(a.shape, order),
		data:    make([]float64, a.Size()),
		dtype:   a.dtype,
	}
	walk(a.shape, func(offs []int) {
		out.data[offs[1]] = a.data[offs[0]]
	}, view{a.strides, a.offset}, view{out.strides, 0})

	return out
}

// Clone is Copy(C).
func (a *Array) Clone() *Array { return a.Copy(C) }

// Writeable returns a itself when writes are allowed, else a C copy.
func (a *Array) Writeable() *Array {
	if !a.readonly {
		return a
	}

	return a.Copy(C)
}

// Reshape returns an array with the same elements in a new shape.
// One dimension may be -1 and is inferred. C-contiguous inputs are viewed,
// others are copied first.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	sh := append([]int(nil), shape...)
	infer := -1
	known := 1
	for k, d := range sh {
		switch {
		case d == -1 && infer < 0:
			infer = k
		case d < 0:
			return nil, arrayErrorf(ctxReshape, core.ErrInvalidArgument, "shape %v", shape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 || a.Size()%known != 0 {
			return nil, arrayErrorf(ctxReshape, core.ErrShapeMismatch, "cannot reshape %v into %v", a.shape, shape)
		}
		sh[infer] = a.Size() / known
	}
	if sizeOf(sh) != a.Size() {
		return nil, arrayErrorf(ctxReshape, core.ErrShapeMismatch, "cannot reshape %v into %v", a.shape, shape)
	}
	src := a
	if !a.IsContiguous(C) {
		src = a.Copy(C)
		src.readonly = false
	}

	return &Array{
		shape:    sh,
		strides:  contiguousStrides(sh, C),
		offset:   src.offset,
		data:     src.data,
		dtype:    a.dtype,
		readonly: src.readonly,
	}, nil
}

// BroadcastShapes applies right-aligned broadcasting to a set of shapes.
func BroadcastShapes(shapes ...[]int) ([]int, error) {
	nd := 0
	for _, s := range shapes {
		nd = max(nd, len(s))
	}
	out := make([]int, nd)
	for k := range out {
		out[k] = 1
	}
	for _, s := range shapes {
		for k := 1; k <= len(s); k++ {
			d, o := s[len(s)-k], out[nd-k]
			switch {
			case d == o || d == 1:
			case o == 1:
				out[nd-k] = d
			default:
				return nil, core.Errorf("BroadcastShapes", core.ErrShapeMismatch,
					"operands could not be broadcast together with shapes %v", shapes)
			}
		}
	}

	return out, nil
}

// BroadcastTo returns a read-only view of a at shape. Axes of size 1 get
// stride 0; missing leading axes are prepended.
func (a *Array) BroadcastTo(shape ...int) (*Array, error) {
	nd := len(shape)
	if nd < len(a.shape) {
		return nil, arrayErrorf(ctxBroadcast, core.ErrShapeMismatch, "cannot broadcast %v to %v", a.shape, shape)
	}
	strides := make([]int, nd)
	lead := nd - len(a.shape)
	for k := 0; k < nd; k++ {
		if k < lead {
			continue // stride 0
		}
		d := a.shape[k-lead]
		switch {
		case d == shape[k]:
			strides[k] = a.strides[k-lead]
		case d == 1:
		default:
			return nil, arrayErrorf(ctxBroadcast, core.ErrShapeMismatch, "cannot broadcast %v to %v", a.shape, shape)
		}
	}

	return &Array{
		shape:    append([]int(nil), shape...),
		strides:  strides,
		offset:   a.offset,
		data:     a.data,
		dtype:    a.dtype,
		readonly: true,
	}, nil
}

// Transpose reverses the axes (view).
func (a *Array) Transpose() *Array {
	nd := len(a.shape)
	out := &Array{
		shape:    make([]int, nd),
		strides:  make([]int, nd),
		offset:   a.offset,
		data:     a.data,
		dtype:    a.dtype,
		readonly: a.readonly,
	}
	for k := 0; k < nd; k++ {
		out.shape[k] = a.shape[nd-1-k]
		out.strides[k] = a.strides[nd-1-k]
	}

	return out
}

// Select returns the view at position i along axis, with that axis removed.
// Negative i counts from the end.
func (a *Array) Select(axis, i int) (*Array, error) {
	ax, err := normalizeAxis(len(a.shape), axis)
	if err != nil {
		return nil, arrayErrorf(ctxSelect, err, "axis %d", axis)
	}
	p, ok := normalizePos(a.shape[ax], i)
	if !ok {
		return nil, arrayErrorf(ctxSelect, core.ErrOutOfRange, "index %d on axis %d of size %d", i, ax, a.shape[ax])
	}
	out := &Array{
		offset:   a.offset + p*a.strides[ax],
		data:     a.data,
		dtype:    a.dtype,
		readonly: a.readonly,
	}
	for k := range a.shape {
		if k != ax {
			out.shape = append(out.shape, a.shape[k])
			out.strides = append(out.strides, a.strides[k])
		}
	}
	if out.shape == nil {
		out.shape, out.strides = []int{}, []int{}
	}

	return out, nil
}

// Take gathers positions along axis into a new packed array.
// Negative positions count from the end.
func (a *Array) Take(axis int, positions []int) (*Array, error) {
	ax, err := normalizeAxis(len(a.shape), axis)
	if err != nil {
		return nil, arrayErrorf(ctxTake, err, "axis %d", axis)
	}
	sh := a.Shape()
	sh[ax] = len(positions)
	out := Zeros(sh...)
	out.dtype = a.dtype
	for j, p := range positions {
		q, ok := normalizePos(a.shape[ax], p)
		if !ok {
			return nil, arrayErrorf(ctxTake, core.ErrOutOfRange, "index %d on axis %d of size %d", p, ax, a.shape[ax])
		}
		src, _ := a.Select(ax, q)
		dst, _ := out.Select(ax, j)
		walk(src.shape, func(offs []int) {
			out.data[offs[1]] = a.data[offs[0]]
		}, view{src.strides, src.offset}, view{dst.strides, dst.offset})
	}

	return out, nil
}

// Concat joins arrays along axis. All must share ndim and every other dimension.
func Concat(axis int, arrs ...*Array) (*Array, error) {
	if len(arrs) == 0 {
		return nil, core.Errorf(ctxConcat, core.ErrInvalidArgument, "need at least one array")
	}
	first := arrs[0]
	ax, err := normalizeAxis(first.Ndim(), axis)
	if err != nil {
		return nil, core.Errorf(ctxConcat, err, "axis %d", axis)
	}
	sh := first.Shape()
	sh[ax] = 0
	for i, a := range arrs {
		if a.Ndim() != first.Ndim() {
			return nil, core.Errorf(ctxConcat, core.ErrShapeMismatch, "array %d has %d dims, want %d", i, a.Ndim(), first.Ndim())
		}
		for k := range a.shape {
			if k != ax && a.shape[k] != first.shape[k] {
				return nil, core.Errorf(ctxConcat, core.ErrShapeMismatch, "array %d has shape %v, want %v off axis %d", i, a.shape, first.shape, ax)
			}
		}
		sh[ax] += a.shape[ax]
	}
	out := Zeros(sh...)
	out.dtype = first.dtype
	at := 0
	for _, a := range arrs {
		dst := view{out.strides, at * out.strides[ax]}
		walk(a.shape, func(offs []int) {
			out.data[offs[1]] = a.data[offs[0]]
		}, view{a.strides, a.offset}, dst)
		at += a.shape[ax]
	}

	return out, nil
}
