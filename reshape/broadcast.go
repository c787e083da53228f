// SPDX-License-Identifier: MIT

package reshape

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
)

// Broadcast brings args to one shape and derives shared labels.
//
// Rank: the target is 2-D when any input is 2-D or WithShape has rank 2.
// In a 2-D context a series becomes a one-column frame; raw arrays keep their
// rank and align right as in NumPy.
//
// Labels: rows follow the index policy and columns the columns policy (for
// 1-D outputs the single column label is the series name; 0 means unnamed).
// Outputs are labeled when any input is, unless WithToPD says otherwise.
//
// Memory: an input already at the target shape is returned as is; others are
// read-only broadcast views unless WithWriteable or WithCopyOrder copies them.
func Broadcast(args []Arg, opts ...Option) ([]Arg, error) {
	if len(args) == 0 {
		return nil, core.Errorf("Broadcast", core.ErrInvalidArgument, "need at least one input")
	}
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	if len(o.shape) > 2 {
		return nil, core.Errorf("Broadcast", core.ErrTypeMismatch, "target shape %v has more than 2 dimensions", o.shape)
	}

	is2D := len(o.shape) == 2
	anyLabeled := false
	for _, a := range args {
		if err := checkRank("Broadcast", a.Array()); err != nil {
			return nil, err
		}
		is2D = is2D || a.Ndim() == 2
		anyLabeled = anyLabeled || a.IsLabeled()
	}

	canon := make([]Arg, len(args))
	shapes := make([][]int, len(args))
	for i, a := range args {
		canon[i] = a
		if a.IsLabeled() && is2D {
			canon[i] = Labeled(a.frame.ToFrame())
		}
		shapes[i] = canon[i].Shape()
	}

	target, err := targetShape(o.shape, shapes)
	if err != nil {
		return nil, err
	}

	toPD := anyLabeled
	if o.toPD != nil {
		toPD = *o.toPD
	}
	var rowLabels, colLabels []*labels.Index
	if toPD && len(target) > 0 {
		rows, cols := target[0], 1
		if len(target) == 2 {
			cols = target[1]
		}
		if rowLabels, err = resolveAxis(canon, 0, rows, *o.indexFrom, o.labelOpts); err != nil {
			return nil, core.Errorf("Broadcast", err, "index")
		}
		if colLabels, err = resolveAxis(canon, 1, cols, *o.columnsFrom, o.labelOpts); err != nil {
			return nil, core.Errorf("Broadcast", err, "columns")
		}
	}

	out := make([]Arg, len(args))
	for i, a := range canon {
		if o.keepRawFor(i) {
			if a.kind == KindScalar {
				out[i] = a
			} else {
				out[i] = Raw(a.Array())
			}
			continue
		}
		v, err := materialize(a.Array(), target, &o)
		if err != nil {
			return nil, err
		}
		if rowLabels == nil {
			out[i] = Raw(v)
			continue
		}
		f, err := wrapLabeled(v, rowLabels[i], colLabels[i])
		if err != nil {
			return nil, core.Errorf("Broadcast", err, "input %d", i)
		}
		out[i] = Labeled(f)
	}

	return out, nil
}

// BroadcastTo broadcasts arg to the shape of target. Labels default to
// target's own; opts may override them, e.g. WithIndexFrom(FromArg(0)).
func BroadcastTo(arg, target Arg, opts ...Option) (Arg, error) {
	base := []Option{WithShape(target.Shape()...)}
	if target.IsLabeled() {
		f := target.frame
		base = append(base, WithToPD(true), WithIndexFrom(FromLabels(f.Index())), WithColumnsFrom(FromLabels(f.Columns())))
	}
	out, err := Broadcast([]Arg{arg}, append(base, opts...)...)
	if err != nil {
		return Arg{}, err
	}

	return out[0], nil
}

// targetShape is the explicit shape (every input must broadcast to it) or
// the broadcast of all input shapes.
func targetShape(explicit []int, shapes [][]int) ([]int, error) {
	if explicit == nil {
		sh, err := array.BroadcastShapes(shapes...)
		if err != nil {
			return nil, core.Errorf("Broadcast", err, "shapes %v", shapes)
		}
		return sh, nil
	}
	for _, s := range shapes {
		sh, err := array.BroadcastShapes(s, explicit)
		if err != nil || !array.SameShape(sh, explicit) {
			return nil, core.Errorf("Broadcast", core.ErrShapeMismatch, "cannot broadcast %v to %v", s, explicit)
		}
	}

	return explicit, nil
}

func materialize(a *array.Array, target []int, o *options) (*array.Array, error) {
	v := a
	if !array.SameShape(a.Shape(), target) {
		var err error
		if v, err = a.BroadcastTo(target...); err != nil {
			return nil, core.Errorf("Broadcast", err, "")
		}
		if o.writeable {
			v = v.Writeable()
		}
	}
	if o.copyOrder != 0 && !v.IsContiguous(o.copyOrder) {
		v = v.Copy(o.copyOrder)
	}

	return v, nil
}

func wrapLabeled(v *array.Array, index, columns *labels.Index) (*frame.Frame, error) {
	if v.Ndim() == 2 {
		return frame.NewDataFrame(v, index, columns)
	}

	return frame.NewSeries(v, index, nameFromColumns(columns))
}

// nameFromColumns maps a one-column label collection to a series name;
// the 0 sentinel means unnamed.
func nameFromColumns(columns *labels.Index) any {
	if columns == nil || columns.Len() == 0 {
		return nil
	}
	name := columns.At(0)
	if t, ok := name.(core.Tuple); ok && len(t) == 1 {
		name = t[0]
	}
	if core.Equal(name, 0) {
		return nil
	}

	return name
}

// axisLabels returns the labels of a canonical input on axis, nil when raw.
func axisLabels(a Arg, axis int) *labels.Index {
	if !a.IsLabeled() {
		return nil
	}

	return a.frame.Axis(axis)
}

// fit stretches a length-1 collection to n; other lengths must equal n.
func fit(idx *labels.Index, n int) (*labels.Index, error) {
	switch idx.Len() {
	case n:
		return idx, nil
	case 1:
		return labels.Repeat(idx, n)
	}

	return nil, core.Errorf("fit", core.ErrShapeMismatch, "labels of length %d for axis of length %d", idx.Len(), n)
}

// resolveAxis returns one label collection per input for axis.
func resolveAxis(args []Arg, axis, n int, p Policy, opts []labels.Option) ([]*labels.Index, error) {
	out := make([]*labels.Index, len(args))
	fill := func(idx *labels.Index) []*labels.Index {
		for i := range out {
			out[i] = idx
		}
		return out
	}
	switch p.kind {
	case policyLabels:
		if p.labels.Len() != n {
			return nil, core.Errorf("FromLabels", core.ErrShapeMismatch, "labels of length %d for axis of length %d", p.labels.Len(), n)
		}
		return fill(p.labels), nil

	case policyArg:
		i, ok := array.NormalizePos(len(args), p.pos)
		if !ok {
			return nil, core.Errorf("FromArg", core.ErrOutOfRange, "input %d of %d", p.pos, len(args))
		}
		own := axisLabels(args[i], axis)
		if own == nil {
			return nil, core.Errorf("FromArg", core.ErrTypeMismatch, "input %d is %s", p.pos, args[i].kind)
		}
		idx, err := fit(own, n)
		if err != nil {
			return nil, err
		}
		return fill(idx), nil

	case policyNone:
		for i, a := range args {
			own := axisLabels(a, axis)
			if own == nil {
				out[i] = labels.Range(n)
				continue
			}
			idx, err := fit(own, n)
			if err != nil {
				return nil, err
			}
			out[i] = idx
		}
		return out, nil
	}

	idx, err := stackAxis(args, axis, n, p.kind == policyStrict, opts)
	if err != nil {
		return nil, err
	}

	return fill(idx), nil
}

// stackAxis merges the labels of every labeled input. Default ranges and
// labels equal to the running result are skipped; a length-1 side is
// repeated to the other's length before stacking.
func stackAxis(args []Arg, axis, n int, strict bool, opts []labels.Option) (*labels.Index, error) {
	var cur *labels.Index
	for _, a := range args {
		idx := axisLabels(a, axis)
		if idx == nil {
			continue
		}
		if cur == nil {
			cur = idx
			continue
		}
		if idx.EqualValues(cur) {
			continue
		}
		if strict {
			return nil, core.Errorf("Strict", core.ErrTypeMismatch, "labels %s differ from %s", idx, cur)
		}
		if cur.Len() > 1 && idx.Len() > 1 && cur.Len() != idx.Len() {
			return nil, core.Errorf("Stack", core.ErrShapeMismatch, "labels of lengths %d and %d", cur.Len(), idx.Len())
		}
		if idx.IsDefault() {
			continue
		}
		if cur.IsDefault() {
			cur = idx
			continue
		}
		var err error
		switch {
		case cur.Len() == 1 && idx.Len() > 1:
			cur, err = labels.Repeat(cur, idx.Len())
		case idx.Len() == 1 && cur.Len() > 1:
			idx, err = labels.Repeat(idx, cur.Len())
		}
		if err != nil {
			return nil, err
		}
		if cur, err = labels.Stack([]*labels.Index{cur, idx}, opts...); err != nil {
			return nil, err
		}
	}
	if cur == nil {
		return labels.Range(n), nil
	}
	if strict && cur.Len() != n {
		return nil, core.Errorf("Strict", core.ErrTypeMismatch, "labels %s would be stretched to length %d", cur, n)
	}

	return fit(cur, n)
}
