// SPDX-License-Identifier: MIT

package reshape

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
)

// checkRank rejects arrays above two dimensions.
func checkRank(op string, a *array.Array) error {
	if a.Ndim() > 2 {
		return core.Errorf(op, core.ErrTypeMismatch, "unsupported %d-d input", a.Ndim())
	}

	return nil
}

// To1D canonicalizes arg into one dimension. A 2-D input must have exactly
// one column.
func To1D(arg Arg) (Arg, error) {
	switch arg.kind {
	case KindScalar:
		return Raw(array.Vector(arg.scalar)), nil
	case KindLabeled:
		f := arg.frame
		if f.IsSeries() {
			return arg, nil
		}
		if f.Shape()[1] != 1 {
			return Arg{}, core.Errorf("To1D", core.ErrShapeMismatch, "cannot reshape %v to 1 dimension", f.Shape())
		}
		col, err := f.Column(0)
		if err != nil {
			return Arg{}, err
		}
		return Labeled(col), nil
	}
	a := arg.raw
	if err := checkRank("To1D", a); err != nil {
		return Arg{}, err
	}
	switch a.Ndim() {
	case 0:
		v, _ := a.Reshape(1)
		return Raw(v), nil
	case 2:
		if a.Dim(1) != 1 {
			return Arg{}, core.Errorf("To1D", core.ErrShapeMismatch, "cannot reshape %v to 1 dimension", a.Shape())
		}
		v, _ := a.Select(1, 0)
		return Raw(v), nil
	}

	return arg, nil
}

// To2D canonicalizes arg into two dimensions. 1-D values become one column;
// a series becomes a one-column frame named after the series (or 0).
func To2D(arg Arg) (Arg, error) {
	switch arg.kind {
	case KindScalar:
		return Raw(array.Full(arg.scalar, 1, 1)), nil
	case KindLabeled:
		return Labeled(arg.frame.ToFrame()), nil
	}
	a := arg.raw
	if err := checkRank("To2D", a); err != nil {
		return Arg{}, err
	}
	switch a.Ndim() {
	case 0:
		v, _ := a.Reshape(1, 1)
		return Raw(v), nil
	case 1:
		v, _ := a.Reshape(a.Dim(0), 1)
		return Raw(v), nil
	}

	return arg, nil
}

// SoftToNdim converts arg to ndim only when that loses nothing; a 2-D value
// with several columns is returned unchanged when 1 is requested.
func SoftToNdim(arg Arg, ndim int) Arg {
	if arg.kind == KindScalar {
		return arg
	}
	switch {
	case ndim == 1 && arg.Ndim() == 2 && arg.Shape()[1] == 1:
		out, err := To1D(arg)
		if err == nil {
			return out
		}
	case ndim == 2 && arg.Ndim() == 1:
		out, err := To2D(arg)
		if err == nil {
			return out
		}
	}

	return arg
}

func repeatPositions(n, times int) []int {
	out := make([]int, 0, n*times)
	for i := 0; i < n; i++ {
		for r := 0; r < times; r++ {
			out = append(out, i)
		}
	}

	return out
}

func tilePositions(n, times int) []int {
	out := make([]int, 0, n*times)
	for r := 0; r < times; r++ {
		for i := 0; i < n; i++ {
			out = append(out, i)
		}
	}

	return out
}

// Repeat repeats each element n times along axis 0 (rows) or 1 (columns),
// repeating labels the same way.
func Repeat(arg Arg, n, axis int) (Arg, error) {
	return stretch("Repeat", arg, n, axis, repeatPositions, labels.Repeat)
}

// Tile repeats the whole value n times along axis 0 (rows) or 1 (columns),
// tiling labels the same way.
func Tile(arg Arg, n, axis int) (Arg, error) {
	return stretch("Tile", arg, n, axis, tilePositions, labels.Tile)
}

func stretch(op string, arg Arg, n, axis int,
	positions func(n, times int) []int,
	relabel func(*labels.Index, int) (*labels.Index, error),
) (Arg, error) {
	if n < 0 {
		return Arg{}, core.Errorf(op, core.ErrInvalidArgument, "negative count %d", n)
	}
	var err error
	switch axis {
	case 0:
		if arg.Ndim() == 0 {
			arg, err = To1D(arg)
		}
	case 1:
		arg, err = To2D(arg)
	default:
		return Arg{}, core.Errorf(op, core.ErrInvalidArgument, "axis %d", axis)
	}
	if err != nil {
		return Arg{}, err
	}
	a := arg.Array()
	v, err := a.Take(axis, positions(a.Dim(axis), n))
	if err != nil {
		return Arg{}, core.Errorf(op, err, "")
	}
	if arg.kind != KindLabeled {
		return Raw(v), nil
	}
	f := arg.frame
	lbl, err := relabel(f.Axis(axis), n)
	if err != nil {
		return Arg{}, err
	}
	var out *frame.Frame
	switch {
	case axis == 0 && f.IsSeries():
		out, err = frame.NewSeries(v, lbl, f.Name())
	case axis == 0:
		out, err = frame.NewDataFrame(v, lbl, f.Columns())
	default:
		out, err = frame.NewDataFrame(v, f.Index(), lbl)
	}
	if err != nil {
		return Arg{}, err
	}

	return Labeled(out), nil
}
