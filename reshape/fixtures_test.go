// SPDX-License-Identifier: MIT

package reshape_test

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
	"github.com/katalvlaran/vectra/reshape"
)

// Shared inputs: raw arrays a1..a5, series sr*, frames df*.
var (
	a1 = array.Vector(1)
	a2 = array.Vector(1, 2, 3)
	a3 = mustArr(array.FromRows([][]float64{{1, 2, 3}}))
	a4 = mustArr(array.FromRows([][]float64{{1}, {2}, {3}}))
	a5 = mustArr(array.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}))

	srNone = mustFrame(frame.SeriesOf([]float64{1}, nil, nil))
	sr1    = mustFrame(frame.SeriesOf([]float64{1}, labels.New([]any{"x1"}, "i1"), "a1"))
	sr2    = mustFrame(frame.SeriesOf([]float64{1, 2, 3}, labels.New([]any{"x2", "y2", "z2"}, "i2"), "a2"))

	dfNone = mustFrame(frame.DataFrameOf([][]float64{{1}}, nil, nil))
	df1    = mustFrame(frame.DataFrameOf([][]float64{{1}},
		labels.New([]any{"x3"}, "i3"), labels.New([]any{"a3"}, "c3")))
	df2 = mustFrame(frame.DataFrameOf([][]float64{{1}, {2}, {3}},
		labels.New([]any{"x4", "y4", "z4"}, "i4"), labels.New([]any{"a4"}, "c4")))
	df3 = mustFrame(frame.DataFrameOf([][]float64{{1, 2, 3}},
		labels.New([]any{"x5"}, "i5"), labels.New([]any{"a5", "b5", "c5"}, "c5")))
	df4 = mustFrame(frame.DataFrameOf([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		labels.New([]any{"x6", "y6", "z6"}, "i6"), labels.New([]any{"a6", "b6", "c6"}, "c6")))

	multiI = mustIdx(labels.FromArrays([][]any{{"x7", "y7", "z7"}, {"x8", "y8", "z8"}}, "i7", "i8"))
	multiC = mustIdx(labels.FromArrays([][]any{{"a7", "b7", "c7"}, {"a8", "b8", "c8"}}, "c7", "c8"))
	df5    = mustFrame(frame.DataFrameOf([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, multiI, multiC))
)

func mustArr(a *array.Array, err error) *array.Array {
	if err != nil {
		panic(err)
	}

	return a
}

func mustFrame(f *frame.Frame, err error) *frame.Frame {
	if err != nil {
		panic(err)
	}

	return f
}

func mustIdx(x *labels.Index, err error) *labels.Index {
	if err != nil {
		panic(err)
	}

	return x
}

func inputs1D() []reshape.Arg {
	return []reshape.Arg{
		reshape.Scalar(0), reshape.Raw(a1), reshape.Raw(a2),
		reshape.Labeled(srNone), reshape.Labeled(sr1), reshape.Labeled(sr2),
	}
}

func inputs2D() []reshape.Arg {
	return []reshape.Arg{
		reshape.Scalar(0), reshape.Raw(a1), reshape.Raw(a2), reshape.Raw(a3), reshape.Raw(a4), reshape.Raw(a5),
		reshape.Labeled(srNone), reshape.Labeled(sr1), reshape.Labeled(sr2),
		reshape.Labeled(dfNone), reshape.Labeled(df1), reshape.Labeled(df2), reshape.Labeled(df3), reshape.Labeled(df4),
	}
}

// stacking is the label configuration most tests run under.
func stacking(extra ...reshape.Option) []reshape.Option {
	return append([]reshape.Option{
		reshape.WithIndexFrom(reshape.Stack()),
		reshape.WithColumnsFrom(reshape.Stack()),
	}, extra...)
}
