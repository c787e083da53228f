// SPDX-License-Identifier: MIT

package reshape_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
	"github.com/katalvlaran/vectra/reshape"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// TestToNdim covers To1D, To2D and SoftToNdim.
func TestToNdim(t *testing.T) {
	t.Parallel()
	o, err := reshape.To1D(reshape.Scalar(5))
	require.NoError(t, err)
	require.Equal(t, []int{1}, o.Shape())

	o, err = reshape.To1D(reshape.Labeled(df2))
	require.NoError(t, err)
	require.True(t, o.Frame().IsSeries())
	require.Equal(t, "a4", o.Frame().Name())

	_, err = reshape.To1D(reshape.Labeled(df4))
	require.ErrorIs(t, err, core.ErrShapeMismatch)

	o, err = reshape.To2D(reshape.Raw(a2))
	require.NoError(t, err)
	require.Equal(t, []int{3, 1}, o.Shape())

	o, err = reshape.To2D(reshape.Labeled(sr2))
	require.NoError(t, err)
	require.True(t, o.Frame().Equal(sr2.ToFrame()))

	require.True(t, reshape.SoftToNdim(reshape.Labeled(df4), 1).Frame().Equal(df4), "cannot squeeze")
	require.True(t, reshape.SoftToNdim(reshape.Labeled(df2), 1).Frame().IsSeries())
	require.Equal(t, []int{3, 1}, reshape.SoftToNdim(reshape.Raw(a2), 2).Shape())
	require.Same(t, sr2, reshape.SoftToNdim(reshape.Labeled(sr2), 1).Frame())
}

// TestRepeatTile stretches values and labels along both axes.
func TestRepeatTile(t *testing.T) {
	t.Parallel()
	o, err := reshape.Repeat(reshape.Scalar(0), 3, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, o.Array().Flat())

	o, err = reshape.Repeat(reshape.Scalar(0), 3, 1)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, o.Shape())

	o, err = reshape.Repeat(reshape.Labeled(sr2), 3, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1, 2, 2, 2, 3, 3, 3}, o.Array().Flat())
	require.Equal(t, "a2", o.Frame().Name())
	require.Equal(t, "i2", o.Frame().Index().Name())

	o, err = reshape.Repeat(reshape.Labeled(sr2), 3, 1)
	require.NoError(t, err)
	require.True(t, o.Frame().Columns().Equal(labels.Of("a2", "a2", "a2")))

	o, err = reshape.Tile(reshape.Raw(a2), 3, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 1, 2, 3, 1, 2, 3}, o.Array().Flat())

	o, err = reshape.Tile(reshape.Labeled(df2), 3, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1, 2, 2, 2, 3, 3, 3}, o.Array().Flat())
	require.Equal(t, []any{"a4", "a4", "a4"}, o.Frame().Columns().Values())

	_, err = reshape.Tile(reshape.Raw(a2), 3, 2)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

// TestBroadcastToArrayOf stacks one target-shaped block per value.
func TestBroadcastToArrayOf(t *testing.T) {
	t.Parallel()
	for _, target := range []reshape.Arg{reshape.Scalar(0), reshape.Raw(a2), reshape.Raw(a5), reshape.Labeled(sr2), reshape.Labeled(df5)} {
		sh := target.Shape()
		out, err := reshape.BroadcastToArrayOf(reshape.Scalar(0.1), target)
		require.NoError(t, err)
		require.Equal(t, append([]int{1}, sh...), out.Shape())

		out, err = reshape.BroadcastToArrayOf(reshape.Raw(array.Vector(0.1, 0.2)), target)
		require.NoError(t, err)
		require.Equal(t, append([]int{2}, sh...), out.Shape())
		first, err := out.Select(0, 1)
		require.NoError(t, err)
		require.True(t, first.Equal(array.Full(0.2, sh...)))
	}
	ready := array.Zeros(1, 3)
	out, err := reshape.BroadcastToArrayOf(reshape.Raw(ready), reshape.Raw(a2))
	require.NoError(t, err)
	require.Same(t, ready, out)

	_, err = reshape.BroadcastToArrayOf(reshape.Raw(array.Zeros(2, 5)), reshape.Raw(a2))
	require.ErrorIs(t, err, core.ErrShapeMismatch)
}

// TestBroadcastToAxisOf returns a scalar past the last axis.
func TestBroadcastToAxisOf(t *testing.T) {
	t.Parallel()
	o := reshape.BroadcastToAxisOf(10, reshape.Raw(array.Zeros(2)), 0)
	require.Equal(t, []float64{10, 10}, o.Array().Flat())
	require.Equal(t, reshape.KindScalar, reshape.BroadcastToAxisOf(10, reshape.Raw(array.Zeros(2)), 1).Kind())
	require.Equal(t, []int{3}, reshape.BroadcastToAxisOf(10, reshape.Raw(array.Zeros(2, 3)), 1).Shape())
	require.Equal(t, reshape.KindScalar, reshape.BroadcastToAxisOf(10, reshape.Raw(array.Zeros(2, 3)), 2).Kind())
}

// TestFlex reads every broadcast element through a raw-kept operand.
func TestFlex(t *testing.T) {
	t.Parallel()
	for _, in := range [][]reshape.Arg{inputs1D(), inputs2D()} {
		raw, err := reshape.Broadcast(in, stacking(reshape.WithKeepRaw(true))...)
		require.NoError(t, err)
		full, err := reshape.Broadcast(in, stacking()...)
		require.NoError(t, err)
		for r := range in {
			bc := full[r].Array()
			is2D := bc.Ndim() == 2
			rows, cols := bc.Dim(0), 1
			if is2D {
				cols = bc.Dim(1)
			}
			op := raw[r].Array()
			defI, defCol := reshape.FlexChooseIAndCol(op, is2D)
			for i := 0; i < rows; i++ {
				for c := 0; c < cols; c++ {
					want, err := bc.At(append([]int{i}, []int{c}[:bc.Ndim()-1]...)...)
					require.NoError(t, err)
					got, err := reshape.FlexSelect(i, c, op, defI, defCol, is2D)
					require.NoError(t, err)
					require.Equal(t, want, got, "input %d at (%d, %d)", r, i, c)
				}
			}
		}
	}
}

// TestFlexRowPinned reads row 0 of a (1,3) operand for any requested row.
func TestFlexRowPinned(t *testing.T) {
	t.Parallel()
	defI, defCol := reshape.FlexChooseIAndCol(a3, true)
	require.Equal(t, 0, defI)
	require.Equal(t, -1, defCol)
	v, err := reshape.FlexSelect(2, 1, a3, defI, defCol, true)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	// a length-1 vector is pinned on both axes in either context
	for _, is2D := range []bool{false, true} {
		defI, defCol = reshape.FlexChooseIAndCol(a1, is2D)
		require.Equal(t, 0, defI)
		require.Equal(t, 0, defCol)
		v, err = reshape.FlexSelect(2, 2, a1, defI, defCol, is2D)
		require.NoError(t, err)
		require.Equal(t, 1.0, v)
	}
}

// TestUnstackToArray spreads levels over axes.
func TestUnstackToArray(t *testing.T) {
	t.Parallel()
	sr := unstackSeries(t)
	out, err := reshape.UnstackToArray(sr)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 4}, out.Shape())
	v, err := out.At(1, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
	v, err = out.At(0, 0, 1)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	out, err = reshape.UnstackToArray(sr, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 4}, out.Flat())

	out, err = reshape.UnstackToArray(sr, 2, 0)
	require.NoError(t, err)
	want := mustArr(array.FromRows([][]float64{{1, nan}, {2, nan}, {nan, 3}, {nan, 4}}))
	require.True(t, out.Equal(want))

	_, err = reshape.UnstackToArray(df4)
	require.ErrorIs(t, err, core.ErrTypeMismatch)
}

func unstackSeries(t *testing.T) *frame.Frame {
	t.Helper()
	idx, err := labels.FromArrays([][]any{{1, 1, 2, 2}, {3, 4, 3, 4}, {"a", "b", "c", "d"}})
	require.NoError(t, err)
	sr, err := frame.SeriesOf([]float64{1, 2, 3, 4}, idx, nil)
	require.NoError(t, err)

	return sr
}

// TestMakeSymmetric merges row and column labels into one square table.
func TestMakeSymmetric(t *testing.T) {
	t.Parallel()
	want := mustArr(array.FromRows([][]float64{
		{nan, nan, nan, 1}, {nan, nan, nan, 2}, {nan, nan, nan, 3}, {1, 2, 3, nan},
	}))

	out, err := reshape.MakeSymmetric(sr2)
	require.NoError(t, err)
	require.True(t, out.Values().Equal(want))
	require.Equal(t, []any{"x2", "y2", "z2", "a2"}, out.Index().Values())
	require.Equal(t, core.Tuple{"i2", nil}, out.Index().Name())
	require.True(t, out.Columns().Equal(out.Index()))

	out, err = reshape.MakeSymmetric(df2)
	require.NoError(t, err)
	require.Equal(t, core.Tuple{"i4", "c4"}, out.Index().Name())

	out, err = reshape.MakeSymmetric(df5)
	require.NoError(t, err)
	require.Equal(t, []int{6, 6}, out.Shape())
	require.Equal(t, []any{core.Tuple{"i7", "c7"}, core.Tuple{"i8", "c8"}}, out.Index().Names())
	require.Equal(t, core.Tuple{"a7", "a8"}, out.Index().At(3))
	v, err := out.Values().At(4, 1)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)

	yo, err := frame.SeriesOf([]float64{1, 2, 3}, nil, "yo")
	require.NoError(t, err)
	out, err = reshape.MakeSymmetric(yo)
	require.NoError(t, err)
	require.Equal(t, []any{0, 1, 2, "yo"}, out.Index().Values())
	require.Nil(t, out.Index().Name())
}

// TestMakeSymmetricOverlap keeps original values over transposed ones.
func TestMakeSymmetricOverlap(t *testing.T) {
	t.Parallel()
	df, err := frame.DataFrameOf([][]float64{{1, 2}, {3, 4}}, labels.Of("a", "b"), labels.Of("b", "c"))
	require.NoError(t, err)
	out, err := reshape.MakeSymmetric(df)
	require.NoError(t, err)
	want := mustArr(array.FromRows([][]float64{{nan, 1, 2}, {1, 3, 4}, {2, 4, nan}}))
	require.True(t, out.Values().Equal(want), out.Values().String())
}

// TestUnstackToDF projects levels onto both axes.
func TestUnstackToDF(t *testing.T) {
	t.Parallel()
	row, err := df5.Take(0, []int{0})
	require.NoError(t, err)
	sr0, err := frame.NewSeries(mustArr(row.Values().Reshape(3)), multiC, core.Tuple{"x7", "x8"})
	require.NoError(t, err)
	out, err := reshape.UnstackToDF(sr0, nil, nil, false)
	require.NoError(t, err)
	require.True(t, out.Index().Equal(labels.New([]any{"a7", "b7", "c7"}, "c7")))
	require.True(t, out.Columns().Equal(labels.New([]any{"a8", "b8", "c8"}, "c8")))
	require.True(t, out.Values().Equal(mustArr(array.FromRows([][]float64{{1, nan, nan}, {nan, 2, nan}, {nan, nan, 3}}))))

	sr := unstackSeries(t)
	out, err = reshape.UnstackToDF(sr, []any{0}, []any{1}, false)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4}, out.Values().Flat())
	require.Equal(t, []any{1, 2}, out.Index().Values())

	out, err = reshape.UnstackToDF(sr, []any{0, 1}, []any{2}, false)
	require.NoError(t, err)
	require.Equal(t, []any{core.Tuple{1, 3}, core.Tuple{1, 4}, core.Tuple{2, 3}, core.Tuple{2, 4}}, out.Index().Values())
	require.Equal(t, []int{4, 4}, out.Shape())

	out, err = reshape.UnstackToDF(sr, []any{0}, []any{1}, true)
	require.NoError(t, err)
	require.Equal(t, []any{1, 2, 3, 4}, out.Index().Values())
	want := mustArr(array.FromRows([][]float64{{nan, nan, 1, 2}, {nan, nan, 3, 4}, {1, 3, nan, nan}, {2, 4, nan, nan}}))
	require.True(t, out.Values().Equal(want))
}
