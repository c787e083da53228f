// SPDX-License-Identifier: MIT

package combine_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/combine"
	"github.com/katalvlaran/vectra/core"
)

func rowsOf(t *testing.T, rows [][]float64) *array.Array {
	t.Helper()
	a, err := array.FromRows(rows)
	require.NoError(t, err)

	return a
}

func assertArray(t *testing.T, want, got *array.Array) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s\ngot %s", want, got)
}

var (
	sr2Values = array.Vector(1, 2, 3)
	df4Values = func() *array.Array {
		a, _ := array.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
		return a
	}()
)

// plusNth adds a[i] to the first operand.
func plusNth(a []float64) combine.ApplyFunc {
	return func(i int, ops []*array.Array) (*array.Array, error) {
		return array.Add(ops[0], array.Scalar(a[i]))
	}
}

func scaled(a *array.Array, k float64) *array.Array {
	return a.Map(func(v float64) float64 { return v * k })
}

// sumPlus returns x + y + c.
func sumPlus(c float64) combine.CombineFunc {
	return func(x, y *array.Array) (*array.Array, error) {
		s, err := array.Add(x, y)
		if err != nil {
			return nil, err
		}
		return array.Add(s, array.Scalar(c))
	}
}

func TestApplyAndConcatOne(t *testing.T) {
	fn := plusNth([]float64{10, 20, 30})

	got, err := combine.ApplyAndConcatOne(3, fn, []*array.Array{sr2Values})
	require.NoError(t, err)
	assertArray(t, rowsOf(t, [][]float64{{11, 21, 31}, {12, 22, 32}, {13, 23, 33}}), got)

	got, err = combine.ApplyAndConcatOne(3, fn, []*array.Array{df4Values})
	require.NoError(t, err)
	assertArray(t, rowsOf(t, [][]float64{
		{11, 12, 13, 21, 22, 23, 31, 32, 33},
		{14, 15, 16, 24, 25, 26, 34, 35, 36},
		{17, 18, 19, 27, 28, 29, 37, 38, 39},
	}), got)
}

func TestApplyAndConcatMultiple(t *testing.T) {
	a := []float64{10, 20, 30}
	fn := func(i int, ops []*array.Array) ([]*array.Array, error) {
		y, err := array.Add(ops[0], array.Scalar(a[i]))
		return []*array.Array{ops[0], y}, err
	}

	got, err := combine.ApplyAndConcatMultiple(3, fn, []*array.Array{sr2Values})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assertArray(t, rowsOf(t, [][]float64{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}), got[0])
	assertArray(t, rowsOf(t, [][]float64{{11, 21, 31}, {12, 22, 32}, {13, 23, 33}}), got[1])

	got, err = combine.ApplyAndConcatMultiple(3, fn, []*array.Array{df4Values})
	require.NoError(t, err)
	assertArray(t, rowsOf(t, [][]float64{
		{1, 2, 3, 1, 2, 3, 1, 2, 3},
		{4, 5, 6, 4, 5, 6, 4, 5, 6},
		{7, 8, 9, 7, 8, 9, 7, 8, 9},
	}), got[0])
	assertArray(t, rowsOf(t, [][]float64{
		{11, 12, 13, 21, 22, 23, 31, 32, 33},
		{14, 15, 16, 24, 25, 26, 34, 35, 36},
		{17, 18, 19, 27, 28, 29, 37, 38, 39},
	}), got[1])

	ragged := func(i int, ops []*array.Array) ([]*array.Array, error) {
		if i == 1 {
			return []*array.Array{ops[0]}, nil
		}
		return []*array.Array{ops[0], ops[0]}, nil
	}
	_, err = combine.ApplyAndConcatMultiple(2, ragged, []*array.Array{sr2Values})
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestCombineAndConcat(t *testing.T) {
	got, err := combine.CombineAndConcat(sr2Values,
		[]*array.Array{scaled(sr2Values, 2), scaled(sr2Values, 3)}, sumPlus(100))
	require.NoError(t, err)
	assertArray(t, rowsOf(t, [][]float64{{103, 104}, {106, 108}, {109, 112}}), got)

	got, err = combine.CombineAndConcat(df4Values,
		[]*array.Array{scaled(df4Values, 2), scaled(df4Values, 3)}, sumPlus(100))
	require.NoError(t, err)
	assertArray(t, rowsOf(t, [][]float64{
		{103, 106, 109, 104, 108, 112},
		{112, 115, 118, 116, 120, 124},
		{121, 124, 127, 128, 132, 136},
	}), got)

	_, err = combine.CombineAndConcat(sr2Values, nil, sumPlus(0))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestCombineMultiple(t *testing.T) {
	got, err := combine.CombineMultiple(
		[]*array.Array{sr2Values, scaled(sr2Values, 2), scaled(sr2Values, 3)}, sumPlus(100))
	require.NoError(t, err)
	assertArray(t, array.Vector(206, 212, 218), got)

	got, err = combine.CombineMultiple(
		[]*array.Array{df4Values, scaled(df4Values, 2), scaled(df4Values, 3)}, sumPlus(100))
	require.NoError(t, err)
	assertArray(t, rowsOf(t, [][]float64{{206, 212, 218}, {224, 230, 236}, {242, 248, 254}}), got)

	_, err = combine.CombineMultiple(nil, sumPlus(0))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestPass2D(t *testing.T) {
	var seen atomic.Int32
	fn := func(i int, ops []*array.Array) (*array.Array, error) {
		if ops[0].Ndim() == 2 {
			seen.Add(1)
		}
		return ops[0], nil
	}
	got, err := combine.ApplyAndConcatOne(2, fn, []*array.Array{sr2Values}, combine.WithPass2D())
	require.NoError(t, err)
	assert.Equal(t, int32(2), seen.Load())
	assertArray(t, rowsOf(t, [][]float64{{1, 1}, {2, 2}, {3, 3}}), got)
}

// TestParallelKeepsOrder checks that concurrent iterations land in their own
// slot regardless of completion order.
func TestParallelKeepsOrder(t *testing.T) {
	n := 64
	fn := func(i int, ops []*array.Array) (*array.Array, error) {
		return array.Full(float64(i), ops[0].Dim(0)), nil
	}
	seq, err := combine.ApplyAndConcatOne(n, fn, []*array.Array{sr2Values})
	require.NoError(t, err)
	par, err := combine.ApplyAndConcatOne(n, fn, []*array.Array{sr2Values}, combine.WithParallel(8))
	require.NoError(t, err)
	assertArray(t, seq, par)
	v, _ := par.At(2, n-1)
	assert.Equal(t, float64(n-1), v)

	boom := errors.New("boom")
	_, err = combine.ApplyAndConcatOne(n, func(i int, ops []*array.Array) (*array.Array, error) {
		if i == 7 {
			return nil, boom
		}
		return ops[0], nil
	}, []*array.Array{sr2Values}, combine.WithParallel(4))
	assert.ErrorIs(t, err, boom)
}

func TestDispatchErrors(t *testing.T) {
	_, err := combine.ApplyAndConcatOne(0, plusNth(nil), []*array.Array{sr2Values})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	nilResult := func(int, []*array.Array) (*array.Array, error) { return nil, nil }
	_, err = combine.ApplyAndConcatOne(1, nilResult, []*array.Array{sr2Values})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	uneven := func(i int, ops []*array.Array) (*array.Array, error) {
		return array.Zeros(i + 1), nil
	}
	_, err = combine.ApplyAndConcatOne(2, uneven, nil)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)

	assert.Panics(t, func() { combine.WithParallel(0) })
}
