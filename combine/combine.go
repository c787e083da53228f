// SPDX-License-Identifier: MIT

// Package combine - apply/combine dispatch over raw arrays.
//
// Kernels are plain Go functions over *array.Array; extra arguments are
// captured by the closure. Results are concatenated along the trailing axis
// in iteration order: a 1-D result becomes one column, a 2-D result adds all
// of its columns.
//
// With WithParallel the iterations of ApplyAndConcat* and CombineAndConcat
// run on an errgroup. Every iteration writes only its own result slot, so
// the output does not depend on scheduling.
package combine

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/labels"
	"github.com/katalvlaran/vectra/reshape"
)

// ApplyFunc computes iteration i from the operands.
type ApplyFunc func(i int, operands []*array.Array) (*array.Array, error)

// MultiApplyFunc computes a fixed number of outputs for iteration i.
type MultiApplyFunc func(i int, operands []*array.Array) ([]*array.Array, error)

// CombineFunc combines two operands into one result of their shape.
type CombineFunc func(x, y *array.Array) (*array.Array, error)

// Option configures a dispatch call.
type Option func(*options)

type options struct {
	pass2D    bool
	workers   int
	keys      *labels.Index
	broadcast []reshape.Option
}

// WithPass2D coerces every operand to 2-D before the kernel sees it.
func WithPass2D() Option {
	return func(o *options) { o.pass2D = true }
}

// WithParallel runs up to workers iterations at once. Panics if workers < 1.
func WithParallel(workers int) Option {
	if workers < 1 {
		panic("combine: WithParallel(workers<1) is invalid")
	}

	return func(o *options) { o.workers = workers }
}

// WithKeys labels the blocks of a concatenated result (labeled entry points).
func WithKeys(keys *labels.Index) Option {
	return func(o *options) { o.keys = keys }
}

// WithBroadcast passes options to the broadcast step of CombineWith.
func WithBroadcast(opts ...reshape.Option) Option {
	return func(o *options) { o.broadcast = append(o.broadcast, opts...) }
}

func gather(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func to2D(a *array.Array) (*array.Array, error) {
	out, err := reshape.To2D(reshape.Raw(a))
	if err != nil {
		return nil, err
	}

	return out.Array(), nil
}

func prepare(operands []*array.Array, o options) ([]*array.Array, error) {
	if !o.pass2D {
		return operands, nil
	}
	out := make([]*array.Array, len(operands))
	for i, a := range operands {
		b, err := to2D(a)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}

	return out, nil
}

// run calls fn for 0..n-1, sequentially or on an errgroup.
func run(n int, o options, fn func(i int) error) error {
	if o.workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}

	return g.Wait()
}

// columnStack concatenates results along the trailing axis.
func columnStack(op string, results []*array.Array) (*array.Array, error) {
	if len(results) == 0 {
		return nil, core.Errorf(op, core.ErrInvalidArgument, "no results")
	}
	cols := make([]*array.Array, len(results))
	for i, r := range results {
		if r == nil {
			return nil, core.Errorf(op, core.ErrInvalidArgument, "iteration %d returned nil", i)
		}
		c, err := to2D(r)
		if err != nil {
			return nil, core.Errorf(op, err, "iteration %d", i)
		}
		cols[i] = c
	}
	out, err := array.Concat(1, cols...)
	if err != nil {
		return nil, core.Errorf(op, err, "")
	}

	return out, nil
}

// ApplyAndConcatOne calls fn n times and concatenates the results.
func ApplyAndConcatOne(n int, fn ApplyFunc, operands []*array.Array, opts ...Option) (*array.Array, error) {
	if n < 1 {
		return nil, core.Errorf("ApplyAndConcatOne", core.ErrInvalidArgument, "n=%d", n)
	}
	o := gather(opts)
	ops, err := prepare(operands, o)
	if err != nil {
		return nil, core.Errorf("ApplyAndConcatOne", err, "")
	}
	results := make([]*array.Array, n)
	err = run(n, o, func(i int) error {
		r, ferr := fn(i, ops)
		if ferr != nil {
			return core.Errorf("ApplyAndConcatOne", ferr, "iteration %d", i)
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return columnStack("ApplyAndConcatOne", results)
}

// ApplyAndConcatMultiple calls fn n times; every call must return the same
// number of outputs. Output k concatenates the k-th results.
func ApplyAndConcatMultiple(n int, fn MultiApplyFunc, operands []*array.Array, opts ...Option) ([]*array.Array, error) {
	if n < 1 {
		return nil, core.Errorf("ApplyAndConcatMultiple", core.ErrInvalidArgument, "n=%d", n)
	}
	o := gather(opts)
	ops, err := prepare(operands, o)
	if err != nil {
		return nil, core.Errorf("ApplyAndConcatMultiple", err, "")
	}
	results := make([][]*array.Array, n)
	err = run(n, o, func(i int) error {
		r, ferr := fn(i, ops)
		if ferr != nil {
			return core.Errorf("ApplyAndConcatMultiple", ferr, "iteration %d", i)
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	k := len(results[0])
	out := make([]*array.Array, k)
	for j := 0; j < k; j++ {
		col := make([]*array.Array, n)
		for i := range results {
			if len(results[i]) != k {
				return nil, core.Errorf("ApplyAndConcatMultiple", core.ErrShapeMismatch, "iteration %d returned %d outputs, want %d", i, len(results[i]), k)
			}
			col[i] = results[i][j]
		}
		if out[j], err = columnStack("ApplyAndConcatMultiple", col); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// CombineAndConcat combines base with each of others and concatenates the
// pairwise results; it does not reduce across pairs.
func CombineAndConcat(base *array.Array, others []*array.Array, fn CombineFunc, opts ...Option) (*array.Array, error) {
	if len(others) == 0 {
		return nil, core.Errorf("CombineAndConcat", core.ErrInvalidArgument, "no operands to combine with")
	}
	ops := append([]*array.Array{base}, others...)

	return ApplyAndConcatOne(len(others), func(i int, ops []*array.Array) (*array.Array, error) {
		return fn(ops[0], ops[i+1])
	}, ops, opts...)
}

// CombineMultiple left-folds fn over operands into one result.
func CombineMultiple(operands []*array.Array, fn CombineFunc, opts ...Option) (*array.Array, error) {
	if len(operands) == 0 {
		return nil, core.Errorf("CombineMultiple", core.ErrInvalidArgument, "no operands")
	}
	ops, err := prepare(operands, gather(opts))
	if err != nil {
		return nil, core.Errorf("CombineMultiple", err, "")
	}
	acc := ops[0]
	for i := 1; i < len(ops); i++ {
		if acc, err = fn(acc, ops[i]); err != nil {
			return nil, core.Errorf("CombineMultiple", err, "operand %d", i)
		}
	}

	return acc, nil
}
