// SPDX-License-Identifier: MIT

package combine

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
	"github.com/katalvlaran/vectra/reshape"
	"github.com/katalvlaran/vectra/wrapper"
)

// Default names of the key level added in front of concatenated columns.
const (
	ApplyKeyName   = "apply_idx"
	CombineKeyName = "combine_idx"
)

func keysOr(o options, n int, name string) (*labels.Index, error) {
	if o.keys == nil {
		vals := make([]any, n)
		for i := range vals {
			vals[i] = i
		}
		return labels.New(vals, name), nil
	}
	if o.keys.Len() != n {
		return nil, core.Errorf("combine", core.ErrShapeMismatch, "%d keys for %d blocks", o.keys.Len(), n)
	}

	return o.keys, nil
}

// concatColumns is keys x the columns of f, each key spanning one block of
// columns. A series contributes one block per key, labeled by the key alone.
func concatColumns(keys *labels.Index, f *frame.Frame) (*labels.Index, error) {
	if f.IsSeries() {
		return keys, nil
	}

	return labels.Combine([]*labels.Index{keys, f.Columns()})
}

// ApplyAndConcat runs ApplyAndConcatOne over the values of f and labels the
// result: rows keep f's index, columns are keys x f's columns (the keys
// alone for a series, so n == 1 yields a series named by its key). Keys
// default to 0..n-1 named ApplyKeyName.
func ApplyAndConcat(f *frame.Frame, n int, fn ApplyFunc, opts ...Option) (*frame.Frame, error) {
	o := gather(opts)
	keys, err := keysOr(o, n, ApplyKeyName)
	if err != nil {
		return nil, err
	}
	out, err := ApplyAndConcatOne(n, fn, []*array.Array{f.Values()}, opts...)
	if err != nil {
		return nil, err
	}
	cols, err := concatColumns(keys, f)
	if err != nil {
		return nil, core.Errorf("ApplyAndConcat", err, "")
	}
	w, err := wrapper.FromFrame(f)
	if err != nil {
		return nil, err
	}

	return w.Wrap(out, wrapper.WithColumns(cols))
}

// CombineWithMultiple broadcasts f with others and left-folds fn over them.
func CombineWithMultiple(f *frame.Frame, others []reshape.Arg, fn CombineFunc, opts ...Option) (*frame.Frame, error) {
	base, ops, err := broadcastAll(f, others, gather(opts))
	if err != nil {
		return nil, err
	}
	out, err := CombineMultiple(ops, fn, opts...)
	if err != nil {
		return nil, err
	}
	w, err := wrapper.FromFrame(base)
	if err != nil {
		return nil, err
	}

	return w.Wrap(out)
}

// CombineWithConcat broadcasts f with others, combines the broadcast f with
// each other operand and concatenates the results. Columns are keys x the
// broadcast columns; keys default to 0..len(others)-1 named CombineKeyName.
func CombineWithConcat(f *frame.Frame, others []reshape.Arg, fn CombineFunc, opts ...Option) (*frame.Frame, error) {
	o := gather(opts)
	keys, err := keysOr(o, len(others), CombineKeyName)
	if err != nil {
		return nil, err
	}
	base, ops, err := broadcastAll(f, others, o)
	if err != nil {
		return nil, err
	}
	out, err := CombineAndConcat(ops[0], ops[1:], fn, opts...)
	if err != nil {
		return nil, err
	}
	cols, err := concatColumns(keys, base)
	if err != nil {
		return nil, core.Errorf("CombineWithConcat", err, "")
	}
	w, err := wrapper.FromFrame(base)
	if err != nil {
		return nil, err
	}

	return w.Wrap(out, wrapper.WithColumns(cols))
}

// broadcastAll returns the broadcast f and the raw values of every operand.
func broadcastAll(f *frame.Frame, others []reshape.Arg, o options) (*frame.Frame, []*array.Array, error) {
	if len(others) == 0 {
		return nil, nil, core.Errorf("combine", core.ErrInvalidArgument, "no operands to combine with")
	}
	args := append([]reshape.Arg{reshape.Labeled(f)}, others...)
	bc, err := reshape.Broadcast(args, append([]reshape.Option{reshape.WithToPD(true)}, o.broadcast...)...)
	if err != nil {
		return nil, nil, err
	}
	ops := make([]*array.Array, len(bc))
	for i, a := range bc {
		ops[i] = a.Array()
	}

	return bc[0].Frame(), ops, nil
}
