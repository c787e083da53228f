// SPDX-License-Identifier: MIT

// Package reshape: label policies and functional options for Broadcast.
//
// Policies are resolved per axis. Defaults come from config.Default() and are
// merged at the call boundary; WithSettings replaces them. No package state.

package reshape

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/config"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/labels"
)

type policyKind int

const (
	policyStack policyKind = iota
	policyStrict
	policyNone
	policyArg
	policyLabels
)

// Policy decides how the labels of one axis are derived.
type Policy struct {
	kind   policyKind
	pos    int
	labels *labels.Index
}

// Stack concatenates the labels of all labeled inputs as new levels.
func Stack() Policy { return Policy{kind: policyStack} }

// Strict behaves like Stack but fails when labeled inputs disagree.
func Strict() Policy { return Policy{kind: policyStrict} }

// None keeps each labeled input's own labels; raw inputs get default ranges.
func None() Policy { return Policy{kind: policyNone} }

// FromArg takes the labels of input i (negative counts from the end).
func FromArg(i int) Policy { return Policy{kind: policyArg, pos: i} }

// FromLabels uses idx as the labels of every output.
func FromLabels(idx *labels.Index) Policy { return Policy{kind: policyLabels, labels: idx} }

// ParsePolicy maps a configuration string (stack, strict, none) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "stack":
		return Stack(), nil
	case "strict":
		return Strict(), nil
	case "none", "":
		return None(), nil
	}

	return Policy{}, core.Errorf("ParsePolicy", core.ErrInvalidArgument, "unknown policy %q", s)
}

// Option configures Broadcast and BroadcastTo.
type Option func(*options)

type options struct {
	settings    config.Broadcasting
	shape       []int
	indexFrom   *Policy
	columnsFrom *Policy
	labelOpts   []labels.Option
	keepRaw     bool
	keepRawAt   []bool
	toPD        *bool
	writeable   bool
	copyOrder   array.Order
}

// WithSettings replaces the default policies and stacking options.
func WithSettings(b config.Broadcasting) Option {
	return func(o *options) { o.settings = b }
}

// WithShape broadcasts to an explicit target shape (rank 0, 1 or 2).
func WithShape(shape ...int) Option {
	return func(o *options) { o.shape = append([]int{}, shape...) }
}

// WithIndexFrom sets the row label policy.
func WithIndexFrom(p Policy) Option {
	return func(o *options) { o.indexFrom = &p }
}

// WithColumnsFrom sets the column label policy (the name of 1-D outputs).
func WithColumnsFrom(p Policy) Option {
	return func(o *options) { o.columnsFrom = &p }
}

// WithDropDuplicates toggles duplicate level removal while stacking labels.
func WithDropDuplicates(on bool) Option {
	return func(o *options) { o.labelOpts = append(o.labelOpts, labels.WithDropDuplicates(on)) }
}

// WithDropRedundant toggles redundant level removal while stacking labels.
func WithDropRedundant(on bool) Option {
	return func(o *options) { o.labelOpts = append(o.labelOpts, labels.WithDropRedundant(on)) }
}

// WithKeep selects the duplicate-level tie-break while stacking labels.
func WithKeep(k labels.Keep) Option {
	opt := labels.WithKeep(k)

	return func(o *options) { o.labelOpts = append(o.labelOpts, opt) }
}

// WithKeepRaw returns every output as its canonical pre-broadcast array.
func WithKeepRaw(on bool) Option {
	return func(o *options) { o.keepRaw, o.keepRawAt = on, nil }
}

// WithKeepRawAt selects keep-raw per input position.
func WithKeepRawAt(flags ...bool) Option {
	return func(o *options) { o.keepRawAt = append([]bool(nil), flags...) }
}

// WithToPD forces labeled (true) or raw (false) outputs.
func WithToPD(on bool) Option {
	return func(o *options) { o.toPD = &on }
}

// WithWriteable copies broadcast views so outputs accept writes.
func WithWriteable(on bool) Option {
	return func(o *options) { o.writeable = on }
}

// WithCopyOrder copies outputs not already contiguous in order.
func WithCopyOrder(order array.Order) Option {
	if order != array.C && order != array.F {
		panic("reshape: WithCopyOrder: order must be array.C or array.F")
	}

	return func(o *options) { o.copyOrder = order }
}

func gatherOptions(opts ...Option) (options, error) {
	o := options{settings: config.Default().Broadcasting}
	for _, fn := range opts {
		fn(&o)
	}
	if o.indexFrom == nil {
		p, err := ParsePolicy(o.settings.IndexFrom)
		if err != nil {
			return o, err
		}
		o.indexFrom = &p
	}
	if o.columnsFrom == nil {
		p, err := ParsePolicy(o.settings.ColumnsFrom)
		if err != nil {
			return o, err
		}
		o.columnsFrom = &p
	}
	o.labelOpts = append([]labels.Option{labels.WithSettings(o.settings)}, o.labelOpts...)

	return o, nil
}

func (o *options) keepRawFor(i int) bool {
	if o.keepRawAt != nil {
		return i < len(o.keepRawAt) && o.keepRawAt[i]
	}

	return o.keepRaw
}
