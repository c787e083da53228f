// SPDX-License-Identifier: MIT

// Package labels: functional options for Stack / Combine.
//
// Defaults come from config.Default() and are merged at the call boundary;
// WithSettings replaces them with caller-loaded settings. No package state.

package labels

import (
	"github.com/katalvlaran/vectra/config"
)

// Keep selects which of two duplicate levels survives.
type Keep string

const (
	// KeepFirst keeps the earliest duplicate level.
	KeepFirst Keep = "first"
	// KeepLast keeps the latest duplicate level.
	KeepLast Keep = "last"
)

const panicKeepInvalid = "labels: WithKeep: keep must be KeepFirst or KeepLast"

// Option mutates stacking options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the effective stacking configuration.
type Options struct {
	dropDuplicates bool
	dropRedundant  bool
	keep           Keep
}

// WithSettings replaces all stacking options with b.
func WithSettings(b config.Broadcasting) Option {
	return func(o *Options) {
		o.dropDuplicates = b.DropDuplicates
		o.dropRedundant = b.DropRedundant
		o.keep = Keep(b.Keep)
	}
}

// WithDropDuplicates toggles removal of levels duplicated in (name, values).
func WithDropDuplicates(on bool) Option {
	return func(o *Options) { o.dropDuplicates = on }
}

// WithDropRedundant toggles removal of redundant levels.
func WithDropRedundant(on bool) Option {
	return func(o *Options) { o.dropRedundant = on }
}

// WithKeep selects the duplicate tie-break.
func WithKeep(k Keep) Option {
	if k != KeepFirst && k != KeepLast {
		panic(panicKeepInvalid)
	}

	return func(o *Options) { o.keep = k }
}

// GatherOptions resolves opts over config.Default().
func GatherOptions(opts ...Option) Options {
	d := config.Default().Broadcasting
	o := Options{
		dropDuplicates: d.DropDuplicates,
		dropRedundant:  d.DropRedundant,
		keep:           Keep(d.Keep),
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.keep != KeepLast {
		o.keep = KeepFirst
	}

	return o
}
