// SPDX-License-Identifier: MIT

// Package reshape - canonicalization and broadcasting of heterogeneous inputs.
//
// Purpose:
//   - Classify every input once into a closed variant: scalar, raw array or
//     labeled frame (Arg), and dispatch on that tag downstream.
//   - Broadcast a group of inputs to one shape while deriving row and column
//     labels per axis from a configurable Policy.
//   - Provide the flexible (broadcast-aware) element accessors used by kernels
//     on operands that were kept raw instead of materialized.
//   - Unstack multi-level series into dense arrays and square tables.
//
// Determinism:
//   - Labels are derived in argument order; sorted-unique values use core.Compare.
//
// Errors:
//   - core.ErrShapeMismatch for incompatible shapes or label lengths.
//   - core.ErrTypeMismatch for unsupported ranks, non-labeled label sources
//     and violated strict policies.
package reshape

import (
	"fmt"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/frame"
)

// Kind tags an Arg.
type Kind int

const (
	// KindScalar is a bare number.
	KindScalar Kind = iota
	// KindRaw is an unlabeled array.
	KindRaw
	// KindLabeled is a series or data frame.
	KindLabeled
)

// String names the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindRaw:
		return "raw"
	case KindLabeled:
		return "labeled"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Arg is one broadcastable input or output.
type Arg struct {
	kind   Kind
	scalar float64
	raw    *array.Array
	frame  *frame.Frame
}

// Scalar wraps a number.
func Scalar(v float64) Arg { return Arg{kind: KindScalar, scalar: v} }

// Raw wraps an unlabeled array.
func Raw(a *array.Array) Arg { return Arg{kind: KindRaw, raw: a} }

// Labeled wraps a series or data frame.
func Labeled(f *frame.Frame) Arg { return Arg{kind: KindLabeled, frame: f} }

// Kind returns the tag.
func (a Arg) Kind() Kind { return a.kind }

// IsLabeled reports whether a carries labels.
func (a Arg) IsLabeled() bool { return a.kind == KindLabeled }

// Frame returns the labeled value (nil unless KindLabeled).
func (a Arg) Frame() *frame.Frame { return a.frame }

// Float returns the scalar value (0 unless KindScalar).
func (a Arg) Float() float64 { return a.scalar }

// Array returns the values as an array; a scalar is 0-d.
func (a Arg) Array() *array.Array {
	switch a.kind {
	case KindRaw:
		return a.raw
	case KindLabeled:
		return a.frame.Values()
	}

	return array.Scalar(a.scalar)
}

// Ndim returns the rank of the values.
func (a Arg) Ndim() int { return a.Array().Ndim() }

// Shape returns the shape of the values.
func (a Arg) Shape() []int { return a.Array().Shape() }

// String renders the variant.
func (a Arg) String() string {
	switch a.kind {
	case KindRaw:
		return "Raw(" + a.raw.String() + ")"
	case KindLabeled:
		return "Labeled(" + a.frame.String() + ")"
	}

	return fmt.Sprintf("Scalar(%g)", a.scalar)
}
