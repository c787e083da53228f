// SPDX-License-Identifier: MIT
// Package: array
//
// Purpose:
//   - Provide the broadcasting element-wise kernel shared by Add/Subtract/
//     Multiply/Divide and by callers that pass their own binary function.
//
// Determinism & Performance:
//   - One C-order walk over the broadcast shape; operands are read through
//     zero-stride views, never materialized.
//   - Output is a fresh C-contiguous Float64 array.

package array

import (
	"github.com/katalvlaran/vectra/core"
)

// Binary broadcasts a and b against each other and returns fn(a, b) per element.
func Binary(a, b *Array, fn func(x, y float64) float64) (*Array, error) {
	if a == nil || b == nil {
		return nil, core.Errorf("Binary", core.ErrInvalidArgument, "nil operand")
	}
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, core.Errorf("Binary", err, "")
	}
	va, _ := a.BroadcastTo(shape...)
	vb, _ := b.BroadcastTo(shape...)
	out := Zeros(shape...)
	walk(shape, func(offs []int) {
		out.data[offs[2]] = fn(va.data[offs[0]], vb.data[offs[1]])
	}, view{va.strides, va.offset}, view{vb.strides, vb.offset}, view{out.strides, 0})

	return out, nil
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) (*Array, error) {
	return Binary(a, b, func(x, y float64) float64 { return x + y })
}

// Subtract returns a - b with broadcasting.
func Subtract(a, b *Array) (*Array, error) {
	return Binary(a, b, func(x, y float64) float64 { return x - y })
}

// Multiply returns a * b with broadcasting.
func Multiply(a, b *Array) (*Array, error) {
	return Binary(a, b, func(x, y float64) float64 { return x * y })
}

// Divide returns a / b with broadcasting (IEEE semantics, x/0 = ±Inf or NaN).
func Divide(a, b *Array) (*Array, error) {
	return Binary(a, b, func(x, y float64) float64 { return x / y })
}
