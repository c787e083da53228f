// SPDX-License-Identifier: MIT

// Package vectra is a broadcasting and indexing core for labeled numeric
// arrays: the plumbing under vectorized backtesting and signal research.
//
// What is in the box?
//
//   - Label indexes: flat and multi-level, with stacking, combining,
//     de-duplication, alignment and symmetric cross-products.
//   - Reshape & broadcast: NumPy-style shape rules extended with label
//     policies for rows and columns, read-only broadcast views, flexible
//     (per-row / per-column) parameter lookup and unstacking.
//   - Array wrapper: remembers index, columns, dimensionality and sampling
//     frequency so raw results can be rebuilt into series and frames, and
//     reductions into scalars, series or frames.
//   - Grouping: column grouping by level, labels or values, with counts,
//     contiguity checks and consistent sub-selection.
//   - Indexing protocol: positional (ILoc), label (Loc), item, cross-section
//     and parameter-mapper selection applied to every attached object at once.
//   - Combine & apply: run a kernel n times or fold it over operands,
//     optionally on a bounded worker pool, and concatenate the results.
//
// Packages:
//
//	core/     - label values, dtypes, sentinel errors
//	config/   - broadcasting defaults (YAML, environment, validation)
//	array/    - strided float64 storage with broadcast views
//	labels/   - Index, Level and the index operations
//	frame/    - series and data frames
//	reshape/  - rank coercion, broadcasting, flex access, unstacking
//	wrapper/  - Wrapper, Reduced, frequency parsing
//	grouping/ - By, Grouper, group ids and counts
//	indexing/ - Key, ILoc/Loc/GetItem/XS, Composite, ParamLoc
//	combine/  - apply/combine dispatch and its labeled forms
//
// Quick example:
//
//	sr, _ := frame.SeriesOf([]float64{1, 2, 3}, labels.Of("x", "y", "z"), "a")
//	out, _ := reshape.Broadcast([]reshape.Arg{reshape.Labeled(sr), reshape.Scalar(10)})
//	// out[1] is a read-only (3,) view labeled like sr
//
//	go get github.com/katalvlaran/vectra
package vectra
