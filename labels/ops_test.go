// SPDX-License-Identifier: MIT

package labels_test

import (
	"testing"

	"github.com/katalvlaran/vectra/config"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/labels"
	"github.com/stretchr/testify/require"
)

var (
	idxI2 = labels.New([]any{"x2", "y2", "z2"}, "i2")
	idxI4 = labels.New([]any{"x4", "y4", "z4"}, "i4")
)

// TestRepeatTile covers default elision and named/multi inputs.
func TestRepeatTile(t *testing.T) {
	t.Parallel()
	r, err := labels.Repeat(labels.New([]any{1, 2, 3}, "i"), 3)
	require.NoError(t, err)
	require.Equal(t, []any{1, 1, 1, 2, 2, 2, 3, 3, 3}, r.Values())
	require.Equal(t, "i", r.Name())

	r, err = labels.Repeat(labels.Of(0), 3)
	require.NoError(t, err)
	require.True(t, r.Equal(labels.Range(3)))

	tl, err := labels.Tile(labels.New([]any{1, 2, 3}, "i"), 2)
	require.NoError(t, err)
	require.Equal(t, []any{1, 2, 3, 1, 2, 3}, tl.Values())

	tl, err = labels.Tile(multiI(t), 2)
	require.NoError(t, err)
	require.Equal(t, 6, tl.Len())
	require.Equal(t, []any{"i7", "i8"}, tl.Names())

	_, err = labels.Repeat(idxI2, -1)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

// TestStackDuplicates checks keep=first/last and the disabled path.
func TestStackDuplicates(t *testing.T) {
	t.Parallel()
	in := []*labels.Index{idxI2, idxI4, idxI2}

	s, err := labels.Stack(in, labels.WithDropDuplicates(false))
	require.NoError(t, err)
	require.Equal(t, []any{"i2", "i4", "i2"}, s.Names())

	s, err = labels.Stack(in)
	require.NoError(t, err)
	require.Equal(t, []any{"i2", "i4"}, s.Names())

	s, err = labels.Stack(in, labels.WithKeep(labels.KeepLast))
	require.NoError(t, err)
	require.Equal(t, []any{"i4", "i2"}, s.Names())

	_, err = labels.Stack([]*labels.Index{idxI2, labels.Of(1)})
	require.ErrorIs(t, err, core.ErrShapeMismatch)

	require.Panics(t, func() { labels.WithKeep("middle") })
}

// TestStackRedundant drops constant unnamed levels but never all of them.
func TestStackRedundant(t *testing.T) {
	t.Parallel()
	s, err := labels.Stack([]*labels.Index{labels.Of(1, 1), labels.Of(2, 3)})
	require.NoError(t, err)
	require.False(t, s.IsMulti())
	require.Equal(t, []any{2, 3}, s.Values())

	s, err = labels.Stack([]*labels.Index{labels.Of(1, 1), labels.Of(2, 3)}, labels.WithDropRedundant(false))
	require.NoError(t, err)
	require.True(t, s.IsMulti())
	require.Equal(t, 2, s.NLevels())

	// named ranges survive
	s, err = labels.Stack([]*labels.Index{labels.New([]any{0, 1}, "r"), labels.Range(2)})
	require.NoError(t, err)
	require.Equal(t, "r", s.Name())

	settings := config.Default().Broadcasting
	settings.DropDuplicates = false
	settings.DropRedundant = false
	s, err = labels.Stack([]*labels.Index{idxI2, idxI2}, labels.WithSettings(settings))
	require.NoError(t, err)
	require.Equal(t, 2, s.NLevels())
}

// TestCombine builds Cartesian products.
func TestCombine(t *testing.T) {
	t.Parallel()
	c, err := labels.Combine([]*labels.Index{labels.Of(1), labels.Of(2, 3)}, labels.WithDropRedundant(false))
	require.NoError(t, err)
	require.Equal(t, []any{core.Tuple{1, 2}, core.Tuple{1, 3}}, c.Values())

	c, err = labels.Combine([]*labels.Index{labels.Of(1), labels.Of(2, 3)})
	require.NoError(t, err)
	require.Equal(t, []any{2, 3}, c.Values())

	c, err = labels.Combine([]*labels.Index{labels.New([]any{1}, "i"), labels.Of(2, 3)})
	require.NoError(t, err)
	require.Equal(t, []any{"i", nil}, c.Names())

	c, err = labels.Combine([]*labels.Index{labels.Of(1, 2), labels.Of(3)})
	require.NoError(t, err)
	require.Equal(t, []any{1, 2}, c.Values())

	c, err = labels.Combine([]*labels.Index{idxI4, multiI(t)})
	require.NoError(t, err)
	require.Equal(t, 9, c.Len())
	require.Equal(t, []any{"i4", "i7", "i8"}, c.Names())
	require.Equal(t, core.Tuple{"x4", "y7", "y8"}, c.At(1))
	require.Equal(t, core.Tuple{"y4", "x7", "x8"}, c.At(3))
}

// TestLevelEdits covers drop, rename and select.
func TestLevelEdits(t *testing.T) {
	t.Parallel()
	m := multiI(t)

	d := labels.DropLevels(m, "i7")
	require.False(t, d.IsMulti())
	require.Equal(t, "i8", d.Name())

	d = labels.DropLevels(m, -1)
	require.Equal(t, "i7", d.Name())

	require.True(t, labels.DropLevels(m, "i7", "i8").Equal(m), "never drops every level")
	require.True(t, labels.DropLevels(m, "nope").Equal(m))
	require.True(t, labels.DropLevels(idxI2, "i2").Equal(idxI2))

	r := labels.RenameLevels(m, map[any]any{"i7": "f7"})
	require.Equal(t, []any{"f7", "i8"}, r.Names())
	r = labels.RenameLevels(idxI2, map[any]any{"i2": "f2"})
	require.Equal(t, "f2", r.Name())

	one, err := labels.SelectLevel(m, "i8")
	require.NoError(t, err)
	require.False(t, one.IsMulti())
	require.Equal(t, []any{"x8", "y8", "z8"}, one.Values())

	sel, err := labels.SelectLevels(m, "i8")
	require.NoError(t, err)
	require.True(t, sel.IsMulti())
	require.Equal(t, 1, sel.NLevels())

	_, err = labels.SelectLevel(m, "zz")
	require.ErrorIs(t, err, core.ErrLevelNotFound)
}

// TestDropRedundantLevels only acts on multi-indexes longer than one.
func TestDropRedundantLevels(t *testing.T) {
	t.Parallel()
	m, err := labels.FromArrays([][]any{{0, 1}, {"a", "a"}, {"x", "y"}})
	require.NoError(t, err)
	out := labels.DropRedundantLevels(m)
	require.Equal(t, []any{"x", "y"}, out.Values())

	single, err := labels.FromArrays([][]any{{"a"}, {"b"}})
	require.NoError(t, err)
	require.True(t, labels.DropRedundantLevels(single).Equal(single))
}

// TestAlignTo maps target labels back to source rows.
func TestAlignTo(t *testing.T) {
	t.Parallel()
	src := labels.New([]any{"a8", "b8"}, "c8")
	tgt, err := labels.FromArrays([][]any{{"a7", "a7", "c7", "c7"}, {"a8", "b8", "a8", "b8"}}, "c7", "c8")
	require.NoError(t, err)
	p, err := labels.AlignTo(src, tgt)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 0, 1}, p)

	p, err = labels.AlignTo(idxI2, idxI2)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, p)

	_, err = labels.AlignTo(labels.Of(1, 1), tgt)
	require.ErrorIs(t, err, core.ErrUnalignable)

	_, err = labels.AlignTo(labels.New([]any{"a8", "zz"}, "c8"), tgt)
	require.ErrorIs(t, err, core.ErrUnalignable)

	_, err = labels.AlignTo(labels.New([]any{"a8", "b8"}, "other"), tgt)
	require.ErrorIs(t, err, core.ErrUnalignable)
}

// TestPickLevels resolves required and optional level references.
func TestPickLevels(t *testing.T) {
	t.Parallel()
	m, err := labels.Stack([]*labels.Index{multiI(t), multiC(t)})
	require.NoError(t, err)

	req, opt, err := labels.PickLevels(m, []any{"c8", "c7", "i8", "i7"}, nil)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 1, 0}, req)
	require.Empty(t, opt)

	req, opt, err = labels.PickLevels(m, []any{nil, nil, nil, nil}, []any{nil})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, req)
	require.Equal(t, []int{-1}, opt)

	req, opt, err = labels.PickLevels(m, []any{nil, "c7", nil}, []any{"i7"})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, req)
	require.Equal(t, []int{0}, opt)

	_, _, err = labels.PickLevels(m, []any{"i8", "i8", "i8", "i8"}, nil)
	require.ErrorIs(t, err, core.ErrAmbiguousLevels)

	_, _, err = labels.PickLevels(m, []any{"c8", "c7", "i8", "i7"}, []any{"i7"})
	require.ErrorIs(t, err, core.ErrAmbiguousLevels)

	_, _, err = labels.PickLevels(m, []any{nil, nil}, nil)
	require.ErrorIs(t, err, core.ErrAmbiguousLevels)

	_, _, err = labels.PickLevels(m, []any{"zz"}, nil)
	require.ErrorIs(t, err, core.ErrLevelNotFound)
}
