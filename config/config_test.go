// SPDX-License-Identifier: MIT

package config_test

import (
	"testing"

	"github.com/katalvlaran/vectra/config"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := config.Default()
	require.NoError(t, s.Validate())
	require.Equal(t, "strict", s.Broadcasting.IndexFrom)
	require.Equal(t, "stack", s.Broadcasting.ColumnsFrom)
	require.True(t, s.Broadcasting.DropDuplicates)
	require.True(t, s.Broadcasting.DropRedundant)
	require.Equal(t, "first", s.Broadcasting.Keep)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VECTRA_BROADCASTING_INDEX_FROM", "stack")
	t.Setenv("VECTRA_BROADCASTING_KEEP", "last")
	t.Setenv("VECTRA_BROADCASTING_DROP_REDUNDANT", "false")

	s, err := config.FromEnv("")
	require.NoError(t, err)
	require.Equal(t, "stack", s.Broadcasting.IndexFrom)
	require.Equal(t, "stack", s.Broadcasting.ColumnsFrom)
	require.Equal(t, "last", s.Broadcasting.Keep)
	require.False(t, s.Broadcasting.DropRedundant)
	require.True(t, s.Broadcasting.DropDuplicates)
}

func TestFromEnvRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("TESTX_BROADCASTING_COLUMNS_FROM", "sideways")

	_, err := config.FromEnv("TESTX")
	require.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestFromYAML(t *testing.T) {
	s, err := config.FromYAML([]byte("broadcasting:\n  keep: last\n  drop_duplicates: false\n"))
	require.NoError(t, err)
	require.Equal(t, "last", s.Broadcasting.Keep)
	require.False(t, s.Broadcasting.DropDuplicates)
	require.Equal(t, config.DefaultIndexFrom, s.Broadcasting.IndexFrom)

	_, err = config.FromYAML([]byte("broadcasting:\n  keep: middle\n"))
	require.ErrorIs(t, err, config.ErrInvalidSettings)

	_, err = config.FromYAML([]byte("broadcasting: [1, 2"))
	require.Error(t, err)
}
