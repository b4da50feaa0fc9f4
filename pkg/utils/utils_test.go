package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	debug, err := NewLogger(true)
	require.NoError(t, err)
	require.NotNil(t, debug)
	_ = debug.Sync()

	prod, err := NewLogger(false)
	require.NoError(t, err)
	require.NotNil(t, prod)
	_ = prod.Sync()
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "hello", Truncate("hello", 10))
	require.Equal(t, "hello...", Truncate("hello world", 5))
	require.Equal(t, "x", Truncate("x", 0))
}
