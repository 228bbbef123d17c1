package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("password")
	require.NoError(t, err)
	require.NotEqual(t, "password", h)

	require.True(t, CheckPassword(h, "password"))
	require.False(t, CheckPassword(h, "wrong"))
}

func TestDummyHashNeverMatches(t *testing.T) {
	require.False(t, CheckPassword(DummyHash, "password"))
	require.False(t, CheckPassword(DummyHash, ""))
}
