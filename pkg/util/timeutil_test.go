package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	require.Equal(t, 3, RoundHalfUp(2.5))
	require.Equal(t, 2, RoundHalfUp(2.49))
	require.Equal(t, -2, RoundHalfUp(-2.5))
	require.Equal(t, -3, RoundHalfUp(-2.51))
	require.Equal(t, 0, RoundHalfUp(-0.5))
}

func TestNowUTC(t *testing.T) {
	require.Equal(t, "UTC", NowUTC().Location().String())
}
