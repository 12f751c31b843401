package cryptox

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for range 200 {
		code, expires, err := GenerateCode(now)
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.Equal(t, now.Add(10*time.Minute), expires)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)

		seen[code] = struct{}{}
	}

	// 200 draws from 900k values; a handful of collisions at most.
	require.Greater(t, len(seen), 190)
}
