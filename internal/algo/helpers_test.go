package algo

import (
	"alpha-rank/internal/pkg/utils"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// assertRanks 比较排名结果，NaN 视为相等
func assertRanks[T ~float32 | ~float64](t *testing.T, want, got []T) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := float64(want[i]), float64(got[i])
		if math.IsNaN(w) {
			require.Truef(t, math.IsNaN(g), "pos %d: want NaN, got %v (all=%v)", i, g, got)
			continue
		}
		require.Equalf(t, w, g, "pos %d: want %v, got %v (all=%v)", i, w, g, got)
	}
}

func newTestExecutor(t *testing.T, workers int) *utils.ParallelExecutor {
	t.Helper()
	exec, err := utils.NewParallelExecutor(workers)
	require.NoError(t, err)
	t.Cleanup(exec.Close)
	return exec
}
