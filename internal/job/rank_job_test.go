package job

import (
	"alpha-rank/internal/config"
	"alpha-rank/internal/dataset"
	"alpha-rank/internal/pkg/utils"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const panelCSV = `AAA,BBB,CCC
3,30,1
1,10,2
2,20,3
5,50,4
4,40,5
`

func newTestJob(t *testing.T, cfg *config.Config) (*RankJob, *Metrics) {
	t.Helper()
	exec, err := utils.NewParallelExecutor(2)
	require.NoError(t, err)
	t.Cleanup(exec.Close)

	m := NewMetrics()
	require.NoError(t, m.Register(prometheus.NewRegistry()))
	return NewRankJob(cfg, exec, m), m
}

func writeInput(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "panel.csv")
	require.NoError(t, os.WriteFile(input, []byte(panelCSV), 0o644))
	return input, filepath.Join(dir, "out")
}

func TestRankJobRunsAllTasks(t *testing.T) {
	input, outDir := writeInput(t)
	cfg := &config.Config{
		Job: config.JobConfig{
			Input:     input,
			OutputDir: outDir,
			Tasks: []config.TaskConfig{
				{Name: "ts3", Op: config.OpTsRank, Periods: 3},
				{Name: "xs", Op: config.OpRank},
			},
		},
	}
	j, m := newTestJob(t, cfg)

	j.Start()
	require.NoError(t, j.Err())
	assert.True(t, j.IsReady())
	<-j.Done()

	ts, err := dataset.ReadCSV(filepath.Join(outDir, "ts3.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB", "CCC"}, ts.Columns)
	// 第一列 [3,1,2,5,4] 窗口 3；第三列单调递增
	for row, want := range []float64{1, 1, 2, 3, 2} {
		assert.Equal(t, want, ts.At(row, 0))
		assert.Equal(t, want, ts.At(row, 1))
	}
	for row, want := range []float64{1, 2, 3, 3, 3} {
		assert.Equal(t, want, ts.At(row, 2))
	}

	xs, err := dataset.ReadCSV(filepath.Join(outDir, "xs.csv"))
	require.NoError(t, err)
	for row, want := range [][]float64{{2, 3, 1}, {1, 3, 2}, {1, 3, 2}, {2, 3, 1}, {1, 3, 2}} {
		for col := range want {
			assert.Equalf(t, want[col], xs.At(row, col), "row %d col %d", row, col)
		}
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasksTotal.WithLabelValues(config.OpTsRank, StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasksTotal.WithLabelValues(config.OpRank, StatusSuccess)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.rowsProcessed))
}

func TestRankJobStrictlyCycleAndWarmUp(t *testing.T) {
	input, outDir := writeInput(t)
	cfg := &config.Config{
		Context: config.RankContextConfig{Start: 1, StrictlyCycle: true},
		Job: config.JobConfig{
			Input:     input,
			OutputDir: outDir,
			Tasks:     []config.TaskConfig{{Name: "ts2", Op: config.OpTsRank, Periods: 2}},
		},
	}
	j, _ := newTestJob(t, cfg)

	panel, err := dataset.ReadCSV(input)
	require.NoError(t, err)
	result, err := j.RunTask(panel, cfg.Job.Tasks[0])
	require.NoError(t, err)

	// AAA = [3,1,2,5,4]，跳过第 0 行，第 1 行窗口未满
	assert.True(t, math.IsNaN(result.At(0, 0)))
	assert.True(t, math.IsNaN(result.At(1, 0)))
	assert.Equal(t, []float64{2, 2, 1}, []float64{result.At(2, 0), result.At(3, 0), result.At(4, 0)})
}

func TestRankJobMissingInput(t *testing.T) {
	cfg := &config.Config{
		Job: config.JobConfig{
			Input:     filepath.Join(t.TempDir(), "missing.csv"),
			OutputDir: t.TempDir(),
			Tasks:     []config.TaskConfig{{Name: "xs", Op: config.OpRank}},
		},
	}
	j, _ := newTestJob(t, cfg)

	j.Start()
	assert.ErrorIs(t, j.Err(), os.ErrNotExist)
	assert.True(t, j.IsReady())
}

func TestRankJobUnknownOpCountsFailure(t *testing.T) {
	input, outDir := writeInput(t)
	cfg := &config.Config{Job: config.JobConfig{Input: input, OutputDir: outDir}}
	j, m := newTestJob(t, cfg)

	panel, err := dataset.ReadCSV(input)
	require.NoError(t, err)
	_, err = j.RunTask(panel, config.TaskConfig{Name: "bad", Op: "median"})
	assert.ErrorContains(t, err, "unknown op")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasksTotal.WithLabelValues("median", StatusFailure)))
}

func TestRankJobStopBeforeStart(t *testing.T) {
	input, outDir := writeInput(t)
	cfg := &config.Config{
		Job: config.JobConfig{
			Input:     input,
			OutputDir: outDir,
			Tasks:     []config.TaskConfig{{Name: "xs", Op: config.OpRank}},
		},
	}
	j, _ := newTestJob(t, cfg)

	j.Stop()
	j.Start()
	assert.ErrorIs(t, j.Err(), ErrStopped)
	_, err := os.Stat(filepath.Join(outDir, "xs.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestMetricsRegisterTwiceFails(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
	assert.Len(t, m.Collectors(), 3)
}
