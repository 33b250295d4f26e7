package job

import (
	"alpha-rank/internal/algo"
	"alpha-rank/internal/config"
	"alpha-rank/internal/dataset"
	"alpha-rank/internal/pkg/logger"
	"alpha-rank/internal/pkg/utils"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync/atomic"
	"time"
)

var ErrStopped = errors.New("rank job stopped")

// RankJob 读取面板数据，依次执行配置中的排名任务并写出结果。
// 实现 go-zero service.Service，由 ServiceGroup 管理生命周期。
type RankJob struct {
	cfg      *config.Config
	executor *utils.ParallelExecutor
	metrics  *Metrics

	ready   atomic.Bool
	stopped atomic.Bool
	done    chan struct{}
	err     error
}

func NewRankJob(cfg *config.Config, executor *utils.ParallelExecutor, metrics *Metrics) *RankJob {
	return &RankJob{
		cfg:      cfg,
		executor: executor,
		metrics:  metrics,
		done:     make(chan struct{}),
	}
}

// Start 同步执行全部任务，结果通过 Err 获取
func (j *RankJob) Start() {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[RankJob] panic: %v\n%s", r, debug.Stack())
			j.err = fmt.Errorf("panic: %v", r)
		}
		j.ready.Store(true)
	}()

	j.err = j.Run()
}

// Stop 请求停止，当前任务完成后生效
func (j *RankJob) Stop() {
	if j.stopped.CompareAndSwap(false, true) {
		logger.Infof("[RankJob] stop requested")
	}
}

func (j *RankJob) IsReady() bool {
	return j.ready.Load()
}

// Done 在 Start 返回后关闭
func (j *RankJob) Done() <-chan struct{} {
	return j.done
}

func (j *RankJob) Err() error {
	return j.err
}

func (j *RankJob) Run() error {
	jc := j.cfg.Job
	panel, err := dataset.ReadCSV(jc.Input)
	if err != nil {
		return err
	}
	logger.Infof("[RankJob] loaded %s, rows=%d, cols=%d", jc.Input, panel.Rows, panel.Cols())

	if err := os.MkdirAll(jc.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s failed: %w", jc.OutputDir, err)
	}

	for _, task := range jc.Tasks {
		if j.stopped.Load() {
			return ErrStopped
		}

		result, err := j.RunTask(panel, task)
		if err != nil {
			return fmt.Errorf("task %s failed: %w", task.Name, err)
		}

		path := filepath.Join(jc.OutputDir, task.Name+".csv")
		if err := dataset.WriteCSV(path, result); err != nil {
			return fmt.Errorf("task %s failed: %w", task.Name, err)
		}
		logger.Infof("[RankJob] task %s written to %s", task.Name, path)
	}
	return nil
}

// RunTask 对面板执行单个排名任务，返回与输入同形状的排名面板
func (j *RankJob) RunTask(panel *dataset.Panel, task config.TaskConfig) (result *dataset.Panel, err error) {
	start := time.Now()
	defer func() {
		j.metrics.ObserveTask(task.Op, time.Since(start), panel.Rows, err)
	}()

	ctx := j.newContext(panel.Cols())
	switch task.Op {
	case config.OpTsRank:
		// 时间序列排名：每个标的的序列连续存放，一个标的为一个分块
		data := panel.ColumnMajor()
		out := make([]float64, len(data))
		if err = algo.TsRank(ctx, out, data, task.Periods); err != nil {
			return nil, err
		}
		result, err = panel.FromColumnMajor(out)

	case config.OpRank:
		out := make([]float64, len(panel.Values))
		if err = algo.Rank(ctx, out, panel.Values); err != nil {
			return nil, err
		}
		result, err = panel.WithValues(out)

	default:
		err = fmt.Errorf("unknown op %q", task.Op)
	}
	if err != nil {
		return nil, err
	}

	logger.Infof("[RankJob] task %s done, op=%s, periods=%d, rows=%d, cols=%d, cost=%v, digest=%016x",
		task.Name, task.Op, task.Periods, panel.Rows, panel.Cols(), time.Since(start), dataset.Digest(result.Values))
	return result, nil
}

func (j *RankJob) newContext(groups int) *algo.Context {
	var flags algo.Flag
	if j.cfg.Context.StrictlyCycle {
		flags |= algo.FlagStrictlyCycle
	}

	return algo.NewContext(
		algo.WithGroups(groups),
		algo.WithStart(j.cfg.Context.Start),
		algo.WithFlags(flags),
		algo.WithExecutor(j.executor),
	)
}
