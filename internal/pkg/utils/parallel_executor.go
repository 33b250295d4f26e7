package utils

import (
	"alpha-rank/internal/pkg/logger"
	"errors"
	"fmt"
	"github.com/panjf2000/ants/v2"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

const rejectLogInterval = 3 * time.Second

// ParallelExecutor 基于 ants 协程池的 fork-join 执行器。
// ForEach 提交的各分区互不依赖，调用方在所有分区完成后才返回。
type ParallelExecutor struct {
	pool          *ants.Pool
	lastRejectLog atomic.Int64
}

// taskPanic 记录第一个失败分区的 panic，供调用方协程重新抛出
type taskPanic struct {
	value interface{}
	stack []byte
}

var (
	defaultExecutorOnce sync.Once
	defaultExecutor     *ParallelExecutor
)

// NewParallelExecutor 创建执行器，workerNum <= 0 时使用 CPU 核数。
// 池为非阻塞模式：池满时任务由提交者直接执行，避免嵌套提交死锁。
func NewParallelExecutor(workerNum int) (*ParallelExecutor, error) {
	if workerNum <= 0 {
		workerNum = runtime.NumCPU()
	}

	pool, err := ants.NewPool(
		workerNum,
		ants.WithNonblocking(true),
		// 任务自身已 recover，这里只兜底 ants 内部的异常
		ants.WithPanicHandler(func(r interface{}) {
			logger.Errorf("[ParallelExecutor] panic in worker: %v\n%s", r, debug.Stack())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create ants pool failed: %w", err)
	}
	return &ParallelExecutor{pool: pool}, nil
}

// DefaultExecutor 进程级共享执行器，按需创建
func DefaultExecutor() *ParallelExecutor {
	defaultExecutorOnce.Do(func() {
		exec, err := NewParallelExecutor(0)
		if err != nil {
			logger.Errorf("[ParallelExecutor] init default executor failed, fallback to inline: %v", err)
			return
		}
		defaultExecutor = exec
	})
	return defaultExecutor
}

// Workers 返回池容量，nil 执行器视为单线程
func (exec *ParallelExecutor) Workers() int {
	if exec == nil || exec.pool == nil {
		return 1
	}
	return exec.pool.Cap()
}

// ForEach 对 [0, n) 的每个分区执行 fn，阻塞直到全部完成。
// 任一分区 panic 时，等待其余分区结束后在调用方协程重新 panic，不返回部分结果。
func (exec *ParallelExecutor) ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	if n == 1 || exec == nil || exec.pool == nil || exec.pool.IsClosed() {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var (
		wg       sync.WaitGroup
		panicked atomic.Pointer[taskPanic]
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		idx := i
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicked.CompareAndSwap(nil, &taskPanic{value: r, stack: debug.Stack()})
				}
			}()
			fn(idx)
		}

		if err := exec.pool.Submit(task); err != nil {
			// 池满或已关闭：在当前协程执行
			if !errors.Is(err, ants.ErrPoolOverload) && ShouldLog(&exec.lastRejectLog, rejectLogInterval) {
				logger.Warnf("[ParallelExecutor] submit rejected, run inline: %v", err)
			}
			task()
		}
	}
	wg.Wait()

	if p := panicked.Load(); p != nil {
		logger.Errorf("[ParallelExecutor] panic in task: %v\n%s", p.value, p.stack)
		panic(p.value)
	}
}

// ForEachRange 将 [0, n) 切成不超过 batch 大小的连续区间并行处理
func (exec *ParallelExecutor) ForEachRange(n, batch int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if batch <= 0 {
		batch = n
	}

	parts := (n + batch - 1) / batch
	exec.ForEach(parts, func(p int) {
		lo := p * batch
		fn(lo, min(lo+batch, n))
	})
}

// Close 释放协程池
func (exec *ParallelExecutor) Close() {
	if exec == nil || exec.pool == nil {
		return
	}
	exec.pool.Release()
}
