package svc

import (
	"alpha-rank/internal/config"
	"alpha-rank/internal/job"
	"alpha-rank/internal/pkg/utils"
)

type ServiceContext struct {
	Cfg      *config.Config
	Executor *utils.ParallelExecutor
	Metrics  *job.Metrics
}

func NewServiceContext(c *config.Config) *ServiceContext {
	// 初始化并行执行器
	executor, err := utils.NewParallelExecutor(c.Executor.WorkerCount)
	if err != nil {
		panic(err)
	}

	return &ServiceContext{
		Cfg:      c,
		Executor: executor,
		Metrics:  job.NewMetrics(),
	}
}

func (s *ServiceContext) Close() {
	s.Executor.Close()
}
