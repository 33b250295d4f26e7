package main

import (
	"alpha-rank/internal/config"
	"alpha-rank/internal/handler"
	"alpha-rank/internal/job"
	"alpha-rank/internal/pkg/configloader"
	"alpha-rank/internal/pkg/logger"
	"alpha-rank/internal/pkg/rest"
	"alpha-rank/internal/svc"
	"flag"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

var configFile = flag.String("f", "etc/alpha-rank/test.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			logger.Sync()
			os.Exit(2)
		}
	}()

	flag.Parse()
	logger.Infof("Loading config from %s", *configFile)

	// 加载配置
	var c config.Config
	if err := configloader.LoadConfig(*configFile, &c); err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}

	// 初始化 zap 日志
	logger.InitLogger(c.LogConf.ToLogOption())
	logx.SetWriter(logger.ZapWriter{})

	// 初始化依赖注入上下文
	svcCtx := svc.NewServiceContext(&c)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := svcCtx.Metrics.Register(registry); err != nil {
		panic(fmt.Sprintf("指标注册失败: %v", err))
	}

	// 构造 go-zero ServiceGroup 管理服务
	sg := zerosvc.NewServiceGroup()
	rankJob := job.NewRankJob(&c, svcCtx.Executor, svcCtx.Metrics)
	sg.Add(rankJob)
	if c.Monitor.Port > 0 {
		sg.Add(initializeRestServer(&c, registry, rankJob))
	}

	go waitForSignal(sg, rankJob)

	// 任务执行完毕后 Start 返回
	logger.Infof("alpha-rank starting, tasks=%d, workers=%d", len(c.Job.Tasks), svcCtx.Executor.Workers())
	sg.Start()
	sg.Stop()
	svcCtx.Close()

	if err := rankJob.Err(); err != nil {
		logger.Errorf("alpha-rank failed: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("alpha-rank finished")
	logger.Sync()
}

func waitForSignal(sg *zerosvc.ServiceGroup, rankJob *job.RankJob) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		logger.Info("Shutting down services...")
		sg.Stop()
	case <-rankJob.Done():
	}
}

func initializeRestServer(c *config.Config, gatherer prometheus.Gatherer, rankJob *job.RankJob) *rest.SimpleRestServer {
	routes := map[string]http.HandlerFunc{
		"/healthz":          handler.HealthCheck(rankJob, false),
		"/health/liveness":  handler.HealthCheck(rankJob, false),
		"/health/readiness": handler.HealthCheck(rankJob, true),
	}
	return rest.NewSimpleRestServer(c.Monitor.Port, gatherer, routes)
}
