package config

import (
	"alpha-rank/internal/pkg/logger"
	"errors"
	"fmt"
)

const (
	OpTsRank = "ts_rank" // 时间序列排名
	OpRank   = "rank"    // 截面排名
)

type MonitorConfig struct {
	Port int `json:"port" yaml:"port"` // 监控端口，0 表示关闭
}

type LogConfig struct {
	Format   string `json:"format" yaml:"format"`     // 日志格式，可选 "console"（开发调试）或 "json"（结构化，推荐生产使用）
	LogDir   string `json:"log_dir" yaml:"log_dir"`   // 日志文件目录，为空时输出到 stdout
	Level    string `json:"level" yaml:"level"`       // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress" yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

type ExecutorConfig struct {
	WorkerCount int `json:"worker_count" yaml:"worker_count"` // 并行协程数，0 表示 CPU 核数
}

// RankContextConfig 算子执行上下文
type RankContextConfig struct {
	Start         int  `json:"start" yaml:"start"`                   // 每个分块开头的预热长度
	StrictlyCycle bool `json:"strictly_cycle" yaml:"strictly_cycle"` // 窗口未填满时不输出
}

type TaskConfig struct {
	Name    string `json:"name" yaml:"name"`       // 输出文件名（不含扩展名）
	Op      string `json:"op" yaml:"op"`           // ts_rank / rank
	Periods int    `json:"periods" yaml:"periods"` // 仅 ts_rank 使用，0 表示不限窗口
}

type JobConfig struct {
	Input     string       `json:"input" yaml:"input"`           // 输入 csv，行为时间、列为标的
	OutputDir string       `json:"output_dir" yaml:"output_dir"` // 每个任务输出一个 csv
	Tasks     []TaskConfig `json:"tasks" yaml:"tasks"`
}

type Config struct {
	Monitor  MonitorConfig     `json:"monitor" yaml:"monitor"`   // 监控配置
	LogConf  LogConfig         `json:"logger" yaml:"logger"`     // 日志配置
	Executor ExecutorConfig    `json:"executor" yaml:"executor"` // 并行执行配置
	Context  RankContextConfig `json:"context" yaml:"context"`   // 算子上下文
	Job      JobConfig         `json:"job" yaml:"job"`           // 任务配置
}

func (c *Config) Validate() error {
	if c.Monitor.Port < 0 || c.Monitor.Port > 65535 {
		return fmt.Errorf("monitor.port out of range: %d", c.Monitor.Port)
	}
	if c.Executor.WorkerCount < 0 {
		return fmt.Errorf("executor.worker_count must be >= 0, got %d", c.Executor.WorkerCount)
	}
	if c.Context.Start < 0 {
		return fmt.Errorf("context.start must be >= 0, got %d", c.Context.Start)
	}
	if c.Job.Input == "" {
		return errors.New("job.input is required")
	}
	if c.Job.OutputDir == "" {
		return errors.New("job.output_dir is required")
	}
	if len(c.Job.Tasks) == 0 {
		return errors.New("job.tasks is empty")
	}

	names := make(map[string]struct{}, len(c.Job.Tasks))
	for i, t := range c.Job.Tasks {
		if t.Name == "" {
			return fmt.Errorf("job.tasks[%d].name is required", i)
		}
		if _, dup := names[t.Name]; dup {
			return fmt.Errorf("job.tasks[%d].name duplicated: %s", i, t.Name)
		}
		names[t.Name] = struct{}{}

		switch t.Op {
		case OpTsRank:
			if t.Periods < 0 {
				return fmt.Errorf("job.tasks[%d].periods must be >= 0, got %d", i, t.Periods)
			}
		case OpRank:
		default:
			return fmt.Errorf("job.tasks[%d].op unknown: %q", i, t.Op)
		}
	}
	return nil
}
