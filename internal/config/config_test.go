package config

import (
	"alpha-rank/internal/pkg/configloader"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Job: JobConfig{
			Input:     "in.csv",
			OutputDir: "out",
			Tasks: []TaskConfig{
				{Name: "ts", Op: OpTsRank, Periods: 5},
				{Name: "xs", Op: OpRank},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Monitor.Port = 70000 }, "monitor.port"},
		{"negative workers", func(c *Config) { c.Executor.WorkerCount = -1 }, "worker_count"},
		{"negative start", func(c *Config) { c.Context.Start = -2 }, "context.start"},
		{"no input", func(c *Config) { c.Job.Input = "" }, "job.input"},
		{"no output", func(c *Config) { c.Job.OutputDir = "" }, "job.output_dir"},
		{"no tasks", func(c *Config) { c.Job.Tasks = nil }, "job.tasks is empty"},
		{"unnamed task", func(c *Config) { c.Job.Tasks[0].Name = "" }, "name is required"},
		{"duplicated task", func(c *Config) { c.Job.Tasks[1].Name = "ts" }, "duplicated"},
		{"unknown op", func(c *Config) { c.Job.Tasks[1].Op = "zscore" }, "op unknown"},
		{"negative periods", func(c *Config) { c.Job.Tasks[0].Periods = -1 }, "periods"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "etc", "alpha-rank", "test.yaml")

	var c Config
	require.NoError(t, configloader.LoadConfig(path, &c))
	assert.Equal(t, 9100, c.Monitor.Port)
	assert.Equal(t, "console", c.LogConf.ToLogOption().Format)
	require.Len(t, c.Job.Tasks, 3)
	assert.Equal(t, OpRank, c.Job.Tasks[2].Op)
}
