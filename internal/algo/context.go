package algo

import "alpha-rank/internal/pkg/utils"

type Flag uint32

const (
	// FlagStrictlyCycle 窗口未填满 periods 个值前不输出排名
	FlagStrictlyCycle Flag = 1 << iota
)

// Context 算子执行上下文，调用期间只读，可被所有分区共享
type Context struct {
	groups   int
	start    int
	flags    Flag
	executor *utils.ParallelExecutor
}

type ContextOption func(*Context)

// WithGroups 设置分组（标的）数量
func WithGroups(groups int) ContextOption {
	return func(c *Context) {
		c.groups = groups
	}
}

// WithStart 设置每个分块开头跳过的预热长度
func WithStart(start int) ContextOption {
	return func(c *Context) {
		c.start = start
	}
}

func WithFlags(flags Flag) ContextOption {
	return func(c *Context) {
		c.flags = flags
	}
}

func WithExecutor(exec *utils.ParallelExecutor) ContextOption {
	return func(c *Context) {
		c.executor = exec
	}
}

func NewContext(opts ...ContextOption) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) Groups() int {
	return c.groups
}

func (c *Context) IsStrictlyCycle() bool {
	return c.flags&FlagStrictlyCycle != 0
}

// ChunkSize 单个并行分块的元素个数。
// 多分组时每组是一段连续序列；单组时整段序列为一个分块。
func (c *Context) ChunkSize(total int) int {
	size := total
	if c.groups > 1 {
		size = total / c.groups
	}
	return max(size, 1)
}

// Start 长度为 chunkLen 的分块中第一个参与计算的位置
func (c *Context) Start(chunkLen int) int {
	return min(max(c.start, 0), chunkLen)
}

func (c *Context) Executor() *utils.ParallelExecutor {
	if c.executor != nil {
		return c.executor
	}
	return utils.DefaultExecutor()
}
