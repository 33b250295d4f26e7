package algo

import (
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// 每个并行任务至少处理的截面行数，避免任务过碎
const minRowsPerTask = 64

type rankPair[T constraints.Float] struct {
	key OrderedFloat[T]
	col int
}

// Rank 截面排名：input 按 groupSize 行 × groups 列排布（组下标变化最快），
// 每一行的 groups 个值按升序赋予 1..groups 的排名，相等值保持原有列顺序。
// 分组数小于 2 时没有截面可言，退化为不限窗口的时间序列排名。
func Rank[T constraints.Float](ctx *Context, r, input []T) error {
	if err := checkLength(len(r), len(input)); err != nil {
		return err
	}

	groups := ctx.Groups()
	if groups < 2 {
		return TsRank(ctx, r, input, 0)
	}

	groupSize := len(r) / groups
	// 不足一行的尾部不参与排名
	fill(r[groupSize*groups:], T(math.NaN()))

	exec := ctx.Executor()
	batch := max(minRowsPerTask, groupSize/exec.Workers())
	exec.ForEachRange(groupSize, batch, func(lo, hi int) {
		pairs := make([]rankPair[T], groups)
		for j := lo; j < hi; j++ {
			off := j * groups
			rankRow(r[off:off+groups], input[off:off+groups], pairs)
		}
	})
	return nil
}

// rankRow 对一行截面值排序并写回排名，pairs 为复用的临时空间
func rankRow[T constraints.Float](r, x []T, pairs []rankPair[T]) {
	for i, v := range x {
		pairs[i] = rankPair[T]{key: Of(v), col: i}
	}

	slices.SortStableFunc(pairs, func(a, b rankPair[T]) int {
		return a.key.Cmp(b.key)
	})

	for pos, p := range pairs {
		r[p.col] = T(pos + 1)
	}
}
