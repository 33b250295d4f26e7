package algo

import (
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

type rankEntry[T constraints.Float] struct {
	key   OrderedFloat[T]
	index int
}

// rankWindow 升序窗口。定位规则为从左到右找第一个不大于 key 的位置，
// NaN 与 ±Inf 混合时的比较并不自洽，二分查找会落到不同的位置。
type rankWindow[T constraints.Float] struct {
	entries []rankEntry[T]
}

func newRankWindow[T constraints.Float](periods int) *rankWindow[T] {
	return &rankWindow[T]{entries: make([]rankEntry[T], 0, max(periods, 0))}
}

func (w *rankWindow[T]) Len() int {
	return len(w.entries)
}

// search 返回第一个满足 key <= entries[i] 的位置，found 表示该位置与 key 相等
func (w *rankWindow[T]) search(key OrderedFloat[T]) (int, bool) {
	for i, e := range w.entries {
		switch key.Cmp(e.key) {
		case 1:
			continue
		case 0:
			return i, true
		default:
			return i, false
		}
	}
	return len(w.entries), false
}

// Insert 插入 key；已存在相等的 key 时保留原 key，只更新下标
func (w *rankWindow[T]) Insert(key OrderedFloat[T], index int) {
	i, found := w.search(key)
	if found {
		w.entries[i].index = index
		return
	}
	w.entries = slices.Insert(w.entries, i, rankEntry[T]{key: key, index: index})
}

// Delete 删除与 key 相等的项，找不到时不做任何事
func (w *rankWindow[T]) Delete(key OrderedFloat[T]) {
	if i, found := w.search(key); found {
		w.entries = slices.Delete(w.entries, i, i+1)
	}
}

// Position 返回第一个与 val 相等的 key 的位置（从 1 开始）。
// 找不到（NaN）时返回窗口长度。
func (w *rankWindow[T]) Position(val OrderedFloat[T]) int {
	for i, e := range w.entries {
		if e.key.Equal(val) {
			return i + 1
		}
	}
	return len(w.entries)
}

// TsRank 时间序列排名：r[i] 为 input[i] 在最近 periods 个值（含自身）中的升序位置，从 1 开始。
// periods == 1 时全部为 1；periods <= 0 时窗口不限长度，即对全部历史排名。
// 预热区以及严格周期模式下窗口未满的位置为 NaN。
func TsRank[T constraints.Float](ctx *Context, r, input []T, periods int) error {
	if err := checkLength(len(r), len(input)); err != nil {
		return err
	}

	if periods == 1 {
		fill(r, 1)
		return nil
	}

	n := len(r)
	chunk := ctx.ChunkSize(n)
	ctx.Executor().ForEachRange(n, chunk, func(lo, hi int) {
		tsRankChunk(ctx, r[lo:hi], input[lo:hi], periods)
	})
	return nil
}

func tsRankChunk[T constraints.Float](ctx *Context, r, x []T, periods int) {
	fill(r, T(math.NaN()))
	start := ctx.Start(len(r))

	window := newRankWindow[T](periods)
	for i := start; i < len(x); i++ {
		val := Of(x[i])
		// 窗口已满：先移除滑出窗口的值
		if periods > 0 && window.Len() >= periods {
			window.Delete(Of(x[i-periods]))
		}
		window.Insert(val, i)

		if ctx.IsStrictlyCycle() && window.Len() < periods {
			continue
		}
		r[i] = T(window.Position(val))
	}
}

func fill[T constraints.Float](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}
