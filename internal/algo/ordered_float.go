package algo

import (
	"math"

	"golang.org/x/exp/constraints"
)

// OrderedFloat 为浮点数提供全序比较，用作排序键和有序窗口的 key。
// 原生比较失败（至少一方为 NaN）时：有限值为大，无穷和 NaN 为小。
type OrderedFloat[T constraints.Float] struct {
	Value T
}

func Of[T constraints.Float](v T) OrderedFloat[T] {
	return OrderedFloat[T]{Value: v}
}

// Cmp 返回 -1 / 0 / 1
func (f OrderedFloat[T]) Cmp(other OrderedFloat[T]) int {
	a, b := f.Value, other.Value
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}

	if isFinite(a) {
		return 1
	}
	// 无穷与 NaN 均排在前面
	return -1
}

func (f OrderedFloat[T]) Less(other OrderedFloat[T]) bool {
	return f.Cmp(other) < 0
}

// Equal 使用原生相等，NaN 与自身不相等
func (f OrderedFloat[T]) Equal(other OrderedFloat[T]) bool {
	return f.Value == other.Value
}

func isFinite[T constraints.Float](v T) bool {
	x := float64(v)
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
