package utils

import (
	"sync/atomic"
	"time"
)

// ShouldLog 距上次打印超过 interval 时返回 true 并记录本次时间，多协程并发调用时只有一个成功
func ShouldLog(last *atomic.Int64, interval time.Duration) bool {
	now := time.Now().UnixNano()
	prev := last.Load()
	if now-prev < int64(interval) {
		return false
	}
	return last.CompareAndSwap(prev, now)
}
