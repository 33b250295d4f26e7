package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type ReadyChecker interface {
	IsReady() bool
}

// HealthCheck 存活探针始终返回 UP；就绪探针在任务完成前返回 DOWN
func HealthCheck(checker ReadyChecker, requireReady bool) http.HandlerFunc {
	startTime := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		// 使用 defer 和 recover 捕获 panic 错误
		defer func() {
			if r := recover(); r != nil {
				http.Error(w, fmt.Sprintf("Internal server error: %v", r), http.StatusInternalServerError)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		if !requireReady || checker.IsReady() {
			w.WriteHeader(http.StatusOK)
			resp := map[string]interface{}{
				"status":    "UP",
				"checkTime": formatLocalDateTime(),
				"uptime":    time.Since(startTime).String(),
			}
			_ = json.NewEncoder(w).Encode(resp)
			return
		}

		w.WriteHeader(http.StatusServiceUnavailable)
		resp := map[string]interface{}{
			"status":  "DOWN",
			"details": "rank job is still running",
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// 格式化本地时间为 "yyyy-MM-ddTHH:mm:ss.SSSSSSS" 格式
func formatLocalDateTime() string {
	return time.Now().In(time.Local).Format("2006-01-02T15:04:05.9999999")
}
