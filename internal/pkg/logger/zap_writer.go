package logger

import (
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
)

// ZapWriter 将 go-zero logx 的输出转发到全局 zap logger
type ZapWriter struct{}

var _ logx.Writer = ZapWriter{}

func (ZapWriter) Alert(v any) {
	sugar.Load().Error(v)
}

func (ZapWriter) Close() error {
	return sugar.Load().Sync()
}

func (ZapWriter) Debug(v any, fields ...logx.LogField) {
	sugar.Load().Debugw(fmt.Sprint(v), toKeysAndValues(fields)...)
}

func (ZapWriter) Error(v any, fields ...logx.LogField) {
	sugar.Load().Errorw(fmt.Sprint(v), toKeysAndValues(fields)...)
}

func (ZapWriter) Info(v any, fields ...logx.LogField) {
	sugar.Load().Infow(fmt.Sprint(v), toKeysAndValues(fields)...)
}

func (ZapWriter) Severe(v any) {
	sugar.Load().Error(v)
}

func (ZapWriter) Slow(v any, fields ...logx.LogField) {
	sugar.Load().Warnw(fmt.Sprint(v), toKeysAndValues(fields)...)
}

func (ZapWriter) Stack(v any) {
	sugar.Load().Error(v)
}

func (ZapWriter) Stat(v any, fields ...logx.LogField) {
	sugar.Load().Infow(fmt.Sprint(v), toKeysAndValues(fields)...)
}

func toKeysAndValues(fields []logx.LogField) []interface{} {
	kvs := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		kvs = append(kvs, f.Key, f.Value)
	}
	return kvs
}
