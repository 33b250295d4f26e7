package job

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricTasksTotal    = "alpha_rank_tasks_total"
	MetricTaskDuration  = "alpha_rank_task_duration_seconds"
	MetricRowsProcessed = "alpha_rank_rows_processed"

	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics 排名任务的 Prometheus 指标，并发安全
type Metrics struct {
	tasksTotal    *prometheus.CounterVec
	taskDuration  *prometheus.HistogramVec
	rowsProcessed prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		tasksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricTasksTotal,
				Help: "Total number of rank tasks by op and status",
			},
			[]string{"op", "status"},
		),
		taskDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricTaskDuration,
				Help:    "Histogram of rank task duration in seconds by op",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"op"},
		),
		rowsProcessed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricRowsProcessed,
				Help: "Number of panel rows ranked by the last finished task",
			},
		),
	}
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.tasksTotal, m.taskDuration, m.rowsProcessed}
}

// Register 注册到指定 registry，重复注册返回错误
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveTask(op string, cost time.Duration, rows int, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.tasksTotal.WithLabelValues(op, status).Inc()
	m.taskDuration.WithLabelValues(op).Observe(cost.Seconds())
	if err == nil {
		m.rowsProcessed.Set(float64(rows))
	}
}
