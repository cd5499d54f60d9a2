package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 联系表单提交计数
	ContactSubmissionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions",
		},
		[]string{"variant", "status"}, // status: success, invalid, failed
	)

	// 邮件发送延迟（毫秒）
	MailSendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_send_latency_ms",
			Help:    "Mailer send latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14), // 1ms to ~8s
		},
		[]string{"provider", "status"},
	)

	// 内容缓存命中
	ContentCacheCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cache_total",
			Help: "Content cache lookups by result",
		},
		[]string{"kind", "result"}, // result: hit, miss, error
	)

	// 慢查询计数
	SlowQueryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Number of queries slower than the configured threshold",
		},
		[]string{"sql"},
	)

	// MQ 消费延迟（毫秒）
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementContactSubmission 增加联系表单提交计数
func IncrementContactSubmission(variant, status string) {
	ContactSubmissionCount.WithLabelValues(variant, status).Inc()
}

// RecordMailSend 记录邮件发送延迟
func RecordMailSend(provider, status string, duration time.Duration) {
	MailSendLatency.WithLabelValues(provider, status).Observe(float64(duration.Milliseconds()))
}

// IncrementContentCache 记录缓存查询结果
func IncrementContentCache(kind, result string) {
	ContentCacheCount.WithLabelValues(kind, result).Inc()
}

// IncrementSlowQuery 记录慢查询
func IncrementSlowQuery(sql string, _ time.Duration) {
	SlowQueryCount.WithLabelValues(sql).Inc()
}

// RecordMQConsumeLatency 记录 MQ 消费延迟
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}
