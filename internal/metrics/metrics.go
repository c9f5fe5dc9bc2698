package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiruna_requests_total",
		Help: "Total API requests by route and status class",
	}, []string{"route", "code"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kiruna_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	ValidationRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiruna_validation_rejections_total",
		Help: "Rejected document fields by field name",
	}, []string{"field"})
	DocumentsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiruna_documents_created_total",
		Help: "Total documents persisted",
	})
	DocumentsUpdatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiruna_documents_updated_total",
		Help: "Total documents updated",
	})
	LayoutDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kiruna_layout_duration_ms",
		Help:    "Diagram layout computation in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
	})
	SkippedDocumentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiruna_layout_skipped_documents_total",
		Help: "Documents that could not be placed on the diagram",
	})
	SkippedLinksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiruna_layout_skipped_links_total",
		Help: "Links whose target was not displayed",
	})
	ContainmentChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiruna_containment_checks_total",
		Help: "Boundary containment checks by result",
	}, []string{"inside"})
	RedisHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiruna_redis_hits_total",
		Help: "Total redis cache hits",
	})
	RedisMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiruna_redis_misses_total",
		Help: "Total redis cache misses",
	})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiruna_rate_limited_total",
		Help: "Requests rejected by the token bucket",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(ValidationRejectionsTotal)
	prometheus.MustRegister(DocumentsCreatedTotal)
	prometheus.MustRegister(DocumentsUpdatedTotal)
	prometheus.MustRegister(LayoutDurationMs)
	prometheus.MustRegister(SkippedDocumentsTotal)
	prometheus.MustRegister(SkippedLinksTotal)
	prometheus.MustRegister(ContainmentChecksTotal)
	prometheus.MustRegister(RedisHitsTotal)
	prometheus.MustRegister(RedisMissesTotal)
	prometheus.MustRegister(RateLimitedTotal)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：统一暴露注册指标，在主入口挂载到 /metrics。
func Handler() http.Handler { return promhttp.Handler() }
