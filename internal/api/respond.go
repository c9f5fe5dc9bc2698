package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/metrics"
	"kiruna-explorer/internal/store"
)

// 请求体上限
const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON：已编码的响应体（如缓存命中）使用与 writeJSON 相同的响应头
func writeRawJSON(w http.ResponseWriter, status int, b []byte) {
	jsonHeaders(w)
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func jsonHeaders(w http.ResponseWriter) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError：存储层错误映射为状态码；未知错误记日志并返回 500
func writeStoreError(w http.ResponseWriter, r *http.Request, event string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicateLink):
		writeError(w, http.StatusConflict, "link already exists")
	case errors.Is(err, store.ErrSelfLink):
		writeError(w, http.StatusUnprocessableEntity, "a document cannot link to itself")
	default:
		logger.FromContext(r.Context()).Error(event, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func queryFloat(r *http.Request, key string) (float64, bool) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	return v, err == nil
}

// recorder：捕获状态码用于指标
type recorder struct {
	http.ResponseWriter
	status int
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument：按路由统计请求数与耗时
func instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		h.ServeHTTP(rec, r)
		metrics.RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Microseconds()) / 1000)
		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status/100)+"xx").Inc()
	})
}
