package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"kiruna-explorer/internal/logger"
)

// HeaderRequestID：请求 ID 头
const HeaderRequestID = "X-Request-ID"

// RequestID：沿用客户端传入的 X-Request-ID，缺失时生成 UUID；写回响应头并放入 context
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), logger.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Chain：按书写顺序由外到内套用中间件
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
