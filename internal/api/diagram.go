package api

import (
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"kiruna-explorer/internal/diagram"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/metrics"
	"kiruna-explorer/internal/model"
)

const (
	defaultWidth  = 1200
	defaultHeight = 800
	maxDimension  = 20000
)

// viewport：width/height 缺省时取默认值，非法或越界返回 false
func viewport(r *http.Request) (diagram.Viewport, bool) {
	vp := diagram.Viewport{Width: defaultWidth, Height: defaultHeight}
	for key, dst := range map[string]*float64{"width": &vp.Width, "height": &vp.Height} {
		s := r.URL.Query().Get(key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 || v > maxDimension {
			return vp, false
		}
		*dst = v
	}
	return vp, true
}

// diagramKey：文档集合 + 筛选条件 + 视口 + 种子的 FNV-64a 摘要；文档变动后自然换键
func diagramKey(docs []model.Document, f model.Filter, vp diagram.Viewport, seed string) string {
	h := fnv.New64a()
	_ = json.NewEncoder(h).Encode(docs)
	h.Write([]byte(f.Key() + "|"))
	h.Write([]byte(strconv.FormatFloat(vp.Width, 'f', -1, 64) + "x" + strconv.FormatFloat(vp.Height, 'f', -1, 64) + "|" + seed))
	return "diagram:" + strconv.FormatUint(h.Sum64(), 16)
}

// 文档注释：图表布局
// 背景：布局结果按 diagramKey 缓存在 Redis，未指定 seed 时同一文档集合在 TTL 内复用同一份抖动，
// 刷新页面图标不会跳动。Redis 不可用时退化为每次重算，不影响请求成功。
// 约束：接受与 /documents/search 相同的筛选参数；指向未命中文档的链接不绘制，计入 droppedLinks。
func (s *Server) diagram(w http.ResponseWriter, r *http.Request) {
	vp, ok := viewport(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "width and height must be positive numbers")
		return
	}
	var src diagram.Source
	seedParam := r.URL.Query().Get("seed")
	if seedParam != "" {
		seed, err := strconv.ParseUint(seedParam, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return
		}
		src = diagram.NewSeeded(seed)
	}

	f, ok := parseFilter(r, 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "pageNo must be a non-negative integer")
		return
	}

	ctx := r.Context()
	docs, _, err := s.st.SearchDocuments(ctx, f)
	if err != nil {
		writeStoreError(w, r, "document_search_error", err)
		return
	}
	key := diagramKey(docs, f, vp, seedParam)
	if s.rc != nil {
		b, err := s.rc.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			metrics.RedisHitsTotal.Inc()
			logger.FromContext(ctx).Debug("diagram_cache_hit", "key", key)
			writeRawJSON(w, http.StatusOK, b)
			return
		case errors.Is(err, redis.Nil):
			metrics.RedisMissesTotal.Inc()
		default:
			logger.FromContext(ctx).Warn("diagram_cache_get_error", "err", err)
		}
	}

	start := time.Now()
	res := diagram.New(s.opts.Diagram, vp, src, s.opts.Styles).Compute(docs, vp)
	metrics.LayoutDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)
	metrics.SkippedDocumentsTotal.Add(float64(res.Skipped))
	metrics.SkippedLinksTotal.Add(float64(res.DroppedLinks))

	b, err := json.Marshal(res)
	if err != nil {
		logger.FromContext(ctx).Error("diagram_encode_error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if s.rc != nil {
		ttl := s.opts.DiagramTTL
		if ttl <= 0 {
			ttl = 10 * time.Minute
		}
		if err := s.rc.Set(ctx, key, b, ttl).Err(); err != nil {
			logger.FromContext(ctx).Warn("diagram_cache_set_error", "err", err)
		}
	}
	writeRawJSON(w, http.StatusOK, b)
}
