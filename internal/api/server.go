// 包 api：集中注册 HTTP API 路由，处理函数只依赖 Store 接口与可选的 Redis 客户端
package api

import (
	"bytes"
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"kiruna-explorer/internal/diagram"
	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/model"
	"kiruna-explorer/internal/store"
	"kiruna-explorer/internal/style"
)

// Store：处理函数依赖的持久化能力，*store.Store 满足该接口
type Store interface {
	InsertDocument(ctx context.Context, doc model.Document) (int64, error)
	UpdateDocument(ctx context.Context, id int64, doc model.Document) error
	GetDocument(ctx context.Context, id int64) (model.Document, error)
	ListDocuments(ctx context.Context) ([]model.Document, error)
	SearchDocuments(ctx context.Context, f model.Filter) ([]model.Document, int, error)
	DocumentExists(ctx context.Context, id int64) (bool, error)
	LinkDocuments(ctx context.Context, a, b int64, t model.LinkType) (int64, error)
	UpdateLinkType(ctx context.Context, linkID int64, t model.LinkType) error
	DeleteLink(ctx context.Context, linkID int64) error
	DocumentLinks(ctx context.Context, id int64) ([]model.Link, error)
	ListNear(ctx context.Context, lat, lon float64, precision int) ([]store.Nearby, error)
	Stakeholders(ctx context.Context) ([]string, error)
	Scales(ctx context.Context) ([]string, error)
}

// Options：服务级参数
type Options struct {
	Diagram        diagram.Config
	DiagramTTL     time.Duration
	Styles         style.Table
	ContainmentCap int
	ContainmentTTL time.Duration
}

// boundaryState：已加载的边界；整体替换，读侧无锁
type boundaryState struct {
	name   string
	raw    []byte
	region geo.Region
}

// 文档注释：API 服务
// 背景：边界在启动或导入后整体替换（atomic.Pointer），请求读取到的总是一份完整快照；
// 包含判定经 Containment LRU 缓存。
type Server struct {
	st       Store
	rc       *redis.Client
	opts     Options
	boundary atomic.Pointer[boundaryState]
}

func NewServer(st Store, rc *redis.Client, opts Options) *Server {
	return &Server{st: st, rc: rc, opts: opts}
}

// SetBoundary：解析 GeoJSON 并替换当前边界；内容未变时保留现有包含缓存
func (s *Server) SetBoundary(name string, raw []byte) error {
	if cur := s.boundary.Load(); cur != nil && cur.name == name && bytes.Equal(cur.raw, raw) {
		return nil
	}
	b, err := geo.ParseBoundary(name, raw)
	if err != nil {
		return err
	}
	s.boundary.Store(&boundaryState{
		name:   name,
		raw:    raw,
		region: geo.NewContainment(b, s.opts.ContainmentCap, s.opts.ContainmentTTL),
	})
	logger.L().Info("boundary_loaded", "name", name, "polygons", len(b.Polys))
	return nil
}

// region：未加载边界时返回 nil 接口，校验器据此拒绝所有点位
func (s *Server) region() geo.Region {
	if b := s.boundary.Load(); b != nil {
		return b.region
	}
	return nil
}

// BuildRoutes：独立 ServeMux，便于在主入口挂载到 API_BASE 前缀
func (s *Server) BuildRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	handle := func(pattern, route string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(route, h))
	}
	handle("POST /documents/validate", "validate", s.validateDocument)
	handle("POST /documents", "create_document", s.createDocument)
	handle("GET /documents", "list_documents", s.listDocuments)
	handle("GET /documents/near", "near", s.nearDocuments)
	handle("GET /documents/search", "search_documents", s.searchDocuments)
	handle("GET /documents/{id}", "get_document", s.getDocument)
	handle("PUT /documents/{id}", "update_document", s.updateDocument)
	handle("GET /documents/{id}/links", "document_links", s.documentLinks)
	handle("POST /documents/{id}/links", "create_link", s.createLink)
	handle("PUT /links/{id}", "update_link", s.updateLink)
	handle("DELETE /links/{id}", "delete_link", s.deleteLink)
	handle("GET /diagram", "diagram", s.diagram)
	handle("GET /stakeholders", "stakeholders", s.stakeholders)
	handle("GET /scales", "scales", s.scales)
	handle("GET /boundary", "boundary", s.getBoundary)
	handle("GET /boundary/contains", "contains", s.contains)
	handle("GET /healthz", "healthz", s.healthz)
	return mux
}
