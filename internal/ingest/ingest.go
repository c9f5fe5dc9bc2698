// 包 ingest：市镇边界的导入与加载通道
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/store"
)

// BoundaryStore：边界持久化，*store.Store 满足该接口
type BoundaryStore interface {
	SaveBoundary(ctx context.Context, name string, geojson []byte) error
	LoadBoundary(ctx context.Context, name string) ([]byte, error)
}

// 边界源文件上限
const maxSource = 64 << 20

func cacheKey(name string) string { return "boundary:" + name }

// ReadSource：读取本地文件或 http(s) 地址
// 异常：网络错误、非 200 状态、超限直接返回，不做重试
func ReadSource(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("ingest: read %s: %w", src, err)
		}
		return data, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("ingest: build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ingest: fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ingest: fetch %s: status %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSource+1))
	if err != nil {
		return nil, fmt.Errorf("ingest: read body: %w", err)
	}
	if len(data) > maxSource {
		return nil, fmt.Errorf("ingest: %s exceeds %d bytes", src, maxSource)
	}
	return data, nil
}

// 文档注释：导入边界
// 背景：先解析确认至少包含一个多边形，再并发写入数据库与 Redis；Redis 为 nil 时只写库。
// 约束：解析失败时不写入任何一方；数据库写失败即返回错误，Redis 写失败只记日志。
func ImportBoundary(ctx context.Context, st BoundaryStore, rc *redis.Client, name, src string) (*geo.Boundary, error) {
	data, err := ReadSource(ctx, src)
	if err != nil {
		return nil, err
	}
	b, err := geo.ParseBoundary(name, data)
	if err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return st.SaveBoundary(gctx, name, data) })
	if rc != nil {
		g.Go(func() error {
			if err := rc.Set(gctx, cacheKey(name), data, 0).Err(); err != nil {
				logger.L().Warn("boundary_cache_set_error", "name", name, "err", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.L().Info("boundary_imported", "name", name, "src", src, "polygons", len(b.Polys), "bytes", len(data))
	return b, nil
}

// 文档注释：加载边界原文
// 背景：数据库为准；数据库不可用时回退 Redis 副本；两者都没有时读取本地文件并回填数据库。
// 返回：GeoJSON 原文与来源（db/redis/file）。
func LoadBoundary(ctx context.Context, st BoundaryStore, rc *redis.Client, name, file string) ([]byte, string, error) {
	l := logger.L()
	var dbErr error
	if st != nil {
		data, err := st.LoadBoundary(ctx, name)
		if err == nil {
			if rc != nil {
				_ = rc.Set(ctx, cacheKey(name), data, 0).Err()
			}
			return data, "db", nil
		}
		dbErr = err
		if !errors.Is(err, store.ErrNotFound) {
			l.Warn("boundary_db_load_error", "name", name, "err", err)
		}
	}
	if rc != nil && dbErr != nil && !errors.Is(dbErr, store.ErrNotFound) {
		if data, err := rc.Get(ctx, cacheKey(name)).Bytes(); err == nil {
			return data, "redis", nil
		}
	}
	if file == "" {
		return nil, "", fmt.Errorf("ingest: boundary %q not found", name)
	}
	data, err := ReadSource(ctx, file)
	if err != nil {
		return nil, "", err
	}
	if st != nil && errors.Is(dbErr, store.ErrNotFound) {
		if _, err := geo.ParseBoundary(name, data); err == nil {
			if err := st.SaveBoundary(ctx, name, data); err != nil {
				l.Warn("boundary_seed_error", "name", name, "err", err)
			} else {
				l.Info("boundary_seeded", "name", name, "file", file)
			}
		}
	}
	return data, "file", nil
}
