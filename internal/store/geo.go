package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/model"
)

// Nearby：邻近查询结果
type Nearby struct {
	model.Document
	DistanceKm float64 `json:"distanceKm"`
}

// 文档注释：邻近文档
// 背景：按 geohash 前缀粗筛（索引 text_pattern_ops 支持 LIKE 前缀），再按球面距离排序。
// 约束：precision 截断到 1..12；不含链接。
func (s *Store) ListNear(ctx context.Context, lat, lon float64, precision int) ([]Nearby, error) {
	prefix := geo.Geohash(lat, lon, precision)
	rows, err := s.db.QueryContext(ctx, selectDocument+` WHERE d.geohash LIKE $1 GROUP BY d.id`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("store: list near: %w", err)
	}
	defer rows.Close()
	var docs []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list near: %w", err)
	}
	return byDistance(geo.Point{Lat: lat, Lon: lon}, docs), nil
}

func byDistance(origin geo.Point, docs []model.Document) []Nearby {
	out := make([]Nearby, 0, len(docs))
	for _, d := range docs {
		if !d.Geolocation.HasPoint() {
			continue
		}
		p := geo.Point{Lat: *d.Geolocation.Latitude, Lon: *d.Geolocation.Longitude}
		out = append(out, Nearby{Document: d, DistanceKm: geo.Haversine(origin, p)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// SaveBoundary：按名称保存（覆盖）边界 GeoJSON
func (s *Store) SaveBoundary(ctx context.Context, name string, geojson []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO boundaries(name, geojson, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET geojson = EXCLUDED.geojson, updated_at = now()`, name, string(geojson))
	if err != nil {
		return fmt.Errorf("store: save boundary: %w", err)
	}
	return nil
}

func (s *Store) LoadBoundary(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT geojson::text FROM boundaries WHERE name=$1`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load boundary: %w", err)
	}
	return data, nil
}
