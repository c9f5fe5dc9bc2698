package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrEmptyBoundary = errors.New("geo: boundary has no polygon")

// geoObject：GeoJSON 中本包关心的字段；坐标延迟解码
type geoObject struct {
	Type        string          `json:"type"`
	Features    []geoObject     `json:"features,omitempty"`
	Geometry    *geoObject      `json:"geometry,omitempty"`
	Geometries  []geoObject     `json:"geometries,omitempty"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

// 文档注释：解析 GeoJSON 为边界
// 背景：支持 FeatureCollection/Feature/GeometryCollection/Polygon/MultiPolygon；坐标顺序遵循 GeoJSON 约定 [lon, lat]。
// 约束：非面几何（Point/LineString 等）被忽略；外环少于 3 个顶点的多边形被丢弃；结果为空时返回 ErrEmptyBoundary。
func ParseBoundary(name string, data []byte) (*Boundary, error) {
	var obj geoObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("geo: parse geojson: %w", err)
	}
	b := &Boundary{Name: name}
	if err := b.add(obj); err != nil {
		return nil, err
	}
	if len(b.Polys) == 0 {
		return nil, ErrEmptyBoundary
	}
	return b, nil
}

// LoadBoundaryFile：从文件读取 GeoJSON 边界
func LoadBoundaryFile(name, path string) (*Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: read boundary file: %w", err)
	}
	return ParseBoundary(name, data)
}

func (b *Boundary) add(obj geoObject) error {
	switch strings.ToLower(obj.Type) {
	case "featurecollection":
		for _, f := range obj.Features {
			if err := b.add(f); err != nil {
				return err
			}
		}
	case "geometrycollection":
		for _, g := range obj.Geometries {
			if err := b.add(g); err != nil {
				return err
			}
		}
	case "feature":
		if obj.Geometry != nil {
			return b.add(*obj.Geometry)
		}
	case "polygon":
		var rings [][][]float64
		if err := json.Unmarshal(obj.Coordinates, &rings); err != nil {
			return fmt.Errorf("geo: polygon coordinates: %w", err)
		}
		if p, ok := polygonFrom(rings); ok {
			b.Polys = append(b.Polys, p)
		}
	case "multipolygon":
		var parts [][][][]float64
		if err := json.Unmarshal(obj.Coordinates, &parts); err != nil {
			return fmt.Errorf("geo: multipolygon coordinates: %w", err)
		}
		for _, rings := range parts {
			if p, ok := polygonFrom(rings); ok {
				b.Polys = append(b.Polys, p)
			}
		}
	}
	return nil
}

func polygonFrom(rings [][][]float64) (Polygon, bool) {
	var p Polygon
	for i, ring := range rings {
		var rr []Point
		for _, c := range ring {
			if len(c) >= 2 {
				rr = append(rr, Point{Lat: c[1], Lon: c[0]})
			}
		}
		if len(rr) < 3 {
			if i == 0 {
				return Polygon{}, false
			}
			continue
		}
		p.Rings = append(p.Rings, rr)
	}
	if len(p.Rings) == 0 {
		return Polygon{}, false
	}
	p.BBox = computeBBox(p)
	return p, true
}
