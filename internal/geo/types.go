package geo

// 文档注释：市政边界的最小几何结构
// 约束：几何来自 GeoJSON 的 Polygon/MultiPolygon；每个多边形第一环为外环，其余为洞；坐标为 WGS84。
type Boundary struct {
	Name  string
	Polys []Polygon
}

// Polygon：环集合，第一环是外环，其后为洞；最后一个顶点隐式连回第一个
type Polygon struct {
	Rings [][]Point
	BBox  [4]float64 // minLon, minLat, maxLon, maxLat
}

// 点坐标（WGS84）
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Region：可判定点包含关系的区域，Boundary 与 Containment 均实现
type Region interface {
	Contains(pt Point) bool
}
