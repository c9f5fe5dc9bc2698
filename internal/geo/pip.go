package geo

import "math"

// 共线容差：叉积绝对值不超过该值且落在线段包围盒内视为在边上
const edgeEps = 1e-12

// 文档注释：点是否位于边界内（Even-Odd 射线法）
// 约束：任一多边形命中即视为命中；点恰好落在外环或洞的边/顶点上时视为在边界内（含边界）。
func (b *Boundary) Contains(pt Point) bool {
	if b == nil {
		return false
	}
	for _, p := range b.Polys {
		if inBBox(pt, p.BBox) && pointInPoly(pt, p) {
			return true
		}
	}
	return false
}

// 外环命中且不在洞内视为命中；洞的边属于区域边界
func pointInPoly(pt Point, poly Polygon) bool {
	if len(poly.Rings) == 0 {
		return false
	}
	inside, edge := pointInRing(pt, poly.Rings[0])
	if edge {
		return true
	}
	if !inside {
		return false
	}
	for _, hole := range poly.Rings[1:] {
		in, onEdge := pointInRing(pt, hole)
		if onEdge {
			return true
		}
		if in {
			return false
		}
	}
	return true
}

// pointInRing：返回 (是否在环内, 是否恰在边上)；x 为经度、y 为纬度
func pointInRing(pt Point, ring []Point) (bool, bool) {
	n := len(ring)
	if n < 3 {
		return false, false
	}
	x, y := pt.Lon, pt.Lat
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		if onSegment(x, y, xi, yi, xj, yj) {
			return true, true
		}
		if (yi > y) != (yj > y) && x < xi+(y-yi)*(xj-xi)/(yj-yi) {
			inside = !inside
		}
	}
	return inside, false
}

func onSegment(x, y, xi, yi, xj, yj float64) bool {
	cross := (xj-xi)*(y-yi) - (yj-yi)*(x-xi)
	if math.Abs(cross) > edgeEps {
		return false
	}
	return x >= math.Min(xi, xj) && x <= math.Max(xi, xj) &&
		y >= math.Min(yi, yj) && y <= math.Max(yi, yj)
}

// 快速包围盒过滤（含边界）
func inBBox(pt Point, b [4]float64) bool {
	return pt.Lon >= b[0] && pt.Lon <= b[2] && pt.Lat >= b[1] && pt.Lat <= b[3]
}

func computeBBox(p Polygon) [4]float64 {
	b := [4]float64{180, 90, -180, -90}
	for _, r := range p.Rings {
		for _, pt := range r {
			b[0] = math.Min(b[0], pt.Lon)
			b[1] = math.Min(b[1], pt.Lat)
			b[2] = math.Max(b[2], pt.Lon)
			b[3] = math.Max(b[3], pt.Lat)
		}
	}
	return b
}

// NewPolygon：由外环与洞构建多边形并计算包围盒
func NewPolygon(outer []Point, holes ...[]Point) Polygon {
	p := Polygon{Rings: append([][]Point{outer}, holes...)}
	p.BBox = computeBBox(p)
	return p
}
