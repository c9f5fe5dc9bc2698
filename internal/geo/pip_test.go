package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) []Point {
	return []Point{{Lat: y0, Lon: x0}, {Lat: y0, Lon: x1}, {Lat: y1, Lon: x1}, {Lat: y1, Lon: x0}}
}

func TestContainsSquare(t *testing.T) {
	b := &Boundary{Polys: []Polygon{NewPolygon(square(0, 0, 10, 10))}}

	for _, pt := range []Point{{Lat: 5, Lon: 5}, {Lat: 0.1, Lon: 9.9}, {Lat: 9.99, Lon: 0.01}} {
		assert.True(t, b.Contains(pt), "%v should be inside", pt)
	}
	for _, pt := range []Point{{Lat: 50, Lon: 50}, {Lat: -1, Lon: 5}, {Lat: 5, Lon: 10.0001}, {Lat: -80, Lon: 170}} {
		assert.False(t, b.Contains(pt), "%v should be outside", pt)
	}
}

func TestContainsEdgesAndVertices(t *testing.T) {
	b := &Boundary{Polys: []Polygon{NewPolygon(square(0, 0, 10, 10))}}
	// 含边界：边与顶点均视为在内
	assert.True(t, b.Contains(Point{Lat: 10, Lon: 5}))
	assert.True(t, b.Contains(Point{Lat: 5, Lon: 0}))
	assert.True(t, b.Contains(Point{Lat: 0, Lon: 0}))
	assert.True(t, b.Contains(Point{Lat: 10, Lon: 10}))
}

func TestContainsHole(t *testing.T) {
	b := &Boundary{Polys: []Polygon{NewPolygon(square(0, 0, 10, 10), square(4, 4, 6, 6))}}
	assert.False(t, b.Contains(Point{Lat: 5, Lon: 5}))
	assert.True(t, b.Contains(Point{Lat: 2, Lon: 2}))
	assert.True(t, b.Contains(Point{Lat: 4, Lon: 5}), "hole edge belongs to the region")
}

func TestContainsMultiPolygon(t *testing.T) {
	b := &Boundary{Polys: []Polygon{
		NewPolygon(square(0, 0, 1, 1)),
		NewPolygon(square(20, 20, 21, 21)),
	}}
	assert.True(t, b.Contains(Point{Lat: 0.5, Lon: 0.5}))
	assert.True(t, b.Contains(Point{Lat: 20.5, Lon: 20.5}))
	assert.False(t, b.Contains(Point{Lat: 10, Lon: 10}))
}

func TestContainsConcave(t *testing.T) {
	// U 形：缺口内的点不在区域内
	u := []Point{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 9}, {Lat: 9, Lon: 9}, {Lat: 9, Lon: 6},
		{Lat: 3, Lon: 6}, {Lat: 3, Lon: 3}, {Lat: 9, Lon: 3}, {Lat: 9, Lon: 0},
	}
	b := &Boundary{Polys: []Polygon{NewPolygon(u)}}
	assert.False(t, b.Contains(Point{Lat: 6, Lon: 4.5}))
	assert.True(t, b.Contains(Point{Lat: 6, Lon: 1.5}))
	assert.True(t, b.Contains(Point{Lat: 1.5, Lon: 4.5}))
}

func TestContainsNilAndDegenerate(t *testing.T) {
	var b *Boundary
	assert.False(t, b.Contains(Point{}))
	deg := &Boundary{Polys: []Polygon{NewPolygon([]Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})}}
	assert.False(t, deg.Contains(Point{Lat: 0.5, Lon: 0.2}))
}

func TestKirunaFixture(t *testing.T) {
	b, err := LoadBoundaryFile("kiruna", "testdata/kiruna.geojson")
	require.NoError(t, err)
	require.Len(t, b.Polys, 1)
	assert.Equal(t, "kiruna", b.Name)

	assert.True(t, b.Contains(Point{Lat: 67.8558, Lon: 20.2732}))
	assert.True(t, b.Contains(Point{Lat: 67.8558, Lon: 20.2253}))
	assert.False(t, b.Contains(Point{Lat: 59.3293, Lon: 18.0686}), "Stockholm")
	assert.False(t, b.Contains(Point{Lat: 0, Lon: 0}))
}
