package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeohash(t *testing.T) {
	assert.Equal(t, "u4pruydqqvj", Geohash(57.64911, 10.40744, 11))
	assert.Equal(t, "u4pru", Geohash(57.64911, 10.40744, 5))
	assert.Len(t, Geohash(67.8558, 20.2253, 0), 1)
	assert.Len(t, Geohash(67.8558, 20.2253, 40), 12)
}

func TestGeohashPrefixNearby(t *testing.T) {
	a := Geohash(67.8558, 20.2253, 6)
	b := Geohash(67.8559, 20.2254, 6)
	assert.Equal(t, a, b)
}

func TestHaversine(t *testing.T) {
	kiruna := Point{Lat: 67.8558, Lon: 20.2253}
	assert.InDelta(t, 0, Haversine(kiruna, kiruna), 1e-9)
	// 赤道上一度经度约 111.19km
	assert.InDelta(t, 111.19, Haversine(Point{}, Point{Lon: 1}), 0.01)
}
