package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingRegion struct {
	calls int
	in    bool
}

func (c *countingRegion) Contains(Point) bool {
	c.calls++
	return c.in
}

func TestContainmentCachesResult(t *testing.T) {
	r := &countingRegion{in: true}
	c := NewContainment(r, 8, time.Minute)
	pt := Point{Lat: 67.85, Lon: 20.27}
	assert.True(t, c.Contains(pt))
	assert.True(t, c.Contains(pt))
	assert.Equal(t, 1, r.calls)

	c.Contains(Point{Lat: 67.85, Lon: 20.271})
	assert.Equal(t, 2, r.calls)
}

func TestContainmentEvicts(t *testing.T) {
	r := &countingRegion{}
	c := NewContainment(r, 2, time.Minute)
	c.Contains(Point{Lat: 1})
	c.Contains(Point{Lat: 2})
	c.Contains(Point{Lat: 3})
	assert.Equal(t, 2, c.Len())

	c.Contains(Point{Lat: 1})
	assert.Equal(t, 4, r.calls, "evicted key is recomputed")
}

func TestContainmentExpires(t *testing.T) {
	r := &countingRegion{}
	c := NewContainment(r, 8, time.Nanosecond)
	c.Contains(Point{Lat: 1})
	time.Sleep(time.Millisecond)
	c.Contains(Point{Lat: 1})
	assert.Equal(t, 2, r.calls)
}
