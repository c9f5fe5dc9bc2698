package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "API_BASE", "BOUNDARY_NAME", "DIAGRAM_YEAR_MIN", "DIAGRAM_YEAR_MAX", "DIAGRAM_CACHE_TTL_S", "RATE_LIMIT_ENABLED", "TLS_ENABLE"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "/api", c.APIBase)
	assert.Equal(t, "kiruna", c.BoundaryName)
	assert.Equal(t, 2004, c.DiagramYearMin)
	assert.Equal(t, 2026, c.DiagramYearMax)
	assert.Equal(t, 600*time.Second, c.DiagramCacheTTL)
	assert.False(t, c.RateLimitEnabled)
	assert.False(t, c.TLSEnable)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("DIAGRAM_YEAR_MIN", "1990")
	t.Setenv("DIAGRAM_YEAR_MAX", "2030")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_QPS", "abc")
	c := Load()
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, 1990, c.DiagramYearMin)
	assert.Equal(t, 2030, c.DiagramYearMax)
	assert.True(t, c.RateLimitEnabled)
	assert.Equal(t, 200, c.RateLimitQPS)
}

func TestLoadInvertedYearsFallBack(t *testing.T) {
	t.Setenv("DIAGRAM_YEAR_MIN", "2030")
	t.Setenv("DIAGRAM_YEAR_MAX", "2000")
	c := Load()
	assert.Equal(t, 2004, c.DiagramYearMin)
	assert.Equal(t, 2026, c.DiagramYearMax)
}

func TestBoundaryReload(t *testing.T) {
	t.Setenv("BOUNDARY_RELOAD_S", "")
	assert.Equal(t, 300*time.Second, Load().BoundaryReload)
	t.Setenv("BOUNDARY_RELOAD_S", "0")
	assert.Zero(t, Load().BoundaryReload)
	t.Setenv("BOUNDARY_RELOAD_S", "30")
	assert.Equal(t, 30*time.Second, Load().BoundaryReload)
}
