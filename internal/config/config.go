// 包 config：集中读取环境变量配置；默认值内联，未设置或解析失败时回退
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config：服务进程的全部可调参数
type Config struct {
	Addr    string
	APIBase string

	BoundaryName string
	BoundaryFile string
	StyleConfig  string
	// BoundaryReload：从数据库重新加载边界的间隔，0 表示关闭
	BoundaryReload time.Duration

	DiagramYearMin  int
	DiagramYearMax  int
	DiagramCacheTTL time.Duration

	ContainmentCacheSize int
	ContainmentCacheTTL  time.Duration

	RateLimitEnabled bool
	RateLimitQPS     int

	TLSEnable   bool
	TLSCertPath string
	TLSKeyPath  string
}

// LoadEnvFiles：加载 .env 与 data/env/.env；文件缺失不视为错误
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
}

// Load：从当前环境构建配置
func Load() Config {
	c := Config{
		Addr:                 str("ADDR", ":8080"),
		APIBase:              str("API_BASE", "/api"),
		BoundaryName:         str("BOUNDARY_NAME", "kiruna"),
		BoundaryFile:         str("BOUNDARY_FILE", filepath.Join("data", "boundary", "kiruna.geojson")),
		StyleConfig:          os.Getenv("STYLE_CONFIG"),
		BoundaryReload:       time.Duration(num("BOUNDARY_RELOAD_S", 300)) * time.Second,
		DiagramYearMin:       num("DIAGRAM_YEAR_MIN", 2004),
		DiagramYearMax:       num("DIAGRAM_YEAR_MAX", 2026),
		DiagramCacheTTL:      time.Duration(num("DIAGRAM_CACHE_TTL_S", 600)) * time.Second,
		ContainmentCacheSize: num("CONTAINMENT_CACHE_SIZE", 4096),
		ContainmentCacheTTL:  time.Duration(num("CONTAINMENT_CACHE_TTL_S", 3600)) * time.Second,
		RateLimitEnabled:     os.Getenv("RATE_LIMIT_ENABLED") == "true",
		RateLimitQPS:         num("RATE_LIMIT_QPS", 200),
		TLSEnable:            os.Getenv("TLS_ENABLE") == "true",
		TLSCertPath:          str("TLS_CERT_PATH", filepath.Join("data", "certs", "server.crt")),
		TLSKeyPath:           str("TLS_KEY_PATH", filepath.Join("data", "certs", "server.key")),
	}
	if os.Getenv("BOUNDARY_RELOAD_S") == "0" {
		c.BoundaryReload = 0
	}
	if c.DiagramYearMax <= c.DiagramYearMin {
		c.DiagramYearMin, c.DiagramYearMax = 2004, 2026
	}
	return c
}

func str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// num：正整数配置；非法或非正值回退默认
func num(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
