package utils

import (
	"strconv"

	"github.com/redis/go-redis/v9"

	"kiruna-explorer/internal/logger"
)

// OpenRedisFromEnv：从环境变量打开 Redis 客户端，支持 REDIS_DB 选择
// 约束：REDIS_DISABLE=true 时返回 nil，调用方据此跳过缓存；REDIS_DB 解析失败时回退到 0
func OpenRedisFromEnv() *redis.Client {
	if env("REDIS_DISABLE", "") == "true" {
		return nil
	}
	addr := env("REDIS_HOST", "127.0.0.1") + ":" + env("REDIS_PORT", "6379")
	db := 0
	if n, err := strconv.Atoi(env("REDIS_DB", "0")); err == nil && n >= 0 {
		db = n
	}
	logger.L().Debug("redis_env", "addr", addr, "db", db)
	return redis.NewClient(&redis.Options{Addr: addr, Password: env("REDIS_PASS", ""), DB: db})
}
