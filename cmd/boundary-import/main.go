// boundary-import：将市镇边界 GeoJSON（本地文件或 URL）校验后写入数据库与 Redis
package main

import (
	"context"
	"os"
	"time"

	"kiruna-explorer/internal/config"
	"kiruna-explorer/internal/ingest"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/migrate"
	"kiruna-explorer/internal/store"
	"kiruna-explorer/internal/utils"
)

func main() {
	config.LoadEnvFiles()
	l := logger.Setup()
	cfg := config.Load()

	src := cfg.BoundaryFile
	if v := os.Getenv("BOUNDARY_SRC"); v != "" {
		src = v
	}
	if len(os.Args) > 1 && os.Args[1] != "" {
		src = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := utils.PingWithTimeout(db, 5*time.Second); err != nil {
		l.Error("db_ping_error", "err", err)
		os.Exit(1)
	}
	if err := migrate.EnsureSchema(ctx, db); err != nil {
		l.Error("schema_error", "err", err)
		os.Exit(1)
	}
	rc := utils.OpenRedisFromEnv()
	if rc != nil {
		defer rc.Close()
	}

	l.Info("boundary_import_begin", "name", cfg.BoundaryName, "src", src)
	b, err := ingest.ImportBoundary(ctx, store.AttachDB(db), rc, cfg.BoundaryName, src)
	if err != nil {
		l.Error("boundary_import_error", "name", cfg.BoundaryName, "src", src, "err", err)
		os.Exit(1)
	}
	l.Info("boundary_import_success", "name", b.Name, "polygons", len(b.Polys))
}
