// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiruna-explorer/internal/api"
	"kiruna-explorer/internal/config"
	"kiruna-explorer/internal/diagram"
	"kiruna-explorer/internal/ingest"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/metrics"
	"kiruna-explorer/internal/middleware"
	"kiruna-explorer/internal/migrate"
	"kiruna-explorer/internal/store"
	"kiruna-explorer/internal/style"
	"kiruna-explorer/internal/utils"
	"kiruna-explorer/internal/version"
)

func main() {
	config.LoadEnvFiles()
	// 日志初始化
	l := logger.Setup()
	l.Debug("log_init_ok", "commit", version.Commit)
	cfg := config.Load()
	l.Debug("config_api_base", "base", cfg.APIBase)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := utils.PingWithTimeout(db, 5*time.Second); err != nil {
		l.Error("db_ping_error", "err", err)
	} else {
		l.Info("db_ping_ok")
	}
	if err := migrate.EnsureSchema(ctx, db); err != nil {
		l.Error("schema_error", "err", err)
		os.Exit(1)
	}
	st := store.AttachDB(db)

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}

	styles, err := style.Load(cfg.StyleConfig)
	if err != nil {
		l.Error("style_load_error", "path", cfg.StyleConfig, "err", err)
		os.Exit(1)
	}

	dcfg := diagram.DefaultConfig()
	dcfg.YearMin, dcfg.YearMax = cfg.DiagramYearMin, cfg.DiagramYearMax
	srv := api.NewServer(st, rc, api.Options{
		Diagram:        dcfg,
		DiagramTTL:     cfg.DiagramCacheTTL,
		Styles:         styles,
		ContainmentCap: cfg.ContainmentCacheSize,
		ContainmentTTL: cfg.ContainmentCacheTTL,
	})

	// 背景：边界缺失时服务仍可启动，含坐标的文档会被拒绝直至导入边界
	loadBoundary := func(ctx context.Context) error {
		raw, src, err := ingest.LoadBoundary(ctx, st, rc, cfg.BoundaryName, cfg.BoundaryFile)
		if err != nil {
			return err
		}
		l.Debug("boundary_source", "name", cfg.BoundaryName, "src", src)
		return srv.SetBoundary(cfg.BoundaryName, raw)
	}
	if err := loadBoundary(ctx); err != nil {
		l.Error("boundary_load_error", "name", cfg.BoundaryName, "err", err)
	}
	ingest.StartPeriodic(ctx, "boundary_reload", cfg.BoundaryReload, loadBoundary)

	mux := http.NewServeMux()
	mux.Handle(cfg.APIBase+"/", http.StripPrefix(cfg.APIBase, srv.BuildRoutes()))
	mux.Handle(cfg.APIBase+"/metrics", metrics.Handler())

	handler := middleware.Chain(mux,
		middleware.RequestID,
		logger.AccessMiddleware(l),
		middleware.RateLimit(cfg.RateLimitEnabled, cfg.RateLimitQPS),
	)
	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		l.Info("shutdown_begin")
		if err := s.Shutdown(sctx); err != nil {
			l.Error("shutdown_error", "err", err)
		}
	}()

	if cfg.TLSEnable {
		if err := utils.EnsureSelfSignedCert(cfg.TLSCertPath, cfg.TLSKeyPath, "kiruna-explorer.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", cfg.Addr, "cert", cfg.TLSCertPath)
		err = s.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		l.Info("listening", "addr", cfg.Addr)
		err = s.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("server_error", "err", err)
		os.Exit(1)
	}
	l.Info("shutdown_done")
}
