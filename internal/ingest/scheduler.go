package ingest

import (
	"context"
	"time"

	"kiruna-explorer/internal/logger"
)

// 文档注释：周期性刷新任务
// 背景：边界可由导入工具在进程外更新，服务按固定间隔重新加载以拾取变化；错误只记日志，任务继续调度。
// 约束：every ≤ 0 时不启动；ctx 取消后退出。
func StartPeriodic(ctx context.Context, name string, every time.Duration, fn func(context.Context) error) {
	if every <= 0 {
		return
	}
	l := logger.L()
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := fn(ctx); err != nil {
					l.Error("periodic_error", "task", name, "err", err)
				} else {
					l.Debug("periodic_done", "task", name)
				}
			}
		}
	}()
}
