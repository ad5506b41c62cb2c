package datetime

import (
	"context"
	"log/slog"
	"time"
)

// Clock はcurrentTimeを周期的に更新するクロックランナー。
// 所有スコープのコンテキストがキャンセルされるまで実行を継続し、
// キャンセル後は一切の更新を行わない（破棄後更新の防止）。
type Clock struct {
	store  *Store
	logger *slog.Logger
}

// NewClock はClockの新しいインスタンスを生成する。
func NewClock(store *Store, logger *slog.Logger) *Clock {
	return &Clock{
		store:  store,
		logger: logger,
	}
}

// Start は指定間隔のティッカーでクロックを起動する。
// autoRefresh設定が無効の間はティックを読み捨てる。
// コンテキストがキャンセルされるまでブロックする。
func (c *Clock) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("クロックを開始しました",
		slog.Duration("interval", interval),
	)

	// 起動直後に1回更新
	c.store.Refresh()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("クロックを停止しました")
			return
		case <-ticker.C:
			if c.store.Preferences().AutoRefresh {
				c.store.Refresh()
			}
		}
	}
}
