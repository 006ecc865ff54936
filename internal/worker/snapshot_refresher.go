package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Abdullah-1719/ChaletF/internal/pkg/logger"
)

// SnapshotSource は予約スナップショットを再構築するインターフェース
type SnapshotSource interface {
	RefreshSnapshot(ctx context.Context) (int, error)
}

// SnapshotRefresher は予約一覧のスナップショットを定期的に温め直すワーカー
// キャッシュの無効化後もゲージと一覧キャッシュが鮮度を保つ
type SnapshotRefresher struct {
	source   SnapshotSource
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSnapshotRefresher は新しいリフレッシャーを作成
func NewSnapshotRefresher(source SnapshotSource, interval time.Duration) *SnapshotRefresher {
	return &SnapshotRefresher{
		source:   source,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はリフレッシャーを開始
func (r *SnapshotRefresher) Start(ctx context.Context) {
	logger.Info("スナップショットリフレッシャー開始",
		zap.Duration("interval", r.interval),
	)

	// 起動直後に1回実行してからティッカーに入る
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("スナップショットリフレッシャー停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("スナップショットリフレッシャー停止（シグナル受信）")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Stop はリフレッシャーを停止
func (r *SnapshotRefresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

// refresh はスナップショットを再構築
func (r *SnapshotRefresher) refresh(ctx context.Context) {
	log := logger.Get()
	log.Debug("スナップショット更新開始")

	upcoming, err := r.source.RefreshSnapshot(ctx)
	if err != nil {
		log.Error("スナップショット更新失敗", zap.Error(err))
		return
	}

	log.Debug("スナップショット更新完了", zap.Int("upcoming", upcoming))
}
