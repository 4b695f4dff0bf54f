package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
)

// AvailabilitySource は空席数を再計算してキャッシュへ反映するインターフェース
type AvailabilitySource interface {
	RefreshAvailabilityCounts(ctx context.Context) (int, error)
}

// AvailabilityRefresher は空席数キャッシュを定期的に更新するワーカー
// ブッキングの整合性には関与しない（空席数は常に推定値であり、予約の成否は
// 条件付き書き込みだけが決める）
type AvailabilityRefresher struct {
	source   AvailabilitySource
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewAvailabilityRefresher は新しいリフレッシャーを作成
func NewAvailabilityRefresher(source AvailabilitySource, interval time.Duration) *AvailabilityRefresher {
	return &AvailabilityRefresher{
		source:   source,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はリフレッシャーを開始
func (r *AvailabilityRefresher) Start(ctx context.Context) {
	logger.Info("空席数リフレッシャー開始", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("空席数リフレッシャー停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("空席数リフレッシャー停止（シグナル受信）")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Stop はリフレッシャーを停止
func (r *AvailabilityRefresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

// refresh は全イベントの空席数を再計算する
func (r *AvailabilityRefresher) refresh(ctx context.Context) {
	log := logger.Get()
	log.Debug("空席数の再計算開始")

	count, err := r.source.RefreshAvailabilityCounts(ctx)
	if err != nil {
		log.Error("空席数の再計算に失敗", zap.Error(err))
		return
	}

	log.Debug("空席数の再計算完了", zap.Int("events", count))
}
