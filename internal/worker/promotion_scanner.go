package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-show-booking/internal/domain/promotion"
	"github.com/sanosuguru/go-show-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-show-booking/internal/pkg/metrics"
)

// PromotionMatcher は直近セッションへのプロモーション対応を計算するインターフェース
type PromotionMatcher interface {
	MatchUpcoming(ctx context.Context, horizon time.Duration, limit int) ([]promotion.Match, error)
}

// PromotionScanner は直近セッションへのプロモーション対応を定期的に再計算するワーカー
// 対応は永続化しないため、ログとメトリクスに残すことで観測可能にする
type PromotionScanner struct {
	promotionService PromotionMatcher
	metrics          *metrics.Metrics
	interval         time.Duration
	horizon          time.Duration
	stopCh           chan struct{}
	doneCh           chan struct{}
}

// scanLimit は1回のスキャンで対象にするセッション数の上限
const scanLimit = 500

// NewPromotionScanner は新しいスキャナーを作成（m は nil 可）
func NewPromotionScanner(
	ps PromotionMatcher,
	m *metrics.Metrics,
	interval time.Duration,
	horizon time.Duration,
) *PromotionScanner {
	return &PromotionScanner{
		promotionService: ps,
		metrics:          m,
		interval:         interval,
		horizon:          horizon,
		stopCh:           make(chan struct{}),
		doneCh:           make(chan struct{}),
	}
}

// Start はスキャナーを開始
func (s *PromotionScanner) Start(ctx context.Context) {
	logger.Info("プロモーションスキャナー開始",
		zap.Duration("interval", s.interval),
		zap.Duration("horizon", s.horizon),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("プロモーションスキャナー停止（コンテキストキャンセル）")
			return
		case <-s.stopCh:
			logger.Info("プロモーションスキャナー停止（シグナル受信）")
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

// Stop はスキャナーを停止
func (s *PromotionScanner) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// scan は直近セッションへの対応を再計算する
func (s *PromotionScanner) scan(ctx context.Context) {
	log := logger.Get()
	log.Debug("プロモーション対応の再計算開始")

	matches, err := s.promotionService.MatchUpcoming(ctx, s.horizon, scanLimit)
	if err != nil {
		log.Error("プロモーション対応の再計算失敗", zap.Error(err))
		return
	}

	// 同一セッションが複数プロモーションに対応する場合は1件と数える
	matched := map[string]struct{}{}
	for _, m := range matches {
		for _, sess := range m.Sessions {
			matched[sess.ID] = struct{}{}
		}
	}

	if s.metrics != nil {
		s.metrics.PromotionMatchedSessions.Set(float64(len(matched)))
	}

	if len(matches) > 0 {
		log.Info("プロモーション対応を更新",
			zap.Int("promotions", len(matches)),
			zap.Int("sessions", len(matched)),
		)
	} else {
		log.Debug("対応するプロモーションなし")
	}
}
