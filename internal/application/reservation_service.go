package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	redisinfra "github.com/sanosuguru/go-show-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-show-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-show-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-show-booking/internal/queue"
)

// ErrSessionBusy は同一セッションの予約が他で処理中の場合のエラー
var ErrSessionBusy = errors.New("このセッションは他の予約を処理中です。少し待ってからやり直してください")

// ReservationService はセッションへのチケット予約を扱う
// 同一セッションへの並行予約はセッション単位の分散ロックと
// 条件付きUPDATEの二段構えで直列化される
type ReservationService struct {
	sessionRepo session.Repository
	lockManager *redisinfra.LockManager
	cache       *redisinfra.AvailabilityCache
	publisher   EventPublisher
	metrics     *metrics.Metrics
}

// NewReservationService はReservationServiceを作成する
// lockManager / cache / publisher / m は nil 可（単一プロセス構成やテスト用）
func NewReservationService(sr session.Repository, lm *redisinfra.LockManager, cache *redisinfra.AvailabilityCache, pub EventPublisher, m *metrics.Metrics) *ReservationService {
	return &ReservationService{sessionRepo: sr, lockManager: lm, cache: cache, publisher: pub, metrics: m}
}

// Reserve は指定セッションのチケットを予約し、更新後のセッションを返す
// バリデーション違反は全て蓄積して返し、1件でもあれば一切変更しない
func (s *ReservationService) Reserve(ctx context.Context, sessionID string, quantity int) (*session.Session, error) {
	if s.lockManager != nil {
		start := time.Now()
		lock, err := s.lockManager.AcquireSessionLockWithRetry(ctx, sessionID, 10*time.Second, 3, 100*time.Millisecond)
		s.observeLock("acquire", err, time.Since(start))
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				s.countReservation("lock_failed")
				return nil, ErrSessionBusy
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer func() {
			start := time.Now()
			err := lock.Release(ctx)
			s.observeLock("release", err, time.Since(start))
		}()
	}

	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 読み込んだスナップショットに対する検証（蓄積エラー）
	if _, err := sess.Reserve(quantity); err != nil {
		s.countReservation("validation_failed")
		return nil, err
	}

	// 永続層の条件付きUPDATEが最終的な容量の守りになる
	updated, err := s.sessionRepo.ReserveTickets(ctx, sessionID, quantity)
	if err != nil {
		if errors.Is(err, session.ErrInsufficientTickets) {
			s.countReservation("sold_out")
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, sessionID); err != nil {
			logger.Warn("残り枚数キャッシュの無効化に失敗", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	s.countReservation("success")
	if s.metrics != nil {
		s.metrics.TicketsReservedTotal.Add(float64(quantity))
	}
	s.publishReserved(ctx, updated, quantity)

	return updated, nil
}

// availabilityTTL は残り枚数キャッシュの有効期間
const availabilityTTL = 30 * time.Second

// Availability は指定セッションの残り枚数を返す
// キャッシュヒット時はDBを参照しない
func (s *ReservationService) Availability(ctx context.Context, sessionID string) (int, error) {
	if s.cache != nil {
		if available, err := s.cache.Get(ctx, sessionID); err == nil {
			return available, nil
		} else if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("残り枚数キャッシュの参照に失敗", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	available := sess.Available()
	if s.cache != nil {
		if err := s.cache.Set(ctx, sessionID, available, availabilityTTL); err != nil {
			logger.Warn("残り枚数キャッシュの更新に失敗", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return available, nil
}

func (s *ReservationService) countReservation(status string) {
	if s.metrics != nil {
		s.metrics.ReservationsTotal.WithLabelValues(status).Inc()
	}
}

func (s *ReservationService) observeLock(operation string, err error, d time.Duration) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.DistributedLockDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// publishReserved は予約成功イベントを発行する（失敗してもログのみ）
func (s *ReservationService) publishReserved(ctx context.Context, sess *session.Session, quantity int) {
	if s.publisher == nil {
		return
	}
	ev := queue.TicketsReservedEvent{
		SessionID:  sess.ID,
		ShowID:     sess.ShowID,
		Quantity:   quantity,
		Available:  sess.Available(),
		ReservedAt: time.Now().Format(time.RFC3339),
	}
	if err := s.publisher.PublishTicketsReserved(ctx, ev); err != nil {
		logger.Warn("予約イベントの発行に失敗", zap.String("session_id", sess.ID), zap.Error(err))
	}
}
