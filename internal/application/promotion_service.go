package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sanosuguru/go-show-booking/internal/domain/promotion"
	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	"github.com/sanosuguru/go-show-booking/internal/domain/show"
)

// PromotionService はプロモーションとセッションの対応付けを扱う
// 対応は永続化せず、参照のたびに計算し直す
type PromotionService struct {
	promotionRepo promotion.Repository
	showRepo      show.Repository
	sessionRepo   session.Repository
}

// NewPromotionService はPromotionServiceを作成する
func NewPromotionService(pr promotion.Repository, sr show.Repository, sessr session.Repository) *PromotionService {
	return &PromotionService{promotionRepo: pr, showRepo: sr, sessionRepo: sessr}
}

type CreatePromotionInput struct {
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
	Always   bool
}

// CreatePromotion は新しいプロモーションを登録する
func (s *PromotionService) CreatePromotion(ctx context.Context, input CreatePromotionInput) (*promotion.Promotion, error) {
	p := promotion.New(input.Name, input.StartsAt, input.EndsAt, input.Always)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.promotionRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("プロモーション登録に失敗しました: %w", err)
	}
	return p, nil
}

// ListPromotions はプロモーション一覧を取得する
func (s *PromotionService) ListPromotions(ctx context.Context) ([]*promotion.Promotion, error) {
	return s.promotionRepo.List(ctx)
}

// MatchForShow は公演の各セッションに適用可能なプロモーションを計算する
// 対象セッションのないプロモーションは結果に含まれない
func (s *PromotionService) MatchForShow(ctx context.Context, showID string) ([]promotion.Match, error) {
	sh, err := s.showRepo.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}

	promotions, err := s.promotionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return promotion.MatchSessions(promotions, sh.Sessions), nil
}

// MatchUpcoming は直近のセッションを対象にプロモーションの対応を計算する
// バックグラウンドスキャン用
func (s *PromotionService) MatchUpcoming(ctx context.Context, horizon time.Duration, limit int) ([]promotion.Match, error) {
	promotions, err := s.promotionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(promotions) == 0 {
		return nil, nil
	}

	now := time.Now()
	sessions, err := s.sessionRepo.ListUpcoming(ctx, now, limit)
	if err != nil {
		return nil, err
	}

	// 対象はスキャン範囲内に始まるセッションに限る
	until := now.Add(horizon)
	inHorizon := sessions[:0:0]
	for _, sess := range sessions {
		if sess.StartsAt.Before(until) {
			inHorizon = append(inHorizon, sess)
		}
	}

	return promotion.MatchSessions(promotions, inHorizon), nil
}
