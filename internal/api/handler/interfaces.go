package handler

import (
	"context"

	"github.com/sanosuguru/go-show-booking/internal/application"
	"github.com/sanosuguru/go-show-booking/internal/domain/promotion"
	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	"github.com/sanosuguru/go-show-booking/internal/domain/show"
)

// AgendaServiceInterface は公演スケジュールサービスのインターフェース
type AgendaServiceInterface interface {
	ListShows(ctx context.Context, limit, offset int) ([]*show.Show, error)
	AddShow(ctx context.Context, input application.AddShowInput) (*show.Show, error)
	GetShow(ctx context.Context, id string) (*show.Show, error)
	GetSession(ctx context.Context, id string) (*session.Session, error)
	ScheduleSessions(ctx context.Context, input application.ScheduleSessionsInput) ([]*session.Session, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	Reserve(ctx context.Context, sessionID string, quantity int) (*session.Session, error)
	Availability(ctx context.Context, sessionID string) (int, error)
}

// PromotionServiceInterface はプロモーションサービスのインターフェース
type PromotionServiceInterface interface {
	CreatePromotion(ctx context.Context, input application.CreatePromotionInput) (*promotion.Promotion, error)
	ListPromotions(ctx context.Context) ([]*promotion.Promotion, error)
	MatchForShow(ctx context.Context, showID string) ([]promotion.Match, error)
}
