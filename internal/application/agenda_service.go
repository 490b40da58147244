package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-show-booking/internal/domain/periodicity"
	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	"github.com/sanosuguru/go-show-booking/internal/domain/show"
	"github.com/sanosuguru/go-show-booking/internal/domain/transaction"
	"github.com/sanosuguru/go-show-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-show-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-show-booking/internal/queue"
)

// EventPublisher はドメインイベントの発行先
// 発行失敗は本処理を失敗させず、ログに残して握りつぶす
type EventPublisher interface {
	PublishSessionsScheduled(ctx context.Context, ev queue.SessionsScheduledEvent) error
	PublishTicketsReserved(ctx context.Context, ev queue.TicketsReservedEvent) error
}

// AgendaService は公演とセッションのスケジュールを調整するファサード
// コントローラ層から直接呼ばれるのはこのサービスのみ
type AgendaService struct {
	txManager   transaction.Manager
	showRepo    show.Repository
	sessionRepo session.Repository
	publisher   EventPublisher
	metrics     *metrics.Metrics
}

// NewAgendaService はAgendaServiceを作成する（publisher と m は nil 可）
func NewAgendaService(tm transaction.Manager, sr show.Repository, sessr session.Repository, pub EventPublisher, m *metrics.Metrics) *AgendaService {
	return &AgendaService{txManager: tm, showRepo: sr, sessionRepo: sessr, publisher: pub, metrics: m}
}

// ListShows は公演一覧を取得する
func (s *AgendaService) ListShows(ctx context.Context, limit, offset int) ([]*show.Show, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.showRepo.List(ctx, limit, offset)
}

type AddShowInput struct {
	Name            string
	Description     string
	VenueID         string
	DefaultCapacity int
}

// AddShow は新しい公演を登録する
// バリデーション違反は全て蓄積して返し、1件でもあれば永続化しない
func (s *AgendaService) AddShow(ctx context.Context, input AddShowInput) (*show.Show, error) {
	sh := show.New(input.Name, input.Description, input.VenueID, input.DefaultCapacity)
	if errs := sh.Validate(); errs.HasErrors() {
		return nil, errs
	}
	if err := s.showRepo.Create(ctx, sh); err != nil {
		return nil, fmt.Errorf("公演登録に失敗しました: %w", err)
	}
	return sh, nil
}

// GetShow はIDから公演を取得する
func (s *AgendaService) GetShow(ctx context.Context, id string) (*show.Show, error) {
	return s.showRepo.GetByID(ctx, id)
}

// GetSession はIDからセッションを取得する
func (s *AgendaService) GetSession(ctx context.Context, id string) (*session.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

type ScheduleSessionsInput struct {
	ShowID    string
	Start     time.Time
	End       time.Time
	TimeOfDay show.TimeOfDay
	Rule      periodicity.Rule
}

// ScheduleSessions は期間と繰り返し規則からセッションを生成して一括永続化する
// 生成結果は開始日時の昇順で返される（「N件のセッションを作成しました」の報告用）
func (s *AgendaService) ScheduleSessions(ctx context.Context, input ScheduleSessionsInput) ([]*session.Session, error) {
	sh, err := s.showRepo.GetByID(ctx, input.ShowID)
	if err != nil {
		return nil, err
	}

	sessions, err := sh.CreateSessions(input.Start, input.End, input.TimeOfDay, input.Rule)
	if err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.sessionRepo.CreateBatch(ctx, tx, sessions); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SessionsScheduledTotal.Add(float64(len(sessions)))
	}
	s.publishScheduled(ctx, sh, sessions, input.Rule)

	return sessions, nil
}

// publishScheduled はセッション生成イベントを発行する（失敗してもログのみ）
func (s *AgendaService) publishScheduled(ctx context.Context, sh *show.Show, sessions []*session.Session, rule periodicity.Rule) {
	if s.publisher == nil || len(sessions) == 0 {
		return
	}
	ev := queue.SessionsScheduledEvent{
		ShowID:        sh.ID,
		ShowName:      sh.Name,
		SessionCount:  len(sessions),
		Rule:          string(rule),
		FirstStartsAt: sessions[0].StartsAt.Format(time.RFC3339),
		LastStartsAt:  sessions[len(sessions)-1].StartsAt.Format(time.RFC3339),
		ScheduledAt:   time.Now().Format(time.RFC3339),
	}
	if err := s.publisher.PublishSessionsScheduled(ctx, ev); err != nil {
		logger.Warn("セッション生成イベントの発行に失敗", zap.String("show_id", sh.ID), zap.Error(err))
	}
}
