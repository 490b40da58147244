package session

import (
	"sync"
	"time"

	"github.com/sanosuguru/go-show-booking/internal/domain/validation"
)

// Session は公演の1回の上演を表すエンティティ
// 予約済み枚数はセッション単位のロックで保護され、Reserve 経由でのみ増加する
type Session struct {
	ID           string
	ShowID       string
	StartsAt     time.Time
	TotalTickets int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	mu       sync.Mutex
	reserved int
}

// New は予約0枚の新しいセッションを作成する
func New(showID string, startsAt time.Time, totalTickets int) *Session {
	now := time.Now()
	return &Session{
		ShowID:       showID,
		StartsAt:     startsAt,
		TotalTickets: totalTickets,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Restore は永続化済みの予約枚数を持つセッションを復元する（リポジトリ用）
func Restore(id, showID string, startsAt time.Time, totalTickets, reserved int, createdAt, updatedAt time.Time) *Session {
	return &Session{
		ID:           id,
		ShowID:       showID,
		StartsAt:     startsAt,
		TotalTickets: totalTickets,
		reserved:     reserved,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// Reserved は予約済み枚数を返す
func (s *Session) Reserved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserved
}

// Available は残り予約可能枚数を返す
func (s *Session) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.TotalTickets - s.reserved
}

// CanReserve は指定枚数を予約できるかを返す
func (s *Session) CanReserve(quantity int) bool {
	return s.Available() >= quantity
}

// Reserve は指定枚数のチケットを予約する
// 検証は打ち切らずに全て蓄積し、1件でも違反があれば一切変更せずに返す
// 成功時は更新後の残り枚数を返す
func (s *Session) Reserve(quantity int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	available := s.TotalTickets - s.reserved

	var errs validation.Errors
	if quantity < 1 {
		errs.Add("quantity", MsgQuantityTooSmall)
	}
	if quantity > available {
		errs.Add("quantity", MsgInsufficientTickets)
	}
	if errs.HasErrors() {
		return 0, errs
	}

	s.reserved += quantity
	s.UpdatedAt = time.Now()
	return s.TotalTickets - s.reserved, nil
}
