package promotion

import (
	"time"

	"github.com/sanosuguru/go-show-booking/internal/domain/session"
)

// LowInventoryRatio は残り枚数がこの割合以下のセッションを「在庫僅少」とみなす閾値
const LowInventoryRatio = 0.1

// Promotion は期間限定のプロモーションを表すエンティティ
// Always が真なら期間内の全セッションに、偽なら在庫僅少のセッションにのみ適用される
type Promotion struct {
	ID        string
	Name      string
	StartsAt  time.Time
	EndsAt    time.Time
	Always    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New は新しいプロモーションを作成する
func New(name string, startsAt, endsAt time.Time, always bool) *Promotion {
	now := time.Now()
	return &Promotion{
		Name:      name,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Always:    always,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate はプロモーションの検証を行う
func (p *Promotion) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if !p.EndsAt.After(p.StartsAt) {
		return ErrInvalidWindow
	}
	return nil
}

// InWindow はセッションの開始日時が有効期間に含まれるかを返す
// 境界は両端とも含まない（開始より後かつ終了より前）
func (p *Promotion) InWindow(startsAt time.Time) bool {
	return startsAt.After(p.StartsAt) && startsAt.Before(p.EndsAt)
}

// AppliesTo はセッションがこのプロモーションの対象かを返す
func (p *Promotion) AppliesTo(s *session.Session) bool {
	if !p.InWindow(s.StartsAt) {
		return false
	}
	if p.Always {
		return true
	}
	return float64(s.Available()) <= float64(s.TotalTickets)*LowInventoryRatio
}
