package show

import (
	"time"

	"github.com/sanosuguru/go-show-booking/internal/domain/periodicity"
	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	"github.com/sanosuguru/go-show-booking/internal/domain/validation"
)

// Show は上演可能な公演を表すエンティティ
// セッションは公演が所有し、公演をまたいで付け替えることはできない
type Show struct {
	ID              string
	Name            string
	Description     string
	VenueID         string
	DefaultCapacity int
	Sessions        []*session.Session
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int // 楽観的ロック用
}

// New は新しい公演を作成する
func New(name, description, venueID string, defaultCapacity int) *Show {
	now := time.Now()
	return &Show{
		Name:            name,
		Description:     description,
		VenueID:         venueID,
		DefaultCapacity: defaultCapacity,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         0,
	}
}

// Validate は公演の検証を行う
// 違反は打ち切らずに全て蓄積して返す
func (s *Show) Validate() validation.Errors {
	var errs validation.Errors
	if s.Name == "" {
		errs.Add("name", MsgNameRequired)
	}
	if s.Description == "" {
		errs.Add("description", MsgDescriptionRequired)
	}
	return errs
}

// CreateSessions は期間と繰り返し規則からセッションを生成する
// 生成されたセッションは公演の所有リストに追加され、開始日時の昇順で返される
// 永続化は呼び出し元（Agenda）の責務
func (s *Show) CreateSessions(start, end time.Time, timeOfDay TimeOfDay, rule periodicity.Rule) ([]*session.Session, error) {
	if s.DefaultCapacity <= 0 {
		return nil, ErrMissingCapacity
	}

	dates, err := periodicity.Occurrences(start, end, rule)
	if err != nil {
		return nil, err
	}

	sessions := make([]*session.Session, 0, len(dates))
	for _, d := range dates {
		startsAt := timeOfDay.On(d)
		sess := session.New(s.ID, startsAt, s.DefaultCapacity)
		sessions = append(sessions, sess)
	}

	s.Sessions = append(s.Sessions, sessions...)
	return sessions, nil
}
