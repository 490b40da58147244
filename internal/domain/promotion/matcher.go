package promotion

import (
	"sort"

	"github.com/sanosuguru/go-show-booking/internal/domain/session"
)

// Match はプロモーションと対象セッションの組を表す
type Match struct {
	Promotion *Promotion
	Sessions  []*session.Session
}

// MatchSessions は各プロモーションの対象セッションを計算する
// 対象が1件もないプロモーションは結果に含めない
// プロモーションは入力順、セッションは開始日時の昇順で返すため結果は決定的
// 純粋関数であり、セッションやプロモーションを変更しない
func MatchSessions(promotions []*Promotion, sessions []*session.Session) []Match {
	ordered := make([]*session.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartsAt.Before(ordered[j].StartsAt)
	})

	var matches []Match
	for _, p := range promotions {
		var eligible []*session.Session
		for _, s := range ordered {
			if p.AppliesTo(s) {
				eligible = append(eligible, s)
			}
		}
		if len(eligible) > 0 {
			matches = append(matches, Match{Promotion: p, Sessions: eligible})
		}
	}
	return matches
}
