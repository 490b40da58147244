package periodicity

import "time"

// Rule は公演日程の繰り返し規則を表す
type Rule string

const (
	RuleNone     Rule = "none"
	RuleDaily    Rule = "daily"
	RuleWeekly   Rule = "weekly"
	RuleBiweekly Rule = "biweekly"
	RuleMonthly  Rule = "monthly"
)

// ParseRule は文字列から繰り返し規則を解析する
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case RuleNone, RuleDaily, RuleWeekly, RuleBiweekly, RuleMonthly:
		return Rule(s), nil
	}
	return "", ErrUnknownRule
}

// IsValid は規則が定義済みかを返す
func (r Rule) IsValid() bool {
	_, err := ParseRule(string(r))
	return err == nil
}

// stepDays は日数ベースの規則の間隔を返す（月次は0）
func (r Rule) stepDays() int {
	switch r {
	case RuleDaily:
		return 1
	case RuleWeekly:
		return 7
	case RuleBiweekly:
		return 14
	}
	return 0
}

// Occurrences は開始日から終了日までを規則で展開した公演日の列を返す
// 開始日を必ず含み、規則の間隔で終了日以下の日付を昇順に列挙する
// RuleNone は終了日に関わらず開始日のみを返す
func Occurrences(start, end time.Time, rule Rule) ([]time.Time, error) {
	if !rule.IsValid() {
		return nil, ErrUnknownRule
	}
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	if rule == RuleNone {
		return []time.Time{start}, nil
	}

	var dates []time.Time
	if rule == RuleMonthly {
		// 月次は開始日の「日」を基準に再計算する（前月の切り詰めを引きずらない）
		for i := 0; ; i++ {
			d := addMonthsClamped(start, i)
			if d.After(end) {
				break
			}
			dates = append(dates, d)
		}
		return dates, nil
	}

	step := rule.stepDays()
	for d := start; !d.After(end); d = d.AddDate(0, 0, step) {
		dates = append(dates, d)
	}
	return dates, nil
}

// addMonthsClamped は月を加算し、日が溢れる場合は加算先の月末に切り詰める
// 例: 1月31日 + 1ヶ月 = 2月29日（閏年）、1月31日 + 2ヶ月 = 3月31日
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}
