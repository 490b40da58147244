package show

import "time"

// timeOfDayLayout は開演時刻の文字列形式（24時間表記）
const timeOfDayLayout = "15:04"

// TimeOfDay は日付を持たない開演時刻を表す値
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay は "19:30" 形式の文字列から開演時刻を解析する
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On は指定日の開演時刻を合成した日時を返す
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, d.Location())
}

// String は "15:04" 形式の文字列を返す
func (t TimeOfDay) String() string {
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format(timeOfDayLayout)
}
