// Package dateutil は日付・時刻の純粋な導出関数を提供する。
// すべての関数は決定的で副作用を持たず、「現在」が必要な関数は
// 基準時刻を引数で受け取る。
package dateutil

import (
	"fmt"
	"math"
	"time"
)

// 標準の日付・日時レイアウト。
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	TimeLayout     = "15:04:05"
)

// 曜日の表示名（日本語）。
var weekdayNames = [7]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}

// FormatDate は日付を指定レイアウトでフォーマットする。
// layoutが空の場合はDateLayoutを使用する。
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DateLayout
	}
	return t.Format(layout)
}

// FormatDateTime は日時を "2006-01-02 15:04:05" 形式でフォーマットする。
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatLongDate は日付を曜日付きの長形式（2006年01月02日 月曜日）でフォーマットする。
func FormatLongDate(t time.Time) string {
	return t.Format("2006年01月02日") + " " + weekdayNames[t.Weekday()]
}

// FormatRelativeTime は基準時刻nowからの相対時間を人間可読な文字列で返す。
// 例: 「3日前」「2時間後」。60秒未満の差は「数秒前」「数秒後」になる。
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	suffix := "前"
	if diff < 0 {
		diff = -diff
		suffix = "後"
	}

	switch {
	case diff < time.Minute:
		return "数秒" + suffix
	case diff < time.Hour:
		return fmt.Sprintf("%d分%s", int(diff.Minutes()), suffix)
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d時間%s", int(diff.Hours()), suffix)
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%d日%s", int(diff.Hours()/24), suffix)
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dか月%s", int(diff.Hours()/24/30), suffix)
	default:
		return fmt.Sprintf("%d年%s", int(diff.Hours()/24/365), suffix)
	}
}

// ParseDate は "2006-01-02" 形式の日付文字列をローカルタイムゾーンで解析する。
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// IsValidDate は文字列がRFC3339または "2006-01-02" 形式の日付として
// 解析可能かどうかを返す。
func IsValidDate(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	if _, err := time.Parse(DateLayout, s); err == nil {
		return true
	}
	return false
}

// AddDays は日付にdays日を加算する。
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// SubtractDays は日付からdays日を減算する。
func SubtractDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, -days)
}

// AddWeeks は日付にweeks週を加算する。
func AddWeeks(t time.Time, weeks int) time.Time {
	return t.AddDate(0, 0, weeks*7)
}

// AddMonths は日付にmonthsか月を加算する。
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// IsSameDay は2つの時刻が同一のカレンダー日に属するかどうかを返す。
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysDiff は日単位の差（a - b）を返す。時刻部分は無視される。
func DaysDiff(a, b time.Time) int {
	// DSTによる±1時間のずれを丸めで吸収する
	return int(math.Round(StartOfDay(a).Sub(StartOfDay(b)).Hours() / 24))
}

// StartOfDay は指定時刻を含むカレンダー日の最初の瞬間を返す。
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay は指定時刻を含むカレンダー日の最後の瞬間を返す。
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek は指定時刻を含む週の最初の瞬間を返す。
// 週の開始は日曜日に固定している。
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// EndOfWeek は指定時刻を含む週の最後の瞬間を返す（土曜日の終わり）。
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth は指定時刻を含む月の最初の瞬間を返す。
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth は指定時刻を含む月の最後の瞬間を返す。
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DatesInRange は[start, end]の各カレンダー日の開始時刻を昇順で返す。
// startがendより後の場合は空スライスを返す。
func DatesInRange(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := StartOfDay(start); !d.After(StartOfDay(end)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// isWeekend は土曜日または日曜日かどうかを返す。
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// GetBusinessDays は[start, end]に含まれる営業日（土日以外の日）の数を返す。
// 両端を含む日単位のカウントで、時刻部分は無視される。
func GetBusinessDays(start, end time.Time) int {
	count := 0
	for d := StartOfDay(start); !d.After(StartOfDay(end)); d = d.AddDate(0, 0, 1) {
		if !isWeekend(d) {
			count++
		}
	}
	return count
}

// GetNextBusinessDay は指定日の翌営業日を返す。
// 1日ずつ進め、土日の間は繰り返しスキップする。
func GetNextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for isWeekend(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// GetPreviousBusinessDay は指定日の前営業日を返す。
func GetPreviousBusinessDay(t time.Time) time.Time {
	prev := t.AddDate(0, 0, -1)
	for isWeekend(prev) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// CalculateAge は誕生日から基準時刻nowまでの満年齢（切り捨て）を返す。
func CalculateAge(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	// 今年の誕生日がまだ来ていなければ1引く
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// CalculateDDay は対象日までのD-Day表記を返す。
// 当日は "D-Day"、n日後は "D-n"、n日前は "D+n"。比較は日単位で行う。
func CalculateDDay(targetDate, now time.Time) string {
	diff := DaysDiff(targetDate, now)
	switch {
	case diff == 0:
		return "D-Day"
	case diff > 0:
		return fmt.Sprintf("D-%d", diff)
	default:
		return fmt.Sprintf("D+%d", -diff)
	}
}

// WeekdayStats は日付集合の曜日別の件数を返す。
func WeekdayStats(dates []time.Time) map[time.Weekday]int {
	stats := make(map[time.Weekday]int, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		stats[wd] = 0
	}
	for _, d := range dates {
		stats[d.Weekday()]++
	}
	return stats
}
