package dateutil

import (
	"testing"
	"time"
)

// 2025-06-11は水曜日。テスト全体の基準時刻として使用する。
var wednesday = time.Date(2025, 6, 11, 15, 30, 45, 0, time.Local)

// TestCalculateDDay_Boundaries は当日・前日・翌日の境界をテストする。
func TestCalculateDDay_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		target time.Time
		want   string
	}{
		{"当日", wednesday, "D-Day"},
		{"当日の別時刻", StartOfDay(wednesday), "D-Day"},
		{"翌日", AddDays(wednesday, 1), "D-1"},
		{"前日", SubtractDays(wednesday, 1), "D+1"},
		{"10日後", AddDays(wednesday, 10), "D-10"},
		{"100日前", SubtractDays(wednesday, 100), "D+100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDDay(tt.target, wednesday); got != tt.want {
				t.Errorf("CalculateDDay = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestGetBusinessDays は営業日カウントをテストする。
func TestGetBusinessDays(t *testing.T) {
	// 2025-06-09は月曜日
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)
	saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	// 月曜起点の7日間（月〜日）は営業日5日
	if got := GetBusinessDays(monday, AddDays(monday, 6)); got != 5 {
		t.Errorf("GetBusinessDays(mon..sun) = %d, want 5", got)
	}

	// 土日のみの範囲は営業日0日
	if got := GetBusinessDays(saturday, sunday); got != 0 {
		t.Errorf("GetBusinessDays(sat..sun) = %d, want 0", got)
	}

	// 単一営業日
	if got := GetBusinessDays(monday, monday); got != 1 {
		t.Errorf("GetBusinessDays(mon..mon) = %d, want 1", got)
	}

	// startがendより後なら0
	if got := GetBusinessDays(sunday, monday); got != 0 {
		t.Errorf("GetBusinessDays(reversed) = %d, want 0", got)
	}
}

// TestNextPreviousBusinessDay は前後の営業日への移動をテストする。
func TestNextPreviousBusinessDay(t *testing.T) {
	friday := time.Date(2025, 6, 13, 0, 0, 0, 0, time.Local)
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)

	// 金曜日の翌営業日は月曜日
	if got := GetNextBusinessDay(friday); !IsSameDay(got, monday) {
		t.Errorf("GetNextBusinessDay(fri) = %v, want %v", got, monday)
	}

	// 月曜日の前営業日は金曜日
	if got := GetPreviousBusinessDay(monday); !IsSameDay(got, friday) {
		t.Errorf("GetPreviousBusinessDay(mon) = %v, want %v", got, friday)
	}

	// 水曜日は単純に前後1日
	if got := GetNextBusinessDay(wednesday); !IsSameDay(got, AddDays(wednesday, 1)) {
		t.Errorf("GetNextBusinessDay(wed) = %v, want thursday", got)
	}
}

// TestCalculateAge は満年齢の切り捨て計算をテストする。
func TestCalculateAge(t *testing.T) {
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"誕生日当日", time.Date(1990, 6, 11, 0, 0, 0, 0, time.Local), 35},
		{"誕生日前日", time.Date(1990, 6, 12, 0, 0, 0, 0, time.Local), 34},
		{"誕生日翌日", time.Date(1990, 6, 10, 0, 0, 0, 0, time.Local), 35},
		{"当年生まれ", time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateAge(tt.birth, now); got != tt.want {
				t.Errorf("CalculateAge = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestWeekMonthBoundaries は週・月の境界関数をテストする。
func TestWeekMonthBoundaries(t *testing.T) {
	// 週の開始は日曜日固定。2025-06-11（水）の週は06-08（日）から。
	sow := StartOfWeek(wednesday)
	if sow.Weekday() != time.Sunday {
		t.Errorf("StartOfWeek weekday = %v, want Sunday", sow.Weekday())
	}
	if !IsSameDay(sow, time.Date(2025, 6, 8, 0, 0, 0, 0, time.Local)) {
		t.Errorf("StartOfWeek = %v, want 2025-06-08", sow)
	}

	eow := EndOfWeek(wednesday)
	if eow.Weekday() != time.Saturday {
		t.Errorf("EndOfWeek weekday = %v, want Saturday", eow.Weekday())
	}

	som := StartOfMonth(wednesday)
	if !IsSameDay(som, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("StartOfMonth = %v, want 2025-06-01", som)
	}

	eom := EndOfMonth(wednesday)
	if !IsSameDay(eom, time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local)) {
		t.Errorf("EndOfMonth = %v, want 2025-06-30", eom)
	}

	// 日曜日自身が週の開始
	if got := StartOfWeek(sow); !got.Equal(sow) {
		t.Errorf("StartOfWeek(sunday) = %v, want %v", got, sow)
	}
}

// TestFormatRelativeTime は相対時間フォーマットをテストする。
func TestFormatRelativeTime(t *testing.T) {
	now := wednesday

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"数秒前", now.Add(-30 * time.Second), "数秒前"},
		{"数秒後", now.Add(30 * time.Second), "数秒後"},
		{"分前", now.Add(-5 * time.Minute), "5分前"},
		{"時間後", now.Add(2 * time.Hour), "2時間後"},
		{"日前", now.Add(-3 * 24 * time.Hour), "3日前"},
		{"か月前", now.Add(-60 * 24 * time.Hour), "2か月前"},
		{"年後", now.Add(2 * 365 * 24 * time.Hour), "2年後"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeTime(tt.at, now); got != tt.want {
				t.Errorf("FormatRelativeTime = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDatesInRange は日付範囲の生成をテストする。
func TestDatesInRange(t *testing.T) {
	start := time.Date(2025, 6, 9, 10, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 11, 2, 0, 0, 0, time.Local)

	dates := DatesInRange(start, end)
	if len(dates) != 3 {
		t.Fatalf("len(dates) = %d, want 3", len(dates))
	}
	for i, d := range dates {
		want := StartOfDay(start).AddDate(0, 0, i)
		if !d.Equal(want) {
			t.Errorf("dates[%d] = %v, want %v", i, d, want)
		}
	}

	if got := DatesInRange(end, start); len(got) != 0 {
		t.Errorf("reversed range returned %d dates, want 0", len(got))
	}
}

// TestDaysDiffとIsSameDay は日単位の比較をテストする。
func TestDaysDiffAndIsSameDay(t *testing.T) {
	a := time.Date(2025, 6, 11, 23, 59, 0, 0, time.Local)
	b := time.Date(2025, 6, 12, 0, 1, 0, 0, time.Local)

	// 時刻上は2分差だがカレンダー日は1日差
	if got := DaysDiff(b, a); got != 1 {
		t.Errorf("DaysDiff = %d, want 1", got)
	}
	if IsSameDay(a, b) {
		t.Error("IsSameDay returned true for different calendar days")
	}
	if !IsSameDay(a, StartOfDay(a)) {
		t.Error("IsSameDay returned false for same calendar day")
	}
}

// TestWeekdayStats は曜日別集計をテストする。
func TestWeekdayStats(t *testing.T) {
	dates := []time.Time{
		wednesday,
		AddDays(wednesday, 7),  // 次の水曜
		AddDays(wednesday, 1),  // 木曜
		AddDays(wednesday, -3), // 日曜
	}

	stats := WeekdayStats(dates)
	if stats[time.Wednesday] != 2 {
		t.Errorf("wednesday count = %d, want 2", stats[time.Wednesday])
	}
	if stats[time.Thursday] != 1 {
		t.Errorf("thursday count = %d, want 1", stats[time.Thursday])
	}
	if stats[time.Sunday] != 1 {
		t.Errorf("sunday count = %d, want 1", stats[time.Sunday])
	}
	if stats[time.Monday] != 0 {
		t.Errorf("monday count = %d, want 0", stats[time.Monday])
	}
}

// TestIsValidDate は日付文字列の検証をテストする。
func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-06-11", "2025-06-11T15:30:45+09:00", "2025-06-11T06:30:45Z"}
	for _, s := range valid {
		if !IsValidDate(s) {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2025/06/11", "11-06-2025", "not a date"}
	for _, s := range invalid {
		if IsValidDate(s) {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

// TestFormatLongDate は長形式フォーマットをテストする。
func TestFormatLongDate(t *testing.T) {
	got := FormatLongDate(wednesday)
	want := "2025年06月11日 水曜日"
	if got != want {
		t.Errorf("FormatLongDate = %q, want %q", got, want)
	}
}
