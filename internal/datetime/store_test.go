package datetime

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hitoshi/topicman/internal/model"
)

// fixedNow はテスト用の固定現在時刻。2025-05-02（金）の午後。
var fixedNow = time.Date(2025, 5, 2, 15, 4, 5, 0, time.Local)

func newTestStore(now time.Time) *Store {
	s := NewStore()
	s.now = func() time.Time { return now }
	s.Refresh()
	return s
}

// TestStore_Refresh はRefreshでcurrentTimeが更新されることをテストする。
func TestStore_Refresh(t *testing.T) {
	s := newTestStore(fixedNow)
	if !s.CurrentTime().Equal(fixedNow) {
		t.Errorf("CurrentTime = %v, want %v", s.CurrentTime(), fixedNow)
	}

	later := fixedNow.Add(time.Minute)
	s.now = func() time.Time { return later }
	s.Refresh()
	if !s.CurrentTime().Equal(later) {
		t.Errorf("CurrentTime = %v after Refresh, want %v", s.CurrentTime(), later)
	}
}

// TestStore_SetPreferences_PartialPatch はnilフィールドが現在値を維持することをテストする。
func TestStore_SetPreferences_PartialPatch(t *testing.T) {
	s := newTestStore(fixedNow)

	f := false
	s.SetPreferences(model.PreferencesPatch{Use24Hour: &f})

	prefs := s.Preferences()
	if prefs.Use24Hour {
		t.Error("Use24Hour = true, want false")
	}
	// 触れていないフィールドはデフォルトのまま
	if !prefs.ShowSeconds {
		t.Error("ShowSeconds was changed by an unrelated patch")
	}
	if !prefs.AutoRefresh {
		t.Error("AutoRefresh was changed by an unrelated patch")
	}

	// 空のパッチは何も変更しない
	before := s.Preferences()
	s.SetPreferences(model.PreferencesPatch{})
	if s.Preferences() != before {
		t.Error("empty patch changed preferences")
	}
}

// TestStore_ToggleRelativeTime はフラグの反転をテストする。
func TestStore_ToggleRelativeTime(t *testing.T) {
	s := newTestStore(fixedNow)
	if !s.ShowRelativeTime() {
		t.Fatal("initial ShowRelativeTime = false, want true")
	}
	s.ToggleRelativeTime()
	if s.ShowRelativeTime() {
		t.Error("ShowRelativeTime = true after toggle, want false")
	}
	s.ToggleRelativeTime()
	if !s.ShowRelativeTime() {
		t.Error("ShowRelativeTime = false after second toggle, want true")
	}
}

// TestStore_FormattedCurrentTime_24Hour は24時間表示の各設定をテストする。
func TestStore_FormattedCurrentTime_24Hour(t *testing.T) {
	s := newTestStore(fixedNow)

	if got, want := s.FormattedCurrentTime(), "2025-05-02 15:04:05"; got != want {
		t.Errorf("FormattedCurrentTime = %q, want %q", got, want)
	}

	f := false
	s.SetPreferences(model.PreferencesPatch{ShowSeconds: &f})
	if got, want := s.FormattedCurrentTime(), "2025-05-02 15:04"; got != want {
		t.Errorf("FormattedCurrentTime without seconds = %q, want %q", got, want)
	}
}

// TestStore_FormattedCurrentTime_LongForm は長形式（曜日・午前午後付き）をテストする。
func TestStore_FormattedCurrentTime_LongForm(t *testing.T) {
	s := newTestStore(fixedNow)
	f := false
	s.SetPreferences(model.PreferencesPatch{Use24Hour: &f})

	// 2025-05-02は金曜日
	if got, want := s.FormattedCurrentTime(), "2025年05月02日 金曜日 午後03時04分"; got != want {
		t.Errorf("FormattedCurrentTime = %q, want %q", got, want)
	}

	// 午前0時台は午前12時と表示される
	midnight := time.Date(2025, 5, 2, 0, 30, 0, 0, time.Local)
	s2 := newTestStore(midnight)
	s2.SetPreferences(model.PreferencesPatch{Use24Hour: &f})
	if got, want := s2.FormattedCurrentTime(), "2025年05月02日 金曜日 午前12時30分"; got != want {
		t.Errorf("FormattedCurrentTime at midnight = %q, want %q", got, want)
	}
}

// TestStore_UpcomingHolidays は「現在より後」の祝日が昇順で最大3件返ることをテストする。
func TestStore_UpcomingHolidays(t *testing.T) {
	// 2025-05-02時点: 次は05-03, 05-04, 05-05
	s := newTestStore(fixedNow)

	upcoming := s.UpcomingHolidays()
	if len(upcoming) != 3 {
		t.Fatalf("len(upcoming) = %d, want 3", len(upcoming))
	}
	wantDates := []string{"2025-05-03", "2025-05-04", "2025-05-05"}
	for i, want := range wantDates {
		if upcoming[i].Date != want {
			t.Errorf("upcoming[%d].Date = %q, want %q", i, upcoming[i].Date, want)
		}
	}
}

// TestStore_UpcomingHolidays_StrictlyAfter は当日の祝日が含まれないことをテストする。
func TestStore_UpcomingHolidays_StrictlyAfter(t *testing.T) {
	// こどもの日当日の正午
	childrensDay := time.Date(2025, 5, 5, 12, 0, 0, 0, time.Local)
	s := newTestStore(childrensDay)

	for _, h := range s.UpcomingHolidays() {
		if h.Date == "2025-05-05" {
			t.Errorf("upcoming contains today's holiday %q", h.Name)
		}
	}
}

// TestStore_TodayHolidays は今日と完全一致する祝日のみが返ることをテストする。
func TestStore_TodayHolidays(t *testing.T) {
	childrensDay := time.Date(2025, 5, 5, 23, 0, 0, 0, time.Local)
	s := newTestStore(childrensDay)

	today := s.TodayHolidays()
	if len(today) != 1 || today[0].Name != "こどもの日" {
		t.Errorf("TodayHolidays = %v, want こどもの日 only", today)
	}

	// 祝日でない日は空
	s2 := newTestStore(fixedNow)
	if got := s2.TodayHolidays(); len(got) != 0 {
		t.Errorf("TodayHolidays on a plain day = %v, want empty", got)
	}
}

// TestStore_AddRemoveHoliday は祝日テーブルのインメモリ変更をテストする。
func TestStore_AddRemoveHoliday(t *testing.T) {
	s := newTestStore(fixedNow)
	before := len(s.Holidays())

	s.AddHoliday(model.Holiday{Name: "創立記念日", Date: "2025-06-01"})
	if got := len(s.Holidays()); got != before+1 {
		t.Errorf("holidays = %d after add, want %d", got, before+1)
	}

	s.RemoveHoliday("2025-06-01")
	if got := len(s.Holidays()); got != before {
		t.Errorf("holidays = %d after remove, want %d", got, before)
	}

	// 存在しない日付の削除は何もしない
	s.RemoveHoliday("1999-01-01")
	if got := len(s.Holidays()); got != before {
		t.Errorf("holidays = %d after removing absent date, want %d", got, before)
	}
}

// TestClock_StopsOnContextCancel はコンテキストキャンセルでクロックが停止することをテストする。
func TestClock_StopsOnContextCancel(t *testing.T) {
	s := newTestStore(fixedNow)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := NewClock(s, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		clock.Start(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clock did not stop after context cancel")
	}
}

// TestClock_RespectsAutoRefresh はautoRefresh無効時にティックが読み捨てられることをテストする。
func TestClock_RespectsAutoRefresh(t *testing.T) {
	s := newTestStore(fixedNow)
	f := false
	s.SetPreferences(model.PreferencesPatch{AutoRefresh: &f})

	// Start直後の初回Refreshの後に時刻を進める
	later := fixedNow.Add(time.Hour)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := NewClock(s, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		clock.Start(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	s.now = func() time.Time { return later }
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	if s.CurrentTime().Equal(later) {
		t.Error("currentTime was refreshed while autoRefresh is disabled")
	}
}
