// Package datetime は現在時刻スナップショットと表示設定の状態ストアを提供する。
// フォーマット済みの値はすべて純粋なセレクタとして読み取り時に計算され、
// キャッシュは行わない。
package datetime

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hitoshi/topicman/internal/dateutil"
	"github.com/hitoshi/topicman/internal/model"
)

// upcomingHolidaysLimit はUpcomingHolidaysが返す最大件数。
const upcomingHolidaysLimit = 3

// Store は日時状態のプロセス内単一インスタンスを想定した状態ストア。
// トピックストアとは独立しており、互いの状態を読み書きしない。
type Store struct {
	now func() time.Time // テスト用に差し替え可能

	mu               sync.Mutex
	currentTime      time.Time
	timezone         string
	dateFormat       string
	timeFormat       string
	showRelativeTime bool
	holidays         []model.Holiday
	preferences      model.Preferences
}

// NewStore はStoreの新しいインスタンスを生成する。
// currentTimeは生成時点の時刻で初期化され、祝日テーブルには
// コンパイル時固定の1年分が設定される。
func NewStore() *Store {
	s := &Store{
		now:              time.Now,
		timezone:         "Asia/Tokyo",
		dateFormat:       dateutil.DateLayout,
		timeFormat:       dateutil.TimeLayout,
		showRelativeTime: true,
		holidays:         Holidays2025(),
		preferences:      model.DefaultPreferences(),
	}
	s.currentTime = s.now()
	return s
}

// Refresh はcurrentTimeを現在時刻で更新する。
// 初期化時に1回、以降はクロックランナーが周期的に呼び出す。
func (s *Store) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTime = s.now()
}

// CurrentTime は最後のRefresh時点のスナップショットを返す。
func (s *Store) CurrentTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime
}

// SetPreferences は表示設定へ部分更新を適用する。
// patchのnilフィールドは現在値を維持する。
func (s *Store) SetPreferences(patch model.PreferencesPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.ShowSeconds != nil {
		s.preferences.ShowSeconds = *patch.ShowSeconds
	}
	if patch.Use24Hour != nil {
		s.preferences.Use24Hour = *patch.Use24Hour
	}
	if patch.ShowTimezone != nil {
		s.preferences.ShowTimezone = *patch.ShowTimezone
	}
	if patch.AutoRefresh != nil {
		s.preferences.AutoRefresh = *patch.AutoRefresh
	}
}

// Preferences は現在の表示設定を返す。
func (s *Store) Preferences() model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}

// ToggleRelativeTime は相対時間表示フラグを反転する。
func (s *Store) ToggleRelativeTime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showRelativeTime = !s.showRelativeTime
}

// ShowRelativeTime は相対時間表示フラグを返す。
func (s *Store) ShowRelativeTime() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showRelativeTime
}

// SetTimezone は表示用タイムゾーン名を設定する。
func (s *Store) SetTimezone(tz string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timezone = tz
}

// Timezone は表示用タイムゾーン名を返す。
func (s *Store) Timezone() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timezone
}

// SetDateFormat は日付表示レイアウトを設定する。
func (s *Store) SetDateFormat(layout string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateFormat = layout
}

// SetTimeFormat は時刻表示レイアウトを設定する。
func (s *Store) SetTimeFormat(layout string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeFormat = layout
}

// AddHoliday は祝日テーブルにエントリを追加する。インメモリのみで永続化しない。
func (s *Store) AddHoliday(h model.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays = append(s.holidays, h)
}

// RemoveHoliday は指定日付の祝日エントリをすべて取り除く。
func (s *Store) RemoveHoliday(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.holidays[:0]
	for _, h := range s.holidays {
		if h.Date != date {
			kept = append(kept, h)
		}
	}
	s.holidays = kept
}

// Holidays は祝日テーブルのコピーを返す。
func (s *Store) Holidays() []model.Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()
	holidays := make([]model.Holiday, len(s.holidays))
	copy(holidays, s.holidays)
	return holidays
}

// --- 派生セレクタ ---

// FormattedCurrentTime はcurrentTimeを表示設定に従ってフォーマットする。
//
// use24Hourがtrueの場合は "2006-01-02 15:04:05" 形式
// （showSecondsがfalseなら秒を省略、showTimezoneがtrueならゾーン略称を付加）。
// falseの場合は曜日・午前午後を含む長形式「2006年01月02日 月曜日 午後03時04分」。
// 両分岐が運ぶ情報は意図的に等価ではない。
func (s *Store) FormattedCurrentTime() string {
	s.mu.Lock()
	t := s.currentTime
	prefs := s.preferences
	s.mu.Unlock()

	if prefs.Use24Hour {
		layout := dateutil.DateTimeLayout
		if !prefs.ShowSeconds {
			layout = "2006-01-02 15:04"
		}
		if prefs.ShowTimezone {
			layout += " MST"
		}
		return t.Format(layout)
	}

	ampm := "午前"
	hour := t.Hour()
	if hour >= 12 {
		ampm = "午後"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%s %s%02d時%02d分", dateutil.FormatLongDate(t), ampm, hour12, t.Minute())
}

// UpcomingHolidays は現在時刻より後の祝日を日付昇順で最大3件返す。
// 日付が解析できないエントリは無視される。
func (s *Store) UpcomingHolidays() []model.Holiday {
	s.mu.Lock()
	now := s.currentTime
	holidays := make([]model.Holiday, len(s.holidays))
	copy(holidays, s.holidays)
	s.mu.Unlock()

	var upcoming []model.Holiday
	for _, h := range holidays {
		d, err := dateutil.ParseDate(h.Date)
		if err != nil {
			continue
		}
		if d.After(now) {
			upcoming = append(upcoming, h)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date < upcoming[j].Date
	})
	if len(upcoming) > upcomingHolidaysLimit {
		upcoming = upcoming[:upcomingHolidaysLimit]
	}
	return upcoming
}

// TodayHolidays は今日のカレンダー日と日付が一致する祝日を返す。
// 完全一致のみで、「今日以降」ではない。
func (s *Store) TodayHolidays() []model.Holiday {
	s.mu.Lock()
	now := s.currentTime
	holidays := make([]model.Holiday, len(s.holidays))
	copy(holidays, s.holidays)
	s.mu.Unlock()

	var today []model.Holiday
	for _, h := range holidays {
		d, err := dateutil.ParseDate(h.Date)
		if err != nil {
			continue
		}
		if dateutil.IsSameDay(d, now) {
			today = append(today, h)
		}
	}
	return today
}
