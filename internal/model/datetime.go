package model

// Holiday は祝日テーブルの1エントリを表す。
// Dateは "2006-01-02" 形式の日付文字列。
type Holiday struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Preferences は日時表示のユーザー設定を表す。
// 各フラグは独立にトグル可能。
type Preferences struct {
	ShowSeconds  bool `json:"showSeconds"`
	Use24Hour    bool `json:"use24Hour"`
	ShowTimezone bool `json:"showTimezone"`
	AutoRefresh  bool `json:"autoRefresh"`
}

// DefaultPreferences は初期状態の表示設定を返す。
func DefaultPreferences() Preferences {
	return Preferences{
		ShowSeconds:  true,
		Use24Hour:    true,
		ShowTimezone: false,
		AutoRefresh:  true,
	}
}

// PreferencesPatch はPreferencesへの部分更新を表す。
// nilのフィールドは現在値を維持する。認識されるキーはこの構造体の
// フィールドに限られ、それ以外のキーは型の上で表現できない。
type PreferencesPatch struct {
	ShowSeconds  *bool `json:"showSeconds,omitempty"`
	Use24Hour    *bool `json:"use24Hour,omitempty"`
	ShowTimezone *bool `json:"showTimezone,omitempty"`
	AutoRefresh  *bool `json:"autoRefresh,omitempty"`
}
