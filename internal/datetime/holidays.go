package datetime

import "github.com/hitoshi/topicman/internal/model"

// Holidays2025 は2025年の日本の祝日テーブルを返す。
// コンパイル時固定の1年分であり、他の年を生成する仕組みは持たない。
func Holidays2025() []model.Holiday {
	return []model.Holiday{
		{Name: "元日", Date: "2025-01-01"},
		{Name: "成人の日", Date: "2025-01-13"},
		{Name: "建国記念の日", Date: "2025-02-11"},
		{Name: "天皇誕生日", Date: "2025-02-23"},
		{Name: "振替休日", Date: "2025-02-24"},
		{Name: "春分の日", Date: "2025-03-20"},
		{Name: "昭和の日", Date: "2025-04-29"},
		{Name: "憲法記念日", Date: "2025-05-03"},
		{Name: "みどりの日", Date: "2025-05-04"},
		{Name: "こどもの日", Date: "2025-05-05"},
		{Name: "振替休日", Date: "2025-05-06"},
		{Name: "海の日", Date: "2025-07-21"},
		{Name: "山の日", Date: "2025-08-11"},
		{Name: "敬老の日", Date: "2025-09-15"},
		{Name: "秋分の日", Date: "2025-09-23"},
		{Name: "スポーツの日", Date: "2025-10-13"},
		{Name: "文化の日", Date: "2025-11-03"},
		{Name: "勤労感謝の日", Date: "2025-11-23"},
		{Name: "振替休日", Date: "2025-11-24"},
	}
}
