// Package model はドメインモデルを定義する。
package model

import "time"

// Topic は単一のトピック（タイトルと本文を持つ投稿）を表す。
// IDはリモートトピックサービスが作成時に採番し、以後不変。
// CreatedAt/UpdatedAtはクライアント側で付与するISO-8601タイムスタンプで、
// UpdatedAt >= CreatedAt が常に成り立つ。等しい場合は未編集を意味する。
type Topic struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Edited は作成後に一度でも編集されたかどうかを返す。
func (t *Topic) Edited() bool {
	return t.UpdatedAt.After(t.CreatedAt)
}

// TopicStatistics はトピック集合から導出される統計値を表す。
// itemsの変更のたびに再計算され、Total == len(items) が常に成り立つ。
type TopicStatistics struct {
	Total        int `json:"total"`
	CreatedToday int `json:"createdToday"`
	UpdatedToday int `json:"updatedToday"`
}

// ListQuery はトピック一覧取得の検索条件を表す。
// ゼロ値は全件取得を意味する。
type ListQuery struct {
	// Q はタイトル・本文に対する部分一致キーワード。空なら無条件。
	Q string
	// Sort はソート対象フィールド名（title, createdAt, updatedAt）。空ならサーバー返却順。
	Sort string
	// Order は "asc" または "desc"。空なら "asc"。
	Order string
}
