// Package topic はトピックのクライアント側状態ストアを提供する。
// リモートトピックサービスへのCRUD操作を仲介し、進行中フラグ・
// エラー・派生統計を一貫した状態として保持する。
package topic

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hitoshi/topicman/internal/api"
	"github.com/hitoshi/topicman/internal/dateutil"
	"github.com/hitoshi/topicman/internal/model"
)

// recentTopicsLimit はRecentTopicsが返す最大件数。
const recentTopicsLimit = 5

// 操作別のフォールバックエラーメッセージ。
// サーバーがエラーメッセージを返さなかった場合に使用する。
const (
	msgLoadFailed     = "トピックの読み込みに失敗しました。"
	msgCreateFailed   = "トピックの作成に失敗しました。"
	msgUpdateFailed   = "トピックの更新に失敗しました。"
	msgDeleteFailed   = "トピックの削除に失敗しました。"
	msgTopicNotFound  = "トピックが見つかりませんでした。"
	msgEmptyTitleBody = "タイトルと本文は必須です。"
)

// TopicAPI はストアが必要とするリモートトピックサービスのインターフェース。
// api.Clientが実装する。
type TopicAPI interface {
	// List は全トピックを取得する。
	List(ctx context.Context, query model.ListQuery) ([]*model.Topic, error)
	// Get は指定IDのトピックを取得する。
	Get(ctx context.Context, id string) (*model.Topic, error)
	// Create はトピックを作成し、ID採番済みのレコードを返す。
	Create(ctx context.Context, topic *model.Topic) (*model.Topic, error)
	// Update は指定IDのトピックを部分更新し、更新後のレコードを返す。
	Update(ctx context.Context, id string, patch api.TopicPatch) (*model.Topic, error)
	// Delete は指定IDのトピックを削除する。
	Delete(ctx context.Context, id string) error
}

// Store はトピックコレクションの状態を単独で所有する状態ストア。
// 各操作は requested / settled-success / settled-failure の3フェーズで
// 状態を遷移させる。ネットワーク呼び出し中はロックを保持しないため、
// 異なる操作は同時に進行しうる（排他制御は設計上行わない）。
//
// グローバルシングルトンではなく明示的に構築するインスタンスであり、
// テストごとに独立したストアを作成できる。
type Store struct {
	api    TopicAPI
	logger *slog.Logger
	now    func() time.Time // テスト用に差し替え可能

	mu          sync.Mutex
	items       []*model.Topic
	current     *model.Topic
	loading     bool
	saving      bool
	errMsg      string
	lastUpdated time.Time
	stats       model.TopicStatistics
}

// NewStore はStoreの新しいインスタンスを生成する。
func NewStore(topicAPI TopicAPI, logger *slog.Logger) *Store {
	return &Store{
		api:    topicAPI,
		logger: logger,
		now:    time.Now,
	}
}

// LoadAll は全トピックを取得してitemsを置き換える。
// 失敗時はerrorのみを設定し、既存のitemsは変更しない。
func (s *Store) LoadAll(ctx context.Context) ([]*model.Topic, error) {
	s.begin(&s.loading)

	topics, err := s.api.List(ctx, model.ListQuery{})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.errMsg = errorMessage(err, msgLoadFailed)
		return nil, err
	}

	s.items = topics
	s.lastUpdated = s.now()
	s.recomputeStatistics()
	return topics, nil
}

// Create はトピックを作成し、サーバー確認後にitemsへ追加する。
// タイトル・本文はトリム後に空でないことを検証し、違反時は
// ネットワーク呼び出しを行わずにエラーを設定して返す。
// 楽観的挿入は行わない。
func (s *Store) Create(ctx context.Context, title, body string) (*model.Topic, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		err := model.NewValidationError("タイトルと本文が空です")
		s.mu.Lock()
		s.errMsg = msgEmptyTitleBody
		s.mu.Unlock()
		return nil, err
	}

	s.begin(&s.saving)

	// タイムスタンプは送信前にクライアント側で付与する
	now := s.now()
	created, err := s.api.Create(ctx, &model.Topic{
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.errMsg = errorMessage(err, msgCreateFailed)
		return nil, err
	}

	s.items = append(s.items, created)
	s.recomputeStatistics()
	return created, nil
}

// Update は指定IDのトピックを更新し、成功時にitemsの該当要素を置き換える。
// 同時進行の削除によって該当IDがitemsに存在しない場合、置き換えは
// 黙ってスキップされる（削除済みレコードを復活させない）。
func (s *Store) Update(ctx context.Context, id, title, body string) (*model.Topic, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		err := model.NewValidationError("タイトルと本文が空です")
		s.mu.Lock()
		s.errMsg = msgEmptyTitleBody
		s.mu.Unlock()
		return nil, err
	}

	s.begin(&s.saving)

	now := s.now()
	updated, err := s.api.Update(ctx, id, api.TopicPatch{
		Title:     &title,
		Body:      &body,
		UpdatedAt: &now,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.errMsg = errorMessage(err, msgUpdateFailed)
		return nil, err
	}

	for i, t := range s.items {
		if t.ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	if s.current != nil && s.current.ID == updated.ID {
		s.current = updated
	}
	s.recomputeStatistics()
	return updated, nil
}

// Remove は指定IDのトピックを削除し、成功時にitemsから取り除く。
// itemsに該当IDが存在しない場合の取り除きは何もしない。
func (s *Store) Remove(ctx context.Context, id string) error {
	s.begin(&s.loading)

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.errMsg = errorMessage(err, msgDeleteFailed)
		return err
	}

	kept := s.items[:0]
	for _, t := range s.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.items = kept
	s.recomputeStatistics()
	return nil
}

// LoadOne は指定IDのトピックを取得してcurrentItemに設定する。
// itemsには触れない。失敗時はcurrentItemを変更しない。
func (s *Store) LoadOne(ctx context.Context, id string) (*model.Topic, error) {
	s.begin(&s.loading)

	topic, err := s.api.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.errMsg = errorMessage(err, msgTopicNotFound)
		return nil, err
	}

	s.current = topic
	return topic, nil
}

// ClearError はエラーメッセージをクリアする。副作用はない。
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// ClearCurrent はcurrentItemをクリアする。
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// --- 派生セレクタ ---

// Items は現在のトピック一覧のコピーを返す。順序はサーバー返却順。
func (s *Store) Items() []*model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]*model.Topic, len(s.items))
	copy(items, s.items)
	return items
}

// Current は単一取得で設定されたcurrentItemを返す。未設定ならnil。
func (s *Store) Current() *model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Loading は読み込み系操作（loadAll, loadOne, remove）が進行中かどうかを返す。
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Saving は書き込み系操作（create, update）が進行中かどうかを返す。
func (s *Store) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Err は直近の操作失敗のエラーメッセージを返す。エラーがなければ空文字列。
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Statistics はitemsから導出された統計値を返す。
func (s *Store) Statistics() model.TopicStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// LastUpdated は最後にloadAllが成功した時刻を返す。未実行ならゼロ値。
func (s *Store) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}

// RecentTopics はcreatedAt降順の先頭5件を返す。itemsの順序は変更しない。
func (s *Store) RecentTopics() []*model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]*model.Topic, len(s.items))
	copy(recent, s.items)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentTopicsLimit {
		recent = recent[:recentTopicsLimit]
	}
	return recent
}

// TopicsByDateRange はcreatedAtが[start, end]に含まれるトピックを返す。
func (s *Store) TopicsByDateRange(start, end time.Time) []*model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*model.Topic
	for _, t := range s.items {
		if !t.CreatedAt.Before(start) && !t.CreatedAt.After(end) {
			matched = append(matched, t)
		}
	}
	return matched
}

// --- 内部ヘルパー ---

// begin は操作のrequestedフェーズを適用する。
// 指定された進行中フラグを立て、エラーをクリアする。
func (s *Store) begin(flag *bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*flag = true
	s.errMsg = ""
}

// recomputeStatistics はitemsから統計値を再計算する。
// 「今日」はプロセスローカルのカレンダー日。
// 呼び出し元がs.muを保持していること。
func (s *Store) recomputeStatistics() {
	now := s.now()
	stats := model.TopicStatistics{Total: len(s.items)}
	for _, t := range s.items {
		if dateutil.IsSameDay(t.CreatedAt, now) {
			stats.CreatedToday++
		}
		// 作成と同時刻のupdatedAtは編集ではないため数えない
		if t.Edited() && dateutil.IsSameDay(t.UpdatedAt, now) {
			stats.UpdatedToday++
		}
	}
	s.stats = stats
}

// errorMessage はエラーからユーザー向けメッセージを導出する。
// サーバーの統一エラーフォーマットが持つメッセージはそのまま使用し、
// それ以外（トランスポート失敗など）は操作別のフォールバックを使用する。
func errorMessage(err error, fallback string) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
