package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hitoshi/topicman/internal/model"
)

// MemoryTopicRepo はインメモリのトピックリポジトリ。
// DATABASE_URL未設定で起動した場合のデフォルト実装で、
// 挿入順を保持し、プロセス終了でデータは失われる。
type MemoryTopicRepo struct {
	mu     sync.RWMutex
	topics []*model.Topic
	index  map[string]int // id -> topicsのインデックス
}

// NewMemoryTopicRepo はMemoryTopicRepoを生成する。
func NewMemoryTopicRepo() *MemoryTopicRepo {
	return &MemoryTopicRepo{
		index: make(map[string]int),
	}
}

// List はトピック一覧を返す。queryのゼロ値は挿入順の全件取得。
func (r *MemoryTopicRepo) List(_ context.Context, query model.ListQuery) ([]*model.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var topics []*model.Topic
	for _, t := range r.topics {
		if query.Q != "" && !matchesKeyword(t, query.Q) {
			continue
		}
		copied := *t
		topics = append(topics, &copied)
	}

	if query.Sort != "" {
		sortTopics(topics, query.Sort, query.Order)
	}
	if topics == nil {
		topics = []*model.Topic{}
	}
	return topics, nil
}

// FindByID は指定IDのトピックを取得する。見つからない場合はnilを返す。
func (r *MemoryTopicRepo) FindByID(_ context.Context, id string) (*model.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	copied := *r.topics[i]
	return &copied, nil
}

// Create はトピックを末尾に追加する。
func (r *MemoryTopicRepo) Create(_ context.Context, topic *model.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *topic
	r.index[copied.ID] = len(r.topics)
	r.topics = append(r.topics, &copied)
	return nil
}

// Update はトピックの全フィールドをIDで置き換える。存在しないIDは何もしない。
func (r *MemoryTopicRepo) Update(_ context.Context, topic *model.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[topic.ID]; ok {
		copied := *topic
		r.topics[i] = &copied
	}
	return nil
}

// Delete は指定IDのトピックを削除する。存在しないIDに対しては何もしない。
func (r *MemoryTopicRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil
	}
	r.topics = append(r.topics[:i], r.topics[i+1:]...)
	delete(r.index, id)
	// 後続要素のインデックスを詰める
	for j := i; j < len(r.topics); j++ {
		r.index[r.topics[j].ID] = j
	}
	return nil
}

// matchesKeyword はタイトルまたは本文にキーワードが含まれるかを返す。
// 比較は大文字小文字を区別しない。
func matchesKeyword(t *model.Topic, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Body), q)
}

// sortTopics は対応フィールド（title, createdAt, updatedAt）でソートする。
// 未対応のフィールド名は無視される。orderが"desc"以外は昇順。
func sortTopics(topics []*model.Topic, field, order string) {
	var less func(a, b *model.Topic) bool
	switch field {
	case "title":
		less = func(a, b *model.Topic) bool { return a.Title < b.Title }
	case "createdAt":
		less = func(a, b *model.Topic) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updatedAt":
		less = func(a, b *model.Topic) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return
	}

	sort.SliceStable(topics, func(i, j int) bool {
		if order == "desc" {
			return less(topics[j], topics[i])
		}
		return less(topics[i], topics[j])
	})
}
