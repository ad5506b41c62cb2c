// Package repository はトピックデータの永続化インターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/topicman/internal/model"
)

// TopicRepository はトピックデータの永続化インターフェース。
// インメモリ実装とPostgreSQL実装がある。
type TopicRepository interface {
	// List はトピック一覧を返す。queryのゼロ値は挿入順の全件取得。
	// Qはタイトル・本文への部分一致、Sort/Orderは対応フィールドでのソート。
	List(ctx context.Context, query model.ListQuery) ([]*model.Topic, error)

	// FindByID は指定IDのトピックを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Topic, error)

	// Create はトピックを作成する。IDは呼び出し元が採番済みであること。
	Create(ctx context.Context, topic *model.Topic) error

	// Update はトピックの全フィールドをIDで置き換える。
	Update(ctx context.Context, topic *model.Topic) error

	// Delete は指定IDのトピックを削除する。存在しないIDに対しては何もしない。
	Delete(ctx context.Context, id string) error
}
