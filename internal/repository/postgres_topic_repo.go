package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/topicman/internal/model"
)

// PostgresTopicRepo はPostgreSQLを使用したトピックリポジトリ。
// 一覧の既定順序はseq列による挿入順。
type PostgresTopicRepo struct {
	db *sql.DB
}

// NewPostgresTopicRepo はPostgresTopicRepoを生成する。
func NewPostgresTopicRepo(db *sql.DB) *PostgresTopicRepo {
	return &PostgresTopicRepo{db: db}
}

// List はトピック一覧を返す。queryのゼロ値は挿入順の全件取得。
func (r *PostgresTopicRepo) List(ctx context.Context, query model.ListQuery) ([]*model.Topic, error) {
	q := `SELECT id, title, body, created_at, updated_at FROM topics`
	var args []any

	if query.Q != "" {
		q += ` WHERE title ILIKE $1 OR body ILIKE $1`
		args = append(args, "%"+query.Q+"%")
	}

	q += " ORDER BY " + orderClause(query.Sort, query.Order)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("トピック一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	topics := []*model.Topic{}
	for rows.Next() {
		topic := &model.Topic{}
		if err := rows.Scan(&topic.ID, &topic.Title, &topic.Body, &topic.CreatedAt, &topic.UpdatedAt); err != nil {
			return nil, fmt.Errorf("トピック行の読み取りに失敗しました: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("トピック一覧の走査に失敗しました: %w", err)
	}
	return topics, nil
}

// FindByID は指定IDのトピックを取得する。見つからない場合はnilを返す。
func (r *PostgresTopicRepo) FindByID(ctx context.Context, id string) (*model.Topic, error) {
	topic := &model.Topic{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, body, created_at, updated_at FROM topics WHERE id = $1`,
		id,
	).Scan(&topic.ID, &topic.Title, &topic.Body, &topic.CreatedAt, &topic.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("トピックの取得に失敗しました: %w", err)
	}
	return topic, nil
}

// Create はトピックを作成する。
func (r *PostgresTopicRepo) Create(ctx context.Context, topic *model.Topic) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO topics (id, title, body, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		topic.ID, topic.Title, topic.Body, topic.CreatedAt, topic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("トピックの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はトピックの全フィールドをIDで置き換える。
func (r *PostgresTopicRepo) Update(ctx context.Context, topic *model.Topic) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE topics SET title = $2, body = $3, updated_at = $4 WHERE id = $1`,
		topic.ID, topic.Title, topic.Body, topic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("トピックの更新に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定IDのトピックを削除する。存在しないIDに対しては何もしない。
func (r *PostgresTopicRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("トピックの削除に失敗しました: %w", err)
	}
	return nil
}

// orderClause はソート指定をSQLのORDER BY句に変換する。
// フィールド名は許可リストで検証し、未対応の指定は挿入順（seq）にフォールバックする。
func orderClause(field, order string) string {
	column, ok := map[string]string{
		"title":     "title",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}[field]
	if !ok {
		return "seq ASC"
	}

	direction := "ASC"
	if order == "desc" {
		direction = "DESC"
	}
	return column + " " + direction
}
