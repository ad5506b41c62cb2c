// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, topic, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeTopicNotFound    = "TOPIC_NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeRequestFailed    = "REQUEST_FAILED"
)

// NewTopicNotFoundError はトピック未検出エラーを生成する。
func NewTopicNotFoundError(topicID string) *APIError {
	return &APIError{
		Code:     ErrCodeTopicNotFound,
		Message:  fmt.Sprintf("指定されたトピックが見つかりません: %s", topicID),
		Category: "topic",
		Action:   "トピックIDを確認してください。",
	}
}

// NewValidationError は入力値検証エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力値が不正です: %s", reason),
		Category: "validation",
		Action:   "タイトルと本文を入力してから再度お試しください。",
	}
}

// NewInvalidRequestError はリクエスト解析エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewRequestFailedError は通信失敗エラーを生成する。
// タイムアウト・接続不能などのトランスポート層の失敗に使用する。
func NewRequestFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeRequestFailed,
		Message:  fmt.Sprintf("リモートトピックサービスへのリクエストに失敗しました: %s", reason),
		Category: "system",
		Action:   "サービスの稼働状態を確認し、しばらく待ってから再度お試しください。",
	}
}
