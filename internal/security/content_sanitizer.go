// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はトピックのタイトル・本文をサニタイズし、
// XSS攻撃などのセキュリティリスクからユーザーを保護する。
// トピックはプレーンテキストのエンティティであるため、
// bluemondayの厳格ポリシーですべてのHTMLタグを除去する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はテキストのサニタイズ機能のインターフェースを定義する。
// トピックの作成・更新時、保存前に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
	// script, iframe, style等のタグとその属性は内容を問わず除去される。
	// 前後の空白は取り除かれる。空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// 許可タグを持たない厳格ポリシーを使用するため、マークアップは
// 一切保存されない。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
