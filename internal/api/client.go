// Package api はリモートトピックサービスのHTTPクライアントを提供する。
// JSON over HTTPの固定ベースURLに対してCRUDリクエストを発行する。
// リトライ・バッチングは行わず、タイムアウトはhttp.Client側の設定に従う。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hitoshi/topicman/internal/model"
)

// TopicPatch はPATCHリクエストで送信する部分更新フィールドを表す。
// nilのフィールドはリクエストボディに含めない。
type TopicPatch struct {
	Title     *string    `json:"title,omitempty"`
	Body      *string    `json:"body,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// errorResponse はサーバーが返す統一エラーフォーマットのボディ。
type errorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// Client はリモートトピックサービスのクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient はClientの新しいインスタンスを生成する。
// baseURL末尾のスラッシュは取り除かれる。
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// List は全トピックを取得する。
// GET /topics
// queryのゼロ値は無条件の全件取得を意味する。
func (c *Client) List(ctx context.Context, query model.ListQuery) ([]*model.Topic, error) {
	path := "/topics"
	q := url.Values{}
	if query.Q != "" {
		q.Set("q", query.Q)
	}
	if query.Sort != "" {
		q.Set("_sort", query.Sort)
		order := query.Order
		if order == "" {
			order = "asc"
		}
		q.Set("_order", order)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var topics []*model.Topic
	if err := c.do(ctx, http.MethodGet, path, nil, &topics); err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []*model.Topic{}
	}
	return topics, nil
}

// Get は指定IDのトピックを取得する。
// GET /topics/{id}
func (c *Client) Get(ctx context.Context, id string) (*model.Topic, error) {
	topic := &model.Topic{}
	if err := c.do(ctx, http.MethodGet, "/topics/"+url.PathEscape(id), nil, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// Create はトピックを作成し、サーバーがIDを採番した完全なレコードを返す。
// POST /topics
// タイムスタンプは呼び出し側が事前に付与している前提。
func (c *Client) Create(ctx context.Context, topic *model.Topic) (*model.Topic, error) {
	created := &model.Topic{}
	if err := c.do(ctx, http.MethodPost, "/topics", topic, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update は指定IDのトピックを部分更新し、更新後の完全なレコードを返す。
// PATCH /topics/{id}
func (c *Client) Update(ctx context.Context, id string, patch TopicPatch) (*model.Topic, error) {
	updated := &model.Topic{}
	if err := c.do(ctx, http.MethodPatch, "/topics/"+url.PathEscape(id), patch, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDのトピックを削除する。
// DELETE /topics/{id}
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/topics/"+url.PathEscape(id), nil, nil)
}

// do はHTTPリクエストを1回実行し、2xxレスポンスのボディをoutにデコードする。
// 非2xxの場合、サーバーの統一エラーフォーマットが解析できれば
// *model.APIErrorとして返し、そうでなければステータスコードのみのエラーを返す。
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのエンコードに失敗しました: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("リモートトピックサービスの呼び出しに失敗しました",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp, method, path)
	}

	if out == nil {
		// 削除など、ボディを使わないレスポンスは読み捨てる
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	return nil
}

// decodeError は非2xxレスポンスをエラー値に変換する。
func (c *Client) decodeError(resp *http.Response, method, path string) error {
	data, _ := io.ReadAll(resp.Body)

	c.logger.Error("リモートトピックサービスがエラーステータスを返しました",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("http_status", resp.StatusCode),
	)

	var errResp errorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
		return &model.APIError{
			Code:     errResp.Code,
			Message:  errResp.Message,
			Category: errResp.Category,
			Action:   errResp.Action,
		}
	}

	return fmt.Errorf("リモートトピックサービスがステータス %d を返しました", resp.StatusCode)
}
