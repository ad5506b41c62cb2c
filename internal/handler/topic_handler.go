// Package handler はリモートトピックサービスのHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hitoshi/topicman/internal/metrics"
	"github.com/hitoshi/topicman/internal/model"
	"github.com/hitoshi/topicman/internal/repository"
	"github.com/hitoshi/topicman/internal/security"
)

// TopicHandler はトピックCRUDのHTTPハンドラー。
type TopicHandler struct {
	repo      repository.TopicRepository
	sanitizer security.ContentSanitizerService
	collector metrics.MetricsCollector
	logger    *slog.Logger
	now       func() time.Time
}

// NewTopicHandler はTopicHandlerを生成する。collectorはnilを許容する。
func NewTopicHandler(repo repository.TopicRepository, sanitizer security.ContentSanitizerService, collector metrics.MetricsCollector, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		repo:      repo,
		sanitizer: sanitizer,
		collector: collector,
		logger:    logger,
		now:       time.Now,
	}
}

// createTopicRequest はトピック作成リクエストのボディ。
// タイムスタンプはクライアントが付与するが、省略時はサーバーが補う。
type createTopicRequest struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// updateTopicRequest はトピック部分更新リクエストのボディ。
// nilのフィールドは既存値を維持する。
type updateTopicRequest struct {
	Title     *string    `json:"title"`
	Body      *string    `json:"body"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// ListTopics はトピック一覧を返す。
// GET /topics?q=&_sort=&_order=
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	query := model.ListQuery{
		Q:     trimmedQueryParam(r, "q"),
		Sort:  r.URL.Query().Get("_sort"),
		Order: r.URL.Query().Get("_order"),
	}

	topics, err := h.repo.List(r.Context(), query)
	if err != nil {
		h.handleRepositoryError(w, err)
		return
	}

	// 空でも空配列で返す（nullにしない）
	if topics == nil {
		topics = []*model.Topic{}
	}

	writeJSON(w, http.StatusOK, topics)
}

// GetTopic はトピック詳細を返す。
// GET /topics/{id}
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	topic, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.handleRepositoryError(w, err)
		return
	}
	if topic == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewTopicNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, topic)
}

// CreateTopic はトピックを作成する。
// POST /topics
func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	title := h.sanitizer.Sanitize(req.Title)
	body := h.sanitizer.Sanitize(req.Body)
	if title == "" || body == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("タイトルと本文は必須です"))
		return
	}

	now := h.now()
	createdAt := now
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	updatedAt := createdAt
	if req.UpdatedAt != nil {
		updatedAt = *req.UpdatedAt
	}
	if updatedAt.Before(createdAt) {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("updatedAtはcreatedAt以降である必要があります"))
		return
	}

	topic := &model.Topic{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if err := h.repo.Create(r.Context(), topic); err != nil {
		h.handleRepositoryError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordTopicCreated()
	}
	h.logger.Info("トピックを作成しました", slog.String("topic_id", topic.ID))

	writeJSON(w, http.StatusCreated, topic)
}

// UpdateTopic はトピックを部分更新する。
// PATCH /topics/{id}
func (h *TopicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	topic, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.handleRepositoryError(w, err)
		return
	}
	if topic == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewTopicNotFoundError(id))
		return
	}

	if req.Title != nil {
		title := h.sanitizer.Sanitize(*req.Title)
		if title == "" {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("タイトルは必須です"))
			return
		}
		topic.Title = title
	}
	if req.Body != nil {
		body := h.sanitizer.Sanitize(*req.Body)
		if body == "" {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("本文は必須です"))
			return
		}
		topic.Body = body
	}
	if req.UpdatedAt != nil {
		topic.UpdatedAt = *req.UpdatedAt
	} else {
		topic.UpdatedAt = h.now()
	}
	if topic.UpdatedAt.Before(topic.CreatedAt) {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("updatedAtはcreatedAt以降である必要があります"))
		return
	}

	if err := h.repo.Update(r.Context(), topic); err != nil {
		h.handleRepositoryError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordTopicUpdated()
	}
	h.logger.Info("トピックを更新しました", slog.String("topic_id", id))

	writeJSON(w, http.StatusOK, topic)
}

// DeleteTopic はトピックを削除する。
// DELETE /topics/{id}
func (h *TopicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	topic, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.handleRepositoryError(w, err)
		return
	}
	if topic == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewTopicNotFoundError(id))
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.handleRepositoryError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordTopicDeleted()
	}
	h.logger.Info("トピックを削除しました", slog.String("topic_id", id))

	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー関数 ---

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSON(w, statusCode, apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleRepositoryError はリポジトリ層のエラーを500レスポンスに変換する。
func (h *TopicHandler) handleRepositoryError(w http.ResponseWriter, err error) {
	h.logger.Error("リポジトリ操作に失敗しました", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// trimmedQueryParam はクエリパラメータの前後空白を除いた値を返す。
func trimmedQueryParam(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
