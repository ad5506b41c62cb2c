package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/topicman/internal/metrics"
	"github.com/hitoshi/topicman/internal/middleware"
	"github.com/hitoshi/topicman/internal/repository"
	"github.com/hitoshi/topicman/internal/security"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// トピックCRUD
	Repository repository.TopicRepository
	Sanitizer  security.ContentSanitizerService

	// メトリクス（nil可）
	Collector *metrics.Collector
	Gatherer  prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → RecoveryMiddleware → LoggingMiddleware → MetricsMiddleware → RateLimitMiddleware
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Collector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Collector))
	}

	topicHandler := NewTopicHandler(deps.Repository, deps.Sanitizer, collectorOrNil(deps.Collector), deps.Logger)

	// --- レート制限の外のルート ---

	r.Get("/health", HealthCheck)
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- トピックCRUDルート ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", topicHandler.ListTopics)
			r.Post("/", topicHandler.CreateTopic)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", topicHandler.GetTopic)
				r.Patch("/", topicHandler.UpdateTopic)
				r.Delete("/", topicHandler.DeleteTopic)
			})
		})
	})

	return r
}

// HealthCheck は死活監視用のエンドポイント。
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// collectorOrNil は*metrics.CollectorをMetricsCollectorインターフェースに変換する。
// 型付きnilをインターフェースに入れるとnil比較が壊れるため、明示的に変換する。
func collectorOrNil(c *metrics.Collector) metrics.MetricsCollector {
	if c == nil {
		return nil
	}
	return c
}
