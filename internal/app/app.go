// Package app はアプリケーションの起動とワイヤリングを提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/topicman/internal/api"
	"github.com/hitoshi/topicman/internal/config"
	"github.com/hitoshi/topicman/internal/database"
	"github.com/hitoshi/topicman/internal/datetime"
	"github.com/hitoshi/topicman/internal/handler"
	"github.com/hitoshi/topicman/internal/logger"
	"github.com/hitoshi/topicman/internal/metrics"
	"github.com/hitoshi/topicman/internal/middleware"
	"github.com/hitoshi/topicman/internal/repository"
	"github.com/hitoshi/topicman/internal/security"
	"github.com/hitoshi/topicman/internal/topic"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandClient:
		return runClient(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はモックトピックサービスをAPIサーバーモードで起動する。
// DATABASE_URLが設定されていればPostgreSQLを、なければインメモリストレージを使用する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. リポジトリの初期化
	var repo repository.TopicRepository
	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		slog.Info("database connection established")
		repo = repository.NewPostgresTopicRepo(db)
	} else {
		slog.Info("using in-memory topic storage")
		repo = repository.NewMemoryTopicRepo()
	}

	// 2. セキュリティサービスの初期化
	sanitizer := security.NewContentSanitizer()

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. レート制限の初期化
	rateLimiter := middleware.NewRateLimiter(middleware.NewRateLimiterConfig(cfg.RateLimitGeneral))
	defer rateLimiter.Stop()

	// 5. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),

		Repository: repo,
		Sanitizer:  sanitizer,

		Collector: collector,
		Gatherer:  registry,
	})

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("topic service starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down topic service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("topic service stopped gracefully")
	return nil
}

// runClient はクライアントモードで起動する。
// リモートトピックサービスに接続してトピックストアを構築し、
// 時計ストアの自動更新を開始する。SIGINTまたはSIGTERMで終了する。
func runClient(cfg *config.Config) error {
	// 1. APIクライアントとトピックストアの構築
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client := api.NewClient(httpClient, slog.Default(), cfg.APIBaseURL)
	topicStore := topic.NewStore(client, slog.Default())

	// 2. 時計ストアと時計の構築
	dtStore := datetime.NewStore()
	clock := datetime.NewClock(dtStore, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down client...")
		cancel()
	}()

	// 3. 初回ロード
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer loadCancel()
	if _, err := topicStore.LoadAll(loadCtx); err != nil {
		// 失敗してもストアはエラーメッセージを保持して動作を続ける
		slog.Warn("initial topic load failed",
			slog.String("error", topicStore.Err()),
		)
	}

	stats := topicStore.Statistics()
	slog.Info("topic store ready",
		slog.Int("total", stats.Total),
		slog.Int("created_today", stats.CreatedToday),
		slog.Int("updated_today", stats.UpdatedToday),
	)

	for _, h := range dtStore.UpcomingHolidays() {
		slog.Info("upcoming holiday",
			slog.String("name", h.Name),
			slog.String("date", h.Date),
		)
	}

	// 4. 時計をメインgoroutineで実行（ブロッキング）
	clock.Start(ctx, cfg.ClockInterval)

	slog.Info("client stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for migrate")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
