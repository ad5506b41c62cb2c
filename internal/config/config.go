// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	ServerPort string

	// Database
	// 空文字列の場合、serveモードはインメモリリポジトリで起動する。
	DatabaseURL string

	// Client
	APIBaseURL     string
	RequestTimeout time.Duration

	// Clock
	ClockInterval time.Duration

	// Rate Limit
	RateLimitGeneral int

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// API_BASE_URLがURLとして解析できない場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.APIBaseURL = getEnvString("API_BASE_URL", "http://localhost:3001")
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", 5*time.Second)
	cfg.ClockInterval = getEnvDuration("CLOCK_INTERVAL", 1*time.Second)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API_BASE_URL is not a valid URL: %q", cfg.APIBaseURL)
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
