package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// セッションスロットの保存先
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Session
	SessionBackend   string
	DatabaseURL      string
	SlotCookieMaxAge int

	// Database connection pool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Rate Limit (requests per minute)
	RateLimitGeneral int
	RateLimitLogin   int

	// Server
	ServerPort      string
	BaseURL         string
	ShutdownTimeout time.Duration

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// SESSION_BACKENDがpostgresでDATABASE_URLが未設定の場合、
// または期間・レート制限に0以下が指定された場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.SessionBackend = strings.ToLower(getEnvString("SESSION_BACKEND", BackendPostgres))
	switch cfg.SessionBackend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported SESSION_BACKEND %q (want %s or %s)",
			cfg.SessionBackend, BackendPostgres, BackendMemory)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.SessionBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: %v", []string{"DATABASE_URL"})
	}

	// Optional fields with defaults
	cfg.SlotCookieMaxAge = getEnvInt("SLOT_COOKIE_MAX_AGE", 34560000)
	cfg.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 25)
	cfg.DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 5)
	cfg.DBConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitLogin = getEnvInt("RATE_LIMIT_LOGIN", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:5173")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate は0以下を許さない値を検査する。
// SLOT_COOKIE_MAX_AGEが0以下だとCookieが即時失効し、スロット削除ジョブが
// ログイン中のスロットまで削除する。レート制限が0だと全リクエストが429になる。
func (c *Config) validate() error {
	positives := []struct {
		key string
		val int
	}{
		{"SLOT_COOKIE_MAX_AGE", c.SlotCookieMaxAge},
		{"RATE_LIMIT_GENERAL", c.RateLimitGeneral},
		{"RATE_LIMIT_LOGIN", c.RateLimitLogin},
	}
	for _, p := range positives {
		if p.val <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.key, p.val)
		}
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout)
	}
	return nil
}

// SessionFilePath はCLI用セッションファイルのパスを返す。
// CLIのセッションコマンドはDATABASE_URLを必要としないため、Loadを経由せずに使える。
func SessionFilePath() string {
	return getEnvString("SESSION_FILE", defaultSessionFile())
}

// defaultSessionFile はCLI用セッションファイルの既定パスを返す。
// ユーザー設定ディレクトリが取得できない場合はカレントディレクトリを使う。
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".gatehouse", "session.json")
	}
	return filepath.Join(dir, "gatehouse", "session.json")
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
