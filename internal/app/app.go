// Package app はサブコマンドの振り分けと依存関係のワイヤリングを行う。
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/gatehouse/internal/config"
	"github.com/hitoshi/gatehouse/internal/dashboard"
	"github.com/hitoshi/gatehouse/internal/database"
	"github.com/hitoshi/gatehouse/internal/handler"
	"github.com/hitoshi/gatehouse/internal/identity"
	"github.com/hitoshi/gatehouse/internal/logger"
	"github.com/hitoshi/gatehouse/internal/metrics"
	"github.com/hitoshi/gatehouse/internal/middleware"
	"github.com/hitoshi/gatehouse/internal/repository"
	"github.com/hitoshi/gatehouse/internal/security"
	"github.com/hitoshi/gatehouse/internal/session"
	"github.com/hitoshi/gatehouse/internal/worker/cleanup"
)

// loadDotEnv はカレントディレクトリの.envを環境変数に読み込む。
// ファイルが存在しない場合は何もしない。既存の環境変数は上書きしない。
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Init はアプリケーションの初期化を行う。
// .envと環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. .envと環境変数から設定を読み込む
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルで再構成する
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。CLIの結果はstdoutに、ログはstderrに出力する。
func Run(stdout, stderr io.Writer, args []string) error {
	cmd := ParseCommand(args)
	var rest []string
	if len(args) > 0 {
		rest = args[1:]
	}

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// セッションコマンドはファイルのスロットだけを使う
	if cmd.IsSessionCommand() {
		if err := loadDotEnv(); err != nil {
			return err
		}
		logger.SetupDefault(stderr, logger.ParseLevel(os.Getenv("LOG_LEVEL")))
		return runSessionCommand(ctx, newCLI(config.SessionFilePath(), stdout), cmd, rest)
	}

	cfg, err := Init(stderr)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("session_backend", cfg.SessionBackend),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(ctx, cfg)
	}
}

// runSessionCommand はCLIのセッションコマンドを実行する。
func runSessionCommand(ctx context.Context, c *cli, cmd Command, args []string) error {
	switch cmd {
	case CommandLogin:
		return c.login(ctx, args)
	case CommandLogout:
		return c.logout(ctx)
	case CommandWhoami:
		return c.whoami(ctx)
	case CommandVisit:
		return c.visit(ctx, args)
	default:
		return fmt.Errorf("unknown session command %q", cmd)
	}
}

// slotBackend はセッションスロットの保存先と、その疎通確認を表す。
// dbはpostgresバックエンドの場合のみ設定される。
type slotBackend struct {
	kv      session.KeyValueStore
	checker handler.HealthChecker
	db      *sql.DB
}

func (b *slotBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// openSlotBackend はSESSION_BACKENDに応じてスロットの保存先を開く。
func openSlotBackend(cfg *config.Config) (*slotBackend, error) {
	if cfg.SessionBackend == config.BackendMemory {
		slog.Warn("using in-memory session slots; sessions are lost on restart")
		kv := session.NewMemoryKV()
		return &slotBackend{kv: kv, checker: kv}, nil
	}

	db, err := database.Open(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	slog.Info("database connection established")

	repo := repository.NewPostgresSlotRepo(db)
	return &slotBackend{kv: repo, checker: repo, db: db}, nil
}

// newServerHandler は全依存関係をワイヤリングしたHTTPハンドラーを返す。
// 返されるstopはレートリミッターのクリーンアップを停止する。
func newServerHandler(cfg *config.Config, backend *slotBackend) (http.Handler, func(), error) {
	// 1. ダッシュボードのシードデータ
	seed, err := dashboard.DefaultSeed()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dashboard seed: %w", err)
	}
	dashboardService := dashboard.NewService(seed, security.NewTextSanitizer())

	// 2. メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	// 3. レート制限（設定はreq/min単位）
	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigPerMinute(cfg.RateLimitGeneral, cfg.RateLimitLogin),
	)

	// 4. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		HealthChecker: backend.checker,
		Sessions:      session.NewManager(backend.kv),
		SlotCookie: middleware.SlotCookieConfig{
			MaxAge: cfg.SlotCookieMaxAge,
			Secure: cfg.CookieSecure,
			Domain: cfg.CookieDomain,
		},
		CSRF: middleware.CSRFConfig{
			Secure: cfg.CookieSecure,
			Domain: cfg.CookieDomain,
		},
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),
		Metrics:           collector,
		MetricsGatherer:   reg,
		Resolver:          identity.NewResolver(),
		Dashboard:         dashboardService,
	})

	return router, rateLimiter.Stop, nil
}

// runServe はHTTPサーバーモードで起動する。
// ctxがキャンセルされるとグレースフルシャットダウンを行う。
func runServe(ctx context.Context, cfg *config.Config) error {
	backend, err := openSlotBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	router, stop, err := newServerHandler(cfg, backend)
	if err != nil {
		return err
	}
	defer stop()

	// Cookieの有効期限を過ぎたスロットを日次で削除する
	if backend.db != nil {
		job := cleanup.NewSlotCleanupJob(backend.db, slog.Default(),
			time.Duration(cfg.SlotCookieMaxAge)*time.Second)
		go job.Start(ctx, cleanup.DefaultInterval)
	}

	listener, err := net.Listen("tcp", ":"+cfg.ServerPort)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.ServerPort, err)
	}

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server starting", slog.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server listen error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はセッションスロットのテーブルを作成するマイグレーションを実行する。
// memoryバックエンドでは何もしない。
func runMigrate(cfg *config.Config) error {
	if cfg.SessionBackend != config.BackendPostgres {
		slog.Info("session backend does not use a database; nothing to migrate",
			slog.String("session_backend", cfg.SessionBackend),
		)
		return nil
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	status, err := database.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully",
		slog.Uint64("version", uint64(status.Version)),
		slog.Bool("dirty", status.Dirty),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	target := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(target)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLのパスワードをマスクする。
// 解析できない場合は全体を伏せる。
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Redacted()
}
