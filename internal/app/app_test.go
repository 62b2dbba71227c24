package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/gatehouse/internal/config"
)

func TestInit_WithValidConfig_Succeeds(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "warn")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.SessionBackend != config.BackendMemory {
		t.Errorf("SessionBackend = %q, want %q", cfg.SessionBackend, config.BackendMemory)
	}

	// 設定されたレベル未満のログは出力されない
	slog.Default().Info("suppressed")
	slog.Default().Warn("init test")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON log line, got error: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "init test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "init test")
	}
}

func TestInit_WithMissingDatabaseURL_ReturnsError(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err == nil {
		t.Fatal("expected error for missing DATABASE_URL, got nil")
	}
	if cfg != nil {
		t.Error("expected nil config on error")
	}
}

func memoryConfig() *config.Config {
	return &config.Config{
		SessionBackend:    config.BackendMemory,
		SlotCookieMaxAge:  3600,
		RateLimitGeneral:  120,
		RateLimitLogin:    10,
		ServerPort:        "0",
		BaseURL:           "http://localhost:8080",
		ShutdownTimeout:   time.Second,
		CORSAllowedOrigin: "http://localhost:5173",
		LogLevel:          "info",
	}
}

func TestNewServerHandler_MemoryBackend(t *testing.T) {
	cfg := memoryConfig()
	backend, err := openSlotBackend(cfg)
	if err != nil {
		t.Fatalf("openSlotBackend() error: %v", err)
	}
	defer backend.Close()

	router, stop, err := newServerHandler(cfg, backend)
	if err != nil {
		t.Fatalf("newServerHandler() error: %v", err)
	}
	defer stop()

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("/metrics should expose Go runtime metrics")
	}

	resp, err = http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"jane@x.com","password":"pw","role":"resident"}`))
	if err != nil {
		t.Fatalf("POST /auth/login failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/auth/login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestMaskDatabaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://gatehouse:secret@db:5432/gatehouse?sslmode=disable", "postgres://gatehouse:xxxxx@db:5432/gatehouse?sslmode=disable"},
		{"postgres://db:5432/gatehouse", "postgres://db:5432/gatehouse"},
		{"not a url", "***"},
	}

	for _, tt := range tests {
		if got := maskDatabaseURL(tt.in); got != tt.want {
			t.Errorf("maskDatabaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
