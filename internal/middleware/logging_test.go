package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/gatehouse/internal/model"
)

// TestLoggingMiddleware_LogsRequestFields はリクエストログに必要なフィールドが含まれることを検証する。
func TestLoggingMiddleware_LogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := NewLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/resident/visitors", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v\nraw: %s", err, buf.String())
	}

	// 必須フィールドの検証
	if entry["method"] != "GET" {
		t.Errorf("method = %q, want %q", entry["method"], "GET")
	}
	if entry["path"] != "/api/resident/visitors" {
		t.Errorf("path = %q, want %q", entry["path"], "/api/resident/visitors")
	}
	if _, ok := entry["status"]; !ok {
		t.Error("expected 'status' field in log entry")
	}
	if status, ok := entry["status"].(float64); ok && status != 200 {
		t.Errorf("status = %v, want 200", status)
	}
	if _, ok := entry["duration_ms"]; !ok {
		t.Error("expected 'duration_ms' field in log entry")
	}
	if entry["remote_addr"] != req.RemoteAddr {
		t.Errorf("remote_addr = %v, want %q", entry["remote_addr"], req.RemoteAddr)
	}
}

// TestLoggingMiddleware_IncludesIdentity はログイン中のIdentityがログに含まれることを検証する。
func TestLoggingMiddleware_IncludesIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := NewLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/resident/visitors", nil)
	req = req.WithContext(contextWithIdentity(t, req.Context(), testIdentity(model.RoleResident)))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v", err)
	}

	if entry["identity_id"] != "id-resident" {
		t.Errorf("identity_id = %q, want %q", entry["identity_id"], "id-resident")
	}
	if entry["role"] != "resident" {
		t.Errorf("role = %q, want %q", entry["role"], "resident")
	}
}

// TestLoggingMiddleware_NoIdentity_OmitsField は未ログインの場合にフィールドが含まれないことを検証する。
func TestLoggingMiddleware_NoIdentity_OmitsField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := NewLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/resident/visitors", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v", err)
	}

	if _, ok := entry["identity_id"]; ok {
		t.Error("identity_id should be omitted for unauthenticated request")
	}
}

func TestLoggingMiddleware_StatusBytesAndLevel(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantBytes int
		wantLevel string
	}{
		{
			name:      "implicit 200 from Write",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("render")) },
			wantCode:  http.StatusOK,
			wantBytes: len("render"),
			wantLevel: "INFO",
		},
		{
			name:      "redirect",
			handler:   func(w http.ResponseWriter, r *http.Request) { http.Redirect(w, r, "/login", http.StatusFound) },
			wantCode:  http.StatusFound,
			wantLevel: "INFO",
		},
		{
			name: "wrong role",
			handler: func(w http.ResponseWriter, r *http.Request) {
				WriteErrorResponse(w, http.StatusForbidden, model.NewWrongRoleError(model.RoleGuard))
			},
			wantCode:  http.StatusForbidden,
			wantBytes: -1,
			wantLevel: "WARN",
		},
		{
			name:      "internal error",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantCode:  http.StatusInternalServerError,
			wantLevel: "ERROR",
		},
		{
			name: "first WriteHeader wins",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				w.WriteHeader(http.StatusTeapot)
			},
			wantCode:  http.StatusAccepted,
			wantLevel: "INFO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			NewLoggingMiddleware(logger)(tt.handler).ServeHTTP(
				httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/resident/visitors", nil))

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse JSON log: %v", err)
			}
			if got := int(entry["status"].(float64)); got != tt.wantCode {
				t.Errorf("status = %d, want %d", got, tt.wantCode)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			got := int(entry["bytes"].(float64))
			switch {
			case tt.wantBytes < 0 && got == 0:
				t.Error("bytes = 0, want a non-empty body")
			case tt.wantBytes > 0 && got != tt.wantBytes:
				t.Errorf("bytes = %d, want %d", got, tt.wantBytes)
			}
			if d := entry["duration_ms"].(float64); d < 0 {
				t.Errorf("duration_ms = %v, want >= 0", d)
			}
		})
	}
}

// TestLoggingMiddleware_LogoutOmitsIdentity はハンドラー内でログアウトした場合、
// 実行後の状態に従いidentity_idを出力しないことを検証する。
func TestLoggingMiddleware_LogoutOmitsIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := NewLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := StoreFromContext(r.Context())
		if !ok {
			t.Fatal("store missing from context")
		}
		if err := store.Clear(r.Context()); err != nil {
			t.Fatalf("Clear() error: %v", err)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = req.WithContext(contextWithIdentity(t, req.Context(), testIdentity(model.RoleGuard)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v", err)
	}
	if _, ok := entry["identity_id"]; ok {
		t.Errorf("identity_id = %v, want omitted after logout", entry["identity_id"])
	}
}
