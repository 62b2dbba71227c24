package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/gatehouse/internal/model"
)

const (
	// CSRFCookieName はCSRFトークンを保持するCookieの名前。
	// フロントエンドが読み取ってヘッダーへ写すため、HttpOnlyにはしない。
	CSRFCookieName = "csrf_token"

	// CSRFHeaderName は状態変更リクエストでトークンを送るヘッダー名。
	CSRFHeaderName = "X-CSRF-Token"

	defaultCSRFMaxAge = 86400
	csrfTokenBytes    = 32
)

var csrfTokenContextKey = contextKey("csrf_token")

// CSRFConfig はCSRFトークンCookieの属性を保持する。
// MaxAgeが0以下の場合は1日を使う。
type CSRFConfig struct {
	MaxAge int
	Secure bool
	Domain string
}

func (c CSRFConfig) maxAge() int {
	if c.MaxAge <= 0 {
		return defaultCSRFMaxAge
	}
	return c.MaxAge
}

// NewCSRFMiddleware はダブルサブミット方式のCSRF検証ミドルウェアを返す。
//
// 読み取り系メソッド（GET/HEAD/OPTIONS）は検証せず、トークンCookieが無ければ発行する。
// 発行したトークンはリクエストコンテキストにも載せ、同じリクエスト内の
// NewCSRFTokenHandlerがそれを返す。
// 状態変更メソッドはCookieとX-CSRF-Tokenヘッダーの一致を必須とし、
// 不一致は403 CSRF_TOKEN_INVALIDを返す。
func NewCSRFMiddleware(config CSRFConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isStateChanging(r.Method) {
				if token := cookieToken(r); token != "" {
					next.ServeHTTP(w, r)
					return
				}
				token, err := issueCSRFToken(w, config)
				if err != nil {
					slog.Error("CSRFトークンの生成に失敗しました", slog.String("error", err.Error()))
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfTokenContextKey, token)))
				return
			}

			if reason := verifyCSRF(r); reason != "" {
				slog.Warn("CSRF検証に失敗しました",
					slog.String("reason", reason),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				WriteErrorResponse(w, http.StatusForbidden, model.NewCSRFError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NewCSRFTokenHandler はGET /api/csrf-tokenのハンドラーを返す。
// Cookie、コンテキスト（直前にミドルウェアが発行したもの）の順にトークンを探し、
// どちらにも無い場合のみ新規発行する。レスポンスは {"token": "..."}。
func NewCSRFTokenHandler(config CSRFConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := cookieToken(r)
		if token == "" {
			token, _ = r.Context().Value(csrfTokenContextKey).(string)
		}
		if token == "" {
			var err error
			token, err = issueCSRFToken(w, config)
			if err != nil {
				slog.Error("CSRFトークンの生成に失敗しました", slog.String("error", err.Error()))
				WriteInternalServerError(w)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"token": token}); err != nil {
			slog.Debug("CSRFトークンのレスポンス書き込みに失敗しました", slog.String("error", err.Error()))
		}
	})
}

func cookieToken(r *http.Request) string {
	c, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// verifyCSRF は検証失敗の理由を返す。一致した場合は空文字列。
func verifyCSRF(r *http.Request) string {
	cookie := cookieToken(r)
	if cookie == "" {
		return "missing cookie token"
	}
	header := r.Header.Get(CSRFHeaderName)
	if header == "" {
		return "missing header token"
	}
	if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
		return "token mismatch"
	}
	return ""
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func issueCSRFToken(w http.ResponseWriter, config CSRFConfig) (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		Domain:   config.Domain,
		MaxAge:   config.maxAge(),
		Secure:   config.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}
