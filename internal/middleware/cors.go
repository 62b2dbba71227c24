package middleware

import "net/http"

// NewCORSMiddleware は指定されたオリジンからのクロスオリジン要求を許可するミドルウェアを返す。
// credentials送信と共存するため、ワイルドカード(*)は使用しない。
// Originヘッダーが許可オリジンと一致する場合のみAccess-Control-*ヘッダーを付与する。
// OPTIONSプリフライトリクエストには一致の有無に関わらず204で応答する。
func NewCORSMiddleware(allowedOrigin string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// オリジンごとにレスポンスが変わるためキャッシュを分ける
			w.Header().Add("Vary", "Origin")

			if origin := r.Header.Get("Origin"); origin != "" && origin == allowedOrigin {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-CSRF-Token")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
