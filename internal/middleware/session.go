// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hitoshi/gatehouse/internal/model"
	"github.com/hitoshi/gatehouse/internal/session"
)

// SlotCookieName はブラウザごとのセッションスロットを識別するCookieの名前。
const SlotCookieName = "slot_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var slotContextKey = contextKey("session_slot")

// slot はリクエスト中のスロットキーとストアを保持する。
// ログイン時のRenewSlotで差し替えられるため、コンテキストにはポインタで載せる。
// openerがnilのスロットは切り替えできない。
type slot struct {
	key    string
	store  *session.Store
	opener StoreOpener
}

func slotFromContext(ctx context.Context) (*slot, bool) {
	s, ok := ctx.Value(slotContextKey).(*slot)
	return s, ok && s.store != nil
}

// StoreOpener はスロットキーからセッションストアを開くインターフェース。
// session.Managerが実装する。
type StoreOpener interface {
	Open(ctx context.Context, slotKey string) (*session.Store, error)
}

// SlotCookieConfig はスロットCookieの属性を保持する。
type SlotCookieConfig struct {
	MaxAge int
	Secure bool
	Domain string
}

// Issue はスロットCookieを設定する。
func (c SlotCookieConfig) Issue(w http.ResponseWriter, slotKey string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SlotCookieName,
		Value:    slotKey,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   c.MaxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Expire はスロットCookieを削除する。
func (c SlotCookieConfig) Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SlotCookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// NewSessionMiddleware はCookieのスロットキーからセッションストアを開き、
// リクエストコンテキストに注入するミドルウェアを返す。
// Cookieがない場合は新しいスロットキーを発行する。
// 未ログインでも401にはせず、認可はガードに任せる。
func NewSessionMiddleware(opener StoreOpener, cookie SlotCookieConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slotKey := ""
			if c, err := r.Cookie(SlotCookieName); err == nil {
				slotKey = c.Value
			}
			if slotKey == "" {
				slotKey = uuid.NewString()
				cookie.Issue(w, slotKey)
			}

			store, err := opener.Open(r.Context(), slotKey)
			if err != nil {
				slog.Error("failed to open session slot",
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}

			ctx := context.WithValue(r.Context(), slotContextKey, &slot{
				key:    slotKey,
				store:  store,
				opener: opener,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreFromContext はリクエストコンテキストからセッションストアを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func StoreFromContext(ctx context.Context) (*session.Store, bool) {
	s, ok := slotFromContext(ctx)
	if !ok {
		return nil, false
	}
	return s.store, true
}

// SlotKeyFromContext はリクエストのスロットキーを取得する。
func SlotKeyFromContext(ctx context.Context) string {
	s, ok := slotFromContext(ctx)
	if !ok {
		return ""
	}
	return s.key
}

// RenewSlot はidentを新しいスロットキーのストアに保存し、旧スロットを削除する。
// 以降このリクエストのStoreFromContextとSlotKeyFromContextは新しいスロットを返す。
// 新しいスロットへの保存に失敗した場合は旧スロットを変更しない。
//
// ContextWithStoreで注入した固定ストアは切り替えず、そのストアにidentを保存して
// 空のキーを返す。
func RenewSlot(ctx context.Context, ident *model.Identity) (string, error) {
	s, ok := slotFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("session slot missing from context")
	}
	if s.opener == nil {
		return "", s.store.Set(ctx, ident)
	}

	newKey := uuid.NewString()
	store, err := s.opener.Open(ctx, newKey)
	if err != nil {
		return "", fmt.Errorf("failed to open new slot: %w", err)
	}
	if err := store.Set(ctx, ident); err != nil {
		return "", err
	}

	// 旧スロットのCookieは上書きされるため、削除の失敗はログのみとする
	if err := s.store.Clear(ctx); err != nil {
		slog.Warn("failed to remove previous session slot", slog.String("error", err.Error()))
	}

	s.key = newKey
	s.store = store
	return newKey, nil
}

// IdentityFromContext は現在ログイン中のIdentityを返す。未ログインの場合はnil。
func IdentityFromContext(ctx context.Context) *model.Identity {
	store, ok := StoreFromContext(ctx)
	if !ok {
		return nil
	}
	return store.Current()
}

// ContextWithStore はコンテキストにセッションストアを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithStore(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, slotContextKey, &slot{store: store})
}
