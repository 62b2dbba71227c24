// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/gatehouse/internal/access"
	"github.com/hitoshi/gatehouse/internal/metrics"
	"github.com/hitoshi/gatehouse/internal/middleware"
	"github.com/hitoshi/gatehouse/internal/model"
)

// IdentityResolver は認証情報とロールからIdentityを生成するインターフェース。
// identity.Resolverが実装する。
type IdentityResolver interface {
	Resolve(email, password string, role model.Role) (*model.Identity, error)
}

// AuthHandler はログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	resolver IdentityResolver
	cookie   middleware.SlotCookieConfig
	metrics  metrics.Recorder
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(resolver IdentityResolver, cookie middleware.SlotCookieConfig, rec metrics.Recorder) *AuthHandler {
	return &AuthHandler{
		resolver: resolver,
		cookie:   cookie,
		metrics:  rec,
	}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	User     *model.Identity `json:"user"`
	Redirect string          `json:"redirect"`
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
}

// Login はIdentityを解決し、新しいスロットに保存してCookieを発行し直す。
// POST /auth/login
// 失敗時はセッションを変更しない。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.StoreFromContext(r.Context()); !ok {
		slog.Error("session store missing from request context")
		middleware.WriteInternalServerError(w)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.metrics.RecordLoginFailure("invalid_request")
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	ident, err := h.resolver.Resolve(req.Email, req.Password, model.Role(req.Role))
	switch {
	case errors.Is(err, model.ErrEmptyCredentials):
		h.metrics.RecordLoginFailure("empty_credentials")
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewEmptyCredentialsError())
		return
	case errors.Is(err, model.ErrInvalidRole):
		h.metrics.RecordLoginFailure("invalid_role")
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRoleError(req.Role))
		return
	case err != nil:
		slog.Error("failed to resolve identity", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	// ログイン前のスロットキーは引き継がない
	slotKey, err := middleware.RenewSlot(r.Context(), ident)
	if err != nil {
		slog.Error("failed to save session", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}
	if slotKey != "" {
		h.cookie.Issue(w, slotKey)
	}

	h.metrics.RecordLogin(ident.Role.String())
	slog.Info("login",
		slog.String("identity_id", ident.ID),
		slog.String("role", ident.Role.String()),
	)

	writeJSON(w, http.StatusOK, loginResponse{
		User:     ident,
		Redirect: access.DashboardPath(ident.Role),
	})
}

// Logout はセッションを破棄し、スロットCookieを削除する。
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if store, ok := middleware.StoreFromContext(r.Context()); ok {
		if err := store.Clear(r.Context()); err != nil {
			slog.Error("failed to clear session", slog.String("error", err.Error()))
			middleware.WriteInternalServerError(w)
			return
		}
	}

	h.cookie.Expire(w)
	h.metrics.RecordLogout()

	writeJSON(w, http.StatusOK, redirectResponse{Redirect: access.LoginPath})
}

// Me は現在のIdentityを返す。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		middleware.WriteUnauthenticated(w)
		return
	}
	writeJSON(w, http.StatusOK, ident)
}
