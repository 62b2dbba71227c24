package model

import (
	"errors"
	"fmt"
)

// ErrEmptyCredentials はメールアドレスまたはパスワードが空の場合のエラー。
var ErrEmptyCredentials = errors.New("email and password are required")

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, dashboard, system
	Action   string // ユーザー向け対処方法
	Redirect string // 遷移先（ロール不一致時のみ）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEmptyCredentials = "EMPTY_CREDENTIALS"
	ErrCodeInvalidRole      = "INVALID_ROLE"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrCodeWrongRole        = "WRONG_ROLE"
	ErrCodeVisitorNotFound  = "VISITOR_NOT_FOUND"
	ErrCodeInvalidCategory  = "INVALID_CATEGORY"
	ErrCodeInvalidPostType  = "INVALID_POST_TYPE"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeCSRF             = "CSRF_TOKEN_INVALID"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// NewEmptyCredentialsError はメールアドレス・パスワード未入力エラーを生成する。
func NewEmptyCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyCredentials,
		Message:  "メールアドレスとパスワードを入力してください。",
		Category: "auth",
		Action:   "メールアドレスとパスワードを入力して再度ログインしてください。",
	}
}

// NewInvalidRoleError は無効なロールエラーを生成する。
func NewInvalidRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  fmt.Sprintf("無効なロールです: %s", role),
		Category: "validation",
		Action:   "ロールには resident、guard、admin のいずれかを指定してください。",
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストの形式が正しくありません。",
		Category: "validation",
		Action:   "JSON形式のリクエストボディを送信してください。",
	}
}

// NewValidationError は入力値検証エラーを生成する。
func NewValidationError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("入力値が正しくありません: %s", detail),
		Category: "validation",
		Action:   "入力内容を確認してください。",
	}
}

// NewUnauthenticatedError は未ログインエラーを生成する。
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "ログインしていません。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewWrongRoleError はロール不一致エラーを生成する。
func NewWrongRoleError(role Role) *APIError {
	return &APIError{
		Code:     ErrCodeWrongRole,
		Message:  fmt.Sprintf("%s ロールではこの機能を利用できません。", role),
		Category: "auth",
		Action:   "自分のダッシュボードから操作してください。",
	}
}

// NewVisitorNotFoundError は来訪者未検出エラーを生成する。
func NewVisitorNotFoundError(visitorID string) *APIError {
	return &APIError{
		Code:     ErrCodeVisitorNotFound,
		Message:  fmt.Sprintf("指定された来訪者が見つかりません: %s", visitorID),
		Category: "dashboard",
		Action:   "来訪者IDを確認してください。",
	}
}

// NewInvalidCategoryError は無効な出品カテゴリエラーを生成する。
func NewInvalidCategoryError(category string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCategory,
		Message:  fmt.Sprintf("無効なカテゴリです: %s", category),
		Category: "validation",
		Action:   "カテゴリには all、sale、rent、service、lost のいずれかを指定してください。",
	}
}

// NewInvalidPostTypeError は無効な投稿種別エラーを生成する。
func NewInvalidPostTypeError(postType string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPostType,
		Message:  fmt.Sprintf("無効な投稿種別です: %s", postType),
		Category: "validation",
		Action:   "種別には all、alert、announcement、event、poll のいずれかを指定してください。",
	}
}

// NewNotFoundError はページ未検出エラーを生成する。
func NewNotFoundError(path string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("ページが見つかりません: %s", path),
		Category: "system",
		Action:   "URLを確認してください。",
	}
}

// NewCSRFError はCSRFトークン検証失敗エラーを生成する。
func NewCSRFError() *APIError {
	return &APIError{
		Code:     ErrCodeCSRF,
		Message:  "CSRFトークンの検証に失敗しました。",
		Category: "auth",
		Action:   "ページを再読み込みしてから再度お試しください。",
	}
}

// NewRateLimitError はレート制限超過エラーを生成する。
func NewRateLimitError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "リクエストが多すぎます。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
