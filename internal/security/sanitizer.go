// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizer は利用者が入力したテキスト（マーケットプレイスの出品タイトル等）から
// HTMLタグを完全に除去する。bluemondayのStrictPolicyを使用し、
// 画面側でそのままHTMLに埋め込んでも安全な文字列のみを返す。
package security

import "github.com/microcosm-cc/bluemonday"

// TextSanitizer はタグを一切許可しないサニタイザー。
// bluemondayのポリシーはスレッドセーフなため、1インスタンスを共有してよい。
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerを生成する。
// script、styleタグは中身ごと除去され、その他のタグはテキストのみ残る。
// &や<などの特殊文字はHTMLエスケープされる。
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText はHTMLタグを除去した文字列を返す。
// 同一入力に対して常に同一出力を返す。
func (s *TextSanitizer) SanitizeText(raw string) string {
	return s.policy.Sanitize(raw)
}
