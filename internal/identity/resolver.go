// Package identity はログイン情報からIdentityを導出する。
//
// パスワードはどの資格情報とも照合しない。空でなければ常に成功する。
// ロールは呼び出し側が選択した値をそのまま採用する。
// 実運用では資格情報を検証する認証基盤にResolverを差し替える前提。
package identity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hitoshi/gatehouse/internal/model"
)

// PlaceholderFlatNumber はresidentに割り当てる固定の部屋番号。
const PlaceholderFlatNumber = "A-101"

// ErrEmptyCredentials はメールアドレスまたはパスワードが空の場合に返る。
var ErrEmptyCredentials = model.ErrEmptyCredentials

// Resolver はログイン情報からIdentityを生成する。
type Resolver struct {
	newID func() string
}

// NewResolver はResolverを生成する。IDにはUUIDv4を使用する。
func NewResolver() *Resolver {
	return &Resolver{newID: uuid.NewString}
}

// Resolve はemail、password、roleから新しいIdentityを生成する。
// emailまたはpasswordが空の場合はErrEmptyCredentialsを返す。
// 永続化は行わない。呼び出し側がsession.Store.Setで保存する。
func (r *Resolver) Resolve(email, password string, role model.Role) (*model.Identity, error) {
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidRole, role)
	}

	ident := &model.Identity{
		ID:    r.newID(),
		Email: email,
		Name:  NameFromEmail(email),
		Role:  role,
	}
	if role == model.RoleResident {
		ident.FlatNumber = PlaceholderFlatNumber
	}

	return ident, nil
}

// NameFromEmail はメールアドレスの最初の@より前の部分を返す。
// @を含まない場合は文字列全体を返す。
func NameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
