// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
)

// Role はポータル利用者の役割を表す。
// resident, guard, admin の3値のみを取る閉じた列挙型。
type Role string

const (
	// RoleResident は居住者を表す。
	RoleResident Role = "resident"
	// RoleGuard は警備員を表す。
	RoleGuard Role = "guard"
	// RoleAdmin は管理者を表す。
	RoleAdmin Role = "admin"
)

// ErrInvalidRole は列挙外のロールが指定された場合のエラー。
var ErrInvalidRole = errors.New("invalid role")

// Roles は定義済みの全ロールを返す。
func Roles() []Role {
	return []Role{RoleResident, RoleGuard, RoleAdmin}
}

// Valid はロールが列挙値のいずれかであるかを判定する。
func (r Role) Valid() bool {
	switch r {
	case RoleResident, RoleGuard, RoleAdmin:
		return true
	default:
		return false
	}
}

// String はロールの文字列表現を返す。
func (r Role) String() string {
	return string(r)
}

// ParseRole は文字列をRoleに変換する。
// 列挙外の値の場合はErrInvalidRoleを返す。
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
