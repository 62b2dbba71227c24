// Package access はロールごとのダッシュボードへの振り分けと、
// ページ遷移ごとのアクセス判定を提供する。
package access

import "github.com/hitoshi/gatehouse/internal/model"

// LoginPath はログインページのパス。
const LoginPath = "/login"

var dashboardPaths = map[model.Role]string{
	model.RoleResident: "/resident",
	model.RoleGuard:    "/guard",
	model.RoleAdmin:    "/admin",
}

// DashboardPath はロールに対応するダッシュボードのパスを返す。
// 各ロールはちょうど1つのパスに対応する。
// 列挙外のロールにはログインページを返す。
func DashboardPath(role model.Role) string {
	if p, ok := dashboardPaths[role]; ok {
		return p
	}
	return LoginPath
}
