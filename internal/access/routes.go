package access

import (
	"strings"

	"github.com/hitoshi/gatehouse/internal/model"
)

// Route はページのパスと表示に必要なロールを表す。
type Route struct {
	// Pattern はchiのルートパターン。末尾の/*は配下すべてに一致する。
	Pattern string
	// Public がtrueのルートはアクセス判定を行わない。
	Public bool
	// Landing がtrueの公開ルートは、ログイン済みなら自分のダッシュボードへ遷移させる。
	Landing bool
	// Roles は表示に必要なロール。nilはログイン済みなら誰でも可。
	Roles []model.Role
}

// Routes はページルートの一覧。認可ポリシーはこの表とEvaluateだけで決まる。
var Routes = []Route{
	{Pattern: "/", Public: true, Landing: true},
	{Pattern: LoginPath, Public: true},
	{Pattern: "/resident", Roles: []model.Role{model.RoleResident}},
	{Pattern: "/resident/*", Roles: []model.Role{model.RoleResident}},
	{Pattern: "/guard", Roles: []model.Role{model.RoleGuard}},
	{Pattern: "/admin", Roles: []model.Role{model.RoleAdmin}},
}

// Lookup はパスに一致するルートを返す。一致しない場合はfalseを返す。
// 完全一致を優先し、次に/*パターンの前方一致を評価する。
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Pattern == path {
			return r, true
		}
	}
	for _, r := range Routes {
		prefix, ok := strings.CutSuffix(r.Pattern, "/*")
		if ok && strings.HasPrefix(path, prefix+"/") {
			return r, true
		}
	}
	return Route{}, false
}

// Navigate はパスへの遷移を判定する。
// ルートが存在しない場合はfalseを返す。
func Navigate(identity *model.Identity, path string) (Decision, bool) {
	route, ok := Lookup(path)
	if !ok {
		return Decision{}, false
	}
	return route.Decide(identity), true
}

// Decide はルートに対するアクセス判定を返す。
func (r Route) Decide(identity *model.Identity) Decision {
	if !r.Public {
		return Evaluate(identity, r.Roles)
	}
	if r.Landing && identity != nil {
		return Decision{Outcome: OutcomeRedirectDashboard, Location: DashboardPath(identity.Role)}
	}
	return Decision{Outcome: OutcomeRender}
}
