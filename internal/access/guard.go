package access

import "github.com/hitoshi/gatehouse/internal/model"

// Outcome はアクセス判定の結果を表す。
type Outcome int

const (
	// OutcomeRender は要求されたページを表示する。
	OutcomeRender Outcome = iota
	// OutcomeRedirectLogin は未ログインのためログインページへ遷移する。
	OutcomeRedirectLogin
	// OutcomeRedirectDashboard はロール不一致のため自分のダッシュボードへ遷移する。
	OutcomeRedirectDashboard
)

// String はメトリクスやログで使う名前を返す。
func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeRedirectLogin:
		return "redirect_login"
	case OutcomeRedirectDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

// Decision はアクセス判定の結果と遷移先。
// LocationはOutcomeRender以外の場合のみ設定される。
type Decision struct {
	Outcome  Outcome
	Location string
}

// Evaluate は現在のIdentityとルートの必要ロールからアクセス可否を判定する。
//
// requiredがnilの場合はログイン済みであれば誰でも表示できる。
// それ以外はいずれかのロールに一致する必要があり、空スライスは誰も通さない。
//
//  1. identityがnil → ログインページへ
//  2. ロールがrequiredに含まれない → 自分のダッシュボードへ
//  3. それ以外 → 表示
func Evaluate(identity *model.Identity, required []model.Role) Decision {
	if identity == nil {
		return Decision{Outcome: OutcomeRedirectLogin, Location: LoginPath}
	}

	if required != nil && !containsRole(required, identity.Role) {
		return Decision{Outcome: OutcomeRedirectDashboard, Location: DashboardPath(identity.Role)}
	}

	return Decision{Outcome: OutcomeRender}
}

func containsRole(roles []model.Role, role model.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
