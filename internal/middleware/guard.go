package middleware

import (
	"net/http"

	"github.com/hitoshi/gatehouse/internal/access"
	"github.com/hitoshi/gatehouse/internal/metrics"
	"github.com/hitoshi/gatehouse/internal/model"
)

// NewAPIGuard は必要ロールを満たさないAPIリクエストを拒否するミドルウェアを返す。
// 判定はaccess.Evaluateで行い、ページとは異なりリダイレクトせずJSONで応答する。
//
//	RedirectLogin     → 401 UNAUTHENTICATED
//	RedirectDashboard → 403 WRONG_ROLE（redirectに自分のダッシュボード）
func NewAPIGuard(rec metrics.Recorder, required ...model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := IdentityFromContext(r.Context())
			decision := access.Evaluate(ident, required)
			rec.RecordGuardDecision(decision.Outcome.String())

			switch decision.Outcome {
			case access.OutcomeRender:
				next.ServeHTTP(w, r)
			case access.OutcomeRedirectDashboard:
				apiErr := model.NewWrongRoleError(ident.Role)
				apiErr.Redirect = decision.Location
				WriteErrorResponse(w, http.StatusForbidden, apiErr)
			default:
				WriteUnauthenticated(w)
			}
		})
	}
}
