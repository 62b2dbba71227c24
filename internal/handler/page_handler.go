package handler

import (
	"net/http"
	"strings"

	"github.com/hitoshi/gatehouse/internal/access"
	"github.com/hitoshi/gatehouse/internal/dashboard"
	"github.com/hitoshi/gatehouse/internal/metrics"
	"github.com/hitoshi/gatehouse/internal/middleware"
	"github.com/hitoshi/gatehouse/internal/model"
)

// ResidentSections は居住者ダッシュボードのセクション一覧。
var ResidentSections = []string{"visitors", "services", "facilities", "marketplace", "feed"}

// PageView は画面描画層に渡すビューモデル。
type PageView struct {
	View string          `json:"view"`
	User *model.Identity `json:"user,omitempty"`
	Data interface{}     `json:"data,omitempty"`
}

// PageHandler はaccess.Routesのページを判定し、リダイレクトまたはビューモデルを返す。
type PageHandler struct {
	service DashboardService
	metrics metrics.Recorder
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(service DashboardService, rec metrics.Recorder) *PageHandler {
	return &PageHandler{
		service: service,
		metrics: rec,
	}
}

// ServeHTTP はページ遷移を判定する。
//
//	RedirectLogin     → 302 /login
//	RedirectDashboard → 302 /{role}
//	Render            → 200 ビューモデル
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	decision, ok := access.Navigate(ident, r.URL.Path)
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.metrics.RecordGuardDecision(decision.Outcome.String())

	if decision.Outcome != access.OutcomeRender {
		http.Redirect(w, r, decision.Location, http.StatusFound)
		return
	}

	view, ok := h.render(r, ident)
	if !ok {
		h.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// NotFound は未定義のパスに対するビューを返す。
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewNotFoundError(r.URL.Path))
}

// render はパスに対応するビューモデルを組み立てる。
// 居住者ダッシュボードの未定義セクションはfalseを返す。
func (h *PageHandler) render(r *http.Request, ident *model.Identity) (PageView, bool) {
	path := r.URL.Path
	view := PageView{User: ident}

	switch {
	case path == "/":
		view.View = "landing"
		view.Data = map[string]interface{}{
			"login": access.LoginPath,
			"roles": model.Roles(),
		}
	case path == access.LoginPath:
		view.View = "login"
		view.Data = map[string]interface{}{
			"roles": model.Roles(),
		}
	case path == "/resident":
		view.View = "resident"
		view.Data = map[string]interface{}{
			"sections": ResidentSections,
			"visitors": h.service.ListVisitors(""),
			"feed":     listAll(h.service.ListPosts(dashboard.FilterAll)),
		}
	case strings.HasPrefix(path, "/resident/"):
		section := strings.TrimPrefix(path, "/resident/")
		data, ok := h.residentSection(r, section)
		if !ok {
			return PageView{}, false
		}
		view.View = "resident_" + section
		view.Data = data
	case path == "/guard":
		view.View = "guard"
		view.Data = map[string]interface{}{
			"visitors": h.service.ListGateEntries(r.URL.Query().Get("q")),
			"parcels":  h.service.ListParcels(),
		}
	case path == "/admin":
		view.View = "admin"
		view.Data = h.service.Overview()
	default:
		return PageView{}, false
	}

	return view, true
}

func (h *PageHandler) residentSection(r *http.Request, section string) (interface{}, bool) {
	switch section {
	case "visitors":
		return h.service.ListVisitors(r.URL.Query().Get("q")), true
	case "services":
		return h.service.Services(), true
	case "facilities":
		return h.service.Facilities(), true
	case "marketplace":
		return listAll(h.service.ListListings(dashboard.FilterAll)), true
	case "feed":
		return listAll(h.service.ListPosts(dashboard.FilterAll)), true
	default:
		return nil, false
	}
}

// listAll はFilterAllで取得した一覧を返す。FilterAllではエラーにならない。
func listAll[T any](list []T, _ error) []T {
	return list
}
