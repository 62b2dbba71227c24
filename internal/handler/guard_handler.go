package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/gatehouse/internal/metrics"
	"github.com/hitoshi/gatehouse/internal/model"
)

// GuardHandler は警備員ダッシュボードのAPIハンドラー。
type GuardHandler struct {
	service DashboardService
	metrics metrics.Recorder
}

// NewGuardHandler はGuardHandlerを生成する。
func NewGuardHandler(service DashboardService, rec metrics.Recorder) *GuardHandler {
	return &GuardHandler{service: service, metrics: rec}
}

// ListVisitors は入館申請を返す。名前または部屋番号で絞り込める。
// GET /api/guard/visitors?q=
func (h *GuardHandler) ListVisitors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListGateEntries(r.URL.Query().Get("q")))
}

// ApproveVisitor は入館を許可する。
// POST /api/guard/visitors/{id}/approve
func (h *GuardHandler) ApproveVisitor(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.GateApproved)
}

// DenyVisitor は入館を拒否する。
// POST /api/guard/visitors/{id}/deny
func (h *GuardHandler) DenyVisitor(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.GateDenied)
}

func (h *GuardHandler) decide(w http.ResponseWriter, r *http.Request, status model.GateStatus) {
	id := chi.URLParam(r, "id")

	entry, err := h.service.DecideGateEntry(id, status)
	if err != nil {
		handleDashboardError(w, err, id)
		return
	}

	h.metrics.RecordVisitorDecision(string(status))
	writeJSON(w, http.StatusOK, entry)
}

// ListParcels は預かり中の荷物を返す。
// GET /api/guard/parcels
func (h *GuardHandler) ListParcels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListParcels())
}

// AdminHandler は管理者ダッシュボードのAPIハンドラー。
type AdminHandler struct {
	service DashboardService
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(service DashboardService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Overview は統計と最近のアクティビティを返す。
// GET /api/admin/overview
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Overview())
}
