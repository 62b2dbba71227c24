package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/gatehouse/internal/dashboard"
	"github.com/hitoshi/gatehouse/internal/metrics"
	"github.com/hitoshi/gatehouse/internal/middleware"
	"github.com/hitoshi/gatehouse/internal/model"
)

// ResidentHandler は居住者ダッシュボードのAPIハンドラー。
type ResidentHandler struct {
	service   DashboardService
	validator *Validator
	metrics   metrics.Recorder
}

// NewResidentHandler はResidentHandlerを生成する。
func NewResidentHandler(service DashboardService, validator *Validator, rec metrics.Recorder) *ResidentHandler {
	return &ResidentHandler{
		service:   service,
		validator: validator,
		metrics:   rec,
	}
}

// bookingRequest は施設予約リクエストのボディ。
type bookingRequest struct {
	Facility string `json:"facility" validate:"required,max=64"`
	Date     string `json:"date" validate:"required,date_ymd"`
	TimeSlot string `json:"time_slot" validate:"required,max=64"`
}

// listingRequest は出品リクエストのボディ。
type listingRequest struct {
	Title    string `json:"title" validate:"required,max=120"`
	Category string `json:"category" validate:"required,oneof=sale rent service lost"`
	Price    string `json:"price" validate:"max=40"`
}

// ListVisitors は来訪者一覧を返す。
// GET /api/resident/visitors?q=
func (h *ResidentHandler) ListVisitors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListVisitors(r.URL.Query().Get("q")))
}

// ApproveVisitor は来訪者を承認する。
// POST /api/resident/visitors/{id}/approve
func (h *ResidentHandler) ApproveVisitor(w http.ResponseWriter, r *http.Request) {
	h.decideVisitor(w, r, model.VisitorApproved)
}

// RejectVisitor は来訪者を却下する。
// POST /api/resident/visitors/{id}/reject
func (h *ResidentHandler) RejectVisitor(w http.ResponseWriter, r *http.Request) {
	h.decideVisitor(w, r, model.VisitorRejected)
}

func (h *ResidentHandler) decideVisitor(w http.ResponseWriter, r *http.Request, status model.VisitorStatus) {
	id := chi.URLParam(r, "id")

	visitor, err := h.service.DecideVisitor(id, status)
	if err != nil {
		handleDashboardError(w, err, id)
		return
	}

	h.metrics.RecordVisitorDecision(string(status))
	writeJSON(w, http.StatusOK, visitor)
}

// IssuePass は来訪者の入館パスを発行する。
// POST /api/resident/visitors/{id}/pass
func (h *ResidentHandler) IssuePass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pass, err := h.service.IssueVisitorPass(id)
	if err != nil {
		handleDashboardError(w, err, id)
		return
	}
	writeJSON(w, http.StatusCreated, pass)
}

// Services は緊急連絡先・館内サービス・外部サービスを返す。
// GET /api/resident/services
func (h *ResidentHandler) Services(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Services())
}

// Facilities は施設・時間帯・予約一覧を返す。
// GET /api/resident/facilities
func (h *ResidentHandler) Facilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Facilities())
}

// BookFacility は施設予約を申請する。
// POST /api/resident/facilities/bookings
func (h *ResidentHandler) BookFacility(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	booking, err := h.service.BookFacility(req.Facility, req.Date, req.TimeSlot)
	if err != nil {
		handleDashboardError(w, err, "")
		return
	}

	h.metrics.RecordBooking()
	writeJSON(w, http.StatusCreated, booking)
}

// ListListings は出品一覧を返す。
// GET /api/resident/marketplace?category=
func (h *ResidentHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListListings(r.URL.Query().Get("category"))
	if err != nil {
		handleDashboardError(w, err, r.URL.Query().Get("category"))
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// AddListing は出品を追加する。出品者は呼び出し元の部屋番号になる。
// POST /api/resident/marketplace
func (h *ResidentHandler) AddListing(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident == nil {
		middleware.WriteUnauthenticated(w)
		return
	}

	var req listingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewValidationError(err.Error()))
		return
	}

	listing, err := h.service.AddListing(ident.FlatNumber, dashboard.NewListing{
		Title:    req.Title,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		handleDashboardError(w, err, req.Category)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

// ListPosts はコミュニティ投稿を返す。
// GET /api/resident/feed?type=
func (h *ResidentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.URL.Query().Get("type"))
	if err != nil {
		handleDashboardError(w, err, r.URL.Query().Get("type"))
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleDashboardError はダッシュボードサービスのエラーをHTTPレスポンスに変換する。
// subjectはエラーメッセージに含める対象（ID・カテゴリなど）。
func handleDashboardError(w http.ResponseWriter, err error, subject string) {
	switch {
	case errors.Is(err, dashboard.ErrVisitorNotFound):
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewVisitorNotFoundError(subject))
	case errors.Is(err, dashboard.ErrInvalidCategory):
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidCategoryError(subject))
	case errors.Is(err, dashboard.ErrInvalidPostType):
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidPostTypeError(subject))
	case errors.Is(err, dashboard.ErrUnknownFacility),
		errors.Is(err, dashboard.ErrUnknownTimeSlot),
		errors.Is(err, dashboard.ErrEmptyTitle),
		errors.Is(err, dashboard.ErrInvalidDecision):
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewValidationError(err.Error()))
	default:
		slog.Error("dashboard operation failed", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
	}
}
