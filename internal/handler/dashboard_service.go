package handler

import (
	"github.com/hitoshi/gatehouse/internal/dashboard"
	"github.com/hitoshi/gatehouse/internal/model"
)

// DashboardService はダッシュボードのハンドラーが必要とするサービスインターフェース。
// dashboard.Serviceが実装する。
type DashboardService interface {
	// 居住者
	ListVisitors(query string) []model.Visitor
	DecideVisitor(id string, status model.VisitorStatus) (*model.Visitor, error)
	IssueVisitorPass(id string) (*model.VisitorPass, error)
	Services() model.ServiceDirectory
	Facilities() dashboard.FacilityCatalog
	BookFacility(facilityID, date, timeSlotID string) (*model.Booking, error)
	ListListings(category string) ([]model.Listing, error)
	AddListing(seller string, in dashboard.NewListing) (*model.Listing, error)
	ListPosts(postType string) ([]model.Post, error)

	// 警備員
	ListGateEntries(query string) []model.GateEntry
	DecideGateEntry(id string, status model.GateStatus) (*model.GateEntry, error)
	ListParcels() []model.Parcel

	// 管理者
	Overview() model.AdminOverview
}

var _ DashboardService = (*dashboard.Service)(nil)
