package dashboard

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/gatehouse/internal/model"
)

var (
	// ErrVisitorNotFound は指定IDの来訪者が存在しない場合のエラー。
	ErrVisitorNotFound = errors.New("visitor not found")
	// ErrInvalidDecision は来訪者に設定できない状態が指定された場合のエラー。
	ErrInvalidDecision = errors.New("invalid visitor decision")
	// ErrUnknownFacility は未定義の施設IDが指定された場合のエラー。
	ErrUnknownFacility = errors.New("unknown facility")
	// ErrUnknownTimeSlot は未定義の時間帯IDが指定された場合のエラー。
	ErrUnknownTimeSlot = errors.New("unknown time slot")
	// ErrInvalidCategory は未定義の出品カテゴリが指定された場合のエラー。
	ErrInvalidCategory = errors.New("invalid listing category")
	// ErrInvalidPostType は未定義の投稿種別が指定された場合のエラー。
	ErrInvalidPostType = errors.New("invalid post type")
	// ErrEmptyTitle はサニタイズ後の出品タイトルが空の場合のエラー。
	ErrEmptyTitle = errors.New("listing title is empty")
)

// FilterAll は絞り込みなしを表すフィルタ値。
const FilterAll = "all"

// Sanitizer は利用者が入力したテキストからマークアップを除去する。
type Sanitizer interface {
	SanitizeText(s string) string
}

// Service はダッシュボードのモックデータを保持し、画面操作を提供する。
// 全メソッドは並行呼び出しに対して安全。
type Service struct {
	sanitizer Sanitizer
	newID     func() string
	now       func() time.Time

	mu         sync.RWMutex
	visitors   []model.Visitor
	gate       []model.GateEntry
	parcels    []model.Parcel
	facilities []model.Facility
	timeSlots  []model.TimeSlot
	bookings   []model.Booking
	listings   []model.Listing
	posts      []model.Post
	services   model.ServiceDirectory
	stats      []model.Stat
	activity   []model.Activity
}

// NewService は初期データからServiceを生成する。
func NewService(seed *Seed, sanitizer Sanitizer) *Service {
	return &Service{
		sanitizer:  sanitizer,
		newID:      uuid.NewString,
		now:        time.Now,
		visitors:   append([]model.Visitor(nil), seed.ResidentVisitors...),
		gate:       append([]model.GateEntry(nil), seed.GateEntries...),
		parcels:    append([]model.Parcel(nil), seed.Parcels...),
		facilities: append([]model.Facility(nil), seed.Facilities...),
		timeSlots:  append([]model.TimeSlot(nil), seed.TimeSlots...),
		bookings:   append([]model.Booking(nil), seed.Bookings...),
		listings:   append([]model.Listing(nil), seed.Listings...),
		posts:      append([]model.Post(nil), seed.Posts...),
		services:   seed.Services,
		stats:      append([]model.Stat(nil), seed.Stats...),
		activity:   append([]model.Activity(nil), seed.RecentActivity...),
	}
}

// containsFold は大文字小文字を区別せずに部分一致を判定する。
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
