package model

import "time"

// VisitorStatus は居住者向け来訪者の承認状態を表す。
type VisitorStatus string

const (
	VisitorPending  VisitorStatus = "pending"
	VisitorApproved VisitorStatus = "approved"
	VisitorRejected VisitorStatus = "rejected"
)

// Visitor は居住者宛ての来訪予定を表す。
type Visitor struct {
	ID      string        `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Type    string        `json:"type" yaml:"type"` // family, guest, maid, delivery, service
	Purpose string        `json:"purpose" yaml:"purpose"`
	Time    string        `json:"time" yaml:"time"`
	Status  VisitorStatus `json:"status" yaml:"status"`
}

// VisitorPass は来訪者に発行する入館パスを表す。
type VisitorPass struct {
	VisitorID   string    `json:"visitor_id"`
	VisitorName string    `json:"visitor_name"`
	Code        string    `json:"code"`
	IssuedAt    time.Time `json:"issued_at"`
}

// GateStatus は警備員による入館判定の状態を表す。
type GateStatus string

const (
	GatePending  GateStatus = "pending"
	GateApproved GateStatus = "approved"
	GateDenied   GateStatus = "denied"
)

// GateEntry はゲートでの入館申請を表す。
type GateEntry struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	FlatNumber string     `json:"flat_number" yaml:"flat_number"`
	Purpose    string     `json:"purpose" yaml:"purpose"`
	Time       string     `json:"time" yaml:"time"`
	Status     GateStatus `json:"status" yaml:"status"`
}

// Parcel は管理室で預かっている荷物を表す。
type Parcel struct {
	ID         string `json:"id" yaml:"id"`
	FlatNumber string `json:"flat_number" yaml:"flat_number"`
	Courier    string `json:"courier" yaml:"courier"`
	Time       string `json:"time" yaml:"time"`
}

// Facility は予約可能な共用施設を表す。
type Facility struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TimeSlot は施設予約の時間帯を表す。
type TimeSlot struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Booking は施設予約を表す。
type Booking struct {
	ID       string `json:"id" yaml:"id"`
	Facility string `json:"facility" yaml:"facility"`
	Date     string `json:"date" yaml:"date"`
	TimeSlot string `json:"time_slot" yaml:"time_slot"`
	Status   string `json:"status" yaml:"status"` // confirmed, pending
}

// Listing はマーケットプレイスの出品を表す。
type Listing struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"` // sale, rent, service, lost
	Price    string `json:"price" yaml:"price"`
	Seller   string `json:"seller" yaml:"seller"`
	Image    string `json:"image" yaml:"image"`
}

// Post はコミュニティ掲示板の投稿を表す。
type Post struct {
	ID       string `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"` // alert, announcement, event, poll
	Title    string `json:"title" yaml:"title"`
	Content  string `json:"content" yaml:"content"`
	Author   string `json:"author" yaml:"author"`
	Time     string `json:"time" yaml:"time"`
	Likes    int    `json:"likes" yaml:"likes"`
	Comments int    `json:"comments" yaml:"comments"`
}

// ServiceContact は電話で連絡できるサービス窓口を表す。
type ServiceContact struct {
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
}

// ExternalService は外部サービスへのリンクを表す。
type ExternalService struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// ServiceDirectory はサービス一覧画面の内容をまとめたもの。
type ServiceDirectory struct {
	Emergency []ServiceContact  `json:"emergency" yaml:"emergency"`
	Internal  []ServiceContact  `json:"internal" yaml:"internal"`
	External  []ExternalService `json:"external" yaml:"external"`
}

// Stat は管理者ダッシュボードの集計値を表す。
type Stat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Activity は管理者ダッシュボードの最近の出来事を表す。
type Activity struct {
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
	Time   string `json:"time" yaml:"time"`
}

// AdminOverview は管理者ダッシュボードの表示内容。
type AdminOverview struct {
	Stats          []Stat     `json:"stats"`
	RecentActivity []Activity `json:"recent_activity"`
}
