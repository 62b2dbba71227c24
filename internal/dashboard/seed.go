// Package dashboard は各ロールのダッシュボードに表示するモックデータと、
// 来訪者の承認や施設予約などの画面操作を提供する。
// データはプロセス内メモリのみに保持し、永続化しない。
package dashboard

import (
	_ "embed"
	"fmt"

	"github.com/hitoshi/gatehouse/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed はダッシュボードの初期データ。
type Seed struct {
	ResidentVisitors []model.Visitor        `yaml:"resident_visitors"`
	GateEntries      []model.GateEntry      `yaml:"gate_entries"`
	Parcels          []model.Parcel         `yaml:"parcels"`
	Facilities       []model.Facility       `yaml:"facilities"`
	TimeSlots        []model.TimeSlot       `yaml:"time_slots"`
	Bookings         []model.Booking        `yaml:"bookings"`
	Listings         []model.Listing        `yaml:"listings"`
	Posts            []model.Post           `yaml:"posts"`
	Services         model.ServiceDirectory `yaml:"services"`
	Stats            []model.Stat           `yaml:"stats"`
	RecentActivity   []model.Activity       `yaml:"recent_activity"`
}

// ParseSeed はYAMLから初期データを読み込む。
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard seed: %w", err)
	}
	return &s, nil
}

// DefaultSeed は埋め込みの初期データを返す。
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}
