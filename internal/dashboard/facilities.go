package dashboard

import (
	"fmt"

	"github.com/hitoshi/gatehouse/internal/model"
)

// BookingStatusPending は申請直後の予約状態。
const BookingStatusPending = "pending"

// FacilityCatalog は施設予約画面の表示内容。
type FacilityCatalog struct {
	Facilities []model.Facility `json:"facilities"`
	TimeSlots  []model.TimeSlot `json:"time_slots"`
	Bookings   []model.Booking  `json:"bookings"`
}

// Facilities は施設、時間帯、予約一覧（新しい順）を返す。
func (s *Service) Facilities() FacilityCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FacilityCatalog{
		Facilities: append([]model.Facility(nil), s.facilities...),
		TimeSlots:  append([]model.TimeSlot(nil), s.timeSlots...),
		Bookings:   append([]model.Booking(nil), s.bookings...),
	}
}

// BookFacility は施設予約を申請する。予約はpending状態で一覧の先頭に追加される。
func (s *Service) BookFacility(facilityID, date, timeSlotID string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	facility, ok := findFacility(s.facilities, facilityID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFacility, facilityID)
	}
	slot, ok := findTimeSlot(s.timeSlots, timeSlotID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimeSlot, timeSlotID)
	}

	b := model.Booking{
		ID:       s.newID(),
		Facility: facility.Name,
		Date:     date,
		TimeSlot: slot.Label,
		Status:   BookingStatusPending,
	}
	s.bookings = append([]model.Booking{b}, s.bookings...)

	return &b, nil
}

func findFacility(facilities []model.Facility, id string) (model.Facility, bool) {
	for _, f := range facilities {
		if f.ID == id {
			return f, true
		}
	}
	return model.Facility{}, false
}

func findTimeSlot(slots []model.TimeSlot, id string) (model.TimeSlot, bool) {
	for _, ts := range slots {
		if ts.ID == id {
			return ts, true
		}
	}
	return model.TimeSlot{}, false
}
