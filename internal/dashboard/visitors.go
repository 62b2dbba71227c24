package dashboard

import (
	"fmt"

	"github.com/hitoshi/gatehouse/internal/model"
)

// ListVisitors は居住者宛ての来訪者を返す。
// queryが空でない場合は名前の部分一致（大文字小文字を区別しない）で絞り込む。
func (s *Service) ListVisitors(query string) []model.Visitor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Visitor, 0, len(s.visitors))
	for _, v := range s.visitors {
		if query == "" || containsFold(v.Name, query) {
			result = append(result, v)
		}
	}
	return result
}

// DecideVisitor は来訪者の状態をapprovedまたはrejectedに変更する。
func (s *Service) DecideVisitor(id string, status model.VisitorStatus) (*model.Visitor, error) {
	if status != model.VisitorApproved && status != model.VisitorRejected {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDecision, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.visitors {
		if s.visitors[i].ID == id {
			s.visitors[i].Status = status
			v := s.visitors[i]
			return &v, nil
		}
	}
	return nil, ErrVisitorNotFound
}

// IssueVisitorPass は来訪者の入館パスを発行する。
func (s *Service) IssueVisitorPass(id string) (*model.VisitorPass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.visitors {
		if v.ID == id {
			return &model.VisitorPass{
				VisitorID:   v.ID,
				VisitorName: v.Name,
				Code:        s.newID(),
				IssuedAt:    s.now(),
			}, nil
		}
	}
	return nil, ErrVisitorNotFound
}

// ListGateEntries はゲートの入館申請を返す。
// queryが空でない場合は名前または部屋番号の部分一致で絞り込む。
func (s *Service) ListGateEntries(query string) []model.GateEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.GateEntry, 0, len(s.gate))
	for _, e := range s.gate {
		if query == "" || containsFold(e.Name, query) || containsFold(e.FlatNumber, query) {
			result = append(result, e)
		}
	}
	return result
}

// DecideGateEntry は入館申請の状態をapprovedまたはdeniedに変更する。
func (s *Service) DecideGateEntry(id string, status model.GateStatus) (*model.GateEntry, error) {
	if status != model.GateApproved && status != model.GateDenied {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDecision, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.gate {
		if s.gate[i].ID == id {
			s.gate[i].Status = status
			e := s.gate[i]
			return &e, nil
		}
	}
	return nil, ErrVisitorNotFound
}

// ListParcels は預かり中の荷物を返す。
func (s *Service) ListParcels() []model.Parcel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Parcel(nil), s.parcels...)
}
