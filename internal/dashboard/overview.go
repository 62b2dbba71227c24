package dashboard

import "github.com/hitoshi/gatehouse/internal/model"

// Services は居住者向けサービス一覧を返す。
func (s *Service) Services() model.ServiceDirectory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.ServiceDirectory{
		Emergency: append([]model.ServiceContact(nil), s.services.Emergency...),
		Internal:  append([]model.ServiceContact(nil), s.services.Internal...),
		External:  append([]model.ExternalService(nil), s.services.External...),
	}
}

// Overview は管理者ダッシュボードの集計値と最近の出来事を返す。
func (s *Service) Overview() model.AdminOverview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.AdminOverview{
		Stats:          append([]model.Stat(nil), s.stats...),
		RecentActivity: append([]model.Activity(nil), s.activity...),
	}
}
