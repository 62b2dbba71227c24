package handler

import (
	"context"
	"testing"

	"github.com/hitoshi/gatehouse/internal/dashboard"
	"github.com/hitoshi/gatehouse/internal/middleware"
	"github.com/hitoshi/gatehouse/internal/model"
	"github.com/hitoshi/gatehouse/internal/security"
	"github.com/hitoshi/gatehouse/internal/session"
)

// --- モック定義 ---

type mockResolver struct {
	resolveFn func(email, password string, role model.Role) (*model.Identity, error)
}

func (m *mockResolver) Resolve(email, password string, role model.Role) (*model.Identity, error) {
	if m.resolveFn != nil {
		return m.resolveFn(email, password, role)
	}
	return nil, nil
}

// mockKV は操作ごとの振る舞いを差し替えられるKeyValueStore。
type mockKV struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	putFn    func(ctx context.Context, key string, data []byte) error
	deleteFn func(ctx context.Context, key string) error
}

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockKV) Put(ctx context.Context, key string, data []byte) error {
	if m.putFn != nil {
		return m.putFn(ctx, key, data)
	}
	return nil
}

func (m *mockKV) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

// metricsSpy は記録内容を保持するRecorder。
type metricsSpy struct {
	logins           []string
	loginFailures    []string
	logouts          int
	guardOutcomes    []string
	visitorDecisions []string
	bookings         int
}

func (m *metricsSpy) RecordLogin(role string)             { m.logins = append(m.logins, role) }
func (m *metricsSpy) RecordLoginFailure(reason string)    { m.loginFailures = append(m.loginFailures, reason) }
func (m *metricsSpy) RecordLogout()                       { m.logouts++ }
func (m *metricsSpy) RecordGuardDecision(outcome string)  { m.guardOutcomes = append(m.guardOutcomes, outcome) }
func (m *metricsSpy) RecordVisitorDecision(status string) { m.visitorDecisions = append(m.visitorDecisions, status) }
func (m *metricsSpy) RecordBooking()                      { m.bookings++ }
func (m *metricsSpy) RecordHTTPStatus(int)                {}

// --- ヘルパー ---

func newDashboardService(t *testing.T) *dashboard.Service {
	t.Helper()
	seed, err := dashboard.DefaultSeed()
	if err != nil {
		t.Fatalf("failed to load seed: %v", err)
	}
	return dashboard.NewService(seed, security.NewTextSanitizer())
}

// newStoreContext はkvのスロットを開いたストアを注入したコンテキストを返す。
func newStoreContext(t *testing.T, kv session.KeyValueStore, ident *model.Identity) (context.Context, *session.Store) {
	t.Helper()
	ctx := context.Background()
	store := session.NewStore(session.KeyedStorage(kv, "slot-test"))
	if ident != nil {
		if err := store.Set(ctx, ident); err != nil {
			t.Fatalf("failed to set identity: %v", err)
		}
	}
	return middleware.ContextWithStore(ctx, store), store
}

func residentIdentity() *model.Identity {
	return &model.Identity{ID: "r-1", Email: "jane@x.com", Name: "jane", Role: model.RoleResident, FlatNumber: "A-101"}
}

func guardIdentity() *model.Identity {
	return &model.Identity{ID: "g-1", Email: "sam@x.com", Name: "sam", Role: model.RoleGuard}
}

func adminIdentity() *model.Identity {
	return &model.Identity{ID: "a-1", Email: "root@x.com", Name: "root", Role: model.RoleAdmin}
}
