package middleware

import (
	"context"
	"testing"

	"github.com/hitoshi/gatehouse/internal/model"
	"github.com/hitoshi/gatehouse/internal/session"
)

// contextWithIdentity はidentityでログイン済みのストアを注入したコンテキストを返す。
// identityがnilの場合は未ログインのストアを注入する。
func contextWithIdentity(t *testing.T, ctx context.Context, ident *model.Identity) context.Context {
	t.Helper()

	store := session.NewStore(session.KeyedStorage(session.NewMemoryKV(), "test-slot"))
	if ident != nil {
		if err := store.Set(ctx, ident); err != nil {
			t.Fatalf("failed to set identity: %v", err)
		}
	}
	return ContextWithStore(ctx, store)
}

func testIdentity(role model.Role) *model.Identity {
	ident := &model.Identity{
		ID:    "id-" + string(role),
		Email: string(role) + "@x.com",
		Name:  string(role),
		Role:  role,
	}
	if role == model.RoleResident {
		ident.FlatNumber = "A-101"
	}
	return ident
}

// recorderSpy は記録されたメトリクスを保持するRecorder。
type recorderSpy struct {
	guardOutcomes []string
	statuses      []int
}

func (r *recorderSpy) RecordLogin(string)           {}
func (r *recorderSpy) RecordLoginFailure(string)    {}
func (r *recorderSpy) RecordLogout()                {}
func (r *recorderSpy) RecordVisitorDecision(string) {}
func (r *recorderSpy) RecordBooking()               {}

func (r *recorderSpy) RecordGuardDecision(outcome string) {
	r.guardOutcomes = append(r.guardOutcomes, outcome)
}

func (r *recorderSpy) RecordHTTPStatus(code int) {
	r.statuses = append(r.statuses, code)
}
