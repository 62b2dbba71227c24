package access

import (
	"testing"

	"github.com/hitoshi/gatehouse/internal/model"
)

func identityFor(role model.Role) *model.Identity {
	ident := &model.Identity{ID: "id-" + string(role), Email: string(role) + "@x.com", Name: string(role), Role: role}
	if role == model.RoleResident {
		ident.FlatNumber = "A-101"
	}
	return ident
}

func TestDashboardPath_IsTotalAndInjective(t *testing.T) {
	seen := make(map[string]model.Role)
	for _, role := range model.Roles() {
		p := DashboardPath(role)
		if p != "/"+string(role) {
			t.Errorf("DashboardPath(%s) = %q, want %q", role, p, "/"+string(role))
		}
		if other, dup := seen[p]; dup {
			t.Errorf("roles %s and %s share dashboard %s", role, other, p)
		}
		seen[p] = role
	}
}

func TestDashboardPath_UnknownRole_ReturnsLogin(t *testing.T) {
	if got := DashboardPath(model.Role("ghost")); got != LoginPath {
		t.Errorf("DashboardPath(ghost) = %q, want %q", got, LoginPath)
	}
}

func TestEvaluate_NoIdentity_RedirectsToLogin(t *testing.T) {
	requirements := [][]model.Role{nil, {}, {model.RoleGuard}, model.Roles()}
	for _, req := range requirements {
		d := Evaluate(nil, req)
		if d.Outcome != OutcomeRedirectLogin || d.Location != "/login" {
			t.Errorf("Evaluate(nil, %v) = %+v, want redirect to /login", req, d)
		}
	}
}

// 全ロール × 全ルート要件で3つの結果のいずれかになることを検証する
func TestEvaluate_Totality(t *testing.T) {
	requirements := [][]model.Role{
		nil,
		{},
		{model.RoleResident},
		{model.RoleGuard},
		{model.RoleAdmin},
		{model.RoleResident, model.RoleAdmin},
		model.Roles(),
	}

	for _, role := range model.Roles() {
		for _, req := range requirements {
			d := Evaluate(identityFor(role), req)

			switch d.Outcome {
			case OutcomeRender:
				if d.Location != "" {
					t.Errorf("role=%s req=%v: render must not carry a location, got %q", role, req, d.Location)
				}
				if req != nil && !containsRole(req, role) {
					t.Errorf("role=%s req=%v: rendered without matching role", role, req)
				}
			case OutcomeRedirectDashboard:
				if d.Location != DashboardPath(role) {
					t.Errorf("role=%s req=%v: location = %q, want %q", role, req, d.Location, DashboardPath(role))
				}
				if req == nil || containsRole(req, role) {
					t.Errorf("role=%s req=%v: redirected although allowed", role, req)
				}
			default:
				t.Errorf("role=%s req=%v: unexpected outcome %v", role, req, d.Outcome)
			}
		}
	}
}

func TestEvaluate_NilRequirement_AllowsAnyAuthenticated(t *testing.T) {
	for _, role := range model.Roles() {
		if d := Evaluate(identityFor(role), nil); d.Outcome != OutcomeRender {
			t.Errorf("role %s: outcome = %v, want render", role, d.Outcome)
		}
	}
}

func TestEvaluate_EmptyRequirement_AdmitsNobody(t *testing.T) {
	for _, role := range model.Roles() {
		if d := Evaluate(identityFor(role), []model.Role{}); d.Outcome != OutcomeRedirectDashboard {
			t.Errorf("role %s: outcome = %v, want redirect_dashboard", role, d.Outcome)
		}
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeRender:            "render",
		OutcomeRedirectLogin:     "redirect_login",
		OutcomeRedirectDashboard: "redirect_dashboard",
		Outcome(42):              "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}
