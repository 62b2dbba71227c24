package identity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hitoshi/gatehouse/internal/model"
)

func TestResolve_AllRoles_ReturnsIdentityWithRole(t *testing.T) {
	r := NewResolver()

	for _, role := range model.Roles() {
		t.Run(string(role), func(t *testing.T) {
			ident, err := r.Resolve("user@example.com", "secret", role)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if ident.Role != role {
				t.Errorf("Role = %q, want %q", ident.Role, role)
			}
			if ident.ID == "" {
				t.Error("expected non-empty ID")
			}
			if ident.Email != "user@example.com" {
				t.Errorf("Email = %q, want %q", ident.Email, "user@example.com")
			}
		})
	}
}

func TestResolve_FlatNumberOnlyForResident(t *testing.T) {
	r := NewResolver()

	for _, role := range model.Roles() {
		ident, err := r.Resolve("user@example.com", "secret", role)
		if err != nil {
			t.Fatalf("role %s: unexpected error: %v", role, err)
		}
		if role == model.RoleResident {
			if ident.FlatNumber != PlaceholderFlatNumber {
				t.Errorf("resident FlatNumber = %q, want %q", ident.FlatNumber, PlaceholderFlatNumber)
			}
		} else if ident.HasFlatNumber() {
			t.Errorf("role %s: FlatNumber = %q, want empty", role, ident.FlatNumber)
		}
	}
}

func TestResolve_JaneScenario(t *testing.T) {
	r := NewResolver()

	ident, err := r.Resolve("jane@x.com", "pw", model.RoleResident)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ident.Name != "jane" {
		t.Errorf("Name = %q, want %q", ident.Name, "jane")
	}
	if ident.FlatNumber != "A-101" {
		t.Errorf("FlatNumber = %q, want %q", ident.FlatNumber, "A-101")
	}
}

func TestResolve_EmptyCredentials(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "pw"},
		{"empty password", "jane@x.com", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		for _, role := range model.Roles() {
			t.Run(fmt.Sprintf("%s/%s", tt.name, role), func(t *testing.T) {
				ident, err := r.Resolve(tt.email, tt.password, role)
				if !errors.Is(err, ErrEmptyCredentials) {
					t.Errorf("error = %v, want ErrEmptyCredentials", err)
				}
				if ident != nil {
					t.Errorf("expected nil identity, got %+v", ident)
				}
			})
		}
	}
}

func TestResolve_PasswordIsNeverChecked(t *testing.T) {
	r := NewResolver()

	for _, pw := range []string{"x", "wrong", "   "} {
		if _, err := r.Resolve("a@b.c", pw, model.RoleGuard); err != nil {
			t.Errorf("password %q: unexpected error %v", pw, err)
		}
	}
}

func TestResolve_InvalidRole(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve("a@b.c", "pw", model.Role("superuser"))
	if !errors.Is(err, model.ErrInvalidRole) {
		t.Errorf("error = %v, want ErrInvalidRole", err)
	}
}

func TestResolve_GeneratesUniqueIDs(t *testing.T) {
	r := NewResolver()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		ident, err := r.Resolve("a@b.c", "pw", model.RoleAdmin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[ident.ID] {
			t.Fatalf("duplicate ID generated: %s", ident.ID)
		}
		seen[ident.ID] = true
	}
}

func TestNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@x.com", "jane"},
		{"a@b@c", "a"},
		{"no-at-sign", "no-at-sign"},
		{"@x.com", ""},
	}

	for _, tt := range tests {
		if got := NameFromEmail(tt.email); got != tt.want {
			t.Errorf("NameFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
