package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/coursehub/internal/pkg/auth"
)

func newTestGuard(t *testing.T) (*Guard, *pkgAuth.JWTService) {
	t.Helper()
	jwtService, err := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      "guard-secret",
		AccessTokenExp: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	return NewGuard(jwtService), jwtService
}

func TestResolve(t *testing.T) {
	g, tokens := newTestGuard(t)

	studentToken, _, err := tokens.IssueAccessToken(5, models.RoleStudent)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	adminToken, _, err := tokens.IssueAccessToken(1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	expired, err := tokens.Issue(5, models.RoleStudent, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	p, err := g.Resolve("")
	if err != nil || !p.IsAnonymous() {
		t.Fatalf("absent header: %v, %v", p, err)
	}

	p, err = g.Resolve("Bearer " + studentToken)
	if err != nil || p.Kind() != KindStudent || p.ID() != 5 {
		t.Fatalf("student token: %v, %v", p, err)
	}

	p, err = g.Resolve("Bearer " + adminToken)
	if err != nil || !p.IsAdmin() || p.ID() != 1 {
		t.Fatalf("admin token: %v, %v", p, err)
	}

	p, err = g.Resolve("Bearer " + expired)
	if !errors.Is(err, apperrors.ErrTokenExpired) || !p.IsAnonymous() {
		t.Fatalf("expired token: %v, %v", p, err)
	}

	p, err = g.Resolve(studentToken)
	if !errors.Is(err, apperrors.ErrInvalidFormat) || !p.IsAnonymous() {
		t.Fatalf("missing scheme: %v, %v", p, err)
	}

	p, err = g.Resolve("Bearer garbage")
	if !errors.Is(err, apperrors.ErrTokenInvalid) || !p.IsAnonymous() {
		t.Fatalf("garbage token: %v, %v", p, err)
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(Anonymous()); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("anonymous: %v", err)
	}
	if err := RequireAdmin(Student(3)); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("student: %v", err)
	}
	if err := RequireAdmin(Admin(1)); err != nil {
		t.Fatalf("admin: %v", err)
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	cases := []struct {
		name string
		p    Principal
		want error
	}{
		{"anonymous", Anonymous(), apperrors.ErrUnauthorized},
		{"other student", Student(4), apperrors.ErrPermissionDenied},
		{"same student", Student(3), nil},
		{"admin", Admin(9), nil},
	}
	for _, tc := range cases {
		err := RequireSelfOrAdmin(tc.p, 3)
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestPrincipalString(t *testing.T) {
	if got := Anonymous().String(); got != "anonymous" {
		t.Fatalf("Anonymous().String() = %q", got)
	}
	if got := Student(3).String(); got != "student(3)" {
		t.Fatalf("Student(3).String() = %q", got)
	}
	if _, err := FromRole("instructor", 1); err == nil {
		t.Fatalf("FromRole accepted unknown role")
	}
}
