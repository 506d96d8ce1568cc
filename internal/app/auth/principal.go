package auth

import (
	"fmt"

	"github.com/yigit/coursehub/internal/app/models"
)

// Kind enumerates the closed set of caller identities
type Kind int

const (
	// KindAnonymous is a caller without a valid token
	KindAnonymous Kind = iota
	// KindStudent is an authenticated student
	KindStudent
	// KindAdmin is an authenticated admin
	KindAdmin
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindStudent:
		return string(models.RoleStudent)
	case KindAdmin:
		return string(models.RoleAdmin)
	default:
		return "anonymous"
	}
}

// Principal is the caller of an operation: Anonymous, Student(id) or Admin(id).
// The zero value is Anonymous.
type Principal struct {
	kind Kind
	id   int64
}

// Anonymous returns the principal of an unauthenticated caller.
func Anonymous() Principal {
	return Principal{}
}

// Student returns the principal of an authenticated student.
func Student(id int64) Principal {
	return Principal{kind: KindStudent, id: id}
}

// Admin returns the principal of an authenticated admin.
func Admin(id int64) Principal {
	return Principal{kind: KindAdmin, id: id}
}

// FromRole builds a principal from a verified role claim.
func FromRole(role models.Role, id int64) (Principal, error) {
	switch role {
	case models.RoleStudent:
		return Student(id), nil
	case models.RoleAdmin:
		return Admin(id), nil
	default:
		return Anonymous(), fmt.Errorf("unknown role %q", role)
	}
}

// Kind returns the principal kind
func (p Principal) Kind() Kind { return p.kind }

// ID returns the principal id, zero for Anonymous
func (p Principal) ID() int64 { return p.id }

// IsAnonymous reports whether the caller is unauthenticated
func (p Principal) IsAnonymous() bool { return p.kind == KindAnonymous }

// IsAdmin reports whether the caller is an admin
func (p Principal) IsAdmin() bool { return p.kind == KindAdmin }

// IsStudent reports whether the caller is the given student
func (p Principal) IsStudent(id int64) bool { return p.kind == KindStudent && p.id == id }

// String implements fmt.Stringer
func (p Principal) String() string {
	if p.IsAnonymous() {
		return p.kind.String()
	}
	return fmt.Sprintf("%s(%d)", p.kind, p.id)
}
