package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// Services defined in this package:
// - AuthService: student signup, student/admin login, admin creation
// - CourseService: course catalog and its enrolled students
// - EnrollmentService: enrolling and unenrolling students
// - StudentService: student listing

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	VerifyDummy(password string)
}

// TokenIssuer issues access tokens for authenticated principals
type TokenIssuer interface {
	IssueAccessToken(principalID int64, role models.Role) (string, int64, error)
}

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	CourseService     CourseService
	EnrollmentService EnrollmentService
	StudentService    StudentService
}

// NewServices wires every service against the given repositories
func NewServices(repos *repositories.Repositories, hasher PasswordHasher, tokens TokenIssuer, logger zerolog.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.StudentRepository, repos.AdminRepository, hasher, tokens, logger),
		CourseService:     NewCourseService(repos.CourseRepository, repos.EnrollmentRepository, logger),
		EnrollmentService: NewEnrollmentService(repos.EnrollmentRepository, logger),
		StudentService:    NewStudentService(repos.StudentRepository),
	}
}
