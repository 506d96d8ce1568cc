package repositories

import (
	"context"

	"github.com/yigit/coursehub/internal/app/models"
)

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	// Create inserts the student and fills in ID and timestamps.
	// Returns apperrors.ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
}

// IAdminRepository defines the interface for admin database operations
type IAdminRepository interface {
	// Create returns apperrors.ErrUsernameAlreadyExists when the username is taken.
	Create(ctx context.Context, admin *models.Admin) error
	// CreateIfNotExists inserts the admin unless the username exists and
	// reports whether a row was inserted.
	CreateIfNotExists(ctx context.Context, admin *models.Admin) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// ICourseRepository defines the interface for course database operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	// Update applies the non-nil fields of update and bumps updated_at.
	Update(ctx context.Context, id int64, update models.CourseUpdate) (*models.Course, error)
	// Delete removes the course together with its enrollments.
	Delete(ctx context.Context, id int64) error
}

// IEnrollmentRepository defines the interface for enrollment database operations
type IEnrollmentRepository interface {
	// Create returns apperrors.ErrAlreadyEnrolled for a duplicate pair and a
	// not-found error when the student or the course does not exist.
	Create(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	// Delete returns apperrors.ErrEnrollmentNotFound when the pair does not exist.
	Delete(ctx context.Context, studentID, courseID int64) error
	ListCoursesByStudent(ctx context.Context, studentID int64) ([]*models.EnrolledCourse, error)
	ListStudentsByCourse(ctx context.Context, courseID int64) ([]*models.EnrolledStudent, error)
}
