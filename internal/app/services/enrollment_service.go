package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	Enroll(ctx context.Context, p auth.Principal, studentID, courseID int64) (*models.Enrollment, error)
	Unenroll(ctx context.Context, p auth.Principal, studentID, courseID int64) error
	GetStudentCourses(ctx context.Context, p auth.Principal, studentID int64) ([]*models.EnrolledCourse, error)
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollmentRepo repositories.IEnrollmentRepository, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		logger:         logger.With().Str("service", "enrollment").Logger(),
	}
}

// Enroll adds a student to a course
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, p auth.Principal, studentID, courseID int64) (*models.Enrollment, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("studentId", "Student ID must be a positive integer")
	}
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("courseId", "Course ID must be a positive integer")
	}

	enrollment, err := s.enrollmentRepo.Create(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")
	return enrollment, nil
}

// Unenroll removes a student from a course. A missing pair is NotFound.
func (s *enrollmentServiceImpl) Unenroll(ctx context.Context, p auth.Principal, studentID, courseID int64) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}
	if studentID <= 0 || courseID <= 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	if err := s.enrollmentRepo.Delete(ctx, studentID, courseID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student unenrolled")
	return nil
}

// GetStudentCourses lists a student's courses. Students may only see their own.
func (s *enrollmentServiceImpl) GetStudentCourses(ctx context.Context, p auth.Principal, studentID int64) ([]*models.EnrolledCourse, error) {
	if err := auth.RequireSelfOrAdmin(p, studentID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ListCoursesByStudent(ctx, studentID)
}
