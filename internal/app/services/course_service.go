package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/validation"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, p auth.Principal, title string, description *string) (*models.Course, error)
	UpdateCourse(ctx context.Context, p auth.Principal, id int64, title, description *string) (*models.Course, error)
	DeleteCourse(ctx context.Context, p auth.Principal, id int64) error
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseStudents(ctx context.Context, p auth.Principal, courseID int64) ([]*models.EnrolledStudent, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, enrollmentRepo repositories.IEnrollmentRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger.With().Str("service", "course").Logger(),
	}
}

// CreateCourse adds a course to the catalog on behalf of an admin
func (s *courseServiceImpl) CreateCourse(ctx context.Context, p auth.Principal, title string, description *string) (*models.Course, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}

	adminID := p.ID()
	course := &models.Course{
		Title:       title,
		Description: validation.NormalizeOptional(description),
		CreatedBy:   &adminID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("adminID", adminID).Msg("Course created")
	return course, nil
}

// UpdateCourse applies a partial update. Nil fields are left unchanged and
// an empty description clears it.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, p auth.Principal, id int64, title, description *string) (*models.Course, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}

	var update models.CourseUpdate
	if title != nil {
		t := strings.TrimSpace(*title)
		if err := validation.ValidateTitle(t); err != nil {
			return nil, err
		}
		update.Title = &t
	}
	if description != nil {
		d := strings.TrimSpace(*description)
		update.Description = &d
	}

	course, err := s.courseRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", id).Int64("adminID", p.ID()).Msg("Course updated")
	return course, nil
}

// DeleteCourse removes a course and every enrollment in it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, p auth.Principal, id int64) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ErrCourseNotFound
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("courseID", id).Int64("adminID", p.ID()).Msg("Course deleted")
	return nil
}

// GetCourse returns a single course
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses returns the whole catalog, newest first
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.List(ctx)
}

// GetCourseStudents lists the students enrolled in a course
func (s *courseServiceImpl) GetCourseStudents(ctx context.Context, p auth.Principal, courseID int64) ([]*models.EnrolledStudent, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	if courseID <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ListStudentsByCourse(ctx, courseID)
}
