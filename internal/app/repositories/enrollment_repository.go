package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create enrolls a student in a course
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id").
		Values(studentID, courseID).
		Suffix("RETURNING id, enrolled_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, enrollmentUniqueKey), dberrors.IsDuplicateKeyError(err):
			return nil, apperrors.ErrAlreadyEnrolled
		case dberrors.IsForeignKeyError(err):
			return nil, enrollmentFKError(err)
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error executing create enrollment query")
		return nil, storeError("create enrollment", err)
	}
	return enrollment, nil
}

// Delete removes the enrollment of a student in a course
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete enrollment query")
		return storeError("delete enrollment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// ListCoursesByStudent returns the courses a student is enrolled in, most recent enrollment first
func (r *EnrollmentRepository) ListCoursesByStudent(ctx context.Context, studentID int64) ([]*models.EnrolledCourse, error) {
	sql, args, err := r.sb.Select("c.id", "c.title", "c.description", "e.enrolled_at").
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.enrolled_at DESC", "e.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing student courses query")
		return nil, storeError("list student courses", err)
	}
	defer rows.Close()

	courses := []*models.EnrolledCourse{}
	for rows.Next() {
		c := &models.EnrolledCourse{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.EnrolledAt); err != nil {
			return nil, storeError("scan student course", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate student courses", err)
	}
	return courses, nil
}

// ListStudentsByCourse returns the students enrolled in a course, most recent enrollment first
func (r *EnrollmentRepository) ListStudentsByCourse(ctx context.Context, courseID int64) ([]*models.EnrolledStudent, error) {
	sql, args, err := r.sb.Select("s.id", "s.email", "s.name", "e.enrolled_at").
		From("students s").
		Join("enrollments e ON e.student_id = s.id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("e.enrolled_at DESC", "e.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing course students query")
		return nil, storeError("list course students", err)
	}
	defer rows.Close()

	students := []*models.EnrolledStudent{}
	for rows.Next() {
		s := &models.EnrolledStudent{}
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.EnrolledAt); err != nil {
			return nil, storeError("scan course student", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate course students", err)
	}
	return students, nil
}
