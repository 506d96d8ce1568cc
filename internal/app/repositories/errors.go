package repositories

import (
	"fmt"

	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

// Foreign key constraint names generated by PostgreSQL for the enrollments table
const (
	enrollmentStudentFK = "enrollments_student_id_fkey"
	enrollmentCourseFK  = "enrollments_course_id_fkey"
	enrollmentUniqueKey = "enrollments_student_course_key"
)

// storeError wraps an unexpected driver error so callers can match it with
// apperrors.ErrStoreFailure without seeing driver details.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStoreFailure, op, err)
}

// enrollmentFKError maps a foreign key violation on enrollments to the
// missing side of the pair.
func enrollmentFKError(err error) error {
	switch dberrors.ConstraintName(err) {
	case enrollmentStudentFK:
		return apperrors.ErrStudentNotFound
	case enrollmentCourseFK:
		return apperrors.ErrCourseNotFound
	default:
		return apperrors.NewResourceNotFoundError("student or course not found")
	}
}
