package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstraintClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "students_email_key"}
	fk := &pgconn.PgError{Code: ForeignKeyViolation, ConstraintName: "enrollments_course_id_fkey"}
	wrapped := fmt.Errorf("insert student: %w", unique)

	if !IsDuplicateKeyError(wrapped) {
		t.Fatalf("expected wrapped unique violation to be detected")
	}
	if !IsDuplicateConstraintError(wrapped, "students_email_key") {
		t.Fatalf("expected constraint name match")
	}
	if IsDuplicateConstraintError(wrapped, "admins_username_key") {
		t.Fatalf("unexpected match for a different constraint")
	}
	if IsDuplicateKeyError(fk) {
		t.Fatalf("foreign key violation must not count as duplicate")
	}
	if !IsForeignKeyError(fk) {
		t.Fatalf("expected foreign key violation to be detected")
	}
	if got := ConstraintName(fk); got != "enrollments_course_id_fkey" {
		t.Fatalf("ConstraintName = %q", got)
	}
	if IsDuplicateKeyError(errors.New("boom")) || ConstraintName(errors.New("boom")) != "" {
		t.Fatalf("plain errors must not be classified")
	}
}
