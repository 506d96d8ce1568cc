package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/migrations"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/config"
	"github.com/yigit/coursehub/internal/db"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// openTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *db.PostgresDB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping PostgreSQL tests")
	}

	cfg := &config.Config{}
	cfg.Database.URL = url
	cfg.Database.MaxConns = 4
	cfg.Database.MinConns = 0
	cfg.Database.ConnMaxLifetime = "5m"

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(database.Close)

	ctx := context.Background()
	if err := migrations.NewMigrator(database.Pool, zerolog.Nop()).Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := database.Pool.Exec(ctx, "TRUNCATE enrollments, courses, students, admins RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return database
}

func TestPostgresStudentUniqueness(t *testing.T) {
	database := openTestDB(t)
	repo := NewStudentRepository(database.Pool)
	ctx := context.Background()

	s := &models.Student{Email: "a@x.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID == 0 || s.CreatedAt.IsZero() {
		t.Fatalf("create did not fill id/timestamps: %+v", s)
	}

	err := repo.Create(ctx, &models.Student{Email: "a@x.com", PasswordHash: "other"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate create error = %v, want conflict", err)
	}

	got, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil || got.ID != s.ID {
		t.Fatalf("GetByEmail = %+v, %v", got, err)
	}
	if _, err := repo.GetByID(ctx, s.ID+100); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("GetByID missing error = %v", err)
	}
}

func TestPostgresEnrollmentLifecycle(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)
	ctx := context.Background()

	admin := &models.Admin{Username: "admin", PasswordHash: "hash"}
	created, err := repos.AdminRepository.CreateIfNotExists(ctx, admin)
	if err != nil || !created {
		t.Fatalf("seed admin = %v, %v", created, err)
	}
	again, err := repos.AdminRepository.CreateIfNotExists(ctx, &models.Admin{Username: "admin", PasswordHash: "x"})
	if err != nil || again {
		t.Fatalf("second seed = %v, %v, want false, nil", again, err)
	}

	student := &models.Student{Email: "s@x.com", PasswordHash: "hash"}
	if err := repos.StudentRepository.Create(ctx, student); err != nil {
		t.Fatalf("create student: %v", err)
	}
	course := &models.Course{Title: "Intro", CreatedBy: &admin.ID}
	if err := repos.CourseRepository.Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}

	if _, err := repos.EnrollmentRepository.Create(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := repos.EnrollmentRepository.Create(ctx, student.ID, course.ID); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("duplicate enroll error = %v", err)
	}
	if _, err := repos.EnrollmentRepository.Create(ctx, student.ID, course.ID+99); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("enroll missing course error = %v", err)
	}
	if _, err := repos.EnrollmentRepository.Create(ctx, student.ID+99, course.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("enroll missing student error = %v", err)
	}

	courses, err := repos.EnrollmentRepository.ListCoursesByStudent(ctx, student.ID)
	if err != nil || len(courses) != 1 || courses[0].Title != "Intro" {
		t.Fatalf("student courses = %+v, %v", courses, err)
	}

	if err := repos.CourseRepository.Delete(ctx, course.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}
	courses, err = repos.EnrollmentRepository.ListCoursesByStudent(ctx, student.ID)
	if err != nil || len(courses) != 0 {
		t.Fatalf("student courses after delete = %+v, %v", courses, err)
	}
	if err := repos.CourseRepository.Delete(ctx, course.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("second delete error = %v", err)
	}
	if err := repos.EnrollmentRepository.Delete(ctx, student.ID, course.ID); !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Fatalf("unenroll after cascade error = %v", err)
	}
}

func TestPostgresCourseUpdateAndOrdering(t *testing.T) {
	database := openTestDB(t)
	repo := NewCourseRepository(database)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		c := &models.Course{Title: fmt.Sprintf("Course %d", i)}
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, c.ID)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("list = %v, %v", list, err)
	}
	if list[0].ID != ids[2] || list[2].ID != ids[0] {
		t.Errorf("list order = %d,%d,%d; want newest first", list[0].ID, list[1].ID, list[2].ID)
	}

	time.Sleep(10 * time.Millisecond)
	desc := "Basics"
	updated, err := repo.Update(ctx, ids[0], models.CourseUpdate{Description: &desc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Course 0" || updated.Description == nil || *updated.Description != "Basics" {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("updated_at not bumped: %v <= %v", updated.UpdatedAt, updated.CreatedAt)
	}
	if _, err := repo.Update(ctx, 9999, models.CourseUpdate{Description: &desc}); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("update missing error = %v", err)
	}
}
