package services

import (
	"context"

	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	ListStudents(ctx context.Context, p auth.Principal) ([]*models.Student, error)
}

type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

// ListStudents returns every registered student, newest first
func (s *studentServiceImpl) ListStudents(ctx context.Context, p auth.Principal) ([]*models.Student, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.studentRepo.List(ctx)
}
