package dto

import "github.com/yigit/coursehub/internal/app/models"

// EnrollRequest enrolls a student in a course
type EnrollRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1" example:"1"`
	CourseID  int64 `json:"courseId" binding:"required,min=1" example:"1"`
}

// EnrollmentResponse is the public view of an enrollment
type EnrollmentResponse struct {
	ID         int64  `json:"id" example:"1"`
	StudentID  int64  `json:"studentId" example:"1"`
	CourseID   int64  `json:"courseId" example:"1"`
	EnrolledAt string `json:"enrolledAt" example:"2024-01-15T10:00:00Z"`
}

// NewEnrollmentResponse converts an enrollment model
func NewEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         e.ID,
		StudentID:  e.StudentID,
		CourseID:   e.CourseID,
		EnrolledAt: formatTime(e.EnrolledAt),
	}
}
