package dto

import (
	"time"

	"github.com/yigit/coursehub/internal/app/models"
)

// CreateCourseRequest represents a new course
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required" example:"Intro"`
	Description *string `json:"description" example:"An introductory course"`
}

// UpdateCourseRequest represents a partial course update; omitted fields stay unchanged
type UpdateCourseRequest struct {
	Title       *string `json:"title" example:"Intro to Go"`
	Description *string `json:"description"`
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID          int64   `json:"id" example:"1"`
	Title       string  `json:"title" example:"Intro"`
	Description *string `json:"description"`
	CreatedBy   *int64  `json:"createdBy" example:"1"`
	CreatedAt   string  `json:"createdAt" example:"2024-01-15T10:00:00Z"`
	UpdatedAt   string  `json:"updatedAt" example:"2024-01-15T10:00:00Z"`
}

// EnrolledCourseResponse is a course seen through a student's enrollment
type EnrolledCourseResponse struct {
	ID          int64   `json:"id" example:"1"`
	Title       string  `json:"title" example:"Intro"`
	Description *string `json:"description"`
	EnrolledAt  string  `json:"enrolledAt" example:"2024-01-15T10:00:00Z"`
}

// EnrolledStudentResponse is a student seen through a course enrollment
type EnrolledStudentResponse struct {
	ID         int64   `json:"id" example:"1"`
	Email      string  `json:"email" example:"a@x.com"`
	Name       *string `json:"name"`
	EnrolledAt string  `json:"enrolledAt" example:"2024-01-15T10:00:00Z"`
}

// NewCourseResponse converts a course model
func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

// NewCourseResponses converts a list of course models
func NewCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

// NewEnrolledCourseResponses converts a student's course list
func NewEnrolledCourseResponses(courses []*models.EnrolledCourse) []EnrolledCourseResponse {
	out := make([]EnrolledCourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, EnrolledCourseResponse{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			EnrolledAt:  formatTime(c.EnrolledAt),
		})
	}
	return out
}

// NewEnrolledStudentResponses converts a course's student list
func NewEnrolledStudentResponses(students []*models.EnrolledStudent) []EnrolledStudentResponse {
	out := make([]EnrolledStudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, EnrolledStudentResponse{
			ID:         s.ID,
			Email:      s.Email,
			Name:       s.Name,
			EnrolledAt: formatTime(s.EnrolledAt),
		})
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
