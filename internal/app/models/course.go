package models

import "time"

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Intro"`
	Description *string   `json:"description" db:"description"` // Nullable
	CreatedBy   *int64    `json:"createdBy" db:"created_by"`    // Nullable once the creating admin is gone
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CourseUpdate carries a partial course update; nil fields stay unchanged
type CourseUpdate struct {
	Title       *string
	Description *string
}

// Empty reports whether the update changes nothing.
func (u CourseUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil
}

// EnrolledCourse is a course as seen through one of a student's enrollments
type EnrolledCourse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}
