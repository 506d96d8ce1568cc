package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Email        string    `json:"email" db:"email" example:"a@x.com"`
	PasswordHash string    `json:"-" db:"password_hash"` // never serialized
	Name         *string   `json:"name" db:"name" example:"Ada Lovelace"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// EnrolledStudent is a student as seen through one of their enrollments
type EnrolledStudent struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name"`
	EnrolledAt time.Time `json:"enrolledAt"`
}
