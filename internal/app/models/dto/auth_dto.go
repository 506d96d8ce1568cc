package dto

import "github.com/yigit/coursehub/internal/app/models"

// SignupRequest represents a student self-registration
type SignupRequest struct {
	Email    string  `json:"email" binding:"required" example:"a@x.com"`
	Password string  `json:"password" binding:"required" example:"secret1"`
	Name     *string `json:"name" example:"Ada Lovelace"`
}

// StudentLoginRequest represents student login credentials
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// AdminLoginRequest represents admin login credentials
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"86400"`
}

// StudentResponse is the public view of a student
type StudentResponse struct {
	ID        int64   `json:"id" example:"1"`
	Email     string  `json:"email" example:"a@x.com"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"createdAt" example:"2024-01-15T10:00:00Z"`
}

// AdminResponse is the public view of an admin
type AdminResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"admin"`
}

// StudentAuthResponse is returned by a successful student login
type StudentAuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Student StudentResponse `json:"student"`
}

// AdminAuthResponse is returned by a successful admin login
type AdminAuthResponse struct {
	Token TokenResponse `json:"token"`
	Admin AdminResponse `json:"admin"`
}

// NewStudentResponse converts a student model
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		Email:     s.Email,
		Name:      s.Name,
		CreatedAt: formatTime(s.CreatedAt),
	}
}

// NewStudentResponses converts a list of student models
func NewStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}

// NewAdminResponse converts an admin model
func NewAdminResponse(a *models.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Username: a.Username}
}

// NewTokenResponse builds a bearer token response
func NewTokenResponse(token string, expiresIn int64) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn}
}
