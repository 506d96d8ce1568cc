package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/validation"
)

// errInvalidCredentials is returned for every failed login so callers cannot
// tell an unknown principal from a wrong password
var errInvalidCredentials = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials")

// StudentLoginResult is the outcome of a successful student login
type StudentLoginResult struct {
	AccessToken string
	ExpiresIn   int64
	Student     *models.Student
}

// AdminLoginResult is the outcome of a successful admin login
type AdminLoginResult struct {
	AccessToken string
	ExpiresIn   int64
	Admin       *models.Admin
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, email, password string, name *string) (*models.Student, error)
	StudentLogin(ctx context.Context, email, password string) (*StudentLoginResult, error)
	AdminLogin(ctx context.Context, username, password string) (*AdminLoginResult, error)
	CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	studentRepo repositories.IStudentRepository
	adminRepo   repositories.IAdminRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	studentRepo repositories.IStudentRepository,
	adminRepo repositories.IAdminRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		studentRepo: studentRepo,
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With().Str("service", "auth").Logger(),
	}
}

// Signup registers a new student
func (s *authServiceImpl) Signup(ctx context.Context, email, password string, name *string) (*models.Student, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	name = validation.NormalizeOptional(name)
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password during signup")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}

	student := &models.Student{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.logger.Error().Err(err).Msg("Failed to create student")
		}
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student registered")
	return student, nil
}

// StudentLogin authenticates a student by email and password
func (s *authServiceImpl) StudentLogin(ctx context.Context, email, password string) (*StudentLoginResult, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password", "Password is required")
	}

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.hasher.VerifyDummy(password)
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, student.PasswordHash) {
		return nil, errInvalidCredentials
	}

	token, expiresIn, err := s.tokens.IssueAccessToken(student.ID, models.RoleStudent)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to issue access token")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}

	s.logger.Debug().Int64("studentID", student.ID).Msg("Student logged in")
	return &StudentLoginResult{AccessToken: token, ExpiresIn: expiresIn, Student: student}, nil
}

// AdminLogin authenticates an admin by username and password
func (s *authServiceImpl) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username", "Username is required")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password", "Password is required")
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.hasher.VerifyDummy(password)
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, admin.PasswordHash) {
		return nil, errInvalidCredentials
	}

	token, expiresIn, err := s.tokens.IssueAccessToken(admin.ID, models.RoleAdmin)
	if err != nil {
		s.logger.Error().Err(err).Int64("adminID", admin.ID).Msg("Failed to issue access token")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}

	s.logger.Debug().Int64("adminID", admin.ID).Msg("Admin logged in")
	return &AdminLoginResult{AccessToken: token, ExpiresIn: expiresIn, Admin: admin}, nil
}

// CreateAdmin creates an additional admin account
func (s *authServiceImpl) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}

	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("adminID", admin.ID).Str("username", admin.Username).Msg("Admin created")
	return admin, nil
}
