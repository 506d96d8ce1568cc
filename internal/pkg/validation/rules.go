package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// Validation rule limits
var (
	// PasswordMinLength is the minimum password length in characters
	PasswordMinLength = 6

	// PasswordMaxBytes is bcrypt's input limit; longer passwords are rejected
	// instead of being silently truncated
	PasswordMaxBytes = 72

	// TextMaxLength bounds every VARCHAR(255) column
	TextMaxLength = 255
)

var validate = validator.New()

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation. Lengths are counted in characters.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}
	return true
}

// NormalizeEmail trims and lower-cases an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the email format. The domain part must contain a dot.
func ValidateEmail(email string) error {
	if email == "" {
		return apperrors.NewValidationError("email", "Email is required")
	}
	if !NewStringValidation(email).WithMaxLength(TextMaxLength).Validate() {
		return apperrors.NewValidationError("email", "Email is too long")
	}
	if err := validate.Var(email, "email"); err != nil {
		return apperrors.NewValidationError("email", "Invalid email format")
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at+1:], ".") {
		return apperrors.NewValidationError("email", "Invalid email format")
	}
	return nil
}

// ValidatePassword enforces the password policy before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password", "Password is required")
	}
	if !NewStringValidation(password).WithMinLength(PasswordMinLength).Validate() {
		return apperrors.NewValidationError("password", "Password must be at least 6 characters long")
	}
	if len(password) > PasswordMaxBytes {
		return apperrors.NewValidationError("password", "Password must be at most 72 bytes long")
	}
	return nil
}

// ValidateUsername checks an admin username.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewValidationError("username", "Username is required")
	}
	if !NewStringValidation(username).WithMaxLength(TextMaxLength).Validate() {
		return apperrors.NewValidationError("username", "Username must be at most 255 characters long")
	}
	return nil
}

// ValidateTitle checks a course title after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError("title", "Title is required")
	}
	if !NewStringValidation(title).WithMaxLength(TextMaxLength).Validate() {
		return apperrors.NewValidationError("title", "Title must be at most 255 characters long")
	}
	return nil
}

// NormalizeOptional trims s and maps empty values to nil.
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ValidateName checks an optional display name.
func ValidateName(name *string) error {
	if name == nil {
		return nil
	}
	if !NewStringValidation(*name).WithRequired(false).WithMaxLength(TextMaxLength).Validate() {
		return apperrors.NewValidationError("name", "Name must be at most 255 characters long")
	}
	return nil
}
