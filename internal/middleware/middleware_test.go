package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	if body.Success || body.Error == nil {
		t.Fatalf("not an error envelope: %s", rec.Body.String())
	}
	return body
}

func TestErrorDetailFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"validation", apperrors.NewValidationError("email", "Invalid email format"), 400, dto.ErrorCodeValidationFailed, "Invalid email format"},
		{"credentials", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials"), 401, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"expired", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken, "Token has expired"},
		{"invalid token", fmt.Errorf("%w: bad signature", apperrors.ErrTokenInvalid), 401, dto.ErrorCodeInvalidToken, "Invalid token"},
		{"bad header", apperrors.ErrInvalidFormat, 401, dto.ErrorCodeInvalidToken, "Invalid token format"},
		{"anonymous", auth.ErrAuthenticationRequired, 401, dto.ErrorCodeUnauthorized, "Authentication required"},
		{"forbidden", auth.ErrAdminRequired, 403, dto.ErrorCodeForbidden, "Admin access required"},
		{"not found", apperrors.ErrCourseNotFound, 404, dto.ErrorCodeResourceNotFound, "course not found"},
		{"conflict", apperrors.ErrAlreadyEnrolled, 409, dto.ErrorCodeConflict, "student already enrolled in this course"},
		{"store", fmt.Errorf("%w: connection refused", apperrors.ErrStoreFailure), 500, dto.ErrorCodeDatabaseError, "Internal server error"},
		{"unknown", errors.New("boom"), 500, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := ErrorDetailFor(tt.err)
			if status != tt.status || detail.Code != tt.code || detail.Message != tt.message {
				t.Errorf("got %d %s %q, want %d %s %q", status, detail.Code, detail.Message, tt.status, tt.code, tt.message)
			}
		})
	}
}

func TestErrorDetailForCarriesField(t *testing.T) {
	_, detail := ErrorDetailFor(apperrors.NewValidationError("password", "too short"))
	if detail.Field != "password" {
		t.Errorf("field = %q", detail.Field)
	}
}

func TestInternalErrorsHideDetails(t *testing.T) {
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		HandleAPIError(c, fmt.Errorf("%w: pq: password authentication failed for user", apperrors.ErrStoreFailure))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password authentication") {
		t.Errorf("response leaks internal error: %s", rec.Body.String())
	}
	decodeError(t, rec)
}

func newAuthRouter(t *testing.T) (*gin.Engine, string, string, string) {
	t.Helper()
	tokens := testutil.Tokens(t)
	m := NewAuthMiddleware(auth.NewGuard(tokens))

	r := gin.New()
	r.Use(m.ResolvePrincipal())
	r.GET("/public", func(c *gin.Context) {
		c.String(http.StatusOK, PrincipalFrom(c).String())
	})
	r.GET("/private", m.RequireAuthentication(), func(c *gin.Context) {
		c.String(http.StatusOK, PrincipalFrom(c).String())
	})
	r.GET("/admin", m.RequireAuthentication(), m.RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, PrincipalFrom(c).String())
	})

	studentToken, _, err := tokens.IssueAccessToken(7, models.RoleStudent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	adminToken, _, err := tokens.IssueAccessToken(1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	expired, err := tokens.Issue(7, models.RoleStudent, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return r, studentToken, adminToken, expired
}

func TestAuthMiddleware(t *testing.T) {
	r, studentToken, adminToken, expired := newAuthRouter(t)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
		code   dto.ErrorCode
	}{
		{"public anonymous", "/public", "", 200, "anonymous", ""},
		{"public ignores bad token", "/public", "Bearer garbage", 200, "anonymous", ""},
		{"public student", "/public", "Bearer " + studentToken, 200, "student(7)", ""},
		{"private anonymous", "/private", "", 401, "", dto.ErrorCodeUnauthorized},
		{"private expired", "/private", "Bearer " + expired, 401, "", dto.ErrorCodeExpiredToken},
		{"private garbage", "/private", "Bearer garbage", 401, "", dto.ErrorCodeInvalidToken},
		{"private no scheme", "/private", studentToken, 401, "", dto.ErrorCodeInvalidToken},
		{"private student", "/private", "bearer " + studentToken, 200, "student(7)", ""},
		{"admin as student", "/admin", "Bearer " + studentToken, 403, "", dto.ErrorCodeForbidden},
		{"admin as admin", "/admin", "Bearer " + adminToken, 200, "admin(1)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.code != "" {
				if got := decodeError(t, rec).Error.Code; got != tt.code {
					t.Errorf("code = %s, want %s", got, tt.code)
				}
				return
			}
			if rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/enroll", func(c *gin.Context) {
		var req dto.EnrollRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
		code   dto.ErrorCode
		field  string
	}{
		{"ok", `{"studentId":1,"courseId":2}`, 204, "", ""},
		{"missing field", `{"studentId":1}`, 400, dto.ErrorCodeValidationFailed, "courseId"},
		{"wrong type", `{"studentId":"one","courseId":2}`, 400, dto.ErrorCodeInvalidRequest, "studentId"},
		{"not json", `{"studentId":`, 400, dto.ErrorCodeInvalidRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/enroll", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.code == "" {
				return
			}
			body := decodeError(t, rec)
			if body.Error.Code != tt.code || body.Error.Field != tt.field {
				t.Errorf("error = %s/%q, want %s/%q", body.Error.Code, body.Error.Field, tt.code, tt.field)
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	var logs strings.Builder
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&logs)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := rec.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("no request id generated")
	}
	if !strings.Contains(logs.String(), id) || !strings.Contains(logs.String(), `"status":200`) {
		t.Errorf("log line missing fields: %s", logs.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want incoming id", got)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "https://any.example", "*"},
		{"listed", []string{"https://app.example"}, "https://app.example", "https://app.example"},
		{"unlisted", []string{"https://app.example"}, "https://evil.example", ""},
		{"disabled", nil, "https://app.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.origins))
			r.GET("/api/courses", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}
