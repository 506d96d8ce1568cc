package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// JWT errors
var (
	ErrInvalidToken  = apperrors.ErrTokenInvalid
	ErrExpiredToken  = apperrors.ErrTokenExpired
	ErrInvalidFormat = apperrors.ErrInvalidFormat
)

// DefaultAlgorithm is used when no algorithm is configured
const DefaultAlgorithm = "HS256"

// SigningMethodForName resolves a configured HMAC algorithm name.
func SigningMethodForName(name string) (*jwt.SigningMethodHMAC, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported JWT algorithm %q", name)
	}
}

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	Algorithm      string
	AccessTokenExp time.Duration
	TokenIssuer    string
	// Now overrides the clock; nil means time.Now
	Now func() time.Time
}

// JWTService issues and verifies access tokens. Its configuration is
// immutable after construction.
type JWTService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) (*JWTService, error) {
	if config.SecretKey == "" {
		return nil, errors.New("JWT secret is required")
	}
	method, err := SigningMethodForName(config.Algorithm)
	if err != nil {
		return nil, err
	}
	if config.AccessTokenExp <= 0 {
		return nil, errors.New("JWT access token expiration must be positive")
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	}
	if config.TokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(config.TokenIssuer))
	}

	return &JWTService{
		secret: []byte(config.SecretKey),
		method: method,
		ttl:    config.AccessTokenExp,
		issuer: config.TokenIssuer,
		now:    now,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Claims defines JWT token content
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// PrincipalID returns the numeric principal id carried in the subject.
func (c *Claims) PrincipalID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// AccessTokenTTL returns the lifetime of tokens issued by IssueAccessToken.
func (s *JWTService) AccessTokenTTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the principal that stops being valid at expiresAt
func (s *JWTService) Issue(principalID int64, role models.Role, expiresAt time.Time) (string, error) {
	if principalID <= 0 {
		return "", fmt.Errorf("invalid principal id %d", principalID)
	}
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", role)
	}

	now := s.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(principalID, 10),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}
	return signed, nil
}

// IssueAccessToken signs a token with the configured lifetime and returns
// it together with its lifetime in seconds
func (s *JWTService) IssueAccessToken(principalID int64, role models.Role) (string, int64, error) {
	token, err := s.Issue(principalID, role, s.now().Add(s.ttl))
	if err != nil {
		return "", 0, err
	}
	return token, int64(s.ttl.Seconds()), nil
}

// ValidateToken verifies signature, algorithm, expiry and claim shape
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	if _, err := claims.PrincipalID(); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExtractBearerToken extracts the token from an "Authorization: Bearer <token>" header
func ExtractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidFormat
	}
	return parts[1], nil
}
