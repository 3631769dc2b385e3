package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/config"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates the single admin account
type AuthService struct {
	authConfig config.AuthConfig
	validate   *validator.Validate
	logger     *logger.Logger
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(authConfig config.AuthConfig, validate *validator.Validate, logger *logger.Logger) *AuthService {
	return &AuthService{
		authConfig: authConfig,
		validate:   validate,
		logger:     logger,
		now:        time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login checks the admin credentials and returns an access token
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidItem, describeValidation(err))
	}

	if s.authConfig.AdminEmail == "" || s.authConfig.AdminPasswordHash == "" {
		return nil, entities.ErrInvalidCredentials
	}

	if !strings.EqualFold(strings.TrimSpace(req.Email), s.authConfig.AdminEmail) {
		s.logger.Warnw("Login attempt with unknown email", "email", req.Email)
		return nil, entities.ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.authConfig.AdminPasswordHash), []byte(req.Password))
	if err != nil {
		s.logger.Warnw("Login attempt with invalid password", "email", req.Email)
		return nil, entities.ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(s.authConfig.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Infow("Admin logged in", "email", s.authConfig.AdminEmail)

	return &ports.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.authConfig.TokenTTL.Seconds()),
	}, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	},
		jwt.WithIssuer(s.authConfig.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Role != entities.UserRoleAdmin {
		return nil, fmt.Errorf("invalid token role %q", claims.Role)
	}

	return &ports.Claims{
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

func (s *AuthService) generateAccessToken(email string) (string, error) {
	now := s.now()
	claims := &Claims{
		Email: email,
		Role:  entities.UserRoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.authConfig.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.authConfig.Issuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// HashPassword returns the bcrypt hash stored in auth.admin_password_hash
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
