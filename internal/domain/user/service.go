// internal/domain/user/service.go
package user

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/pkg/apperrors"
	"github.com/your-org/fertishop-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user registration and authentication
type Service struct {
	db              *gorm.DB
	config          *config.Config
	logger          *logrus.Logger
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		logger:          logger,
		passwordManager: auth.NewPasswordManager(cfg, logger),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Register creates a new user account and logs it in
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperrors.NewValidationError("email", "is required")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationError("password", "is required")
	}

	// Duplicate email is a conflict, not an internal failure
	var existing User
	result := s.db.Where("email = ?", req.Email).First(&existing)
	if result.Error == nil {
		return nil, apperrors.NewConflictError("user", "email already registered")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewInternalError("user.Register", result.Error)
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationError("password", err.Error())
	}

	newUser := User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, apperrors.NewInternalError("user.Register", err)
	}

	token, err := s.jwtManager.GenerateToken(newUser.ID, newUser.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("user.Register", err)
	}

	return &AuthResponse{
		User:      &newUser,
		Token:     token,
		ExpiresIn: int64(s.config.JWT.TokenExpiry.Seconds()),
	}, nil
}

// Login authenticates a user by email and password. Unknown email and
// wrong password produce the same generic error to prevent account
// enumeration; the real cause is logged server-side.
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	result := s.db.Where("email = ?", req.Email).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.logger.WithField("email", req.Email).Info("login attempt for unknown email")
			return nil, apperrors.NewAuthError("invalid email or password")
		}
		return nil, apperrors.NewInternalError("user.Login", result.Error)
	}

	if !s.passwordManager.VerifyPassword(req.Password, u.Password) {
		s.logger.WithField("user_id", u.ID).Info("login attempt with wrong password")
		return nil, apperrors.NewAuthError("invalid email or password")
	}

	token, err := s.jwtManager.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("user.Login", err)
	}

	return &AuthResponse{
		User:      &u,
		Token:     token,
		ExpiresIn: int64(s.config.JWT.TokenExpiry.Seconds()),
	}, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(id uint) (*User, error) {
	var u User
	result := s.db.Where("id = ?", id).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user", strconv.FormatUint(uint64(id), 10))
		}
		return nil, apperrors.NewInternalError("user.GetByID", result.Error)
	}
	return &u, nil
}
