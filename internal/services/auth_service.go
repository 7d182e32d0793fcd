// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/config"
	"github.com/buyx/backend/internal/models"
	"github.com/buyx/backend/internal/utils"
)

type AuthService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

type SignupRequest struct {
	Username        string          `json:"username" validate:"required,min=3,max=50"`
	Email           string          `json:"email" validate:"required,email"`
	Phone           string          `json:"phone" validate:"required,inphone"`
	Password        string          `json:"password" validate:"required,strong_password"`
	ConfirmPassword string          `json:"confirm_password" validate:"required"`
	UserType        models.UserType `json:"user_type,omitempty"`
}

type LoginRequest struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *AuthService {
	return &AuthService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Password != req.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}

	if req.UserType == "" {
		req.UserType = models.UserTypeCustomer
	}
	if req.UserType != models.UserTypeCustomer && req.UserType != models.UserTypeDistributor {
		return nil, errors.New("invalid user type")
	}

	// Check for duplicate email or phone
	var existingUser models.User
	if err := s.db.Where("email = ? OR phone = ?", req.Email, req.Phone).First(&existingUser).Error; err == nil {
		if existingUser.Email == req.Email {
			return nil, errors.New("email already registered")
		}
		return nil, errors.New("phone number already registered")
	}

	// Create user
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		UserType: req.UserType,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Welcome email is best-effort and must not block signup
	if s.notificationService != nil {
		go s.notificationService.SendWelcomeEmail(user)
	}

	return s.tokenResponse(user)
}

// Login authenticates a customer account. Distributor accounts are rejected
// and must use DistributorLogin, mirroring the split login surfaces.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}

	if user.UserType == models.UserTypeDistributor {
		return nil, errors.New("distributors must login through the distributor login")
	}

	return s.tokenResponse(user)
}

func (s *AuthService) DistributorLogin(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(req)
	if err != nil {
		return nil, err
	}

	if user.UserType != models.UserTypeDistributor {
		return nil, errors.New("this login is for distributors only")
	}

	return s.tokenResponse(user)
}

func (s *AuthService) authenticate(req *LoginRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Find user by email or phone
	var user models.User
	if err := s.db.Where("email = ? OR phone = ?", req.EmailOrPhone, req.EmailOrPhone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	// Recording the login time is not worth failing the login over, but the
	// error still gets surfaced in the logs.
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.Save(&user).Error; err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login time")
	}

	return &user, nil
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.tokenResponse(&user)
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AuthService) tokenResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(
		user.ID,
		user.Username,
		string(user.UserType),
		s.cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
