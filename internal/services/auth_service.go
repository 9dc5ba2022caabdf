// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/config"
	"github.com/stockadoodle/backend/internal/models"
	"github.com/stockadoodle/backend/internal/utils"
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	activity *ActivityService
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
	MFARequired bool         `json:"mfa_required"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, activity *ActivityService) *AuthService {
	return &AuthService{db: db, cfg: cfg, activity: activity}
}

// Login authenticates by username/password and issues an access token.
// Admin and Manager accounts additionally require an emailed MFA code; the
// response flags that so the client can run the second factor.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("username = ? AND is_active = ?", req.Username, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	userID := user.ID
	s.activity.LogUserAction(&userID, "Logged In", user.Username, models.SourceAPI, nil)

	return &AuthResponse{
		User:        &user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
		MFARequired: user.Role == models.RoleAdmin || user.Role == models.RoleManager,
	}, nil
}

// RequiresMFA reports whether the named user must complete the email second
// factor (Admin and Manager roles only).
func (s *AuthService) RequiresMFA(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMFANotRequired
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleManager {
		return nil, ErrMFANotRequired
	}
	return &user, nil
}

func (s *AuthService) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
