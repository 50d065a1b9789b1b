// internal/services/auth_service.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/config"
	"github.com/eshopdev/eshop-backend/internal/database"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Username  *string `json:"username,omitempty" validate:"omitempty,username"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"required,phone"`
	Password  string  `json:"password" validate:"required,strong_password"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindBadRequest, "validation failed", err)
	}

	if err := s.checkRegisterConflicts(req); err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		Email:     req.Email,
		Phone:     req.Phone,
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
		Role:      models.RoleUser,
		Status:    models.StatusActive,
	}

	if req.LastName != nil {
		trimmed := strings.TrimSpace(*req.LastName)
		if trimmed != "" {
			user.LastName = &trimmed
		}
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email, phone or username already exists")
		}
		return nil, apperrors.Internal(err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindBadRequest, "validation failed", err)
	}

	var user models.User
	if err := s.db.Where("email = ? AND status <> ?", req.Email, models.StatusDeleted).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}

	if user.Status == models.StatusBanned {
		return nil, apperrors.Unauthenticated("account is banned")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.BadRequest("invalid email or password")
	}

	return s.issueTokens(&user)
}

// Refresh exchanges a valid refresh credential for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthenticated("refresh token not found")
	}

	userID, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid refresh token")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}

	if user.Status != models.StatusActive {
		return nil, apperrors.Unauthenticated("account is not active")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Store").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

func (s *AuthService) RefreshTokenTTL() int {
	return s.cfg.JWT.RefreshTokenTTL
}

func (s *AuthService) checkRegisterConflicts(req *RegisterRequest) error {
	var existing models.User

	if err := s.db.Where("LOWER(email) = LOWER(?)", req.Email).First(&existing).Error; err == nil {
		return apperrors.Conflict("user with this email already exists")
	}

	if err := s.db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		return apperrors.Conflict("user with this phone number already exists")
	}

	if req.Username != nil {
		if err := s.db.Where("LOWER(username) = LOWER(?)", *req.Username).First(&existing).Error; err == nil {
			return apperrors.Conflict("user with this username already exists")
		}
	}

	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
