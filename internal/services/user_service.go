// internal/services/user_service.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/database"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Username  *string `json:"username,omitempty" validate:"omitempty,username"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Password  *string `json:"password,omitempty" validate:"omitempty,strong_password"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetAllUsers lists non-deleted users, optionally filtered by role and a
// case-insensitive search over username and names.
func (s *UserService) GetAllUsers(params utils.PaginationParams, role models.Role) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Where("status <> ?", models.StatusDeleted)

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			term, term, term,
		)
	}

	if role != "" {
		if !role.Valid() {
			return nil, 0, apperrors.BadRequest("invalid role filter")
		}
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var users []models.User
	if err := utils.ApplyPagination(query.Order("id asc"), params).Find(&users).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return users, total, nil
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("Store").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(5)
		}).
		Preload("Reviews.Product").
		Where("status <> ?", models.StatusDeleted).
		First(&user, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "user with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}

	return &user, nil
}

func (s *UserService) UpdateUser(id uint, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindBadRequest, "validation failed", err)
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Email != nil {
		if err := s.checkUniqueField(id, "email", *req.Email, "user with this email already exists"); err != nil {
			return nil, err
		}
		updates["email"] = *req.Email
	}

	if req.Phone != nil {
		if err := s.checkUniqueField(id, "phone", *req.Phone, "user with this phone already exists"); err != nil {
			return nil, err
		}
		updates["phone"] = *req.Phone
	}

	if req.Username != nil {
		if err := s.checkUniqueField(id, "username", *req.Username, "user with this username already exists"); err != nil {
			return nil, err
		}
		updates["username"] = *req.Username
	}

	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, apperrors.Internal(err)
		}
		updates["password_hash"] = user.PasswordHash
	}

	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email, phone or username already exists")
		}
		return nil, apperrors.Internal(err)
	}

	return s.GetUserByID(id)
}

// DeleteUser soft-deletes the account: the row stays, status becomes DELETED.
func (s *UserService) DeleteUser(id uint) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("status", models.StatusDeleted).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	user.Status = models.StatusDeleted
	return user, nil
}

// checkUniqueField probes for another row holding the same value, comparing
// case-insensitively but leaving the stored value untouched.
func (s *UserService) checkUniqueField(id uint, field, value, conflictMsg string) error {
	var existing models.User
	err := s.db.Select("id").
		Where("LOWER("+field+") = LOWER(?) AND id <> ?", value, id).
		First(&existing).Error

	if err == nil {
		return apperrors.Conflict(conflictMsg)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Internal(err)
	}
	return nil
}
