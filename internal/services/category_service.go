// internal/services/category_service.go
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

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) GetAllCategories(params utils.PaginationParams) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	query := s.db.Model(&models.Category{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	if err := utils.ApplyPagination(query, params).
		Order("id asc").
		Find(&categories).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return categories, total, nil
}

func (s *CategoryService) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Products").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "category with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if count > 0 {
		return nil, apperrors.Newf(apperrors.KindConflict, "category with name %s already exists", name)
	}

	category := &models.Category{
		Name:        name,
		Description: nilIfEmpty(req.Description),
		ImageURL:    nilIfEmpty(req.ImageURL),
	}

	if err := s.db.Create(category).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Newf(apperrors.KindConflict, "category with name %s already exists", name)
		}
		return nil, apperrors.Internal(err)
	}

	return category, nil
}

func (s *CategoryService) UpdateCategory(id uint, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)

		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
			Count(&count).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
		if count > 0 {
			return nil, apperrors.Newf(apperrors.KindConflict, "category with name %s already exists", name)
		}

		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("category name already in use")
		}
		return nil, apperrors.Internal(err)
	}

	return s.GetCategoryByID(id)
}

func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}

	// Detach products first so the join rows do not dangle.
	if err := s.db.Model(category).Association("Products").Clear(); err != nil {
		return apperrors.Internal(err)
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Internal(err)
	}

	return nil
}
