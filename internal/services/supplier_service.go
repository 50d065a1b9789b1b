// internal/services/supplier_service.go
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

type SupplierService struct {
	db *gorm.DB
}

type CreateSupplierRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Phone   string  `json:"phone" validate:"required,phone"`
	Email   string  `json:"email" validate:"required,email"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
	LogoURL string  `json:"logo_url" validate:"omitempty,url"`
}

type UpdateSupplierRequest struct {
	Name    *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone   *string  `json:"phone,omitempty" validate:"omitempty,phone"`
	Email   *string  `json:"email,omitempty" validate:"omitempty,email"`
	Rating  *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	LogoURL *string  `json:"logo_url,omitempty" validate:"omitempty,url"`
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

func (s *SupplierService) GetAllSuppliers(params utils.PaginationParams) ([]models.Supplier, int64, error) {
	var suppliers []models.Supplier
	var total int64

	query := s.db.Model(&models.Supplier{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	if err := utils.ApplyPagination(query, params).
		Order("id asc").
		Find(&suppliers).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return suppliers, total, nil
}

func (s *SupplierService) GetSupplierByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.
		Preload("Manager").
		Preload("Products").
		First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "supplier with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &supplier, nil
}

// CreateSupplier registers a supplier. When a supplier manager creates one,
// their account is attached to it so they can maintain it afterwards.
func (s *SupplierService) CreateSupplier(principal models.Principal, req *CreateSupplierRequest) (*models.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkUnique("name", name, 0); err != nil {
		return nil, err
	}
	if err := s.checkUnique("phone", req.Phone, 0); err != nil {
		return nil, err
	}
	if err := s.checkUnique("email", email, 0); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{
		Name:    name,
		Phone:   req.Phone,
		Email:   email,
		Rating:  req.Rating,
		LogoURL: nilIfEmpty(req.LogoURL),
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(supplier).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperrors.Conflict("supplier with the same name, phone or email already exists")
			}
			return apperrors.Internal(err)
		}
		if principal.Role == models.RoleSupplierManager {
			if err := tx.Model(&models.User{}).
				Where("id = ?", principal.UserID).
				Update("supplier_id", supplier.ID).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return supplier, nil
}

// UpdateSupplier enforces ownership: a supplier manager may only update the
// supplier their account is attached to, admins may update any.
func (s *SupplierService) UpdateSupplier(principal models.Principal, id uint, req *UpdateSupplierRequest) (*models.Supplier, error) {
	supplier, err := s.GetSupplierByID(id)
	if err != nil {
		return nil, err
	}

	if !principal.IsAdmin() {
		var manager models.User
		if err := s.db.First(&manager, principal.UserID).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
		if !manager.ManagesSupplier(id) {
			return nil, apperrors.Forbidden("you can only update your own supplier")
		}
	}

	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := s.checkUnique("name", name, id); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Phone != nil {
		if err := s.checkUnique("phone", *req.Phone, id); err != nil {
			return nil, err
		}
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.checkUnique("email", email, id); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}

	if len(updates) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	if err := s.db.Model(supplier).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("supplier with the same name, phone or email already exists")
		}
		return nil, apperrors.Internal(err)
	}

	return s.GetSupplierByID(id)
}

func (s *SupplierService) DeleteSupplier(id uint) error {
	supplier, err := s.GetSupplierByID(id)
	if err != nil {
		return err
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		// Detach the manager account and the product links.
		if err := tx.Model(&models.User{}).
			Where("supplier_id = ?", id).
			Update("supplier_id", nil).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Model(supplier).Association("Products").Clear(); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Delete(supplier).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

func (s *SupplierService) checkUnique(field, value string, excludeID uint) error {
	var count int64
	query := s.db.Model(&models.Supplier{}).Where("LOWER("+field+") = LOWER(?)", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Internal(err)
	}
	if count > 0 {
		return apperrors.Newf(apperrors.KindConflict, "supplier with this %s already exists", field)
	}
	return nil
}
