// internal/services/store_service.go
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

type StoreService struct {
	db *gorm.DB
}

type CreateStoreRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Address     string `json:"address" validate:"required,min=5,max=300"`
	Email       string `json:"email" validate:"required,email"`
	StoreImage  string `json:"store_image" validate:"omitempty,url"`
	OpeningTime string `json:"opening_time" validate:"required,hhmm"`
	ClosingTime string `json:"closing_time" validate:"required,hhmm"`
}

type UpdateStoreRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=5,max=300"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	StoreImage  *string `json:"store_image,omitempty" validate:"omitempty,url"`
	OpeningTime *string `json:"opening_time,omitempty" validate:"omitempty,hhmm"`
	ClosingTime *string `json:"closing_time,omitempty" validate:"omitempty,hhmm"`
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

func (s *StoreService) GetAllStores(params utils.PaginationParams) ([]models.Store, int64, error) {
	var stores []models.Store
	var total int64

	query := s.db.Model(&models.Store{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	if err := utils.ApplyPagination(query, params).
		Order("id asc").
		Find(&stores).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return stores, total, nil
}

func (s *StoreService) GetStoreByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := s.db.
		Preload("Staff", "status <> ?", models.StatusDeleted).
		First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "store with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &store, nil
}

func (s *StoreService) CreateStore(req *CreateStoreRequest) (*models.Store, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkUnique("name", name, 0); err != nil {
		return nil, err
	}
	if err := s.checkUnique("address", req.Address, 0); err != nil {
		return nil, err
	}
	if err := s.checkUnique("email", email, 0); err != nil {
		return nil, err
	}

	store := &models.Store{
		Name:        name,
		Address:     req.Address,
		Email:       email,
		StoreImage:  nilIfEmpty(req.StoreImage),
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
	}

	if err := s.db.Create(store).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("store with the same name, address or email already exists")
		}
		return nil, apperrors.Internal(err)
	}

	return store, nil
}

func (s *StoreService) UpdateStore(id uint, req *UpdateStoreRequest) (*models.Store, error) {
	store, err := s.GetStoreByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := s.checkUnique("name", name, id); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Address != nil {
		if err := s.checkUnique("address", *req.Address, id); err != nil {
			return nil, err
		}
		updates["address"] = *req.Address
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.checkUnique("email", email, id); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if req.StoreImage != nil {
		updates["store_image"] = *req.StoreImage
	}
	if req.OpeningTime != nil {
		updates["opening_time"] = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		updates["closing_time"] = *req.ClosingTime
	}

	if len(updates) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	if err := s.db.Model(store).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("store with the same name, address or email already exists")
		}
		return nil, apperrors.Internal(err)
	}

	return s.GetStoreByID(id)
}

// DeleteStore removes the store and detaches its staff so employees are not
// left pointing at a missing row.
func (s *StoreService) DeleteStore(id uint) error {
	store, err := s.GetStoreByID(id)
	if err != nil {
		return err
	}

	var saleCount int64
	if err := s.db.Model(&models.Sale{}).Where("store_id = ?", id).Count(&saleCount).Error; err != nil {
		return apperrors.Internal(err)
	}
	if saleCount > 0 {
		return apperrors.Conflict("store has registered sales and cannot be deleted")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("store_id = ?", id).
			Updates(map[string]interface{}{"store_id": nil, "position": nil}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Delete(store).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

func (s *StoreService) checkUnique(field, value string, excludeID uint) error {
	var count int64
	query := s.db.Model(&models.Store{}).Where("LOWER("+field+") = LOWER(?)", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Internal(err)
	}
	if count > 0 {
		return apperrors.Newf(apperrors.KindConflict, "store with this %s already exists", field)
	}
	return nil
}
