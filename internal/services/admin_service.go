// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/models"
)

type AdminService struct {
	db          *gorm.DB
	userService *UserService
}

type StatisticsResponse struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Stores   int64 `json:"stores"`
	Reviews  int64 `json:"reviews"`
	Sales    int64 `json:"sales"`
}

// UserActionResult is the short action envelope for ban/restore.
type UserActionResult struct {
	ID      uint          `json:"id"`
	Status  models.Status `json:"status"`
	Message string        `json:"message"`
}

type RoleChangeResult struct {
	ID         uint        `json:"id"`
	Role       models.Role `json:"role"`
	StoreID    *uint       `json:"store_id"`
	Position   *string     `json:"position"`
	SupplierID *uint       `json:"supplier_id"`
	Message    string      `json:"message"`
}

type ChangeRoleRequest struct {
	Role       models.Role `json:"role"`
	StoreID    *uint       `json:"store_id,omitempty"`
	Position   *string     `json:"position,omitempty"`
	SupplierID *uint       `json:"supplier_id,omitempty"`
}

func NewAdminService(db *gorm.DB, userService *UserService) *AdminService {
	return &AdminService{
		db:          db,
		userService: userService,
	}
}

func (s *AdminService) GeneralStatistics() (*StatisticsResponse, error) {
	stats := &StatisticsResponse{}

	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.User{}, &stats.Users},
		{&models.Product{}, &stats.Products},
		{&models.Store{}, &stats.Stores},
		{&models.Review{}, &stats.Reviews},
		{&models.Sale{}, &stats.Sales},
	}

	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	return stats, nil
}

// BanUser transitions ACTIVE -> BANNED. Admin accounts cannot be banned.
func (s *AdminService) BanUser(id uint) (*UserActionResult, error) {
	user, err := s.userService.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		return nil, apperrors.Conflict("you cannot ban admin")
	}

	if user.Status == models.StatusBanned {
		return nil, apperrors.Conflict("user is already banned")
	}

	if err := s.db.Model(user).Update("status", models.StatusBanned).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return &UserActionResult{
		ID:      user.ID,
		Status:  models.StatusBanned,
		Message: "User successfully banned",
	}, nil
}

// RestoreUser transitions BANNED -> ACTIVE.
func (s *AdminService) RestoreUser(id uint) (*UserActionResult, error) {
	var user models.User
	if err := s.db.Where("status <> ?", models.StatusDeleted).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "user with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}

	if user.Status == models.StatusActive {
		return nil, apperrors.Conflict("user is already active")
	}

	if err := s.db.Model(&user).Update("status", models.StatusActive).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return &UserActionResult{
		ID:      user.ID,
		Status:  models.StatusActive,
		Message: "User successfully restored",
	}, nil
}

// ChangeRole applies one transition of the role state machine. After the
// transition exactly one of {store_id+position, supplier_id} is set, and only
// when the new role requires it; every other attachment is cleared.
func (s *AdminService) ChangeRole(id uint, req *ChangeRoleRequest) (*RoleChangeResult, error) {
	user, err := s.userService.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if user.Status == models.StatusBanned {
		return nil, apperrors.Conflict("cannot change role for banned user")
	}

	if !req.Role.Valid() {
		return nil, apperrors.Newf(apperrors.KindBadRequest, "invalid role: %s", req.Role)
	}

	if user.Role == req.Role {
		return nil, apperrors.Newf(apperrors.KindConflict, "user already has role: %s", req.Role)
	}

	if req.Role == models.RoleAdmin {
		return nil, apperrors.Conflict("you cannot promote user to admin")
	}

	updates := map[string]interface{}{
		"role":        req.Role,
		"store_id":    nil,
		"position":    nil,
		"supplier_id": nil,
	}

	switch req.Role {
	case models.RoleEmployee:
		if req.StoreID == nil {
			return nil, apperrors.BadRequest("store id is required for EMPLOYEE role")
		}

		var store models.Store
		if err := s.db.First(&store, *req.StoreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Newf(apperrors.KindNotFound, "store with id %d not found", *req.StoreID)
			}
			return nil, apperrors.Internal(err)
		}

		updates["store_id"] = *req.StoreID
		if req.Position != nil {
			updates["position"] = *req.Position
		}

	case models.RoleSupplierManager:
		if req.SupplierID == nil {
			return nil, apperrors.BadRequest("supplier id is required for SUPPLIERMANAGER role")
		}

		var supplier models.Supplier
		if err := s.db.First(&supplier, *req.SupplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Newf(apperrors.KindNotFound, "supplier with id %d not found", *req.SupplierID)
			}
			return nil, apperrors.Internal(err)
		}

		updates["supplier_id"] = *req.SupplierID
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	updated, err := s.userService.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	return &RoleChangeResult{
		ID:         updated.ID,
		Role:       updated.Role,
		StoreID:    updated.StoreID,
		Position:   updated.Position,
		SupplierID: updated.SupplierID,
		Message:    fmt.Sprintf("User role successfully changed to %s", req.Role),
	}, nil
}
