// internal/services/sale_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/database"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type SaleService struct {
	db       *gorm.DB
	payments *PaymentService
}

type SaleItemRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	ClientID        uint                 `json:"client_id" validate:"required,gt=0"`
	StoreID         uint                 `json:"store_id" validate:"required,gt=0"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" validate:"required"`
	PaymentStatus   models.PaymentStatus `json:"payment_status" validate:"omitempty"`
	PaymentMethodID string               `json:"payment_method_id" validate:"omitempty"`
	Items           []SaleItemRequest    `json:"items" validate:"required,min=1,dive"`
}

type UpdateSaleRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" validate:"required"`
}

// SaleFilter narrows the sale listing. Zero values mean "no filter".
type SaleFilter struct {
	StoreID   uint
	ClientID  uint
	SellerID  uint
	StartDate *time.Time
	EndDate   *time.Time
}

func NewSaleService(db *gorm.DB, payments *PaymentService) *SaleService {
	return &SaleService{db: db, payments: payments}
}

// GetAllSales lists sales visible to the caller. Employees only see sales
// they registered themselves; admins see everything.
func (s *SaleService) GetAllSales(principal models.Principal, params utils.PaginationParams, filter SaleFilter) ([]models.Sale, int64, error) {
	var sales []models.Sale
	var total int64

	query := s.db.Model(&models.Sale{})

	if principal.Role == models.RoleEmployee {
		query = query.Where("seller_id = ?", principal.UserID)
	}

	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	if err := utils.ApplyPagination(query, params).
		Preload("Client").
		Preload("Store").
		Preload("Items").
		Order("created_at desc").
		Find(&sales).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return sales, total, nil
}

func (s *SaleService) GetSaleByID(principal models.Principal, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.
		Preload("Client").
		Preload("Seller").
		Preload("Store").
		Preload("Items").
		Preload("Items.Product").
		First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "sale with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}

	if principal.Role == models.RoleEmployee && sale.SellerID != principal.UserID {
		return nil, apperrors.Forbidden("you can only view your own sales")
	}

	return &sale, nil
}

// CreateSale registers a sale atomically: either the sale row and every item
// row are written, or nothing is. Item prices are captured at sale time and
// the total is computed server side.
func (s *SaleService) CreateSale(principal models.Principal, req *CreateSaleRequest) (*models.Sale, error) {
	if !req.PaymentMethod.Valid() {
		return nil, apperrors.Newf(apperrors.KindBadRequest, "invalid payment method: %s", req.PaymentMethod)
	}

	// The submitted status applies when no charge runs (cash sales, or card
	// sales with payments in offline mode).
	status := models.PaymentStatusOK
	if req.PaymentStatus != "" {
		if !req.PaymentStatus.Valid() {
			return nil, apperrors.Newf(apperrors.KindBadRequest, "invalid payment status: %s", req.PaymentStatus)
		}
		status = req.PaymentStatus
	}

	var client models.User
	if err := s.db.Where("status <> ?", models.StatusDeleted).First(&client, req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "user with id %d not found", req.ClientID)
		}
		return nil, apperrors.Internal(err)
	}

	var store models.Store
	if err := s.db.First(&store, req.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "store with id %d not found", req.StoreID)
		}
		return nil, apperrors.Internal(err)
	}

	var sale *models.Sale
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		products, err := s.resolveProducts(tx, req.Items)
		if err != nil {
			return err
		}

		total := 0.0
		items := make([]models.SaleItem, 0, len(req.Items))
		for _, item := range req.Items {
			product := products[item.ProductID]
			total += product.Price * float64(item.Quantity)
			items = append(items, models.SaleItem{
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				PriceAtSale: product.Price,
			})
		}

		sale = &models.Sale{
			ClientID:      req.ClientID,
			SellerID:      principal.UserID,
			StoreID:       req.StoreID,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: status,
			Items:         items,
		}

		if req.PaymentMethod == models.PaymentMethodCard && s.payments.Enabled() {
			charge, err := s.payments.ChargeCard(total, req.PaymentMethodID, fmt.Sprintf("Sale at store %d", req.StoreID))
			if err != nil {
				return apperrors.Internal(err)
			}
			sale.PaymentStatus = charge.Status
			sale.PaymentReference = charge.Reference
		}

		if err := tx.Create(sale).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetSaleByID(principal, sale.ID)
}

// UpdateSale changes the payment status only. Moving to REFUND reverses the
// upstream card charge when one was captured.
func (s *SaleService) UpdateSale(principal models.Principal, id uint, req *UpdateSaleRequest) (*models.Sale, error) {
	sale, err := s.GetSaleByID(principal, id)
	if err != nil {
		return nil, err
	}

	if !req.PaymentStatus.Valid() {
		return nil, apperrors.Newf(apperrors.KindBadRequest, "invalid payment status: %s", req.PaymentStatus)
	}

	if sale.PaymentStatus == req.PaymentStatus {
		return nil, apperrors.Newf(apperrors.KindConflict, "sale already has payment status: %s", req.PaymentStatus)
	}

	if req.PaymentStatus == models.PaymentStatusRefund && sale.PaymentReference != nil {
		if err := s.payments.RefundCard(*sale.PaymentReference); err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	if err := s.db.Model(sale).Update("payment_status", req.PaymentStatus).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return s.GetSaleByID(principal, id)
}

// resolveProducts loads every requested product and names the missing ids in
// one NotFound error instead of failing on the first.
func (s *SaleService) resolveProducts(tx *gorm.DB, items []SaleItemRequest) (map[uint]models.Product, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	found := make(map[uint]models.Product, len(products))
	for _, p := range products {
		found[p.ID] = p
	}

	var missing []uint
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.Newf(apperrors.KindNotFound, "products with ids %s not found", joinIDs(missing))
	}

	return found, nil
}
