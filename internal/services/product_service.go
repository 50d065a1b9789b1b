// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/database"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	CategoryIDs []uint   `json:"category_ids" validate:"omitempty,dive,gt=0"`
	SupplierIDs []uint   `json:"supplier_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	CategoryIDs *[]uint   `json:"category_ids,omitempty" validate:"omitempty,dive,gt=0"`
	SupplierIDs *[]uint   `json:"supplier_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// ProductFilter narrows the product listing beyond the free-text search.
type ProductFilter struct {
	CategoryID uint
	SupplierID uint
	MinPrice   *float64
	MaxPrice   *float64
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) GetAllProducts(params utils.PaginationParams, filter ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if filter.CategoryID != 0 {
		query = query.
			Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", filter.CategoryID)
	}
	if filter.SupplierID != 0 {
		query = query.
			Joins("JOIN product_suppliers ps ON ps.product_id = products.id").
			Where("ps.supplier_id = ?", filter.SupplierID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	if err := utils.ApplyPagination(query, params).
		Preload("Categories").
		Order("products.id asc").
		Find(&products).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return products, total, nil
}

func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.
		Preload("Categories").
		Preload("Suppliers").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(10)
		}).
		Preload("Reviews.User").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "product with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)

	var count int64
	if err := s.db.Model(&models.Product{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if count > 0 {
		return nil, apperrors.Newf(apperrors.KindConflict, "product with name %s already exists", name)
	}

	categories, err := s.resolveCategories(s.db, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.resolveSuppliers(s.db, req.SupplierIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        name,
		Description: nilIfEmpty(req.Description),
		Price:       req.Price,
		Images:      models.StringList(req.Images),
		Categories:  categories,
		Suppliers:   suppliers,
	}

	if err := s.db.Create(product).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Newf(apperrors.KindConflict, "product with name %s already exists", name)
		}
		return nil, apperrors.Internal(err)
	}

	return s.GetProductByID(product.ID)
}

func (s *ProductService) UpdateProduct(id uint, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)

		var count int64
		if err := s.db.Model(&models.Product{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
			Count(&count).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
		if count > 0 {
			return nil, apperrors.Newf(apperrors.KindConflict, "product with name %s already exists", name)
		}

		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Images != nil {
		updates["images"] = models.StringList(*req.Images)
	}

	if len(updates) == 0 && req.CategoryIDs == nil && req.SupplierIDs == nil {
		return nil, apperrors.BadRequest("no fields to update")
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(product).Updates(updates).Error; err != nil {
				if database.IsUniqueViolation(err) {
					return apperrors.Conflict("product name already in use")
				}
				return apperrors.Internal(err)
			}
		}

		if req.CategoryIDs != nil {
			categories, err := s.resolveCategories(tx, *req.CategoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(product).Association("Categories").Replace(categories); err != nil {
				return apperrors.Internal(err)
			}
		}

		if req.SupplierIDs != nil {
			suppliers, err := s.resolveSuppliers(tx, *req.SupplierIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(product).Association("Suppliers").Replace(suppliers); err != nil {
				return apperrors.Internal(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProductByID(id)
}

func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.GetProductByID(id)
	if err != nil {
		return err
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(product).Association("Categories").Clear(); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Model(product).Association("Suppliers").Clear(); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Delete(product).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

func (s *ProductService) resolveCategories(tx *gorm.DB, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if missing := missingIDs(ids, categoryIDs(categories)); len(missing) > 0 {
		return nil, apperrors.Newf(apperrors.KindNotFound, "categories with ids %s not found", joinIDs(missing))
	}
	return categories, nil
}

func (s *ProductService) resolveSuppliers(tx *gorm.DB, ids []uint) ([]models.Supplier, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var suppliers []models.Supplier
	if err := tx.Where("id IN ?", ids).Find(&suppliers).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if missing := missingIDs(ids, supplierIDs(suppliers)); len(missing) > 0 {
		return nil, apperrors.Newf(apperrors.KindNotFound, "suppliers with ids %s not found", joinIDs(missing))
	}
	return suppliers, nil
}

func categoryIDs(categories []models.Category) map[uint]bool {
	found := make(map[uint]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
	}
	return found
}

func supplierIDs(suppliers []models.Supplier) map[uint]bool {
	found := make(map[uint]bool, len(suppliers))
	for _, s := range suppliers {
		found[s.ID] = true
	}
	return found
}

func missingIDs(requested []uint, found map[uint]bool) []uint {
	var missing []uint
	seen := make(map[uint]bool, len(requested))
	for _, id := range requested {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
