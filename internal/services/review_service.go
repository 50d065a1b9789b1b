// internal/services/review_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
	"github.com/eshopdev/eshop-backend/internal/database"
	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	ProductID   uint     `json:"product_id" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Liked       string   `json:"liked" validate:"omitempty,max=1000"`
	Disliked    string   `json:"disliked" validate:"omitempty,max=1000"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
}

type UpdateReviewRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Liked       *string   `json:"liked,omitempty" validate:"omitempty,max=1000"`
	Disliked    *string   `json:"disliked,omitempty" validate:"omitempty,max=1000"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Rating      *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) GetReviewsByProduct(productID uint, params utils.PaginationParams) ([]models.Review, int64, error) {
	var exists int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	if exists == 0 {
		return nil, 0, apperrors.Newf(apperrors.KindNotFound, "product with id %d not found", productID)
	}

	return s.listReviews(s.db.Model(&models.Review{}).Where("product_id = ?", productID).Preload("User"), params)
}

func (s *ReviewService) GetReviewsByUser(userID uint, params utils.PaginationParams) ([]models.Review, int64, error) {
	var exists int64
	if err := s.db.Model(&models.User{}).
		Where("id = ? AND status <> ?", userID, models.StatusDeleted).
		Count(&exists).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	if exists == 0 {
		return nil, 0, apperrors.Newf(apperrors.KindNotFound, "user with id %d not found", userID)
	}

	return s.listReviews(s.db.Model(&models.Review{}).Where("user_id = ?", userID).Preload("Product"), params)
}

func (s *ReviewService) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("User").Preload("Product").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "review with id %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return &review, nil
}

// CreateReview enforces one review per user and product, then folds the new
// rating into the product's aggregate.
func (s *ReviewService) CreateReview(principal models.Principal, req *CreateReviewRequest) (*models.Review, error) {
	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "product with id %d not found", req.ProductID)
		}
		return nil, apperrors.Internal(err)
	}

	var count int64
	if err := s.db.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", principal.UserID, req.ProductID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("you have already reviewed this product")
	}

	review := &models.Review{
		UserID:      principal.UserID,
		ProductID:   req.ProductID,
		Title:       req.Title,
		Description: nilIfEmpty(req.Description),
		Liked:       nilIfEmpty(req.Liked),
		Disliked:    nilIfEmpty(req.Disliked),
		Images:      models.StringList(req.Images),
		Rating:      req.Rating,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperrors.Conflict("you have already reviewed this product")
			}
			return apperrors.Internal(err)
		}
		return s.updateProductRating(tx, req.ProductID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetReviewByID(review.ID)
}

// UpdateReview lets the author edit their review. Unlike delete there is no
// admin exception: moderation removes reviews, it does not rewrite them.
func (s *ReviewService) UpdateReview(principal models.Principal, id uint, req *UpdateReviewRequest) (*models.Review, error) {
	review, err := s.GetReviewByID(id)
	if err != nil {
		return nil, err
	}

	if review.UserID != principal.UserID {
		return nil, apperrors.Forbidden("you can only update your own reviews")
	}

	updates := map[string]interface{}{}

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Liked != nil {
		updates["liked"] = *req.Liked
	}
	if req.Disliked != nil {
		updates["disliked"] = *req.Disliked
	}
	if req.Images != nil {
		updates["images"] = models.StringList(*req.Images)
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}

	if len(updates) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(review).Updates(updates).Error; err != nil {
			return apperrors.Internal(err)
		}
		if req.Rating != nil {
			return s.updateProductRating(tx, review.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetReviewByID(id)
}

func (s *ReviewService) DeleteReview(principal models.Principal, id uint) error {
	review, err := s.GetReviewByID(id)
	if err != nil {
		return err
	}

	if review.UserID != principal.UserID && !principal.IsAdmin() {
		return apperrors.Forbidden("you can only delete your own reviews")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Delete(review).Error; err != nil {
			return apperrors.Internal(err)
		}
		return s.updateProductRating(tx, review.ProductID)
	})
}

// updateProductRating recomputes the product aggregate as the mean of its
// review ratings, or zero once the last review is gone.
func (s *ReviewService) updateProductRating(tx *gorm.DB, productID uint) error {
	var avg *float64
	if err := tx.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return apperrors.Internal(err)
	}

	rating := 0.0
	if avg != nil {
		rating = *avg
	}

	if err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("rating", rating).Error; err != nil {
		return apperrors.Internal(err)
	}

	return nil
}

func (s *ReviewService) listReviews(query *gorm.DB, params utils.PaginationParams) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	if err := utils.ApplyPagination(query, params).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	return reviews, total, nil
}
