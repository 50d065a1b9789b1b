// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eshopdev/eshop-backend/internal/middleware"
	"github.com/eshopdev/eshop-backend/internal/services"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GET /reviews/product/:productId
func (h *ReviewHandler) GetReviewsByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.GetReviewsByProduct(productID, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, utils.NewPaginatedResult(reviews, total, params))
}

// GET /reviews/my
func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.GetReviewsByUser(principal.UserID, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, utils.NewPaginatedResult(reviews, total, params))
}

// GET /reviews/user/:userId
func (h *ReviewHandler) GetReviewsByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.GetReviewsByUser(userID, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, utils.NewPaginatedResult(reviews, total, params))
}

// GET /reviews/:id
func (h *ReviewHandler) GetReviewByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReviewByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.CreateReview(principal, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// PATCH /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.UpdateReview(principal, id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(principal, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
