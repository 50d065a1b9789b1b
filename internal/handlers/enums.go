// internal/handlers/enums.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

// EnumHandler exposes the enumerations the frontend renders as pickers.
type EnumHandler struct{}

func NewEnumHandler() *EnumHandler {
	return &EnumHandler{}
}

// GET /enums/roles
func (h *EnumHandler) GetRoles(c *gin.Context) {
	utils.SuccessResponse(c, models.Roles())
}

// GET /enums/statuses
func (h *EnumHandler) GetStatuses(c *gin.Context) {
	utils.SuccessResponse(c, models.Statuses())
}

// GET /enums/payment-methods
func (h *EnumHandler) GetPaymentMethods(c *gin.Context) {
	utils.SuccessResponse(c, models.PaymentMethods())
}

// GET /enums/payment-statuses
func (h *EnumHandler) GetPaymentStatuses(c *gin.Context) {
	utils.SuccessResponse(c, models.PaymentStatuses())
}
