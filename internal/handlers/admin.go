// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/services"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/statistics
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	stats, err := h.adminService.GeneralStatistics()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// PATCH /admin/ban/:id
func (h *AdminHandler) BanUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.adminService.BanUser(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// PATCH /admin/restore/:id
func (h *AdminHandler) RestoreUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.adminService.RestoreUser(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// PATCH /admin/roles/:id
//
// The target role and its attachments arrive as query parameters
// (role, storeId, position, supplierId).
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role := c.Query("role")
	if role == "" {
		utils.BadRequestResponse(c, "role query parameter is required")
		return
	}

	req := services.ChangeRoleRequest{
		Role: models.Role(role),
	}

	if raw := c.Query("storeId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			utils.BadRequestResponse(c, "invalid storeId parameter")
			return
		}
		storeID := uint(parsed)
		req.StoreID = &storeID
	}

	if raw := c.Query("supplierId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			utils.BadRequestResponse(c, "invalid supplierId parameter")
			return
		}
		supplierID := uint(parsed)
		req.SupplierID = &supplierID
	}

	if position := c.Query("position"); position != "" {
		req.Position = &position
	}

	result, err := h.adminService.ChangeRole(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
