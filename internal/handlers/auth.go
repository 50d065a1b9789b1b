// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshopdev/eshop-backend/internal/middleware"
	"github.com/eshopdev/eshop-backend/internal/services"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

const refreshTokenCookie = "refresh_token"

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Register(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setRefreshCookie(c, authResponse.RefreshToken)
	utils.CreatedResponse(c, authResponse)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setRefreshCookie(c, authResponse.RefreshToken)
	utils.SuccessResponse(c, authResponse)
}

// POST /auth/refresh
//
// The refresh token is read from the cookie when present, with a JSON body
// fallback for clients that do not hold cookies.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	authResponse, err := h.authService.Refresh(token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setRefreshCookie(c, authResponse.RefreshToken)
	utils.SuccessResponse(c, authResponse)
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	utils.NoContentResponse(c)
}

// GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.GetUserByID(principal.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	maxAge := h.authService.RefreshTokenTTL() * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, token, maxAge, "/", "", false, true)
}
