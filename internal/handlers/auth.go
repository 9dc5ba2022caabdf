// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	mfaService  *services.MFAService
}

func NewAuthHandler(authService *services.AuthService, mfaService *services.MFAService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mfaService:  mfaService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}

type sendMFARequest struct {
	Username string `json:"username" validate:"required"`
}

// POST /auth/mfa/send
func (h *AuthHandler) SendMFACode(c *gin.Context) {
	var req sendMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	user, err := h.authService.RequiresMFA(req.Username)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.mfaService.SendCode(user.Username, user.Email); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Verification code sent",
	})
}

type verifyMFARequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// POST /auth/mfa/verify
func (h *AuthHandler) VerifyMFACode(c *gin.Context) {
	var req verifyMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	if !h.mfaService.VerifyCode(req.Username, req.Code) {
		handleServiceError(c, services.ErrInvalidMFACode)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"verified": true,
	})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := actingUserID(c)
	if userID == nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.GetUserByID(*userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}
