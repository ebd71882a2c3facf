package controller

import (
	"errors"

	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model LoginRequest
type LoginRequest struct {
	RegNo    string `json:"regNo" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a JWT token. Suspended accounts are rejected.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response "account suspended"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.RegNo, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAccountSuspended):
			util.Error(ctx, 403, err.Error())
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, "Registration number or password is incorrect")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

// ChangePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ChangePasswordRequest true "passwords"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "old password incorrect or confirmation mismatch"
// @Router /api/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ChangePassword(user.UserID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.BadRequest(ctx, "Old password is incorrect")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"changed": true})
}

// GetProfile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"id":        user.ID,
		"regNo":     user.RegNo,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"gender":    user.Gender,
		"role":      user.Role,
		"active":    user.Active,
		"createdAt": user.CreatedAt,
	})
}
