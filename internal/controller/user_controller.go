package controller

import (
	"errors"
	"strconv"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model RegisterStudentRequest
type RegisterStudentRequest struct {
	RegNo     string `json:"regNo" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Gender    string `json:"gender" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
}

// Register godoc
// @Summary Register a student
// @Description Staff-only. Creates a student account and sends the welcome notification.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RegisterStudentRequest true "student details"
// @Success 201 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "registration number taken"
// @Router /api/staff/students [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		RegNo:     req.RegNo,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Email:     req.Email,
		Role:      model.Student,
	}

	if err := c.UserService.Register(user); err != nil {
		if errors.Is(err, util.ErrRegNoTaken) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// List godoc
// @Summary List registered users grouped by role
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserGroups}
// @Router /api/staff/users [get]
func (c *UserController) List(ctx *gin.Context) {
	groups, err := c.UserService.ListGrouped()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// swagger:model EditUserRequest
type EditUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Gender    string `json:"gender" binding:"required"`
}

// Edit godoc
// @Summary Edit a user's profile fields
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Param body body EditUserRequest true "profile fields"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/users/{id} [put]
func (c *UserController) Edit(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req EditUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.UpdateProfile(uint(userID), req.FirstName, req.LastName, req.Gender); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}

// swagger:model ChangeRoleRequest
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student staff admin"`
}

// ChangeRole godoc
// @Summary Change a user's role
// @Description A user may not change their own role.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Param body body ChangeRoleRequest true "new role"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "self role change"
// @Failure 404 {object} util.Response
// @Router /api/staff/users/{id}/role [patch]
func (c *UserController) ChangeRole(ctx *gin.Context) {
	actor := util.GetUserFromContext(ctx)
	if actor == nil {
		util.Unauthorized(ctx)
		return
	}

	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err = c.UserService.ChangeRole(ctx.Request.Context(), actor.UserID, uint(userID), model.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSelfRoleChange):
			util.Error(ctx, 403, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"changed": true})
}

// ToggleSuspension godoc
// @Summary Suspend or reactivate a user
// @Description Suspension also revokes the user's live tokens.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/staff/users/{id}/suspension [patch]
func (c *UserController) ToggleSuspension(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	active, err := c.UserService.ToggleSuspension(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"active": active})
}

// Delete godoc
// @Summary Delete a user
// @Description Removes the user together with their submissions and complaints.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	if err := c.UserService.Delete(uint(userID)); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
