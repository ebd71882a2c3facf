package controller

import (
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SettingsController exposes the notification toggles. Admin only,
// enforced at the route level.
type SettingsController struct {
	NotificationService *service.NotificationService
}

func NewSettingsController(notificationService *service.NotificationService) *SettingsController {
	return &SettingsController{NotificationService: notificationService}
}

// Get godoc
// @Summary Notification settings
// @Tags settings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.EmailSettings}
// @Router /api/admin/email-settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	settings, err := c.NotificationService.Settings()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// swagger:model EmailSettingsRequest
type EmailSettingsRequest struct {
	QuizUploadEnabled          *bool `json:"quizUploadEnabled" binding:"required"`
	SubmissionEnabled          *bool `json:"submissionEnabled" binding:"required"`
	StudentRegistrationEnabled *bool `json:"studentRegistrationEnabled" binding:"required"`
}

// Update godoc
// @Summary Update notification settings
// @Tags settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EmailSettingsRequest true "toggles"
// @Success 200 {object} util.Response
// @Router /api/admin/email-settings [put]
func (c *SettingsController) Update(ctx *gin.Context) {
	var req EmailSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	settings := &model.EmailSettings{
		QuizUploadEnabled:          *req.QuizUploadEnabled,
		SubmissionEnabled:          *req.SubmissionEnabled,
		StudentRegistrationEnabled: *req.StudentRegistrationEnabled,
	}
	if err := c.NotificationService.UpdateSettings(settings); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}
