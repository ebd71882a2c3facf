package controller

import (
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ComplaintController struct {
	ComplaintService *service.ComplaintService
}

func NewComplaintController(complaintService *service.ComplaintService) *ComplaintController {
	return &ComplaintController{ComplaintService: complaintService}
}

// swagger:model ComplaintRequest
type ComplaintRequest struct {
	Body string `json:"body" binding:"required"`
}

// Submit godoc
// @Summary File a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ComplaintRequest true "complaint text"
// @Success 201 {object} util.Response{data=object}
// @Router /api/complaints [post]
func (c *ComplaintController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ComplaintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	complaint, err := c.ComplaintService.Submit(user.UserID, req.Body)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": complaint.ID})
}

// ListOwn godoc
// @Summary The acting student's complaints
// @Tags complaints
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Complaint}
// @Router /api/complaints [get]
func (c *ComplaintController) ListOwn(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	complaints, err := c.ComplaintService.ListOwn(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, complaints)
}

// ListAll godoc
// @Summary All complaints, for staff review
// @Tags complaints
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Complaint}
// @Router /api/staff/complaints [get]
func (c *ComplaintController) ListAll(ctx *gin.Context) {
	complaints, err := c.ComplaintService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, complaints)
}
