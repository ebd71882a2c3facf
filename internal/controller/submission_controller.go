package controller

import (
	"errors"
	"strconv"

	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// Submit godoc
// @Summary Submit a quiz file
// @Description Rejected after the due date or for file types outside the allow-list. Resubmission replaces the previous file.
// @Tags submissions
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Param file formData file true "submission file (pdf, doc, docx, zip, txt, cpp, py)"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "deadline passed or invalid file type"
// @Failure 404 {object} util.Response "quiz not found"
// @Router /api/quizzes/{id}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	sub, err := c.SubmissionService.Submit(
		ctx.Request.Context(),
		user.UserID,
		uint(quizID),
		fileHeader.Filename,
		f,
		fileHeader.Size,
		contentType(fileHeader),
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDeadlineExpired),
			errors.Is(err, util.ErrInvalidFileType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": sub.ID, "file": sub.File, "submittedAt": sub.SubmittedAt})
}

// ListForQuiz godoc
// @Summary List all submissions of a quiz
// @Description Staff see the listing any time; everyone else only after the due date.
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Failure 403 {object} util.Response "deadline not yet passed"
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/submissions [get]
func (c *SubmissionController) ListForQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	subs, err := c.SubmissionService.ListForQuiz(uint(quizID), user.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, subs)
}

// ListForCourse godoc
// @Summary List all submissions of a course
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/staff/courses/{id}/submissions [get]
func (c *SubmissionController) ListForCourse(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	subs, err := c.SubmissionService.ListForCourse(uint(courseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// ListOwn godoc
// @Summary The acting student's submissions
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/submissions [get]
func (c *SubmissionController) ListOwn(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subs, err := c.SubmissionService.ListOwn(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// swagger:model GradeRequest
type GradeRequest struct {
	Marks *int `json:"marks" binding:"required"`
}

// Grade godoc
// @Summary Assign marks to a submission
// @Description Marks must be between 0 and 10. Re-grading overwrites the previous mark.
// @Tags grading
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "submission id"
// @Param body body GradeRequest true "marks"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "marks out of range"
// @Failure 404 {object} util.Response
// @Router /api/staff/submissions/{id}/grade [post]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	submissionID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SubmissionService.Grade(uint(submissionID), *req.Marks); err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidMark):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"graded": true})
}

// swagger:model RemarksRequest
type RemarksRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// SetRemarks godoc
// @Summary Attach remarks to a submission
// @Tags grading
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "submission id"
// @Param body body RemarksRequest true "remarks"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/submissions/{id}/remarks [post]
func (c *SubmissionController) SetRemarks(ctx *gin.Context) {
	submissionID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	var req RemarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SubmissionService.SetRemarks(uint(submissionID), req.Remarks); err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}

// Get godoc
// @Summary Submission details, including marks and remarks
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "submission id"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	submissionID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	sub, err := c.SubmissionService.Get(uint(submissionID))
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sub)
}
