package controller

import (
	"errors"
	"mime/multipart"
	"strconv"
	"time"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// QuizForm is the multipart payload for quiz create/update; the help
// file rides along as form file "helpFile".
// swagger:model QuizForm
type QuizForm struct {
	Title       string `form:"title" binding:"required"`
	Code        string `form:"code" binding:"required"`
	Description string `form:"description" binding:"required"`
	DueDate     string `form:"dueDate" binding:"required"` // RFC 3339
	CourseID    uint   `form:"courseId"`
}

// ListForCourse godoc
// @Summary List quizzes of a course
// @Description Also returns which of them the acting user has already submitted.
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/quizzes [get]
func (c *QuizController) ListForCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	quizzes, submitted, err := c.QuizService.ListForCourse(uint(courseID), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	submittedIDs := make([]uint, 0, len(submitted))
	for id := range submitted {
		submittedIDs = append(submittedIDs, id)
	}

	util.Success(ctx, gin.H{
		"quizzes":   quizzes,
		"submitted": submittedIDs,
		"now":       time.Now(),
	})
}

// Get godoc
// @Summary Quiz details
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quizID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	quiz, err := c.QuizService.Get(uint(quizID))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// Create godoc
// @Summary Add a quiz
// @Description Multipart form; optional "helpFile" attachment. Students are notified by email when the toggle is on.
// @Tags quizzes
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "title"
// @Param code formData string true "unique quiz code"
// @Param description formData string true "description"
// @Param dueDate formData string true "RFC 3339 due timestamp"
// @Param courseId formData int true "owning course id"
// @Param helpFile formData file false "optional help attachment"
// @Success 201 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "course not found"
// @Failure 409 {object} util.Response "quiz code taken"
// @Router /api/staff/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var form QuizForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if form.CourseID == 0 {
		util.BadRequest(ctx, "courseId is required")
		return
	}

	dueDate, err := time.Parse(time.RFC3339, form.DueDate)
	if err != nil {
		util.BadRequest(ctx, "dueDate must be RFC 3339")
		return
	}

	help, closeHelp, err := c.helpFile(ctx)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if closeHelp != nil {
		defer closeHelp()
	}

	quiz := &model.Quiz{
		Title:       form.Title,
		Code:        form.Code,
		Description: form.Description,
		CourseID:    form.CourseID,
		DueDate:     dueDate,
	}

	if err := c.QuizService.Create(ctx.Request.Context(), quiz, help); err != nil {
		switch {
		case errors.Is(err, util.ErrQuizCodeTaken):
			util.Error(ctx, 409, err.Error())
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": quiz.ID})
}

// Update godoc
// @Summary Edit a quiz
// @Tags quizzes
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "quiz code taken"
// @Router /api/staff/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	quizID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var form QuizForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dueDate, err := time.Parse(time.RFC3339, form.DueDate)
	if err != nil {
		util.BadRequest(ctx, "dueDate must be RFC 3339")
		return
	}

	help, closeHelp, err := c.helpFile(ctx)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if closeHelp != nil {
		defer closeHelp()
	}

	upd := service.QuizUpdate{
		Title:       form.Title,
		Code:        form.Code,
		Description: form.Description,
		DueDate:     dueDate,
	}
	if err := c.QuizService.Update(ctx.Request.Context(), uint(quizID), upd, help); err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizCodeTaken):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}

// Delete godoc
// @Summary Delete a quiz
// @Description Submissions for the quiz are removed with it.
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	quizID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	if err := c.QuizService.Delete(uint(quizID)); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// helpFile extracts the optional multipart attachment. The returned
// closer is nil when no file was sent.
func (c *QuizController) helpFile(ctx *gin.Context) (*service.HelpFile, func(), error) {
	fileHeader, err := ctx.FormFile("helpFile")
	if err != nil {
		// Absent file is fine; the attachment is optional.
		return nil, nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &service.HelpFile{
		Filename:    fileHeader.Filename,
		Reader:      f,
		Size:        fileHeader.Size,
		ContentType: contentType(fileHeader),
	}, func() { f.Close() }, nil
}

func contentType(h *multipart.FileHeader) string {
	if ct := h.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
