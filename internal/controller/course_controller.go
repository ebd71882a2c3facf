package controller

import (
	"errors"
	"strconv"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// swagger:model CourseRequest
type CourseRequest struct {
	Title string `json:"title" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// Create godoc
// @Summary Add a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CourseRequest true "course"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 409 {object} util.Response "course code taken"
// @Router /api/staff/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{Title: req.Title, Code: req.Code}
	if err := c.CourseService.Create(course); err != nil {
		if errors.Is(err, util.ErrCourseCodeTaken) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, course)
}

// Update godoc
// @Summary Edit a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Param body body CourseRequest true "course"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "course code taken"
// @Router /api/staff/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.Update(uint(courseID), req.Title, req.Code); err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCourseCodeTaken):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}

// Delete godoc
// @Summary Delete a course
// @Description Quizzes under the course, and their submissions, are removed with it.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/staff/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.Delete(uint(courseID)); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
