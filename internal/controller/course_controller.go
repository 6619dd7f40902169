package controller

import (
	"net/http"
	"strconv"

	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	courses *service.CourseService
}

func NewCourseController(courses *service.CourseService) *CourseController {
	return &CourseController{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Param level query int false "Level ID"
// @Param semester query string false "Semester (first or second)"
// @Param department query string false "Department"
// @Param q query string false "Code or title substring"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /courses [get]
func (ctl *CourseController) List(c *gin.Context) {
	levelID, _ := strconv.ParseUint(c.Query("level"), 10, 32)
	filter := repository.CourseFilter{
		LevelID:    uint(levelID),
		Semester:   c.Query("semester"),
		Department: c.Query("department"),
		Query:      c.Query("q"),
	}
	page, limit := util.ParsePageParams(c)

	courses, pagination, err := ctl.courses.List(filter, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Courses fetched", courses, pagination)
}

// Get godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /courses/{id} [get]
func (ctl *CourseController) Get(c *gin.Context) {
	course, err := ctl.courses.Get(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Course fetched", course)
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CreateCourseInput true "Course details"
// @Success 201 {object} util.Response
// @Router /courses [post]
func (ctl *CourseController) Create(c *gin.Context) {
	var input service.CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	course, err := ctl.courses.Create(userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Course created", course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param body body service.UpdateCourseInput true "Fields to change"
// @Success 200 {object} util.Response
// @Router /courses/{id} [put]
func (ctl *CourseController) Update(c *gin.Context) {
	var input service.UpdateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	course, err := ctl.courses.Update(c.Param("id"), input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Course updated", course)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /courses/{id} [delete]
func (ctl *CourseController) Delete(c *gin.Context) {
	if err := ctl.courses.Delete(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Course deleted", nil)
}
