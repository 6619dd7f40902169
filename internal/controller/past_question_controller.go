package controller

import (
	"net/http"
	"strconv"

	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PastQuestionController struct {
	pastQuestions *service.PastQuestionService
}

func NewPastQuestionController(pastQuestions *service.PastQuestionService) *PastQuestionController {
	return &PastQuestionController{pastQuestions: pastQuestions}
}

// Create godoc
// @Summary Attach an uploaded past question to a course
// @Tags past-questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CreatePastQuestionInput true "Past question details"
// @Success 201 {object} util.Response
// @Router /past-questions [post]
func (ctl *PastQuestionController) Create(c *gin.Context) {
	var input service.CreatePastQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	pq, err := ctl.pastQuestions.Create(c.Request.Context(), userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Past question added", pq)
}

// ListByCourse godoc
// @Summary List a course's past questions
// @Tags past-questions
// @Produce json
// @Param id path string true "Course ID"
// @Param year query int false "Exam year"
// @Param semester query string false "Semester"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /courses/{id}/past-questions [get]
func (ctl *PastQuestionController) ListByCourse(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	page, limit := util.ParsePageParams(c)

	items, pagination, err := ctl.pastQuestions.ListByCourse(c.Param("id"), year, c.Query("semester"), page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Past questions fetched", items, pagination)
}

// Get godoc
// @Summary Get a past question
// @Tags past-questions
// @Produce json
// @Param id path string true "Past question ID"
// @Success 200 {object} util.Response
// @Router /past-questions/{id} [get]
func (ctl *PastQuestionController) Get(c *gin.Context) {
	pq, err := ctl.pastQuestions.Get(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Past question fetched", pq)
}

// Download godoc
// @Summary Get a time-limited download URL
// @Tags past-questions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Past question ID"
// @Success 200 {object} util.Response
// @Router /past-questions/{id}/download [get]
func (ctl *PastQuestionController) Download(c *gin.Context) {
	url, err := ctl.pastQuestions.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Download URL issued", gin.H{"downloadUrl": url})
}

// Delete godoc
// @Summary Delete a past question
// @Tags past-questions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Past question ID"
// @Success 200 {object} util.Response
// @Router /past-questions/{id} [delete]
func (ctl *PastQuestionController) Delete(c *gin.Context) {
	if err := ctl.pastQuestions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Past question deleted", nil)
}
