package controller

import (
	"net/http"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	quizzes *service.QuizService
}

func NewQuizController(quizzes *service.QuizService) *QuizController {
	return &QuizController{quizzes: quizzes}
}

type quizStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published archived"`
}

// Create godoc
// @Summary Create a quiz with its questions
// @Tags quizzes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CreateQuizInput true "Quiz with questions"
// @Success 201 {object} util.Response
// @Router /quizzes [post]
func (ctl *QuizController) Create(c *gin.Context) {
	var input service.CreateQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	quiz, err := ctl.quizzes.Create(userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Quiz created", quiz)
}

// ListByCourse godoc
// @Summary List a course's quizzes
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Course ID"
// @Param topic query string false "Topic"
// @Param difficulty query string false "Difficulty (easy, medium or hard)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /courses/{id}/quizzes [get]
func (ctl *QuizController) ListByCourse(c *gin.Context) {
	page, limit := util.ParsePageParams(c)
	role := util.GetUserRole(c)
	includeUnpublished := role == model.RoleRep || role == model.RoleAdmin

	quizzes, pagination, err := ctl.quizzes.ListByCourse(c.Param("id"), c.Query("topic"), c.Query("difficulty"), includeUnpublished, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Quizzes fetched", quizzes, pagination)
}

// Get godoc
// @Summary Get a quiz to take, without answer keys
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /quizzes/{id} [get]
func (ctl *QuizController) Get(c *gin.Context) {
	role := util.GetUserRole(c)
	if role == model.RoleRep || role == model.RoleAdmin {
		quiz, err := ctl.quizzes.Get(c.Param("id"))
		if err != nil {
			util.HandleError(c, err)
			return
		}
		util.Success(c, "Quiz fetched", quiz)
		return
	}

	view, err := ctl.quizzes.GetForStudent(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Quiz fetched", view)
}

// SetStatus godoc
// @Summary Publish, archive or unpublish a quiz
// @Tags quizzes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param body body quizStatusRequest true "New status"
// @Success 200 {object} util.Response
// @Router /quizzes/{id}/status [patch]
func (ctl *QuizController) SetStatus(c *gin.Context) {
	var req quizStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := ctl.quizzes.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Quiz status updated", quiz)
}

// Submit godoc
// @Summary Submit answers and get the graded attempt
// @Tags quizzes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param body body service.SubmitQuizInput true "Answers"
// @Success 201 {object} util.Response
// @Router /quizzes/{id}/submit [post]
func (ctl *QuizController) Submit(c *gin.Context) {
	var input service.SubmitQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	attempt, err := ctl.quizzes.Submit(userID, c.Param("id"), input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Attempt graded", attempt)
}

// Attempts godoc
// @Summary List the caller's attempts on a quiz
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /quizzes/{id}/attempts [get]
func (ctl *QuizController) Attempts(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	attempts, err := ctl.quizzes.ListAttempts(c.Param("id"), userID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Attempts fetched", attempts)
}

// GetAttempt godoc
// @Summary Review one of the caller's graded attempts
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response
// @Router /attempts/{id} [get]
func (ctl *QuizController) GetAttempt(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	attempt, err := ctl.quizzes.GetAttempt(c.Param("id"), userID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Attempt fetched", attempt)
}

// Stats godoc
// @Summary Get a quiz's aggregate attempt stats
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /quizzes/{id}/stats [get]
func (ctl *QuizController) Stats(c *gin.Context) {
	stats, err := ctl.quizzes.Stats(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Stats fetched", stats)
}

// Delete godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /quizzes/{id} [delete]
func (ctl *QuizController) Delete(c *gin.Context) {
	if err := ctl.quizzes.Delete(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Quiz deleted", nil)
}
