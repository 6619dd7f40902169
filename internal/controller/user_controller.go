package controller

import (
	"net/http"
	"strconv"

	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users   *service.UserService
	quizzes *service.QuizService
}

func NewUserController(users *service.UserService, quizzes *service.QuizService) *UserController {
	return &UserController{users: users, quizzes: quizzes}
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student rep admin"`
}

// Me godoc
// @Summary Get the current user's profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /users/me [get]
func (ctl *UserController) Me(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	user, err := ctl.users.GetProfile(userID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Profile fetched", user)
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} util.Response
// @Router /users/me [put]
func (ctl *UserController) UpdateMe(c *gin.Context) {
	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	user, err := ctl.users.UpdateProfile(userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Profile updated", user)
}

// MyContributions godoc
// @Summary List notes the current user has shared
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /users/me/contributions [get]
func (ctl *UserController) MyContributions(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	page, limit := util.ParsePageParams(c)

	notes, pagination, err := ctl.users.ListContributions(userID, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Contributions fetched", notes, pagination)
}

// MySavedNotes godoc
// @Summary List notes the current user has saved
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /users/me/saved-notes [get]
func (ctl *UserController) MySavedNotes(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	page, limit := util.ParsePageParams(c)

	notes, pagination, err := ctl.users.ListSavedNotes(userID, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Saved notes fetched", notes, pagination)
}

// MyAttempts godoc
// @Summary List the current user's quiz attempts
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /users/me/attempts [get]
func (ctl *UserController) MyAttempts(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	page, limit := util.ParsePageParams(c)

	attempts, pagination, err := ctl.quizzes.ListUserAttempts(userID, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Attempts fetched", attempts, pagination)
}

// List godoc
// @Summary List accounts (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param role query string false "Role filter"
// @Param verified query bool false "Verified filter"
// @Param active query bool false "Active filter"
// @Param q query string false "Name or email search"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /users [get]
func (ctl *UserController) List(c *gin.Context) {
	page, limit := util.ParsePageParams(c)

	filter := repository.UserFilter{
		Role:  c.Query("role"),
		Query: c.Query("q"),
	}
	if v := c.Query("verified"); v != "" {
		verified := v == "true"
		filter.Verified = &verified
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		filter.Active = &active
	}

	users, pagination, err := ctl.users.List(filter, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Users fetched", users, pagination)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive godoc
// @Summary Suspend or reinstate an account (admin)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body setActiveRequest true "Active flag"
// @Success 200 {object} util.Response
// @Router /users/{id}/active [put]
func (ctl *UserController) SetActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	actorID, _ := util.GetUserID(c)
	user, err := ctl.users.SetActive(actorID, uint(id), *req.Active)
	if err != nil {
		util.HandleError(c, err)
		return
	}

	message := "Account reinstated"
	if !*req.Active {
		message = "Account suspended"
	}
	util.Success(c, message, user)
}

// SetRole godoc
// @Summary Change a user's role
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body setRoleRequest true "New role"
// @Success 200 {object} util.Response
// @Router /users/{id}/role [put]
func (ctl *UserController) SetRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ctl.users.SetRole(uint(id), req.Role)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Role updated", user)
}
