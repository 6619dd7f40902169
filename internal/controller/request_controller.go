package controller

import (
	"net/http"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RequestController struct {
	requests *service.RequestService
	votes    *service.VoteService
}

func NewRequestController(requests *service.RequestService, votes *service.VoteService) *RequestController {
	return &RequestController{requests: requests, votes: votes}
}

// Create godoc
// @Summary Request missing material
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CreateRequestInput true "Request details"
// @Success 201 {object} util.Response
// @Router /requests [post]
func (ctl *RequestController) Create(c *gin.Context) {
	var input service.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	req, err := ctl.requests.Create(userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Request submitted", req)
}

// List godoc
// @Summary List material requests, most wanted first
// @Tags requests
// @Produce json
// @Param course query string false "Course ID"
// @Param status query string false "Status"
// @Param type query string false "Request type"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /requests [get]
func (ctl *RequestController) List(c *gin.Context) {
	filter := repository.RequestFilter{
		CourseID: c.Query("course"),
		Status:   c.Query("status"),
		Type:     c.Query("type"),
	}
	page, limit := util.ParsePageParams(c)

	requests, pagination, err := ctl.requests.List(filter, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Requests fetched", requests, pagination)
}

// Mine godoc
// @Summary List the caller's own requests
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /requests/mine [get]
func (ctl *RequestController) Mine(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	page, limit := util.ParsePageParams(c)

	requests, pagination, err := ctl.requests.ListMine(userID, page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Requests fetched", requests, pagination)
}

// Get godoc
// @Summary Get a material request
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} util.Response
// @Router /requests/{id} [get]
func (ctl *RequestController) Get(c *gin.Context) {
	req, err := ctl.requests.Get(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Request fetched", req)
}

// Update godoc
// @Summary Edit a pending request
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body service.UpdateRequestInput true "Fields to change"
// @Success 200 {object} util.Response
// @Router /requests/{id} [put]
func (ctl *RequestController) Update(c *gin.Context) {
	var input service.UpdateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	req, err := ctl.requests.Update(c.Param("id"), userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Request updated", req)
}

// Stats godoc
// @Summary Get the request queue broken down by status
// @Tags requests
// @Produce json
// @Param course query string false "Course ID"
// @Success 200 {object} util.Response
// @Router /requests/stats [get]
func (ctl *RequestController) Stats(c *gin.Context) {
	stats, err := ctl.requests.Stats(c.Query("course"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Request stats fetched", stats)
}

// Vote godoc
// @Summary Vote a request up or down the queue
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body service.CastVoteInput true "Vote type"
// @Success 200 {object} util.Response
// @Router /requests/{id}/vote [post]
func (ctl *RequestController) Vote(c *gin.Context) {
	var input service.CastVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	result, err := ctl.votes.Cast(userID, model.VoteTargetRequest, c.Param("id"), input.VoteType)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Vote recorded", result)
}

// Unvote godoc
// @Summary Withdraw a vote from a request
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} util.Response
// @Router /requests/{id}/vote [delete]
func (ctl *RequestController) Unvote(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	result, err := ctl.votes.Remove(userID, model.VoteTargetRequest, c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Vote withdrawn", result)
}

// Claim godoc
// @Summary Mark a request as being worked on
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} util.Response
// @Router /requests/{id}/claim [post]
func (ctl *RequestController) Claim(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	req, err := ctl.requests.Claim(c.Param("id"), userID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Request claimed", req)
}

// Fulfill godoc
// @Summary Fulfill a request with the material that answers it
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body service.FulfillRequestInput true "Resolution details"
// @Success 200 {object} util.Response
// @Router /requests/{id}/fulfill [post]
func (ctl *RequestController) Fulfill(c *gin.Context) {
	var input service.FulfillRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	req, err := ctl.requests.Fulfill(c.Param("id"), userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Request fulfilled", req)
}

// Reject godoc
// @Summary Reject a request with a reason
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body service.RejectRequestInput true "Rejection reason"
// @Success 200 {object} util.Response
// @Router /requests/{id}/reject [post]
func (ctl *RequestController) Reject(c *gin.Context) {
	var input service.RejectRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	req, err := ctl.requests.Reject(c.Param("id"), userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Request rejected", req)
}

// Delete godoc
// @Summary Withdraw or remove a request
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} util.Response
// @Router /requests/{id} [delete]
func (ctl *RequestController) Delete(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	role := util.GetUserRole(c)

	if err := ctl.requests.Delete(c.Param("id"), userID, role); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Request deleted", nil)
}
