package controller

import (
	"net/http"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	comments *service.CommentService
	votes    *service.VoteService
}

func NewCommentController(comments *service.CommentService, votes *service.VoteService) *CommentController {
	return &CommentController{comments: comments, votes: votes}
}

// Vote godoc
// @Summary Vote on a comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param body body service.CastVoteInput true "Vote type"
// @Success 200 {object} util.Response
// @Router /comments/{id}/vote [post]
func (ctl *CommentController) Vote(c *gin.Context) {
	var input service.CastVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	result, err := ctl.votes.Cast(userID, model.VoteTargetComment, c.Param("id"), input.VoteType)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Vote recorded", result)
}

// Unvote godoc
// @Summary Withdraw a vote from a comment
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} util.Response
// @Router /comments/{id}/vote [delete]
func (ctl *CommentController) Unvote(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	result, err := ctl.votes.Remove(userID, model.VoteTargetComment, c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Vote withdrawn", result)
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} util.Response
// @Router /comments/{id} [delete]
func (ctl *CommentController) Delete(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	role := util.GetUserRole(c)

	if err := ctl.comments.Delete(c.Param("id"), userID, role); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Comment deleted", nil)
}
