package controller

import (
	"net/http"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityNoteController struct {
	notes    *service.CommunityNoteService
	votes    *service.VoteService
	comments *service.CommentService
}

func NewCommunityNoteController(notes *service.CommunityNoteService, votes *service.VoteService, comments *service.CommentService) *CommunityNoteController {
	return &CommunityNoteController{notes: notes, votes: votes, comments: comments}
}

// Create godoc
// @Summary Share an uploaded note with a course
// @Tags notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CreateCommunityNoteInput true "Note details"
// @Success 201 {object} util.Response
// @Router /notes [post]
func (ctl *CommunityNoteController) Create(c *gin.Context) {
	var input service.CreateCommunityNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	note, err := ctl.notes.Create(c.Request.Context(), userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Note shared", note)
}

// ListByCourse godoc
// @Summary List a course's community notes
// @Tags notes
// @Produce json
// @Param id path string true "Course ID"
// @Param topic query string false "Topic"
// @Param sort query string false "Sort order (top or newest)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /courses/{id}/notes [get]
func (ctl *CommunityNoteController) ListByCourse(c *gin.Context) {
	page, limit := util.ParsePageParams(c)

	notes, pagination, err := ctl.notes.ListByCourse(c.Param("id"), c.Query("topic"), c.Query("sort"), page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Notes fetched", notes, pagination)
}

// Get godoc
// @Summary Get a community note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} util.Response
// @Router /notes/{id} [get]
func (ctl *CommunityNoteController) Get(c *gin.Context) {
	viewerID, _ := util.GetUserID(c)
	note, err := ctl.notes.View(c.Param("id"), viewerID, util.GetUserRole(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}

	// When the caller is logged in, include their vote and save state.
	if userID, ok := util.GetUserID(c); ok {
		voteType, err := ctl.votes.Status(userID, model.VoteTargetNote, note.ID)
		if err != nil {
			util.HandleError(c, err)
			return
		}
		saved, err := ctl.notes.IsSaved(userID, note.ID)
		if err != nil {
			util.HandleError(c, err)
			return
		}
		util.Success(c, "Note fetched", gin.H{
			"note":    note,
			"myVote":  voteType,
			"mySaved": saved,
		})
		return
	}
	util.Success(c, "Note fetched", gin.H{"note": note})
}

// Update godoc
// @Summary Edit a note's details
// @Tags notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param body body service.UpdateCommunityNoteInput true "Fields to change"
// @Success 200 {object} util.Response
// @Router /notes/{id} [put]
func (ctl *CommunityNoteController) Update(c *gin.Context) {
	var input service.UpdateCommunityNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	note, err := ctl.notes.Update(c.Param("id"), userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Note updated", note)
}

// Report godoc
// @Summary Report a note for moderation
// @Tags notes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} util.Response
// @Router /notes/{id}/report [post]
func (ctl *CommunityNoteController) Report(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	hidden, err := ctl.notes.Report(c.Param("id"), userID)
	if err != nil {
		util.HandleError(c, err)
		return
	}

	message := "Report recorded"
	if hidden {
		message = "Report recorded, note hidden pending review"
	}
	util.Success(c, message, gin.H{"hidden": hidden})
}

type setPinnedRequest struct {
	Pinned *bool `json:"pinned" binding:"required"`
}

// SetPinned godoc
// @Summary Pin or unpin a note in its course listing
// @Tags notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param body body setPinnedRequest true "Pinned flag"
// @Success 200 {object} util.Response
// @Router /notes/{id}/pin [put]
func (ctl *CommunityNoteController) SetPinned(c *gin.Context) {
	var req setPinnedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	note, err := ctl.notes.SetPinned(c.Param("id"), *req.Pinned)
	if err != nil {
		util.HandleError(c, err)
		return
	}

	message := "Note pinned"
	if !*req.Pinned {
		message = "Note unpinned"
	}
	util.Success(c, message, note)
}

type setHiddenRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

// SetHidden godoc
// @Summary Hide or restore a reported note
// @Tags notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param body body setHiddenRequest true "Hidden flag"
// @Success 200 {object} util.Response
// @Router /notes/{id}/hide [put]
func (ctl *CommunityNoteController) SetHidden(c *gin.Context) {
	var req setHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	note, err := ctl.notes.SetHidden(c.Param("id"), *req.Hidden)
	if err != nil {
		util.HandleError(c, err)
		return
	}

	message := "Note hidden"
	if !*req.Hidden {
		message = "Note restored"
	}
	util.Success(c, message, note)
}

// Download godoc
// @Summary Get a time-limited download URL
// @Tags notes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} util.Response
// @Router /notes/{id}/download [get]
func (ctl *CommunityNoteController) Download(c *gin.Context) {
	url, err := ctl.notes.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Download URL issued", gin.H{"downloadUrl": url})
}

// ToggleSave godoc
// @Summary Save or unsave a note
// @Tags notes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} util.Response
// @Router /notes/{id}/save [post]
func (ctl *CommunityNoteController) ToggleSave(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	saved, err := ctl.notes.ToggleSave(userID, c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}

	message := "Note saved"
	if !saved {
		message = "Note removed from saved"
	}
	util.Success(c, message, gin.H{"saved": saved})
}

// Vote godoc
// @Summary Vote on a note
// @Tags notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param body body service.CastVoteInput true "Vote type"
// @Success 200 {object} util.Response
// @Router /notes/{id}/vote [post]
func (ctl *CommunityNoteController) Vote(c *gin.Context) {
	var input service.CastVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	result, err := ctl.votes.Cast(userID, model.VoteTargetNote, c.Param("id"), input.VoteType)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Vote recorded", result)
}

// Unvote godoc
// @Summary Withdraw a vote from a note
// @Tags notes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} util.Response
// @Router /notes/{id}/vote [delete]
func (ctl *CommunityNoteController) Unvote(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	result, err := ctl.votes.Remove(userID, model.VoteTargetNote, c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Vote withdrawn", result)
}

// CreateComment godoc
// @Summary Comment on a note
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param body body service.CreateCommentInput true "Comment body"
// @Success 201 {object} util.Response
// @Router /notes/{id}/comments [post]
func (ctl *CommunityNoteController) CreateComment(c *gin.Context) {
	var input service.CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	comment, err := ctl.comments.Create(userID, c.Param("id"), input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Comment added", comment)
}

// ListComments godoc
// @Summary List a note's comments with replies
// @Tags comments
// @Produce json
// @Param id path string true "Note ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /notes/{id}/comments [get]
func (ctl *CommunityNoteController) ListComments(c *gin.Context) {
	page, limit := util.ParsePageParams(c)

	comments, pagination, err := ctl.comments.ListByNote(c.Param("id"), page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Comments fetched", comments, pagination)
}

// Delete godoc
// @Summary Delete a community note
// @Tags notes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} util.Response
// @Router /notes/{id} [delete]
func (ctl *CommunityNoteController) Delete(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	role := util.GetUserRole(c)

	if err := ctl.notes.Delete(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Note deleted", nil)
}
